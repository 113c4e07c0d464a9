package feed

import (
	"context"
	"errors"
	"testing"

	"github.com/flagsapp/flags-backend/internal/hottakes"
	"github.com/flagsapp/flags-backend/pkg/db/models"
)

type fakeLister struct {
	rows []hottakes.FeedRow
	err  error

	gotUserID string
	gotLimit  int
	gotOffset int
}

func (f *fakeLister) ListFeed(ctx context.Context, userID string, limit, offset int) ([]hottakes.FeedRow, error) {
	f.gotUserID, f.gotLimit, f.gotOffset = userID, limit, offset
	return f.rows, f.err
}

func TestGetFeedAnnotatesAnonymousAuthor(t *testing.T) {
	name := "Author"
	lister := &fakeLister{rows: []hottakes.FeedRow{
		{HotTake: models.HotTake{ID: "t1", Text: "seeded"}},
		{HotTake: models.HotTake{ID: "t2", Text: "authored"}, AuthorName: &name},
	}}
	svc, err := NewService(ServiceParams{HotTakeRepo: lister})
	if err != nil {
		t.Fatal(err)
	}

	feed, err := svc.GetFeed(context.Background(), "viewer", 50, 10)
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}

	if lister.gotUserID != "viewer" || lister.gotLimit != 50 || lister.gotOffset != 10 {
		t.Fatalf("repo called with %q %d %d", lister.gotUserID, lister.gotLimit, lister.gotOffset)
	}
	if len(feed) != 2 {
		t.Fatalf("len = %d", len(feed))
	}
	if feed[0].AuthorName != "Anonymous" {
		t.Fatalf("seeded author = %q", feed[0].AuthorName)
	}
	if feed[1].AuthorName != "Author" {
		t.Fatalf("author = %q", feed[1].AuthorName)
	}
}

func TestGetFeedEmptyIsSuccess(t *testing.T) {
	svc, err := NewService(ServiceParams{HotTakeRepo: &fakeLister{}})
	if err != nil {
		t.Fatal(err)
	}

	feed, err := svc.GetFeed(context.Background(), "viewer", 100, 0)
	if err != nil {
		t.Fatalf("GetFeed: %v", err)
	}
	if feed == nil || len(feed) != 0 {
		t.Fatalf("expected empty slice, got %#v", feed)
	}
}

func TestGetFeedPropagatesRepoError(t *testing.T) {
	svc, err := NewService(ServiceParams{HotTakeRepo: &fakeLister{err: errors.New("db down")}})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetFeed(context.Background(), "viewer", 100, 0); err == nil {
		t.Fatal("expected error")
	}
}

package hottakes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/flagsapp/flags-backend/api/middleware"
	"github.com/flagsapp/flags-backend/internal/hottakes"
	respond "github.com/flagsapp/flags-backend/internal/responses"
	apperrors "github.com/flagsapp/flags-backend/pkg/errors"
	"github.com/flagsapp/flags-backend/pkg/logger"
)

type fakeHotTakeService struct {
	hottakes.Service

	created    hottakes.HotTakeDTO
	createErr  error
	lastAuthor string
	lastInput  hottakes.CreateInput
}

func (f *fakeHotTakeService) Create(ctx context.Context, authorID string, input hottakes.CreateInput) (hottakes.HotTakeDTO, error) {
	f.lastAuthor = authorID
	f.lastInput = input
	return f.created, f.createErr
}

type fakeFeedService struct {
	takes []hottakes.HotTakeDTO
	limit int
}

func (f *fakeFeedService) GetFeed(ctx context.Context, userID string, limit, offset int) ([]hottakes.HotTakeDTO, error) {
	f.limit = limit
	return f.takes, nil
}

type fakeResponseService struct {
	result respond.SubmitResult
	err    error
	last   respond.SubmitInput
}

func (f *fakeResponseService) Submit(ctx context.Context, userID string, input respond.SubmitInput) (respond.SubmitResult, error) {
	f.last = input
	return f.result, f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), userID, "u@example.com", false))
}

func TestCreatePassesAuthor(t *testing.T) {
	svc := &fakeHotTakeService{created: hottakes.HotTakeDTO{ID: "t1", Text: "Cats rule."}}
	handler := Create(svc, testLogger())

	body := `{"text":"Cats rule.","categories":["Lifestyle & Habits"]}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/hot-takes", strings.NewReader(body)), "u1")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.lastAuthor != "u1" {
		t.Fatalf("author = %q", svc.lastAuthor)
	}
	if svc.lastInput.Text != "Cats rule." {
		t.Fatalf("input = %+v", svc.lastInput)
	}
}

func TestCreateMapsDuplicateConflict(t *testing.T) {
	svc := &fakeHotTakeService{createErr: apperrors.New(apperrors.CodeConflict, "a matching hot take already exists")}
	handler := Create(svc, testLogger())

	body := `{"text":"Cats rule."}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/hot-takes", strings.NewReader(body)), "u1")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestFeedClampsPagination(t *testing.T) {
	svc := &fakeFeedService{takes: []hottakes.HotTakeDTO{{ID: "t1"}}}
	handler := Feed(svc, testLogger())

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/hot-takes?limit=9999", nil), "u1")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if svc.limit > 200 {
		t.Fatalf("limit not clamped: %d", svc.limit)
	}

	var envelope struct {
		Data []hottakes.HotTakeDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("data = %+v", envelope.Data)
	}
}

func TestSubmitResponseValidatesRange(t *testing.T) {
	svc := &fakeResponseService{}
	handler := SubmitResponse(svc, testLogger())

	body := `{"hotTakeId":"6ba7b810-9dad-41d1-80b4-00c04fd430c8","matchResponse":{"low":0,"high":9}}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/hot-takes/responses", strings.NewReader(body)), "u1")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestSubmitResponseSuccess(t *testing.T) {
	svc := &fakeResponseService{result: respond.SubmitResult{HotTakeID: "6ba7b810-9dad-41d1-80b4-00c04fd430c8", Recorded: true}}
	handler := SubmitResponse(svc, testLogger())

	body := `{"hotTakeId":"6ba7b810-9dad-41d1-80b4-00c04fd430c8","userResponse":4,"matchResponse":{"low":3,"high":5},"isDealbreaker":true}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/hot-takes/responses", strings.NewReader(body)), "u1")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if svc.last.MatchResponse == nil || svc.last.MatchResponse.Low != 3 {
		t.Fatalf("input = %+v", svc.last)
	}
	if !svc.last.IsDealbreaker {
		t.Fatal("dealbreaker flag lost")
	}
}

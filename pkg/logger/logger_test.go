package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsFlowThroughEntries(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-1")
	ctx = logg.WithUserID(ctx, "user-1")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["request_id"] != "req-1" {
		t.Fatalf("missing request_id, got %v", entry["request_id"])
	}
	if entry["user_id"] != "user-1" {
		t.Fatalf("missing user_id, got %v", entry["user_id"])
	}
	if entry["service"] != "test" {
		t.Fatalf("missing service field, got %v", entry["service"])
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("expected debug level")
	}
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for empty")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("expected info fallback for junk")
	}
}

func TestErrorIncludesStack(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Output: &buf})
	logg.Error(context.Background(), "broken", nil)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["stack"] == nil || entry["stack"] == "" {
		t.Fatal("expected stack trace on error entries")
	}
}

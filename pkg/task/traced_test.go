package task

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type failingStore struct {
	Store
}

func (failingStore) Get(context.Context, string) (*Task, error) {
	return nil, errors.New("disk on fire")
}

func newRecorder() (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	rec := tracetest.NewSpanRecorder()
	return rec, sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
}

func TestTracedStoreRecordsSpans(t *testing.T) {
	rec, tp := newRecorder()
	s := Traced(NewMemStore(), tp)
	ctx := context.Background()

	created, err := s.Create(ctx, CreateInput{Title: "x", Timeframe: Daily, DueDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Get(ctx, created.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := s.List(ctx, Filter{Timeframe: Daily}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	spans := rec.Ended()
	want := []string{"task.Create", "task.Get", "task.List", "task.Delete"}
	if len(spans) != len(want) {
		t.Fatalf("got %d spans, want %d", len(spans), len(want))
	}
	for i, name := range want {
		if spans[i].Name() != name {
			t.Errorf("span[%d] = %q, want %q", i, spans[i].Name(), name)
		}
	}
}

func TestTracedStoreMarksErrors(t *testing.T) {
	rec, tp := newRecorder()
	s := Traced(failingStore{Store: NewMemStore()}, tp)

	if _, err := s.Get(context.Background(), "id"); err == nil {
		t.Fatal("expected error")
	}
	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Fatalf("status = %v, want error", spans[0].Status().Code)
	}
}

func TestTracedStorePassesThroughCount(t *testing.T) {
	_, tp := newRecorder()
	s := Traced(NewMemStore(), tp)
	if n, err := s.Count(context.Background()); err != nil || n != 0 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

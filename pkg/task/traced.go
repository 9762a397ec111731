package task

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "checklist/pkg/task"

// TracedStore wraps a Store and records one span per operation.
// When no tracer provider is registered the spans are no-ops.
type TracedStore struct {
	Store
	tracer trace.Tracer
}

// Traced wraps store with OpenTelemetry spans from tp, or from the global
// provider when tp is nil.
func Traced(store Store, tp trace.TracerProvider) *TracedStore {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracedStore{Store: store, tracer: tp.Tracer(tracerName)}
}

func (s *TracedStore) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "task."+op, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// List delegates to the wrapped store.
func (s *TracedStore) List(ctx context.Context, f Filter) ([]Task, error) {
	ctx, span := s.start(ctx, "List",
		attribute.String("task.filter.timeframe", string(f.Timeframe)),
		attribute.String("task.filter.date", f.Date))
	tasks, err := s.Store.List(ctx, f)
	span.SetAttributes(attribute.Int("task.count", len(tasks)))
	finish(span, err)
	return tasks, err
}

// Get delegates to the wrapped store.
func (s *TracedStore) Get(ctx context.Context, id string) (*Task, error) {
	ctx, span := s.start(ctx, "Get", attribute.String("task.id", id))
	t, err := s.Store.Get(ctx, id)
	span.SetAttributes(attribute.Bool("task.found", t != nil))
	finish(span, err)
	return t, err
}

// Create delegates to the wrapped store.
func (s *TracedStore) Create(ctx context.Context, in CreateInput) (*Task, error) {
	ctx, span := s.start(ctx, "Create", attribute.String("task.timeframe", string(in.Timeframe)))
	t, err := s.Store.Create(ctx, in)
	if t != nil {
		span.SetAttributes(attribute.String("task.id", t.ID))
	}
	finish(span, err)
	return t, err
}

// Update delegates to the wrapped store.
func (s *TracedStore) Update(ctx context.Context, id string, in UpdateInput) (*Task, error) {
	ctx, span := s.start(ctx, "Update", attribute.String("task.id", id))
	t, err := s.Store.Update(ctx, id, in)
	span.SetAttributes(attribute.Bool("task.found", t != nil))
	finish(span, err)
	return t, err
}

// Delete delegates to the wrapped store.
func (s *TracedStore) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := s.start(ctx, "Delete", attribute.String("task.id", id))
	ok, err := s.Store.Delete(ctx, id)
	span.SetAttributes(attribute.Bool("task.found", ok))
	finish(span, err)
	return ok, err
}

package mocks

import (
	"context"
	"salon/infras/otel"
	"sync"
)

// Recorder is an otel.Otel for tests. It keeps span names and traced errors in memory.
type Recorder struct {
	mu     sync.Mutex
	spans  []string
	errors []error
}

func NewOtel() otel.Otel {
	return NewRecorder()
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans = append(r.spans, spanName)

	return ctx, &scopeImpl{recorder: r}
}

// Spans returns the span names in the order they were opened.
func (r *Recorder) Spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.spans...)
}

func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors...)
}

func (r *Recorder) record(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, err)
}

type scopeImpl struct {
	recorder *Recorder
}

func (s *scopeImpl) End() {}

func (s *scopeImpl) AddEvent(_ string) {}

func (s *scopeImpl) SetAttribute(_ string, _ any) {}

func (s *scopeImpl) SetAttributes(_ map[string]any) {}

func (s *scopeImpl) TraceError(err error) {
	if s.recorder != nil {
		s.recorder.record(err)
	}
}

func (s *scopeImpl) TraceIfError(err *error) {
	if err != nil && *err != nil {
		s.TraceError(*err)
	}
}

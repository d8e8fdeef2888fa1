package otel_test

import (
	"context"
	"errors"
	"salon/infras/otel"
	"salon/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func record(t *testing.T, fn func(scope otel.Scope)) sdktrace.ReadOnlySpan {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)
	fn(scope)
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	return ended[0]
}

func attr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}

	return attribute.Value{}, false
}

func TestScope_TraceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus codes.Code
		wantReason string
	}{
		{name: "server failure", err: errors.New("pq: connection refused"), wantStatus: codes.Error},
		{name: "client failure", err: failure.SlotUnavailable("taken"), wantStatus: codes.Unset, wantReason: failure.ReasonSlotUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := record(t, func(scope otel.Scope) { scope.TraceError(tt.err) })

			assert.Equal(t, tt.wantStatus, span.Status().Code)
			require.Len(t, span.Events(), 1)

			reason, ok := attr(span, "failure.reason")
			assert.Equal(t, tt.wantReason != "", ok)
			assert.Equal(t, tt.wantReason, reason.AsString())
		})
	}
}

func TestScope_TraceIfError(t *testing.T) {
	t.Run("reads the error at return", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			var err error

			defer scope.TraceIfError(&err)

			err = errors.New("late failure")
		})

		assert.Equal(t, codes.Error, span.Status().Code)
	})

	t.Run("nil error is ignored", func(t *testing.T) {
		span := record(t, func(scope otel.Scope) {
			var err error

			scope.TraceIfError(&err)
			scope.TraceIfError(nil)
		})

		assert.Empty(t, span.Events())
	})
}

func TestScope_SetAttributes(t *testing.T) {
	span := record(t, func(scope otel.Scope) {
		scope.SetAttribute("master.id", "m-1")
		scope.SetAttributes(map[string]any{
			"slots":    4,
			"duration": 90 * time.Minute,
			"services": []string{"cut", "color"},
		})
	})

	id, _ := attr(span, "master.id")
	assert.Equal(t, "m-1", id.AsString())

	slots, _ := attr(span, "slots")
	assert.Equal(t, int64(4), slots.AsInt64())

	duration, ok := attr(span, "duration.ms")
	require.True(t, ok)
	assert.Equal(t, int64(90*60*1000), duration.AsInt64())

	services, _ := attr(span, "services")
	assert.Equal(t, []string{"cut", "color"}, services.AsStringSlice())
}

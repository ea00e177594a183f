package otelnav

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/caseycrogers/implicit-navigator/navigator"
)

func newTestTracker(recorder *tracetest.SpanRecorder) *Tracker {
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return &Tracker{
		provider: provider,
		tracer:   provider.Tracer("implicit-navigator/otelnav"),
		enabled:  true,
		open:     make(map[string][]visit),
	}
}

func TestNewTracker_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	tracker, err := NewTracker(context.Background())
	require.NoError(t, err)
	assert.Nil(t, tracker)

	// A nil tracker is fully usable as a no-op.
	listener := tracker.Listener()
	listener(navigator.PushEvent{Scope: "x", NewValue: "home"})
	assert.Equal(t, 0, tracker.OpenVisits("x"))
	assert.NoError(t, tracker.Shutdown(context.Background()))
}

func TestTracker_SpanPerPageVisit(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracker := newTestTracker(recorder)
	listener := tracker.Listener()

	listener(navigator.PushEvent{Scope: "main", NewValue: "home", NewDepth: navigator.Depth(0)})
	listener(navigator.PushEvent{Scope: "main", NewValue: "detail", NewDepth: navigator.Depth(1)})
	assert.Equal(t, 2, tracker.OpenVisits("main"))
	assert.Empty(t, recorder.Ended(), "spans stay open until their page pops")

	listener(navigator.PopEvent{Scope: "main", PreviousValue: "detail", CurrentValue: "home"})
	assert.Equal(t, 1, tracker.OpenVisits("main"))

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "page detail", ended[0].Name())

	attrs := ended[0].Attributes()
	found := map[string]string{}
	for _, kv := range attrs {
		found[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "main", found["nav.scope"])
	assert.Equal(t, "detail", found["nav.value"])
	assert.Equal(t, "1", found["nav.depth"])
}

func TestTracker_NestsUnderOriginPage(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracker := newTestTracker(recorder)
	listener := tracker.Listener()

	listener(navigator.PushEvent{Scope: "main", NewValue: "home"})
	listener(navigator.PushEvent{Scope: "main", NewValue: "detail"})
	listener(navigator.PopEvent{Scope: "main", PreviousValue: "detail"})
	listener(navigator.PopEvent{Scope: "main", PreviousValue: "home"})

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	detail, home := ended[0], ended[1]
	assert.Equal(t, "page detail", detail.Name())
	assert.Equal(t, "page home", home.Name())
	assert.Equal(t, home.SpanContext().SpanID(), detail.Parent().SpanID())
}

func TestTracker_PopWithoutPushIsIgnored(t *testing.T) {
	tracker := newTestTracker(tracetest.NewSpanRecorder())
	listener := tracker.Listener()
	listener(navigator.PopEvent{Scope: "main", PreviousValue: "stale"})
	assert.Equal(t, 0, tracker.OpenVisits("main"))
}

func TestTracker_ShutdownEndsOpenSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracker := newTestTracker(recorder)
	listener := tracker.Listener()

	listener(navigator.PushEvent{Scope: "a", NewValue: 1})
	listener(navigator.PushEvent{Scope: "b", NewValue: 2})

	require.NoError(t, tracker.Shutdown(context.Background()))
	assert.Equal(t, 0, tracker.OpenVisits("a"))
	assert.Equal(t, 0, tracker.OpenVisits("b"))
	assert.Len(t, recorder.Ended(), 2)
}

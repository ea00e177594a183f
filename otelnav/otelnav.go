// Package otelnav exports navigation activity as OpenTelemetry spans. Each
// page visit becomes a span opened on push and closed on pop, nested under
// the page it was pushed from, so a trace viewer shows the user's path
// through the scope tree with real dwell times.
package otelnav

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/caseycrogers/implicit-navigator/navigator"
)

// Tracker converts navigation events into OTLP spans.
type Tracker struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
	enabled  bool

	mu   sync.Mutex
	open map[string][]visit // scope identity -> open page visits
}

type visit struct {
	ctx  context.Context
	span oteltrace.Span
}

// NewTracker creates a tracker if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Returns nil if the endpoint is not configured (disabled); a nil Tracker's
// methods are all no-ops, so callers can wire it unconditionally.
func NewTracker(ctx context.Context) (*Tracker, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return nil, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // For local dev; make configurable
	)
	if err != nil {
		return nil, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "implicit-navigator"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	return &Tracker{
		provider: provider,
		tracer:   provider.Tracer("implicit-navigator/otelnav"),
		enabled:  true,
		open:     make(map[string][]visit),
	}, nil
}

// Listener returns an event listener to register on a scope (typically the
// root, so the whole tree is traced).
func (t *Tracker) Listener() navigator.EventListener {
	return func(ev navigator.Event) {
		if t == nil || !t.enabled {
			return
		}
		switch e := ev.(type) {
		case navigator.PushEvent:
			t.handlePush(e)
		case navigator.PopEvent:
			t.handlePop(e)
		}
	}
}

func (t *Tracker) handlePush(ev navigator.PushEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	parentCtx := context.Background()
	if stack := t.open[ev.Scope]; len(stack) > 0 {
		parentCtx = stack[len(stack)-1].ctx
	}

	ctx, span := t.tracer.Start(parentCtx,
		fmt.Sprintf("page %v", ev.NewValue),
		oteltrace.WithTimestamp(time.Now()),
	)
	span.SetAttributes(pageAttributes(ev.Scope, ev.NewValue, ev.NewDepth)...)
	t.open[ev.Scope] = append(t.open[ev.Scope], visit{ctx: ctx, span: span})
}

func (t *Tracker) handlePop(ev navigator.PopEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stack := t.open[ev.Scope]
	if len(stack) == 0 {
		// Pop of a page pushed before the tracker attached; ignore.
		return
	}
	last := stack[len(stack)-1]
	t.open[ev.Scope] = stack[:len(stack)-1]
	last.span.End(oteltrace.WithTimestamp(time.Now()))
}

// pageAttributes maps page metadata into the nav.* namespace.
func pageAttributes(scope string, value any, depth *int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("nav.scope", scope),
		attribute.String("nav.value", fmt.Sprintf("%v", value)),
	}
	if depth != nil {
		attrs = append(attrs, attribute.Int("nav.depth", *depth))
	}
	return attrs
}

// OpenVisits returns the number of in-progress page spans for identity.
func (t *Tracker) OpenVisits(identity string) int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.open[identity])
}

// Shutdown ends any still-open page spans, flushes pending exports, and
// closes the exporter. Must be called before process exit to ensure spans
// are exported.
func (t *Tracker) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	now := time.Now()
	for id, stack := range t.open {
		for i := len(stack) - 1; i >= 0; i-- {
			stack[i].span.End(oteltrace.WithTimestamp(now))
		}
		delete(t.open, id)
	}
	t.mu.Unlock()
	return t.provider.Shutdown(ctx)
}

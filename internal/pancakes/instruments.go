package pancakes

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

const (
	metricMutations          = "pancakes.stack.mutations"
	metricTransitionsQueued  = "pancakes.transitions.queued"
	metricTransitionDuration = "pancakes.transition.duration"

	attrOp      = "op"
	attrOutcome = "outcome"

	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
	outcomeFinished = "finished"
	outcomeEmpty    = "empty"
)

type instruments struct {
	mutations metric.Int64Counter
	queued    metric.Int64UpDownCounter
	duration  metric.Float64Histogram
}

// newInstruments creates the engine instruments. Any instrument that fails to
// register falls back to a no-op so metrics never break navigation.
func newInstruments(m metric.Meter) *instruments {
	noop := metricnoop.NewMeterProvider().Meter(tracerName)
	if m == nil {
		m = noop
	}

	mutations, err := m.Int64Counter(metricMutations,
		metric.WithDescription("Stack mutations by operation and outcome"),
		metric.WithUnit("{mutation}"),
	)
	if err != nil {
		mutations, _ = noop.Int64Counter(metricMutations)
	}

	queued, err := m.Int64UpDownCounter(metricTransitionsQueued,
		metric.WithDescription("Transitions queued or running"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		queued, _ = noop.Int64UpDownCounter(metricTransitionsQueued)
	}

	duration, err := m.Float64Histogram(metricTransitionDuration,
		metric.WithDescription("Time from a transition being queued to its completion"),
		metric.WithUnit("s"),
	)
	if err != nil {
		duration, _ = noop.Float64Histogram(metricTransitionDuration)
	}

	return &instruments{mutations: mutations, queued: queued, duration: duration}
}

func (in *instruments) mutation(ctx context.Context, op, outcome string) {
	in.mutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrOutcome, outcome),
	))
}

func (in *instruments) transitionQueued(ctx context.Context, op string) {
	in.queued.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOp, op)))
}

func (in *instruments) transitionDone(ctx context.Context, op string, since time.Time) {
	in.queued.Add(ctx, -1, metric.WithAttributes(attribute.String(attrOp, op)))
	in.duration.Record(ctx, time.Since(since).Seconds(), metric.WithAttributes(attribute.String(attrOp, op)))
}

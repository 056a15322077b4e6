package pancakes

import (
	"context"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pancakes/internal/spatula"
	"pancakes/internal/view"
)

// transition is one queued animation plus the engine's bookkeeping for it.
type transition struct {
	op       string
	anim     spatula.Animation
	to       view.View
	cleanup  func()
	started  bool
	queuedAt time.Time
	ctx      context.Context
	span     trace.Span
}

// enqueue appends a transition and starts it if nothing else is running.
func (p *Pancakes) enqueue(ctx context.Context, op string, anim spatula.Animation, to view.View, cleanup func()) {
	t := &transition{
		op:       op,
		anim:     anim,
		to:       to,
		cleanup:  cleanup,
		queuedAt: time.Now(),
	}
	t.ctx, t.span = p.tracer.Start(ctx, "pancakes.transition",
		trace.WithAttributes(attribute.String("pancakes.op", op)),
	)

	p.queue = append(p.queue, t)
	p.inst.transitionQueued(t.ctx, op)

	// An animation that has already ended runs this callback immediately and
	// leaves the queue again here.
	gen := p.gen
	anim.OnEnd(func() { p.onAnimationEnd(gen, t) })

	if len(p.queue) > 0 && p.queue[0] == t && !t.started {
		p.start(t)
	}
}

// start runs the transition at the head of the queue. A transition whose target
// view was detached while it waited (the stack moved on) is dropped unstarted.
func (p *Pancakes) start(t *transition) {
	if view.IndexOf(p.container, t.to) < 0 {
		p.logger.DebugContext(t.ctx, "dropping stale transition", "op", t.op)
		t.span.SetAttributes(attribute.Bool("pancakes.stale", true))
		p.finishTransition(t)
		return
	}
	t.started = true
	t.span.AddEvent("start")
	t.anim.Start()
}

// onAnimationEnd removes the finished transition, runs its cleanup and starts the
// next queued transition.
func (p *Pancakes) onAnimationEnd(gen uint64, t *transition) {
	if gen != p.gen {
		return
	}
	p.finishTransition(t)
}

func (p *Pancakes) finishTransition(t *transition) {
	i := slices.Index(p.queue, t)
	if i < 0 {
		return
	}
	p.queue = slices.Delete(p.queue, i, i+1)
	p.inst.transitionDone(t.ctx, t.op, t.queuedAt)
	t.span.End()

	if t.cleanup != nil {
		t.cleanup()
	}
	if len(p.queue) > 0 && !p.queue[0].started {
		p.start(p.queue[0])
	}
}

// abortQueue empties the queue, force-ending the running transition. End
// callbacks fired by the forced end belong to the old generation and are ignored.
func (p *Pancakes) abortQueue() {
	queue := p.queue
	p.queue = nil
	p.gen++

	for _, t := range queue {
		if t.started {
			t.anim.End()
			t.span.SetAttributes(attribute.Bool("pancakes.forced", true))
		} else {
			t.span.SetAttributes(attribute.Bool("pancakes.dropped", true))
		}
		p.inst.transitionDone(t.ctx, t.op, t.queuedAt)
		t.span.End()
	}
}

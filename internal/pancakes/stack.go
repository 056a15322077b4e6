package pancakes

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pancakes/internal/slice"
	"pancakes/internal/spatula"
	"pancakes/internal/view"
)

const (
	opPush  = "push"
	opPop   = "pop"
	opClear = "clear"
)

// Push puts s on top of the stack and transitions to its view with sp (nil means
// spatula.None). It returns s, or nil when a transition is in flight.
//
// Listeners get KindPush after s's view is materialized and before s is
// appended. The transition starts after the new view's first layout.
func (p *Pancakes) Push(s slice.Slice, sp spatula.Spatula) slice.Slice {
	sp = spatula.Or(sp)
	ctx, span := p.tracer.Start(context.Background(), "pancakes.push",
		trace.WithAttributes(attribute.String("pancakes.slice.kind", s.Kind())),
	)
	defer span.End()

	if p.Busy() {
		p.reject(ctx, span, opPush)
		return nil
	}

	top := s.ToView(p.container)
	var below view.View
	if len(p.backing) > 0 {
		below = view.Top(p.container)
	}

	p.notifyListeners(ctx, KindPush, s)
	p.backing = append(p.backing, s)
	p.views = append(p.views, top)
	p.container.AddView(top)

	gen := p.gen
	top.OnFirstLayout(func() {
		if gen != p.gen || view.IndexOf(p.container, top) < 0 {
			return
		}
		p.enqueue(ctx, opPush, sp.Flip(p.container, below, top), top, p.trim)
	})

	span.SetAttributes(attribute.Int("pancakes.stack.size", len(p.backing)))
	p.inst.mutation(ctx, opPush, outcomeApplied)
	return s
}

// Pop removes the top entry and transitions back to the one beneath with sp (nil
// means spatula.None). It returns the removed slice, or nil when a transition is
// in flight. Popping the last entry finishes the stack instead: listeners get
// KindFinish, the delegate and host run, the entry stays, and Pop returns nil.
// Popping an empty stack returns ErrEmptyStack.
//
// The view beneath is reused when it is still attached; otherwise it is
// materialized again from its slice, so any view state not yet saved into the
// slice is lost.
func (p *Pancakes) Pop(sp spatula.Spatula) (slice.Slice, error) {
	sp = spatula.Or(sp)
	ctx, span := p.tracer.Start(context.Background(), "pancakes.pop")
	defer span.End()

	if len(p.backing) == 0 {
		span.SetAttributes(attribute.String(attrOutcome, outcomeEmpty))
		p.inst.mutation(ctx, opPop, outcomeEmpty)
		return nil, ErrEmptyStack
	}
	if p.Busy() {
		p.reject(ctx, span, opPop)
		return nil, nil
	}
	if len(p.backing) == 1 {
		p.finishStack(ctx)
		span.SetAttributes(attribute.String(attrOutcome, outcomeFinished))
		p.inst.mutation(ctx, opPop, outcomeFinished)
		return nil, nil
	}

	top := view.Top(p.container)
	last := len(p.backing) - 1
	popped := p.backing[last]
	p.backing[last], p.views[last] = nil, nil
	p.backing, p.views = p.backing[:last], p.views[:last]
	p.notifyListeners(ctx, KindPop, popped)

	bottom := p.attachedView(last - 1)
	hasBottom := top != nil && bottom != nil
	if !hasBottom {
		bottom = p.backing[last-1].ToView(p.container)
		p.views[last-1] = bottom
	}

	anim := sp.Flip(p.container, top, bottom)
	cleanup := func() { p.detach(top) }

	if hasBottom {
		p.enqueue(ctx, opPop, anim, bottom, cleanup)
	} else {
		p.container.AddView(bottom)
		if top != nil {
			p.container.BringToFront(top)
		}
		gen := p.gen
		bottom.OnFirstLayout(func() {
			if gen != p.gen {
				return
			}
			p.enqueue(ctx, opPop, anim, bottom, cleanup)
		})
	}

	span.SetAttributes(
		attribute.String("pancakes.slice.kind", popped.Kind()),
		attribute.Int("pancakes.stack.size", len(p.backing)),
		attribute.Bool("pancakes.reused_bottom", hasBottom),
	)
	p.inst.mutation(ctx, opPop, outcomeApplied)
	return popped, nil
}

// Peek returns the top slice without removing it.
func (p *Pancakes) Peek() (slice.Slice, error) {
	if len(p.backing) == 0 {
		return nil, ErrEmptyStack
	}
	return p.backing[len(p.backing)-1], nil
}

// Clear hard-resets the engine: it optionally notifies KindClear, force-ends the
// running transition, drops queued ones, empties the stack and detaches every view.
func (p *Pancakes) Clear(notify bool) {
	ctx, span := p.tracer.Start(context.Background(), "pancakes.clear",
		trace.WithAttributes(attribute.Int("pancakes.stack.size", len(p.backing))),
	)
	defer span.End()

	if notify {
		p.notifyListeners(ctx, KindClear, nil)
	}
	p.abortQueue()
	clear(p.backing)
	clear(p.views)
	p.backing, p.views = p.backing[:0], p.views[:0]
	p.container.RemoveAllViews()
	p.inst.mutation(ctx, opClear, outcomeApplied)
}

// finishStack runs the finish path: notify, delegate, then host.
func (p *Pancakes) finishStack(ctx context.Context) {
	p.logger.DebugContext(ctx, "finishing stack")
	p.notifyListeners(ctx, KindFinish, nil)
	if p.delegate != nil {
		p.delegate()
	}
	if p.host != nil {
		p.host.Finish()
	}
}

func (p *Pancakes) reject(ctx context.Context, span trace.Span, op string) {
	p.logger.DebugContext(ctx, "stack mutation rejected: transition in flight",
		"op", op,
		"queued", len(p.queue),
	)
	span.SetAttributes(attribute.String(attrOutcome, outcomeRejected))
	p.inst.mutation(ctx, op, outcomeRejected)
}

// trim detaches every view except those of the top two slices once a push
// transition completes.
func (p *Pancakes) trim() {
	keep := p.views[max(len(p.views)-maxAttached, 0):]
	for i := 0; i < p.container.ChildCount(); {
		v := p.container.ChildAt(i)
		if slices.Contains(keep, v) {
			i++
			continue
		}
		p.container.RemoveView(v)
	}
}

// attachedView returns the view owned by backing[i] if it is still in the
// container, or nil.
func (p *Pancakes) attachedView(i int) view.View {
	v := p.views[i]
	if v == nil || view.IndexOf(p.container, v) < 0 {
		return nil
	}
	return v
}

func (p *Pancakes) detach(v view.View) {
	if v != nil && view.IndexOf(p.container, v) >= 0 {
		p.container.RemoveView(v)
	}
}

// Package spatula defines transition strategies: given the shared container and
// the outgoing/incoming views, a Spatula produces an Animation the stack engine
// queues and runs.
//
// A Spatula is responsible for detaching the outgoing view from the container
// when it permanently replaces it. Spatulas should be stateless values so one
// instance can be shared and compared.
package spatula

import "pancakes/internal/view"

// Animation is a handle to one transition.
type Animation interface {
	// Start begins the transition. A zero-duration animation may complete
	// (and run its end callbacks) before Start returns.
	Start()
	// End completes the transition immediately, skipping any remaining frames.
	End()
	// OnEnd registers fn to run once when the transition completes.
	OnEnd(fn func())
}

// Spatula produces the animation between from (nil when there is no outgoing
// view) and to.
type Spatula interface {
	Flip(c view.Container, from, to view.View) Animation
}

// Func adapts a function to a Spatula.
type Func func(c view.Container, from, to view.View) Animation

// Flip implements Spatula.
func (f Func) Flip(c view.Container, from, to view.View) Animation {
	return f(c, from, to)
}

// None is the default strategy: no visual transition and nothing detached.
var None Spatula = none{}

type none struct{}

func (none) Flip(view.Container, view.View, view.View) Animation {
	return &Immediate{}
}

// Or returns sp, or None when sp is nil.
func Or(sp Spatula) Spatula {
	if sp == nil {
		return None
	}
	return sp
}

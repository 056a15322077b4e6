package spatula

// EndNotifier fans a single completion out to registered callbacks. Embed it in
// Animation implementations.
type EndNotifier struct {
	callbacks []func()
	ended     bool
}

// OnEnd registers fn. Registering after completion runs fn immediately.
func (n *EndNotifier) OnEnd(fn func()) {
	if n.ended {
		fn()
		return
	}
	n.callbacks = append(n.callbacks, fn)
}

// Ended reports whether Fire has run.
func (n *EndNotifier) Ended() bool {
	return n.ended
}

// Fire marks completion and runs the callbacks in registration order. Only the
// first call has an effect.
func (n *EndNotifier) Fire() {
	if n.ended {
		return
	}
	n.ended = true
	cbs := n.callbacks
	n.callbacks = nil
	for _, fn := range cbs {
		fn()
	}
}

// Immediate is a zero-duration animation: it completes synchronously on Start.
type Immediate struct {
	EndNotifier
	// Then runs before the end callbacks, e.g. to detach the outgoing view.
	Then func()
}

var _ Animation = (*Immediate)(nil)

// Start implements Animation.
func (a *Immediate) Start() {
	a.End()
}

// End implements Animation.
func (a *Immediate) End() {
	if a.Ended() {
		return
	}
	if a.Then != nil {
		a.Then()
	}
	a.Fire()
}

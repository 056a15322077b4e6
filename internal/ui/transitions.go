package ui

import (
	"pancakes/internal/spatula"
	"pancakes/internal/view"
)

// Transition names a spatula the App knows how to build, so screens can ask for
// one in a PushMsg or PopMsg without holding the animator.
type Transition int

const (
	// TransitionAuto lets the App pick: Reveal for pushes, Hide for pops, and
	// None when popping the root.
	TransitionAuto Transition = iota
	TransitionNone
	TransitionReplace
	TransitionReveal
	TransitionHide
)

func (t Transition) String() string {
	switch t {
	case TransitionAuto:
		return "auto"
	case TransitionNone:
		return "none"
	case TransitionReplace:
		return "replace"
	case TransitionReveal:
		return "reveal"
	case TransitionHide:
		return "hide"
	default:
		return "unknown"
	}
}

// Reveal grows the incoming layer from the left edge over the outgoing one,
// then detaches the outgoing layer. The incoming layer is hidden from the
// moment of the flip, so it stays covered while earlier transitions finish.
func Reveal(a *Animator) spatula.Spatula {
	return spatula.Func(func(c view.Container, from, to view.View) spatula.Animation {
		in := asLayer(to)
		in.SetReveal(0)
		t := a.Tween(0, 1, in.SetReveal)
		t.Then = func() {
			if from != nil && from != to {
				c.RemoveView(from)
			}
		}
		return t
	})
}

// Hide shrinks the outgoing layer towards the left edge, uncovering the one
// beneath, then detaches it.
func Hide(a *Animator) spatula.Spatula {
	return spatula.Func(func(c view.Container, from, to view.View) spatula.Animation {
		if from == nil {
			return &spatula.Immediate{}
		}
		out := asLayer(from)
		t := a.Tween(1, 0, out.SetReveal)
		t.Then = func() {
			c.RemoveView(from)
			out.SetReveal(1)
		}
		return t
	})
}

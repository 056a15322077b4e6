package spatula

import "pancakes/internal/view"

// Replace swaps views without animation and detaches the outgoing view, so the
// container only ever holds the visible screen.
var Replace Spatula = Func(func(c view.Container, from, to view.View) Animation {
	return &Immediate{Then: func() {
		if from != nil && from != to {
			c.RemoveView(from)
		}
	}}
})

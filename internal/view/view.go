// Package view defines the rendering collaborator the navigation stack drives:
// a single container holding an ordered list of views, the last child drawn on top.
package view

// View is a rendered screen. Implementations must be comparable (pointer types);
// containers and the stack engine identify views with ==.
type View interface {
	// OnFirstLayout registers a one-shot callback run after the view's first
	// layout pass. If the view has already been laid out, fn runs immediately.
	OnFirstLayout(fn func())
}

// Container is an ordered, mutable collection of views. Index 0 is the bottom.
type Container interface {
	AddView(v View)
	RemoveView(v View)
	RemoveAllViews()
	ChildCount() int
	ChildAt(i int) View
	// BringToFront moves v to the top of the child order.
	BringToFront(v View)
}

// IndexOf returns the child index of v in c, or -1 if v is not attached.
func IndexOf(c Container, v View) int {
	for i := 0; i < c.ChildCount(); i++ {
		if c.ChildAt(i) == v {
			return i
		}
	}
	return -1
}

// Top returns the last child of c, or nil when c is empty.
func Top(c Container) View {
	n := c.ChildCount()
	if n == 0 {
		return nil
	}
	return c.ChildAt(n - 1)
}

// Package viewtest provides an in-memory view.Container whose layout passes are
// driven explicitly by tests.
package viewtest

import (
	"fmt"

	"pancakes/internal/view"
)

// View is a fake view identified by a name.
type View struct {
	Name     string
	laidOut  bool
	onLayout []func()
}

var _ view.View = (*View)(nil)

// NewView creates an unlaid-out view.
func NewView(name string) *View {
	return &View{Name: name}
}

// OnFirstLayout implements view.View.
func (v *View) OnFirstLayout(fn func()) {
	if v.laidOut {
		fn()
		return
	}
	v.onLayout = append(v.onLayout, fn)
}

// LaidOut reports whether the view has had its first layout pass.
func (v *View) LaidOut() bool {
	return v.laidOut
}

func (v *View) String() string {
	return fmt.Sprintf("View(%s)", v.Name)
}

// layout marks v laid out and returns the callbacks to run.
func (v *View) layout() []func() {
	if v.laidOut {
		return nil
	}
	v.laidOut = true
	fns := v.onLayout
	v.onLayout = nil
	return fns
}

// Container is a fake view.Container. With AutoLayout set, views are laid out
// synchronously as they are added.
type Container struct {
	AutoLayout bool
	children   []view.View
}

var _ view.Container = (*Container)(nil)

// NewContainer creates an empty container that requires explicit Layout calls.
func NewContainer() *Container {
	return &Container{}
}

// AddView implements view.Container.
func (c *Container) AddView(v view.View) {
	c.children = append(c.children, v)
	if c.AutoLayout {
		c.Layout()
	}
}

// RemoveView implements view.Container. Removing a detached view is a no-op.
func (c *Container) RemoveView(v view.View) {
	i := view.IndexOf(c, v)
	if i < 0 {
		return
	}
	c.children = append(c.children[:i], c.children[i+1:]...)
}

// RemoveAllViews implements view.Container.
func (c *Container) RemoveAllViews() {
	c.children = nil
}

// ChildCount implements view.Container.
func (c *Container) ChildCount() int {
	return len(c.children)
}

// ChildAt implements view.Container.
func (c *Container) ChildAt(i int) view.View {
	return c.children[i]
}

// BringToFront implements view.Container.
func (c *Container) BringToFront(v view.View) {
	i := view.IndexOf(c, v)
	if i < 0 || i == len(c.children)-1 {
		return
	}
	c.children = append(c.children[:i], c.children[i+1:]...)
	c.children = append(c.children, v)
}

// Children returns a copy of the current child list.
func (c *Container) Children() []view.View {
	out := make([]view.View, len(c.children))
	copy(out, c.children)
	return out
}

// Layout runs a layout pass: every attached view not yet laid out is marked
// and its first-layout callbacks run after the pass. Returns the number of
// callbacks run.
func (c *Container) Layout() int {
	var fns []func()
	for _, child := range c.children {
		if fv, ok := child.(*View); ok {
			fns = append(fns, fv.layout()...)
		}
	}
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

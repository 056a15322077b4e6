package pancakes

import (
	"encoding/json"

	"pancakes/internal/slice"
	"pancakes/internal/spatula"
	"pancakes/internal/view"
	"pancakes/internal/view/viewtest"
)

const testKind = "test"

// testSlice materializes a fresh viewtest.View on every ToView.
type testSlice struct {
	name     string
	state    slice.State
	views    int
	lastView *viewtest.View
}

func newSlice(name string) *testSlice {
	return &testSlice{name: name}
}

func (s *testSlice) Kind() string { return testKind }

func (s *testSlice) ToView(view.Container) view.View {
	s.views++
	s.lastView = viewtest.NewView(s.name)
	return s.lastView
}

func (s *testSlice) Save(st slice.State) { s.state = st }

func (s *testSlice) Restore() slice.State {
	if s.state == nil {
		return slice.State(`{"name":"` + s.name + `"}`)
	}
	return s.state
}

func testRegistry() *slice.Registry {
	return slice.NewRegistry().Register(testKind, func(st slice.State) slice.Slice {
		var v struct {
			Name string `json:"name"`
		}
		_ = json.Unmarshal(st, &v)
		return &testSlice{name: v.Name, state: st}
	})
}

// manualAnim completes only when the test calls End.
type manualAnim struct {
	spatula.EndNotifier
	started int
	forced  bool
}

func (a *manualAnim) Start() { a.started++ }

func (a *manualAnim) End() {
	if !a.Ended() && a.started == 0 {
		a.forced = true
	}
	a.Fire()
}

type flipCall struct {
	from, to view.View
}

// recordingSpatula records Flip calls and hands out manual animations.
type recordingSpatula struct {
	calls      []flipCall
	anims      []*manualAnim
	detachFrom bool
	onFlip     func()
}

func (r *recordingSpatula) Flip(c view.Container, from, to view.View) spatula.Animation {
	if r.onFlip != nil {
		r.onFlip()
	}
	r.calls = append(r.calls, flipCall{from: from, to: to})
	a := &manualAnim{}
	if r.detachFrom && from != nil {
		a.OnEnd(func() { c.RemoveView(from) })
	}
	r.anims = append(r.anims, a)
	return a
}

func (r *recordingSpatula) last() *manualAnim {
	return r.anims[len(r.anims)-1]
}

// eventLog is a comparable listener that records every event.
type eventLog struct {
	events []StackChangeEvent
}

func (l *eventLog) OnStackChange(ev StackChangeEvent) {
	l.events = append(l.events, ev)
}

func (l *eventLog) kinds() []Kind {
	out := make([]Kind, 0, len(l.events))
	for _, ev := range l.events {
		out = append(out, ev.Kind)
	}
	return out
}

// oneShot unregisters itself after the first event, like a screen listener.
type oneShot struct {
	p      *Pancakes
	events []StackChangeEvent
}

func (o *oneShot) OnStackChange(ev StackChangeEvent) {
	o.events = append(o.events, ev)
	o.p.RemoveListener(o)
}

func autoContainer() *viewtest.Container {
	c := viewtest.NewContainer()
	c.AutoLayout = true
	return c
}

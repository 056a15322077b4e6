package pancakes

import (
	"context"
	"reflect"
	"slices"

	"pancakes/internal/slice"
)

// Listener receives stack change events.
type Listener interface {
	OnStackChange(ev StackChangeEvent)
}

// ListenerFunc adapts a function to a Listener. Function values are not
// comparable, so register them with Subscribe rather than AddListener.
type ListenerFunc func(ev StackChangeEvent)

// OnStackChange implements Listener.
func (f ListenerFunc) OnStackChange(ev StackChangeEvent) {
	f(ev)
}

type listenerEntry struct {
	id uint64
	l  Listener
}

// Subscription is a scoped listener registration. Close releases it; closing
// more than once is harmless.
type Subscription struct {
	p  *Pancakes
	id uint64
}

// Close removes the listener. Reports whether it was still registered.
func (s *Subscription) Close() bool {
	if s == nil || s.p == nil {
		return false
	}
	p := s.p
	s.p = nil
	return p.removeEntry(func(e listenerEntry) bool { return e.id == s.id })
}

// Subscribe registers l and returns its subscription. Use it to tie a listener to
// the period a screen is visible: acquire on show, Close on hide.
func (p *Pancakes) Subscribe(l Listener) *Subscription {
	p.nextID++
	p.listeners = append(p.listeners, listenerEntry{id: p.nextID, l: l})
	return &Subscription{p: p, id: p.nextID}
}

// AddListener registers l. Adding a listener that is already registered is a no-op.
func (p *Pancakes) AddListener(l Listener) {
	for _, e := range p.listeners {
		if sameListener(e.l, l) {
			return
		}
	}
	p.Subscribe(l)
}

// RemoveListener unregisters l. Reports whether l was registered.
func (p *Pancakes) RemoveListener(l Listener) bool {
	return p.removeEntry(func(e listenerEntry) bool { return sameListener(e.l, l) })
}

// ClearListeners notifies Clear and then drops every listener.
func (p *Pancakes) ClearListeners() {
	p.notifyListeners(context.Background(), KindClear, nil)
	p.listeners = nil
}

// ListenerCount returns the number of registered listeners.
func (p *Pancakes) ListenerCount() int {
	return len(p.listeners)
}

func (p *Pancakes) removeEntry(match func(listenerEntry) bool) bool {
	i := slices.IndexFunc(p.listeners, match)
	if i < 0 {
		return false
	}
	p.listeners = slices.Delete(p.listeners, i, i+1)
	return true
}

// notifyListeners fans ev out over a snapshot of the listener set, so listeners
// may unregister themselves (or others) while being notified. A panicking
// listener is logged and skipped.
func (p *Pancakes) notifyListeners(ctx context.Context, kind Kind, s slice.Slice) {
	ev := StackChangeEvent{Kind: kind, Slice: s}
	for _, e := range slices.Clone(p.listeners) {
		p.dispatch(ctx, e.l, ev)
	}
}

func (p *Pancakes) dispatch(ctx context.Context, l Listener, ev StackChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "stack listener panicked",
				"event", ev.Kind.String(),
				"panic", r,
			)
		}
	}()
	l.OnStackChange(ev)
}

func sameListener(a, b Listener) bool {
	ta := reflect.TypeOf(a)
	if ta == nil || ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

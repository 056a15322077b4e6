package pancakes

import "pancakes/internal/slice"

// Kind identifies a stack change.
type Kind int

const (
	// KindPush fires after the new slice's view is materialized and before the
	// slice is appended. Slice is the slice being pushed.
	KindPush Kind = iota
	// KindPop fires right after the top entry is removed. Slice is the removed slice.
	KindPop
	// KindClear fires before a Clear(true) or ClearListeners empties state.
	KindClear
	// KindFinish fires when popping the last entry finishes the stack.
	KindFinish
)

func (k Kind) String() string {
	switch k {
	case KindPush:
		return "push"
	case KindPop:
		return "pop"
	case KindClear:
		return "clear"
	case KindFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// StackChangeEvent describes one stack change. Slice is nil for Clear and Finish.
type StackChangeEvent struct {
	Kind  Kind
	Slice slice.Slice
}

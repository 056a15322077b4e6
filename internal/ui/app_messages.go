package ui

import "pancakes/internal/slice"

// PushMsg asks the App to push a slice.
type PushMsg struct {
	Slice      slice.Slice
	Transition Transition
}

// PopMsg asks the App to pop the top slice.
type PopMsg struct {
	Transition Transition
}

// SaveMsg asks the App to snapshot the stack to its store (SPC s).
type SaveMsg struct{}

// ConfirmResetMsg opens the reset confirmation (SPC r).
type ConfirmResetMsg struct{}

// ResetMsg clears the stack back to a fresh root screen.
type ResetMsg struct{}

// DismissModalMsg closes the topmost overlay.
type DismissModalMsg struct{}

// QuitMsg saves and quits (q, ctrl+c, SPC q).
type QuitMsg struct{}

// SetPushTransitionMsg changes the transition used for pushes that don't name
// one (SPC t …).
type SetPushTransitionMsg struct {
	Transition Transition
}

// layoutMsg runs the frame's pending layout pass.
type layoutMsg struct{}

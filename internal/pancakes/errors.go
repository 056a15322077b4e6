package pancakes

import "errors"

var (
	// ErrEmptyStack is returned by Peek, Pop and OnLoad when there is no entry.
	// It signals a programming error on the caller's side.
	ErrEmptyStack = errors.New("pancakes: empty stack")

	// ErrNoSavedStack is returned by OnLoad when the bundle has no saved stack.
	ErrNoSavedStack = errors.New("pancakes: no saved stack in bundle")
)

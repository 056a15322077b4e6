// Package slice defines the screen descriptor kept on the navigation stack and
// the kind registry used to serialize an ordered list of them.
package slice

import (
	"encoding/json"

	"pancakes/internal/view"
)

// State is a slice's opaque view-state blob. It must be valid JSON (or empty)
// so it round-trips losslessly through a saved bundle.
type State = json.RawMessage

// Slice is a serializable handle that materializes a view and persists its
// transient display state between materializations.
type Slice interface {
	// Kind names the registered factory able to rebuild this slice.
	Kind() string
	// ToView materializes a view bound to c. It must not touch the stack engine
	// and may be called any number of times.
	ToView(c view.Container) view.View
	// Save replaces the held state blob.
	Save(s State)
	// Restore returns the held state blob.
	Restore() State
}

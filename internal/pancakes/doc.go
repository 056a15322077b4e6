// Package pancakes manages a navigation stack rendered into a single container.
//
// Each stack entry is a slice.Slice, which materializes its view on demand and
// keeps the last saved view state. Push and Pop mutate the logical stack and the
// container together, then ask a spatula.Spatula for the transition. Transitions
// run one at a time from a FIFO queue; while the queue is non-empty Push and Pop
// are rejected (they return nil) so the stack and the container cannot diverge.
//
// Listeners observe Push, Pop, Clear and Finish events synchronously, before the
// corresponding transition is requested.
//
// All methods must be called from the UI goroutine. Nothing blocks: layout and
// animation completion arrive later as callbacks.
package pancakes

// Package ui hosts the navigation stack in a Bubble Tea program.
//
// Core abstractions:
//   - View: a screen's content with its own model, update, view (Elm-style)
//   - Layer: a View placed in the frame, with a reveal fraction for transitions
//   - Frame: the view.Container the stack engine drives; layout passes are
//     scheduled by the host one loop iteration after views are added
//   - Animator/Tween: a tick-driven frame clock and spring-eased animations
//   - Reveal/Hide: the push and pop transitions built on Tween
//   - OverlayStack/ConfirmModal: modals that take keys ahead of everything else
//   - AppModel: routes keys (SPC leader bindings) and stack messages
package ui

package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pancakes/internal/bundle"
	"pancakes/internal/pancakes"
	"pancakes/internal/slice"
	"pancakes/internal/spatula"
	"pancakes/internal/ui/textutil"
)

// Focusable content is told when its layer becomes the top of the frame and
// when it stops being it.
type Focusable interface {
	Focus(stack *pancakes.Pancakes)
	Blur()
}

// Persister content writes its current state into its slice before a snapshot.
type Persister interface {
	Persist()
}

// StateStore persists stack snapshots between runs.
type StateStore interface {
	Save(b bundle.Bundle) error
	Clear() error
}

// AppOptions configures NewAppModel.
type AppOptions struct {
	// Root builds the screen pushed on a fresh start and on reset.
	Root      func() slice.Slice
	Store     StateStore
	Animation AnimationConfig
	Logger    *slog.Logger
	// Stack options are applied after the App's own host and logger options.
	Stack []pancakes.Option
}

// AppModel is the root model: a navigation stack drawn into a Frame, with
// global keybinds layered over the top screen.
type AppModel struct {
	Stack          *pancakes.Pancakes
	Frame          *Frame
	Animator       *Animator
	KeyHandler     *KeyHandler
	Overlays       OverlayStack
	Store          StateStore
	Root           func() slice.Slice
	Logger         *slog.Logger
	PushTransition Transition

	width     int
	height    int
	finished  bool
	status    string
	statusErr bool
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// Ensure AppModel terminates when the stack finishes.
var _ pancakes.Host = (*AppModel)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model and its stack engine.
func NewAppModel(opts AppOptions) *AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &AppModel{
		Frame:          NewFrame(),
		Animator:       NewAnimator(opts.Animation),
		KeyHandler:     NewKeyHandler(defaultKeybinds()),
		Store:          opts.Store,
		Root:           opts.Root,
		Logger:         logger,
		PushTransition: TransitionReveal,
	}
	a.Frame.OnTopChange = a.onTopChange

	stackOpts := append([]pancakes.Option{
		pancakes.WithHost(a),
		pancakes.WithLogger(logger),
	}, opts.Stack...)
	a.Stack = pancakes.New(a.Frame, nil, stackOpts...)
	return a
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (a *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: a}
}

// Start restores saved, or pushes the root screen when saved is nil or can't
// be loaded.
func (a *AppModel) Start(saved bundle.Bundle) {
	if saved != nil {
		err := a.Stack.OnLoad(saved)
		if err == nil {
			a.Logger.Info("restored stack", "size", a.Stack.Size())
			return
		}
		a.Logger.Warn("discarding saved stack", "error", err)
	}
	if a.Root != nil {
		a.Stack.Push(a.Root(), spatula.None)
	}
}

// Finish implements pancakes.Host.
func (a *AppModel) Finish() {
	a.finished = true
}

// Finished reports whether the root screen was popped.
func (a *AppModel) Finished() bool {
	return a.finished
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	var cmds []tea.Cmd
	if top := a.Frame.Top(); top != nil && top.Content != nil {
		cmds = append(cmds, top.Content.Init())
	}
	return a.settle(cmds...)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout()
	case layoutMsg:
		a.layout()
	case frameMsg:
		cmds = append(cmds, a.Animator.Advance(time.Time(msg)))
	case PushMsg:
		a.push(msg.Slice, msg.Transition)
	case PopMsg:
		a.pop(msg.Transition)
	case SaveMsg:
		a.save()
	case ConfirmResetMsg:
		a.Overlays.Push(NewResetConfirmModal(a.Stack.Size()))
	case DismissModalMsg:
		a.Overlays.Pop()
	case ResetMsg:
		a.Overlays.Reset()
		a.reset()
	case SetPushTransitionMsg:
		a.PushTransition = msg.Transition
		a.setStatus("push transition: " + msg.Transition.String())
	case QuitMsg:
		a.save()
		a.Stack.ClearListeners()
		return a, tea.Quit
	case tea.KeyMsg:
		if msg.String() != "ctrl+c" {
			if overlayCmd, ok := a.Overlays.UpdateTop(msg); ok {
				cmds = append(cmds, overlayCmd)
				break
			}
		}
		if consumed, keyCmd := a.KeyHandler.Handle(msg); consumed {
			cmds = append(cmds, keyCmd)
			break
		}
		if msg.String() == "esc" {
			a.pop(TransitionAuto)
			break
		}
		cmds = append(cmds, a.updateTop(msg))
	default:
		cmds = append(cmds, a.updateTop(msg))
	}

	if a.finished {
		a.clearSaved()
		a.Stack.ClearListeners()
		return a, tea.Quit
	}
	return a, a.settle(cmds...)
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	if modal, ok := a.Overlays.Peek(); ok {
		b.WriteString(lipgloss.Place(a.width, max(a.height-1, 0),
			lipgloss.Center, lipgloss.Center, modal.View()))
	} else {
		b.WriteString(a.Frame.View())
	}
	b.WriteString("\n")
	b.WriteString(a.statusLine())
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		b.WriteString("\n")
		b.WriteString(RenderKeybindHelp(a.KeyHandler))
	}
	return b.String()
}

// settle schedules whatever the frame and animator need next.
func (a *AppModel) settle(cmds ...tea.Cmd) tea.Cmd {
	if a.Frame.NeedsLayout() {
		cmds = append(cmds, requestLayout)
	}
	cmds = append(cmds, a.Animator.Cmd())
	return tea.Batch(cmds...)
}

func (a *AppModel) layout() {
	// One row is reserved for the status line.
	a.Frame.Layout(a.width, max(a.height-1, 0))
}

func (a *AppModel) updateTop(msg tea.Msg) tea.Cmd {
	top := a.Frame.Top()
	if top == nil || top.Content == nil {
		return nil
	}
	v, cmd := top.Content.Update(msg)
	top.Content = v
	return cmd
}

func (a *AppModel) push(s slice.Slice, t Transition) {
	if s == nil {
		return
	}
	if a.Stack.Push(s, a.spatula(t, true)) == nil {
		a.setStatus("busy")
	}
}

func (a *AppModel) pop(t Transition) {
	popped, err := a.Stack.Pop(a.spatula(t, false))
	switch {
	case err != nil:
		a.setError(err)
	case popped == nil && !a.finished:
		a.setStatus("busy")
	}
}

func (a *AppModel) reset() {
	a.Stack.Clear(true)
	if a.Root != nil {
		a.Stack.Push(a.Root(), spatula.None)
	}
	a.setStatus("reset")
}

func (a *AppModel) save() {
	if a.Store == nil {
		return
	}
	if top := a.Frame.Top(); top != nil {
		if p, ok := top.Content.(Persister); ok {
			p.Persist()
		}
	}
	b := bundle.New()
	if err := a.Stack.OnSave(b); err != nil {
		a.setError(err)
		return
	}
	if err := a.Store.Save(b); err != nil {
		a.setError(err)
		return
	}
	a.Logger.Debug("saved stack", "size", a.Stack.Size())
	a.setStatus("saved")
}

func (a *AppModel) clearSaved() {
	if a.Store == nil {
		return
	}
	if err := a.Store.Clear(); err != nil {
		a.Logger.Warn("clear saved stack", "error", err)
	}
}

// spatula resolves t. Auto pushes use PushTransition; auto pops Hide, except
// for the root, which has nothing beneath it to reveal.
func (a *AppModel) spatula(t Transition, pushing bool) spatula.Spatula {
	if t == TransitionAuto {
		switch {
		case pushing:
			t = a.PushTransition
		case a.Stack.Size() <= 1:
			t = TransitionNone
		default:
			t = TransitionHide
		}
	}
	switch t {
	case TransitionReplace:
		return spatula.Replace
	case TransitionReveal:
		return Reveal(a.Animator)
	case TransitionHide:
		return Hide(a.Animator)
	default:
		return spatula.None
	}
}

func (a *AppModel) onTopChange(from, to *Layer) {
	if from != nil {
		if f, ok := from.Content.(Focusable); ok {
			f.Blur()
		}
	}
	if to != nil {
		if f, ok := to.Content.(Focusable); ok {
			f.Focus(a.Stack)
		}
	}
}

func (a *AppModel) setStatus(s string) {
	a.status, a.statusErr = s, false
}

func (a *AppModel) setError(err error) {
	a.Logger.Warn("stack operation failed", "error", err)
	msg := err.Error()
	if errors.Is(err, pancakes.ErrEmptyStack) {
		msg = "nothing to pop"
	}
	a.status, a.statusErr = msg, true
}

func (a *AppModel) statusLine() string {
	left := fmt.Sprintf("pancakes · depth %d", a.Stack.Size())
	if a.Stack.Busy() {
		left += " · flipping"
	}
	line := Styles.Status.Render(left)
	if a.status != "" {
		style := Styles.Hint
		if a.statusErr {
			style = Styles.Error
		}
		line += "  " + style.Render(a.status)
	}
	if a.width > 0 {
		line = textutil.Truncate(line, a.width)
	}
	return line
}

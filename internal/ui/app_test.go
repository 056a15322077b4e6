package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pancakes/internal/bundle"
	"pancakes/internal/pancakes"
	"pancakes/internal/slice"
)

type appHarness struct {
	t     *testing.T
	app   *AppModel
	model tea.Model
	store *memStore
	roots []*pageSlice
	now   time.Time
}

func newHarness(t *testing.T) *appHarness {
	h := &appHarness{t: t, store: &memStore{}, now: time.Now()}
	h.app = NewAppModel(AppOptions{
		Root: func() slice.Slice {
			s := &pageSlice{Name: "root"}
			h.roots = append(h.roots, s)
			return s
		},
		Store:     h.store,
		Animation: AnimationConfig{FPS: 60, Duration: 100 * time.Millisecond},
		Stack:     []pancakes.Option{pancakes.WithRegistry(pageRegistry())},
	})
	h.model = h.app.AsTeaModel()
	return h
}

func (h *appHarness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	_, cmd := h.model.Update(msg)
	return cmd
}

// settle runs layout and frames until no transition is in flight.
func (h *appHarness) settle() {
	h.t.Helper()
	h.send(layoutMsg{})
	for i := 0; h.app.Animator.Active(); i++ {
		require.Less(h.t, i, 100, "animation never finished")
		h.now = h.now.Add(20 * time.Millisecond)
		h.send(frameMsg(h.now))
	}
}

// runCmd executes cmd and flattens batches, skipping animation ticks.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	case frameMsg:
		return nil
	default:
		return []tea.Msg{msg}
	}
}

func (h *appHarness) press(keys ...string) []tea.Msg {
	h.t.Helper()
	var out []tea.Msg
	for _, k := range keys {
		out = append(out, runCmd(h.send(keyMsg(k)))...)
	}
	return out
}

func (h *appHarness) topText() string {
	top := h.app.Frame.Top()
	require.NotNil(h.t, top)
	return top.Content.View()
}

func isQuit(msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestApp_StartPushesRoot(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()

	assert.Equal(t, 1, h.app.Stack.Size())
	assert.Equal(t, "root", h.topText())
	tv := h.app.Frame.Top().Content.(*textView)
	assert.Equal(t, 1, tv.focused)
	assert.Same(t, h.app.Stack, tv.stack)
	assert.Contains(t, h.model.View(), "depth 1")
}

func TestApp_InitSchedulesLayout(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)

	msgs := runCmd(h.model.Init())
	assert.Contains(t, msgs, tea.Msg(layoutMsg{}))
}

func TestApp_PushRevealThenEscHides(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()

	h.send(PushMsg{Slice: &pageSlice{Name: "second"}})
	assert.Equal(t, 2, h.app.Stack.Size())
	h.send(layoutMsg{})
	assert.True(t, h.app.Stack.Busy())
	assert.Equal(t, 0.0, h.app.Frame.Top().Reveal())
	assert.Contains(t, h.model.View(), "flipping")

	h.settle()
	assert.False(t, h.app.Stack.Busy())
	assert.Equal(t, 1, h.app.Frame.ChildCount(), "reveal detaches the screen beneath")
	assert.Equal(t, "second", h.topText())

	h.press("esc")
	assert.Equal(t, 1, h.app.Stack.Size())
	h.settle()
	assert.Equal(t, "root", h.topText())
	assert.Len(t, h.roots[0].views, 2, "root view is rebuilt from its slice")
	assert.Equal(t, 1, h.app.Frame.ChildCount())
}

func TestApp_PopAfterMixedTransitionsShowsNewTop(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()

	second := &pageSlice{Name: "second"}
	third := &pageSlice{Name: "third"}
	h.send(PushMsg{Slice: second, Transition: TransitionNone})
	h.settle()
	h.send(PushMsg{Slice: third, Transition: TransitionReveal})
	h.settle()
	require.Equal(t, "third", h.topText())

	h.press("esc")
	h.settle()

	top, err := h.app.Stack.Peek()
	require.NoError(t, err)
	require.Same(t, second, top)
	assert.Equal(t, "second", h.topText())
	require.NotEmpty(t, second.views)
	assert.Same(t, second.views[len(second.views)-1], h.app.Frame.Top().Content)
	assert.Equal(t, 1, h.app.Frame.ChildCount())
}

func TestApp_PushWhileBusyIsRejected(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()

	h.send(PushMsg{Slice: &pageSlice{Name: "second"}})
	h.send(layoutMsg{})
	h.send(PushMsg{Slice: &pageSlice{Name: "third"}})

	assert.Equal(t, 2, h.app.Stack.Size())
	assert.Contains(t, h.model.View(), "busy")
}

func TestApp_EscOnRootFinishes(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()
	h.store.saved = bundle.New()

	msgs := h.press("esc")
	assert.True(t, isQuit(msgs))
	assert.True(t, h.app.Finished())
	assert.Equal(t, 1, h.store.cleared)
	assert.Equal(t, 1, h.app.Stack.Size())
}

func TestApp_SaveKeybind(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()

	msgs := h.press(" ", "s")
	require.Equal(t, []tea.Msg{SaveMsg{}}, msgs)
	h.send(SaveMsg{})

	require.Equal(t, 1, h.store.saves)
	assert.True(t, h.store.saved.Has(pancakes.StackKey))
	assert.Contains(t, h.model.View(), "saved")
}

func TestApp_QuitSaves(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()

	var kinds []pancakes.Kind
	sub := h.app.Stack.Subscribe(pancakes.ListenerFunc(func(ev pancakes.StackChangeEvent) {
		kinds = append(kinds, ev.Kind)
	}))
	defer sub.Close()

	msgs := h.press("q")
	require.Equal(t, []tea.Msg{QuitMsg{}}, msgs)
	assert.True(t, isQuit(runCmd(h.send(QuitMsg{}))))
	assert.Equal(t, 1, h.store.saves)
	assert.Equal(t, []pancakes.Kind{pancakes.KindClear}, kinds)
	assert.Zero(t, h.app.Stack.ListenerCount())
	assert.Equal(t, 1, h.app.Stack.Size(), "quitting keeps the stack for the snapshot")
}

func TestApp_RestoreFromSavedBundle(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()
	h.send(PushMsg{Slice: &pageSlice{Name: "deep"}, Transition: TransitionNone})
	h.settle()
	h.send(SaveMsg{})

	next := newHarness(t)
	next.app.Start(h.store.saved)
	next.settle()
	assert.Equal(t, 2, next.app.Stack.Size())
	assert.Equal(t, "deep", next.topText())
	assert.Empty(t, next.roots, "root factory is not used when restoring")
}

func TestApp_StartWithUnusableBundleFallsBackToRoot(t *testing.T) {
	h := newHarness(t)
	h.app.Start(bundle.New())
	h.settle()

	assert.Equal(t, 1, h.app.Stack.Size())
	assert.Equal(t, "root", h.topText())
}

func TestApp_ResetKeybind(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()
	h.send(PushMsg{Slice: &pageSlice{Name: "second"}, Transition: TransitionNone})
	h.settle()
	require.Equal(t, 2, h.app.Stack.Size())

	msgs := h.press(" ", "r")
	require.Equal(t, []tea.Msg{ConfirmResetMsg{}}, msgs)
	h.send(ConfirmResetMsg{})
	require.Equal(t, 1, h.app.Overlays.Len())
	assert.Contains(t, h.model.View(), "Reset to root?")
	assert.Contains(t, h.model.View(), "1 screen will be dropped.")

	// The modal takes keys ahead of the global binds.
	msgs = h.press("y")
	assert.ElementsMatch(t, []tea.Msg{DismissModalMsg{}, ResetMsg{}}, msgs)
	for _, m := range msgs {
		h.send(m)
	}
	h.settle()
	assert.Zero(t, h.app.Overlays.Len())

	assert.Equal(t, 1, h.app.Stack.Size())
	assert.Equal(t, "root", h.topText())
	assert.Len(t, h.roots, 2)
}

func TestApp_ResetCancelled(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()
	h.send(PushMsg{Slice: &pageSlice{Name: "second"}, Transition: TransitionNone})
	h.settle()

	h.send(ConfirmResetMsg{})
	msgs := h.press("q")
	assert.Empty(t, msgs, "q is swallowed by the modal")
	msgs = h.press("esc")
	require.Equal(t, []tea.Msg{DismissModalMsg{}}, msgs)
	h.send(DismissModalMsg{})

	assert.Zero(t, h.app.Overlays.Len())
	assert.Equal(t, 2, h.app.Stack.Size())
	assert.Equal(t, "second", h.topText())
}

func TestApp_PushTransitionKeybind(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()

	msgs := h.press(" ", "t", "n")
	require.Len(t, msgs, 1)
	h.send(msgs[0])
	assert.Equal(t, TransitionNone, h.app.PushTransition)

	h.send(PushMsg{Slice: &pageSlice{Name: "second"}})
	h.send(layoutMsg{})
	assert.False(t, h.app.Stack.Busy(), "none completes synchronously")
	assert.Equal(t, 2, h.app.Frame.ChildCount(), "none keeps the screen beneath attached")
}

func TestApp_UnboundKeysReachTopScreen(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()

	h.press("j", "enter")
	tv := h.app.Frame.Top().Content.(*textView)
	assert.Equal(t, []string{"j", "enter"}, tv.keys)
}

func TestApp_LeaderShowsHelp(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.settle()

	h.press(" ")
	assert.Contains(t, h.model.View(), "Reset to root")
	h.press("esc")
	assert.NotContains(t, h.model.View(), "Reset to root")
	assert.Equal(t, 1, h.app.Stack.Size(), "esc in leader mode only cancels")
}

func TestApp_WindowSizeReservesStatusLine(t *testing.T) {
	h := newHarness(t)
	h.app.Start(nil)
	h.send(tea.WindowSizeMsg{Width: 20, Height: 5})

	w, ht := h.app.Frame.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 4, ht)
	assert.True(t, h.app.Frame.Top().LaidOut())
}

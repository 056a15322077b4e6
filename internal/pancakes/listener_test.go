package pancakes

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListener_PushEventBeforeAppend(t *testing.T) {
	p := New(autoContainer(), nil)
	a, b := newSlice("A"), newSlice("B")
	require.NotNil(t, p.Push(a, nil))

	var sizeSeen int
	var topSeen any
	p.Subscribe(ListenerFunc(func(ev StackChangeEvent) {
		require.Equal(t, KindPush, ev.Kind)
		assert.Same(t, b, ev.Slice)
		assert.Equal(t, 1, b.views, "view is materialized before listeners run")
		sizeSeen = p.Size()
		topSeen, _ = p.Peek()
	}))

	require.NotNil(t, p.Push(b, nil))
	assert.Equal(t, 1, sizeSeen)
	assert.Same(t, a, topSeen)
}

func TestListener_PopEventAfterRemoval(t *testing.T) {
	p := New(autoContainer(), nil)
	a, b := newSlice("A"), newSlice("B")
	require.NotNil(t, p.Push(a, nil))
	require.NotNil(t, p.Push(b, nil))

	var sizeSeen int
	p.Subscribe(ListenerFunc(func(ev StackChangeEvent) {
		require.Equal(t, KindPop, ev.Kind)
		assert.Same(t, b, ev.Slice)
		sizeSeen = p.Size()
	}))

	_, err := p.Pop(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, sizeSeen)
}

func TestListener_NotifiedBeforeFlip(t *testing.T) {
	var order []string
	p := New(autoContainer(), nil)
	sp := &recordingSpatula{onFlip: func() { order = append(order, "flip") }}
	p.Subscribe(ListenerFunc(func(ev StackChangeEvent) {
		order = append(order, ev.Kind.String())
	}))

	require.NotNil(t, p.Push(newSlice("A"), sp))
	sp.last().End()
	require.NotNil(t, p.Push(newSlice("B"), sp))
	sp.last().End()
	_, err := p.Pop(sp)
	require.NoError(t, err)

	assert.Equal(t, []string{"push", "flip", "push", "flip", "pop", "flip"}, order)
}

func TestListener_ExactlyOncePerMutation(t *testing.T) {
	p := New(autoContainer(), nil)
	log := &eventLog{}
	p.AddListener(log)
	sp := &recordingSpatula{}

	require.NotNil(t, p.Push(newSlice("A"), nil))
	s := newSlice("S")
	require.NotNil(t, p.Push(s, nil))

	popped, err := p.Pop(sp)
	require.NoError(t, err)
	require.Same(t, s, popped)

	// Second pop lands while the first is still animating.
	popped, err = p.Pop(sp)
	require.NoError(t, err)
	assert.Nil(t, popped)

	assert.Equal(t, []Kind{KindPush, KindPush, KindPop}, log.kinds())
	assert.Same(t, s, log.events[2].Slice)
}

func TestListener_SelfRemovalDuringNotify(t *testing.T) {
	p := New(autoContainer(), nil)
	once := &oneShot{p: p}
	other := &eventLog{}
	p.AddListener(once)
	p.AddListener(other)

	s := newSlice("S")
	require.NotNil(t, p.Push(newSlice("A"), nil))
	require.NotNil(t, p.Push(s, nil))
	_, err := p.Pop(nil)
	require.NoError(t, err)

	require.Len(t, once.events, 1)
	assert.Equal(t, KindPush, once.events[0].Kind)
	assert.Len(t, other.events, 3, "removal does not skip later listeners")
	assert.Equal(t, 1, p.ListenerCount())
}

func TestListener_PanicIsIsolated(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	p := New(autoContainer(), nil, WithLogger(logger))
	log := &eventLog{}
	p.Subscribe(ListenerFunc(func(StackChangeEvent) { panic("boom") }))
	p.AddListener(log)

	require.NotPanics(t, func() {
		require.NotNil(t, p.Push(newSlice("A"), nil))
	})
	assert.Equal(t, []Kind{KindPush}, log.kinds())
	assert.Equal(t, 1, p.Size())
	assert.Contains(t, buf.String(), "stack listener panicked")
	assert.Contains(t, buf.String(), `"event":"push"`)
}

func TestAddListener_Deduplicates(t *testing.T) {
	p := New(autoContainer(), nil)
	log := &eventLog{}
	p.AddListener(log)
	p.AddListener(log)
	assert.Equal(t, 1, p.ListenerCount())

	require.NotNil(t, p.Push(newSlice("A"), nil))
	assert.Len(t, log.events, 1)
}

func TestRemoveListener(t *testing.T) {
	p := New(autoContainer(), nil)
	log := &eventLog{}
	p.AddListener(log)

	assert.True(t, p.RemoveListener(log))
	assert.False(t, p.RemoveListener(log), "second removal is a no-op")
	assert.False(t, p.RemoveListener(ListenerFunc(func(StackChangeEvent) {})))

	require.NotNil(t, p.Push(newSlice("A"), nil))
	assert.Empty(t, log.events)
}

func TestSubscription_Close(t *testing.T) {
	p := New(autoContainer(), nil)
	calls := 0
	sub := p.Subscribe(ListenerFunc(func(StackChangeEvent) { calls++ }))

	require.NotNil(t, p.Push(newSlice("A"), nil))
	assert.True(t, sub.Close())
	assert.False(t, sub.Close())
	require.NotNil(t, p.Push(newSlice("B"), nil))
	assert.Equal(t, 1, calls)

	var nilSub *Subscription
	assert.False(t, nilSub.Close())
}

func TestClearListeners_NotifiesThenDrops(t *testing.T) {
	p := New(autoContainer(), nil)
	log := &eventLog{}
	p.AddListener(log)

	p.ClearListeners()
	assert.Equal(t, []Kind{KindClear}, log.kinds())
	assert.Equal(t, 0, p.ListenerCount())

	require.NotNil(t, p.Push(newSlice("A"), nil))
	assert.Len(t, log.events, 1)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "push", KindPush.String())
	assert.Equal(t, "pop", KindPop.String())
	assert.Equal(t, "clear", KindClear.String())
	assert.Equal(t, "finish", KindFinish.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

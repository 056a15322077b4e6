package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAnimator() *Animator {
	return NewAnimator(AnimationConfig{FPS: 60, Duration: 200 * time.Millisecond, Frequency: 8, Damping: 1})
}

func TestNewAnimator_FillsDefaults(t *testing.T) {
	a := NewAnimator(AnimationConfig{Duration: time.Second})
	cfg := a.Config()
	def := DefaultAnimationConfig()
	assert.Equal(t, def.FPS, cfg.FPS)
	assert.Equal(t, time.Second, cfg.Duration)
	assert.Equal(t, def.Frequency, cfg.Frequency)
	assert.Equal(t, def.Damping, cfg.Damping)
}

func TestAnimator_TicksOnlyWhileRunning(t *testing.T) {
	a := testAnimator()
	assert.Nil(t, a.Cmd(), "nothing to animate")

	tw := a.Tween(0, 1, nil)
	tw.Start()
	assert.True(t, a.Active())
	require.NotNil(t, a.Cmd())
	assert.Nil(t, a.Cmd(), "one tick in flight at a time")

	tw.End()
	assert.False(t, a.Active())
	assert.Nil(t, a.Advance(time.Now()))
}

func TestTween_MovesMonotonicallyAndEnds(t *testing.T) {
	a := testAnimator()
	var values []float64
	tw := a.Tween(0, 1, func(v float64) { values = append(values, v) })
	ended := 0
	tw.OnEnd(func() { ended++ })

	tw.Start()
	require.Equal(t, []float64{0}, values)

	t0 := time.Now()
	frame := time.Second / 60
	for i := 0; i < 5; i++ {
		a.Advance(t0.Add(time.Duration(i) * frame))
	}
	assert.Equal(t, 0, ended)
	for i := 1; i < len(values); i++ {
		assert.GreaterOrEqual(t, values[i], values[i-1], "critically damped spring must not overshoot backwards")
	}
	assert.Greater(t, tw.Value(), 0.0)
	assert.Less(t, tw.Value(), 1.0)

	a.Advance(t0.Add(a.Config().Duration))
	assert.Equal(t, 1, ended)
	assert.Equal(t, 1.0, values[len(values)-1])
	assert.False(t, a.Active())
}

func TestTween_EndBeforeStart(t *testing.T) {
	a := testAnimator()
	got := -1.0
	tw := a.Tween(1, 0, func(v float64) { got = v })
	thenCalls := 0
	tw.Then = func() { thenCalls++ }

	tw.End()
	tw.End()
	assert.Equal(t, 0.0, got)
	assert.Equal(t, 1, thenCalls)
	assert.True(t, tw.Ended())

	tw.Start()
	assert.False(t, a.Active(), "an ended tween cannot restart")
}

func TestTween_ThenRunsBeforeEndCallbacks(t *testing.T) {
	a := testAnimator()
	var order []string
	tw := a.Tween(0, 1, nil)
	tw.Then = func() { order = append(order, "then") }
	tw.OnEnd(func() { order = append(order, "end") })

	tw.Start()
	tw.End()
	assert.Equal(t, []string{"then", "end"}, order)
}

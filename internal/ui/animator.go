package ui

import (
	"math"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"pancakes/internal/spatula"
)

// AnimationConfig tunes transition playback.
type AnimationConfig struct {
	FPS       int
	Duration  time.Duration // hard cap per transition
	Frequency float64       // spring angular frequency
	Damping   float64       // spring damping ratio; 1 is critically damped
}

// DefaultAnimationConfig returns a quick, critically damped transition.
func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{
		FPS:       60,
		Duration:  400 * time.Millisecond,
		Frequency: 8,
		Damping:   1,
	}
}

// settleEpsilon is how close a spring must get to its target, in both position
// and velocity, to count as settled.
const settleEpsilon = 1e-3

// frameMsg is the animation clock tick.
type frameMsg time.Time

// Animator is the frame clock for transitions. It steps every running Tween on
// each frameMsg and schedules ticks only while something is running.
type Animator struct {
	cfg     AnimationConfig
	tweens  []*Tween
	ticking bool
}

// NewAnimator creates an animator. Zero fields in cfg take their defaults.
func NewAnimator(cfg AnimationConfig) *Animator {
	def := DefaultAnimationConfig()
	if cfg.FPS <= 0 {
		cfg.FPS = def.FPS
	}
	if cfg.Duration <= 0 {
		cfg.Duration = def.Duration
	}
	if cfg.Frequency <= 0 {
		cfg.Frequency = def.Frequency
	}
	if cfg.Damping <= 0 {
		cfg.Damping = def.Damping
	}
	return &Animator{cfg: cfg}
}

// Config returns the effective configuration.
func (a *Animator) Config() AnimationConfig {
	return a.cfg
}

// Tween creates an unstarted tween from one value to another. apply receives
// every intermediate value.
func (a *Animator) Tween(from, to float64, apply func(float64)) *Tween {
	return &Tween{
		animator: a,
		spring:   harmonica.NewSpring(harmonica.FPS(a.cfg.FPS), a.cfg.Frequency, a.cfg.Damping),
		from:     from,
		to:       to,
		apply:    apply,
	}
}

// Active reports whether any tween is running.
func (a *Animator) Active() bool {
	return len(a.tweens) > 0
}

// Cmd schedules the next tick if a tween is running and no tick is pending.
func (a *Animator) Cmd() tea.Cmd {
	if a.ticking || len(a.tweens) == 0 {
		return nil
	}
	a.ticking = true
	return tea.Tick(time.Second/time.Duration(a.cfg.FPS), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Advance steps every running tween to now and returns the next tick, if any.
func (a *Animator) Advance(now time.Time) tea.Cmd {
	a.ticking = false
	for _, t := range slices.Clone(a.tweens) {
		t.step(now)
	}
	return a.Cmd()
}

func (a *Animator) add(t *Tween) {
	a.tweens = append(a.tweens, t)
}

func (a *Animator) remove(t *Tween) {
	if i := slices.Index(a.tweens, t); i >= 0 {
		a.tweens = slices.Delete(a.tweens, i, i+1)
	}
}

// Tween is a spring-driven value animation and a spatula.Animation.
type Tween struct {
	spatula.EndNotifier

	// Then runs once the final value is applied, before end callbacks.
	Then func()

	animator *Animator
	spring   harmonica.Spring
	from, to float64
	pos, vel float64
	apply    func(float64)
	started  time.Time
	running  bool
}

var _ spatula.Animation = (*Tween)(nil)

// Start implements spatula.Animation. The clock starts at the first frame.
func (t *Tween) Start() {
	if t.running || t.Ended() {
		return
	}
	t.running = true
	t.pos, t.vel = t.from, 0
	t.set(t.from)
	t.animator.add(t)
}

// End implements spatula.Animation: it jumps to the final value.
func (t *Tween) End() {
	if t.Ended() {
		return
	}
	t.running = false
	t.animator.remove(t)
	t.set(t.to)
	if t.Then != nil {
		t.Then()
	}
	t.Fire()
}

// Value returns the current animated value.
func (t *Tween) Value() float64 {
	return t.pos
}

func (t *Tween) step(now time.Time) {
	if !t.running {
		return
	}
	if t.started.IsZero() {
		t.started = now
	}
	if now.Sub(t.started) >= t.animator.cfg.Duration {
		t.End()
		return
	}
	t.pos, t.vel = t.spring.Update(t.pos, t.vel, t.to)
	if math.Abs(t.pos-t.to) < settleEpsilon && math.Abs(t.vel) < settleEpsilon {
		t.End()
		return
	}
	t.set(t.pos)
}

func (t *Tween) set(v float64) {
	t.pos = v
	if t.apply != nil {
		t.apply(v)
	}
}

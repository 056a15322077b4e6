package pancakes

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"pancakes/internal/slice"
	"pancakes/internal/view"
)

// StackKey is the bundle key under which OnSave stores the ordered slice list.
const StackKey = "PancakeStack"

const tracerName = "pancakes/stack"

// maxAttached is how many views stay in the container once a push transition
// has completed: the visible top and the one beneath it.
const maxAttached = 2

// Host terminates the navigation surface after the stack finishes.
type Host interface {
	Finish()
}

// HostFunc adapts a function to a Host.
type HostFunc func()

// Finish implements Host.
func (f HostFunc) Finish() {
	f()
}

// Pancakes is the navigation stack engine.
type Pancakes struct {
	container view.Container
	delegate  func()
	host      Host
	registry  *slice.Registry
	logger    *slog.Logger
	tracer    trace.Tracer
	inst      *instruments

	backing   []slice.Slice
	// views[i] is the view last materialized for backing[i], or nil. It may
	// have been detached since.
	views     []view.View
	listeners []listenerEntry
	nextID    uint64
	queue     []*transition

	// gen is bumped by Clear; layout and animation callbacks captured under an
	// older generation are ignored.
	gen uint64
}

// Option configures a Pancakes.
type Option func(*Pancakes)

// WithHost sets the host terminated after the finish delegate runs.
func WithHost(h Host) Option {
	return func(p *Pancakes) { p.host = h }
}

// WithRegistry sets the slice registry used by OnSave and OnLoad.
func WithRegistry(r *slice.Registry) Option {
	return func(p *Pancakes) { p.registry = r }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pancakes) { p.logger = l }
}

// WithTracer sets the tracer for mutation and transition spans. The default is a no-op.
func WithTracer(t trace.Tracer) Option {
	return func(p *Pancakes) { p.tracer = t }
}

// WithMeter sets the meter for mutation and transition instruments. The default is a no-op.
func WithMeter(m metric.Meter) Option {
	return func(p *Pancakes) { p.inst = newInstruments(m) }
}

// New creates an engine driving container. delegate, if non-nil, runs when the
// last entry is popped, before the host is told to finish.
func New(container view.Container, delegate func(), opts ...Option) *Pancakes {
	p := &Pancakes{
		container: container,
		delegate:  delegate,
		registry:  slice.NewRegistry(),
		logger:    slog.New(slog.DiscardHandler),
		tracer:    noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.inst == nil {
		p.inst = newInstruments(nil)
	}
	return p
}

// Container returns the container the engine drives.
func (p *Pancakes) Container() view.Container {
	return p.container
}

// Registry returns the slice registry used for save and load.
func (p *Pancakes) Registry() *slice.Registry {
	return p.registry
}

// Size returns the number of entries on the stack.
func (p *Pancakes) Size() int {
	return len(p.backing)
}

// Slices returns the stack bottom to top. The returned slice is a copy.
func (p *Pancakes) Slices() []slice.Slice {
	out := make([]slice.Slice, len(p.backing))
	copy(out, p.backing)
	return out
}

// Busy reports whether a transition is queued or running. Push and Pop are
// rejected while Busy.
func (p *Pancakes) Busy() bool {
	return len(p.queue) > 0
}

// Pending returns the number of queued transitions, including the running one.
func (p *Pancakes) Pending() int {
	return len(p.queue)
}

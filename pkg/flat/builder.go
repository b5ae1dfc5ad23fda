package flat

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/flatexp/internal/logging"
	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

// Builder is the flat facade over a ports.ExperimentSetBuilder.
//
// The zero value is not usable; create builders with New.
type Builder struct {
	guard sync.Mutex

	// root is nil once the experiment set was handed out or the builder was closed.
	root ports.ExperimentSetBuilder
	// open is the innermost open level, nil at the root.
	open frame

	// Published copies of mode and consumption for Mode and Consumed, updated when an
	// operation finishes.
	current atomic.Int32
	done    atomic.Bool

	logger *slog.Logger
	hooks  domain.BuilderHooks
}

// Option configures the Builder.
type Option func(*Builder)

// WithLogger sets the logger used for level transitions (default: discard).
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithHooks registers observability callbacks. Hooks run synchronously while the
// builder is busy; calling back into the builder from a hook fails with ErrConcurrentUse.
func WithHooks(hooks domain.BuilderHooks) Option {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// New creates a builder in mode ROOT driving root.
// A nil root yields a builder that rejects every operation with ErrConsumedBuilder.
func New(root ports.ExperimentSetBuilder, opts ...Option) *Builder {
	b := &Builder{
		root:   root,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.publish()
	return b
}

// Mode reports the construction phase as of the last completed operation.
// It never blocks and is safe to call while another operation is running.
func (b *Builder) Mode() Mode {
	return Mode(b.current.Load())
}

// Consumed reports whether the builder has handed out its experiment set or was closed.
// Like Mode it reflects the last completed operation.
func (b *Builder) Consumed() bool {
	return b.done.Load()
}

func (b *Builder) publish() {
	b.current.Store(int32(b.mode()))
	b.done.Store(b.root == nil)
}

// do runs fn as one public operation: it rejects overlapping and post-consumption calls
// and reports any resulting error to the hooks.
func (b *Builder) do(fn func() error) error {
	if !b.guard.TryLock() {
		return concurrentUse()
	}
	defer b.guard.Unlock()
	defer b.publish()

	if b.root == nil {
		err := b.consumed()
		b.reportError(err)
		return err
	}
	err := fn()
	if err != nil {
		b.reportError(err)
	}
	return err
}

// frame is one open level. The concrete type determines the mode.
type frame interface {
	mode() Mode
}

type dimensionFrame struct {
	ctx  ports.DimensionContext
	name string
}

func (*dimensionFrame) mode() Mode { return ModeDimension }

type instanceFrame struct {
	ctx  ports.InstanceContext
	name string
}

func (*instanceFrame) mode() Mode { return ModeInstance }

// chainFrame is an open experiment, optionally with an open run set and run.
type chainFrame struct {
	experiment ports.ExperimentContext
	name       string
	runs       *runsFrame
}

type runsFrame struct {
	ctx      ports.InstanceRunsContext
	instance string
	run      ports.RunContext
}

func (f *chainFrame) mode() Mode {
	switch {
	case f.runs == nil:
		return ModeExperiment
	case f.runs.run == nil:
		return ModeRunSet
	}
	return ModeRun
}

func (b *Builder) mode() Mode {
	if b.open == nil {
		return ModeRoot
	}
	return b.open.mode()
}

func (b *Builder) chain() *chainFrame {
	f, _ := b.open.(*chainFrame)
	return f
}

func (b *Builder) opened(level domain.Level) {
	b.logger.Debug("level opened", "level", level)
	if b.hooks.OnOpen != nil {
		b.hooks.OnOpen(&domain.LevelEvent{
			Timestamp: time.Now(),
			Level:     level,
		})
	}
}

func (b *Builder) closed(level domain.Level, name string, err error) {
	if err != nil {
		b.logger.Warn("level close failed", "level", level, "name", name, "error", err)
	} else {
		b.logger.Debug("level closed", "level", level, "name", name)
	}
	if b.hooks.OnClose != nil {
		b.hooks.OnClose(&domain.LevelEvent{
			Timestamp: time.Now(),
			Level:     level,
			Name:      name,
			Err:       err,
		})
	}
}

func (b *Builder) reportError(err error) {
	if b.hooks.OnError == nil {
		return
	}
	level := domain.LevelRoot
	var kind Kind
	if e := asError(err); e != nil {
		level = e.Mode.Level()
		kind = e.Kind
	}
	b.hooks.OnError(&domain.ErrorEvent{
		Timestamp: time.Now(),
		Level:     level,
		Kind:      kind.String(),
		Err:       err,
	})
}

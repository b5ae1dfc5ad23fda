package script

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/flatexp/internal/logging"
	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/flat"
	"github.com/aretw0/flatexp/pkg/ports"
	"github.com/aretw0/flatexp/pkg/registry"
)

// Runner executes scripts against flat builders.
type Runner struct {
	registry *registry.Registry
	logger   *slog.Logger
	hooks    domain.BuilderHooks
}

// Option configures the Runner.
type Option func(*Runner)

// WithRegistry sets the registry used to resolve dimension.parser values (default: registry.Default()).
func WithRegistry(r *registry.Registry) Option {
	return func(rn *Runner) {
		if r != nil {
			rn.registry = r
		}
	}
}

// WithLogger sets the logger handed to builders created by Build.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		if logger != nil {
			rn.logger = logger
		}
	}
}

// WithHooks sets the hooks handed to builders created by Build.
func WithHooks(hooks domain.BuilderHooks) Option {
	return func(rn *Runner) {
		rn.hooks = hooks
	}
}

// NewRunner creates a runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		registry: registry.Default(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run applies the steps of s to b in order and stops at the first failure, which is
// returned as a *StepError. The builder is left as the failing step left it.
func (r *Runner) Run(ctx context.Context, b *flat.Builder, s *Script) error {
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Index: i, Op: step.Op, Err: err}
		}
		fn, ok := ops[step.Op]
		if !ok {
			return &StepError{Index: i, Op: step.Op, Err: ErrUnknownOp}
		}
		if err := fn(r, b, step); err != nil {
			return &StepError{Index: i, Op: step.Op, Err: err}
		}
	}
	return nil
}

// Build runs s on a new flat builder over root and returns the finished experiment set.
// On failure the builder and root are discarded.
func (r *Runner) Build(ctx context.Context, s *Script, root ports.ExperimentSetBuilder) (*domain.ExperimentSet, error) {
	b := flat.New(root, flat.WithLogger(r.logger), flat.WithHooks(r.hooks))

	if err := r.Run(ctx, b, s); err != nil {
		if cerr := b.Close(); cerr != nil {
			r.logger.Debug("discarding builder after failed script", "error", cerr)
		}
		return nil, err
	}

	set, err := b.ExperimentSet()
	if err != nil {
		if !b.Consumed() {
			err = errors.Join(err, b.Close())
		}
		return nil, err
	}
	r.logger.Info("script built",
		"script", s.Name,
		"steps", len(s.Steps),
		"experiments", len(set.Experiments),
		"runs", set.RunCount(),
	)
	return set, nil
}

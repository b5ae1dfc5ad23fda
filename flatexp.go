package flatexp

import (
	"context"
	"log/slog"

	"github.com/aretw0/flatexp/internal/logging"
	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/flat"
	"github.com/aretw0/flatexp/pkg/hierarchy"
	"github.com/aretw0/flatexp/pkg/script"
)

// Version is the flatexp release.
var Version = "0.1.0"

type options struct {
	logger      *slog.Logger
	hooks       domain.BuilderHooks
	strictArity bool
}

// Option configures New and BuildScript.
type Option func(*options)

// WithLogger sets the builder logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.BuilderHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithStrictArity requires one value per dimension in every data point.
func WithStrictArity() Option {
	return func(o *options) {
		o.strictArity = true
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) root() *hierarchy.Builder {
	if o.strictArity {
		return hierarchy.New(hierarchy.WithStrictArity())
	}
	return hierarchy.New()
}

// New returns a flat builder over a fresh in-memory hierarchy.
func New(opts ...Option) *flat.Builder {
	o := newOptions(opts)
	return flat.New(o.root(), flat.WithLogger(o.logger), flat.WithHooks(o.hooks))
}

// BuildScript loads the script at path and builds its experiment set.
func BuildScript(ctx context.Context, path string, opts ...Option) (*domain.ExperimentSet, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	o := newOptions(opts)
	runner := script.NewRunner(script.WithLogger(o.logger), script.WithHooks(o.hooks))
	return runner.Build(ctx, s, o.root())
}

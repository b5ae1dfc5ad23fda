// Package cli implements the flatexp commands on top of the library packages.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/flatexp/internal/config"
	"github.com/aretw0/flatexp/internal/presentation/graph"
	"github.com/aretw0/flatexp/internal/presentation/report"
	httpAdapter "github.com/aretw0/flatexp/pkg/adapters/http"
	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/hierarchy"
	"github.com/aretw0/flatexp/pkg/observability"
	"github.com/aretw0/flatexp/pkg/script"
)

var ErrUnknownFormat = errors.New("unknown output format")

// App carries what every command needs.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Out     io.Writer
	Metrics *observability.Metrics
	// Registry holds Metrics and the Go runtime collectors; serve exposes it.
	Registry *prometheus.Registry
	// Render turns markdown into terminal output. Nil prints the markdown as is.
	Render func(string) (string, error)
}

// NewApp creates an App writing command output to out.
func NewApp(cfg *config.Config, logger *slog.Logger, out io.Writer) *App {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	return &App{
		Config:   cfg,
		Logger:   logger,
		Out:      out,
		Metrics:  observability.NewMetrics(reg),
		Registry: reg,
	}
}

// BuildOptions configures App.Build.
type BuildOptions struct {
	Script string
	// Save publishes the result instead of printing it.
	Save      bool
	ID        string // generated when empty
	Overwrite bool
	Format    string // yaml or json
}

// Build runs a script and prints or publishes the experiment set.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	s, set, err := a.buildScript(ctx, opts.Script)
	if err != nil {
		return err
	}

	if !opts.Save {
		return a.write(set, opts.Format)
	}

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	c, closeFn, err := OpenCatalog(a.Config, a.Logger)
	if err != nil {
		return err
	}
	defer a.closeStore(closeFn)

	if err := c.Publish(ctx, id, set, opts.Overwrite); err != nil {
		return fmt.Errorf("failed to publish %q: %w", id, err)
	}
	fmt.Fprintf(a.Out, "%s\n", id)
	a.Logger.Info("build saved", "script", s.Name, "snapshot_id", id)
	return nil
}

// Validate runs a script and discards the result.
func (a *App) Validate(ctx context.Context, path string) error {
	s, set, err := a.buildScript(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "%s: %d steps, %d experiments, %d runs, %d data points\n",
		displayName(s, path), len(s.Steps), len(set.Experiments), set.RunCount(), set.DataPointCount())
	return nil
}

// Report prints a markdown summary of a script result or published snapshot.
func (a *App) Report(ctx context.Context, ref string) error {
	title, set, err := a.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	out := report.Markdown(title, set)
	if a.Render != nil {
		if out, err = a.Render(out); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	}
	_, err = io.WriteString(a.Out, out)
	return err
}

// Graph prints the Mermaid flowchart of a script result or published snapshot.
func (a *App) Graph(ctx context.Context, ref string, highlight []string) error {
	_, set, err := a.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	var overlay *graph.Overlay
	if len(highlight) > 0 {
		overlay = &graph.Overlay{Experiments: highlight}
	}
	_, err = io.WriteString(a.Out, graph.GenerateMermaid(set, overlay))
	return err
}

// Resolve treats ref as a script path when such a file exists, else as a snapshot ID.
func (a *App) Resolve(ctx context.Context, ref string) (string, *domain.ExperimentSet, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		s, set, err := a.buildScript(ctx, ref)
		if err != nil {
			return "", nil, err
		}
		return displayName(s, ref), set, nil
	}

	c, closeFn, err := OpenCatalog(a.Config, a.Logger)
	if err != nil {
		return "", nil, err
	}
	defer a.closeStore(closeFn)

	set, err := c.Load(ctx, ref)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load %q: %w", ref, err)
	}
	return ref, set, nil
}

// Serve runs the HTTP API on addr until ctx is cancelled.
func (a *App) Serve(ctx context.Context, addr string) error {
	c, closeFn, err := OpenCatalog(a.Config, a.Logger)
	if err != nil {
		return err
	}
	defer a.closeStore(closeFn)

	srv := &http.Server{
		Addr: addr,
		Handler: httpAdapter.NewHandler(c,
			httpAdapter.WithLogger(a.Logger),
			httpAdapter.WithGatherer(a.Registry),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening", "addr", addr, "backend", a.Config.Store.Backend)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("graceful shutdown did not complete", "error", err)
		return srv.Close()
	}
	a.Logger.Info("server stopped")
	return nil
}

func (a *App) buildScript(ctx context.Context, path string) (*script.Script, *domain.ExperimentSet, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, nil, err
	}

	var rootOpts []hierarchy.Option
	if a.Config.Build.StrictArity {
		rootOpts = append(rootOpts, hierarchy.WithStrictArity())
	}
	runner := script.NewRunner(
		script.WithLogger(a.Logger),
		script.WithHooks(observability.Combine(a.Metrics.Hooks(), observability.LogHooks(a.Logger))),
	)
	set, err := runner.Build(ctx, s, hierarchy.New(rootOpts...))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, set, nil
}

func (a *App) write(set *domain.ExperimentSet, format string) error {
	switch format {
	case "", "yaml":
		enc := yaml.NewEncoder(a.Out)
		enc.SetIndent(2)
		if err := enc.Encode(set); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(set)
	}
	return fmt.Errorf("%w %q", ErrUnknownFormat, format)
}

func (a *App) closeStore(closeFn func() error) {
	if err := closeFn(); err != nil {
		a.Logger.Warn("failed to close snapshot store", "error", err)
	}
}

func displayName(s *script.Script, path string) string {
	if s.Name != "" {
		return s.Name
	}
	return path
}

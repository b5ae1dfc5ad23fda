package observability

import (
	"log/slog"

	"github.com/aretw0/flatexp/pkg/domain"
)

// LogHooks returns builder hooks that log every event to logger.
func LogHooks(logger *slog.Logger) domain.BuilderHooks {
	return domain.BuilderHooks{
		OnOpen: func(e *domain.LevelEvent) {
			logger.Debug("level_open", "level", e.Level)
		},
		OnClose: func(e *domain.LevelEvent) {
			if e.Err != nil {
				logger.Warn("level_close", "level", e.Level, "name", e.Name, "err", e.Err)
				return
			}
			logger.Debug("level_close", "level", e.Level, "name", e.Name)
		},
		OnError: func(e *domain.ErrorEvent) {
			logger.Debug("builder_error", "level", e.Level, "kind", e.Kind, "err", e.Err)
		},
	}
}

// Combine returns hooks that call every non-nil hook of sets, in order.
func Combine(sets ...domain.BuilderHooks) domain.BuilderHooks {
	var open, closed []func(*domain.LevelEvent)
	var errs []func(*domain.ErrorEvent)
	for _, s := range sets {
		if s.OnOpen != nil {
			open = append(open, s.OnOpen)
		}
		if s.OnClose != nil {
			closed = append(closed, s.OnClose)
		}
		if s.OnError != nil {
			errs = append(errs, s.OnError)
		}
	}

	var out domain.BuilderHooks
	if len(open) > 0 {
		out.OnOpen = func(e *domain.LevelEvent) {
			for _, fn := range open {
				fn(e)
			}
		}
	}
	if len(closed) > 0 {
		out.OnClose = func(e *domain.LevelEvent) {
			for _, fn := range closed {
				fn(e)
			}
		}
	}
	if len(errs) > 0 {
		out.OnError = func(e *domain.ErrorEvent) {
			for _, fn := range errs {
				fn(e)
			}
		}
	}
	return out
}

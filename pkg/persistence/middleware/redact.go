package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/ports"
)

// Mask replaces redacted values.
const Mask = "***"

type redactMiddleware struct {
	next     ports.SnapshotStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks the values of features and parameters
// whose names match any of the patterns before they are saved.
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, id string, set *domain.ExperimentSet) error {
	// The caller keeps its unmasked set.
	cloned := set.Clone()

	m.maskProperties(cloned.Features)
	m.maskProperties(cloned.Parameters)
	for i := range cloned.Instances {
		m.maskSettings(cloned.Instances[i].Features)
	}
	for i := range cloned.Experiments {
		e := &cloned.Experiments[i]
		m.maskSettings(e.Parameters)
		for j := range e.Runs {
			rs := &e.Runs[j]
			m.maskSettings(rs.Parameters)
			for k := range rs.Runs {
				m.maskSettings(rs.Runs[k].Parameters)
			}
		}
	}

	return m.next.Save(ctx, id, cloned)
}

func (m *redactMiddleware) Load(ctx context.Context, id string) (*domain.ExperimentSet, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactMiddleware) matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

func (m *redactMiddleware) maskSettings(s domain.Settings) {
	for i := range s {
		if m.matches(s[i].Name) {
			s[i].Value = Mask
		}
	}
}

func (m *redactMiddleware) maskProperties(props []domain.Property) {
	for i := range props {
		if !m.matches(props[i].Name) {
			continue
		}
		values := make([]any, len(props[i].Values))
		for j := range values {
			values[j] = Mask
		}
		props[i].Values = values
	}
}

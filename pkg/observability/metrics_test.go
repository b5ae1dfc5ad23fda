package observability_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flatexp/pkg/domain"
	"github.com/aretw0/flatexp/pkg/flat"
	"github.com/aretw0/flatexp/pkg/hierarchy"
	"github.com/aretw0/flatexp/pkg/observability"
)

func TestMetrics_FromBuilder(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	b := flat.New(hierarchy.New(), flat.WithHooks(m.Hooks()))
	require.NoError(t, b.DimensionSetName("time"))
	require.NoError(t, b.DimensionSetType(domain.DimensionTypeTime))
	require.NoError(t, b.InstanceSetName("i1"))
	require.NoError(t, b.ExperimentSetName("e1"))
	require.NoError(t, b.RunsSetInstance("i1"))
	require.NoError(t, b.RunAddDataPoint(1))
	assert.Error(t, b.DimensionBegin(false))

	_, err := b.ExperimentSet()
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Opened("dimension")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Opened("run")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Closed("run_set")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors("run", "illegal_transition")))

	count, err := testutil.GatherAndCount(reg, "flatexp_levels_opened_total")
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestMetrics_CloseFailure(t *testing.T) {
	m := observability.NewMetrics(nil)
	hooks := m.Hooks()

	hooks.OnClose(&domain.LevelEvent{Level: domain.LevelRun})
	hooks.OnClose(&domain.LevelEvent{Level: domain.LevelRun, Err: errors.New("boom")})

	expected := `
# HELP flatexp_level_close_failures_total Total number of builder level contexts whose close failed
# TYPE flatexp_level_close_failures_total counter
flatexp_level_close_failures_total{level="run"} 1
`
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.Collectors()...)
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "flatexp_level_close_failures_total"))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Closed("run")))
}

func TestCombine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := observability.NewMetrics(nil)

	var seen []string
	extra := domain.BuilderHooks{
		OnOpen: func(e *domain.LevelEvent) { seen = append(seen, "open:"+string(e.Level)) },
	}
	hooks := observability.Combine(m.Hooks(), observability.LogHooks(logger), extra, domain.BuilderHooks{})

	b := flat.New(hierarchy.New(), flat.WithHooks(hooks))
	require.NoError(t, b.InstanceSetName("i1"))
	require.NoError(t, b.Flush())
	assert.Error(t, b.RunBegin(false))

	assert.Equal(t, []string{"open:instance"}, seen)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Closed("instance")))
	out := buf.String()
	assert.Contains(t, out, "msg=level_open level=instance")
	assert.Contains(t, out, "msg=level_close level=instance name=i1")
	assert.Contains(t, out, "msg=builder_error")
	assert.Contains(t, out, "kind=illegal_transition")
}

func TestCombine_Empty(t *testing.T) {
	hooks := observability.Combine()
	assert.Nil(t, hooks.OnOpen)
	assert.Nil(t, hooks.OnClose)
	assert.Nil(t, hooks.OnError)
}

package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/flatexp/internal/presentation/report"
	"github.com/aretw0/flatexp/pkg/domain"
)

func TestMarkdown(t *testing.T) {
	set := &domain.ExperimentSet{
		Dimensions: domain.DimensionSet{
			{Index: 0, Name: "fes", Type: domain.DimensionTypeIterationFE, Direction: domain.DirectionIncreasingStrictly, Parser: "long"},
		},
		Instances: domain.InstanceSet{{
			Name:        "tsp|100",
			Features:    domain.Settings{{Name: "n", Value: 100}},
			LowerBounds: map[string]float64{"fes": 1, "a": 0.5},
		}},
		Experiments: []domain.Experiment{
			{
				Name:        "ea",
				Description: "a (1+1) EA",
				Parameters:  domain.Settings{{Name: "mu", Value: 1}},
				Runs: []domain.InstanceRuns{{
					Instance: "tsp|100",
					Runs: []domain.Run{
						{DataPoints: []domain.DataPoint{{1}, {2}}},
						{DataPoints: []domain.DataPoint{{1}}},
					},
				}},
			},
			{Name: "idle"},
		},
	}

	out := report.Markdown("run-42", set)

	assert.Contains(t, out, "# run-42\n")
	assert.Contains(t, out, "1 dimensions, 1 instances, 2 experiments, 2 runs, 3 data points")
	assert.Contains(t, out, "| 0 | fes | iteration_fe | increasing_strictly | long |")
	assert.Contains(t, out, `| tsp\|100 | n=100 | a=0.5, fes=1 | - |`)
	assert.Contains(t, out, "### ea\n\na (1+1) EA\n\nParameters: mu=1\n")
	assert.Contains(t, out, `| tsp\|100 | - | 2 | 3 |`)
	assert.Contains(t, out, "### idle\n\nNo runs.\n")
}

func TestMarkdown_Empty(t *testing.T) {
	out := report.Markdown("", &domain.ExperimentSet{})
	assert.Equal(t, "# Experiment set\n\n0 dimensions, 0 instances, 0 experiments, 0 runs, 0 data points\n\n", out)
}

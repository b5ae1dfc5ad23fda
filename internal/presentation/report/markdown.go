// Package report renders experiment sets as markdown summaries.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/flatexp/pkg/domain"
)

// Markdown summarizes set. title names the snapshot or script it came from.
func Markdown(title string, set *domain.ExperimentSet) string {
	var sb strings.Builder

	if title == "" {
		title = "Experiment set"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "%d dimensions, %d instances, %d experiments, %d runs, %d data points\n\n",
		len(set.Dimensions), len(set.Instances), len(set.Experiments), set.RunCount(), set.DataPointCount())

	if len(set.Dimensions) > 0 {
		sb.WriteString("## Dimensions\n\n")
		sb.WriteString("| # | Name | Type | Direction | Parser |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, d := range set.Dimensions {
			fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s |\n",
				d.Index, cell(d.Name), cell(string(d.Type)), cell(string(d.Direction)), cell(d.Parser))
		}
		sb.WriteString("\n")
	}

	if len(set.Instances) > 0 {
		sb.WriteString("## Instances\n\n")
		sb.WriteString("| Name | Features | Lower bounds | Upper bounds |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, in := range set.Instances {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				cell(in.Name), cell(settings(in.Features)), cell(bounds(in.LowerBounds)), cell(bounds(in.UpperBounds)))
		}
		sb.WriteString("\n")
	}

	if len(set.Experiments) > 0 {
		sb.WriteString("## Experiments\n\n")
		for _, e := range set.Experiments {
			fmt.Fprintf(&sb, "### %s\n\n", e.Name)
			if e.Description != "" {
				fmt.Fprintf(&sb, "%s\n\n", e.Description)
			}
			if len(e.Parameters) > 0 {
				fmt.Fprintf(&sb, "Parameters: %s\n\n", settings(e.Parameters))
			}
			if len(e.Runs) == 0 {
				sb.WriteString("No runs.\n\n")
				continue
			}
			sb.WriteString("| Instance | Parameters | Runs | Data points |\n")
			sb.WriteString("|---|---|---|---|\n")
			for _, rs := range e.Runs {
				points := 0
				for _, r := range rs.Runs {
					points += len(r.DataPoints)
				}
				fmt.Fprintf(&sb, "| %s | %s | %d | %d |\n",
					cell(rs.Instance), cell(settings(rs.Parameters)), len(rs.Runs), points)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func settings(s domain.Settings) string {
	parts := make([]string, len(s))
	for i, st := range s {
		parts[i] = fmt.Sprintf("%s=%v", st.Name, st.Value)
	}
	return strings.Join(parts, ", ")
}

func bounds(m map[string]float64) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%g", name, m[name])
	}
	return strings.Join(parts, ", ")
}

// cell makes s safe inside a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/flatexp/pkg/domain"
)

// Overlay selects parts of the graph to highlight.
type Overlay struct {
	// Experiments lists experiment names to highlight together with their run sets.
	Experiments []string
}

// GenerateMermaid produces a Mermaid flowchart of the experiment set hierarchy.
// Shapes encode the level:
// - Experiment set: ((Circle))
// - Dimension: [/Parallelogram/]
// - Instance: [Rectangle]
// - Experiment: [[Subroutine]]
// - Run set: ([Stadium]), with a dotted edge to the instance it runs on
func GenerateMermaid(set *domain.ExperimentSet, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    set((\"experiment set\"))\n")

	for i, d := range set.Dimensions {
		id := fmt.Sprintf("dim_%d", i)
		label := d.Name
		if d.Type != "" {
			label = fmt.Sprintf("%s <br/> %s", d.Name, d.Type)
		}
		fmt.Fprintf(&sb, "    %s[/\"%s\"/]\n", id, escapeLabel(label))
		fmt.Fprintf(&sb, "    set --> %s\n", id)
	}

	instanceIDs := make(map[string]string, len(set.Instances))
	for i, in := range set.Instances {
		id := fmt.Sprintf("inst_%d", i)
		instanceIDs[in.Name] = id
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", id, escapeLabel(in.Name))
		fmt.Fprintf(&sb, "    set --> %s\n", id)
	}

	experimentIDs := make(map[string][]string, len(set.Experiments))
	for i, e := range set.Experiments {
		id := fmt.Sprintf("exp_%d", i)
		experimentIDs[e.Name] = append(experimentIDs[e.Name], id)
		fmt.Fprintf(&sb, "    %s[[\"%s\"]]\n", id, escapeLabel(e.Name))
		fmt.Fprintf(&sb, "    set --> %s\n", id)

		for j, rs := range e.Runs {
			rsID := fmt.Sprintf("%s_rs_%d", id, j)
			experimentIDs[e.Name] = append(experimentIDs[e.Name], rsID)
			fmt.Fprintf(&sb, "    %s([\"%s\"])\n", rsID, runSetLabel(rs))
			fmt.Fprintf(&sb, "    %s --> %s\n", id, rsID)
			if instID, ok := instanceIDs[rs.Instance]; ok {
				fmt.Fprintf(&sb, "    %s -.-> %s\n", rsID, instID)
			}
		}
	}

	if overlay != nil && len(overlay.Experiments) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps the highlight readable on light and dark themes.
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:3px,color:#000;\n")
		seen := make(map[string]bool)
		for _, name := range overlay.Experiments {
			for _, id := range experimentIDs[name] {
				if !seen[id] {
					seen[id] = true
					fmt.Fprintf(&sb, "    class %s selected;\n", id)
				}
			}
		}
	}

	return sb.String()
}

func runSetLabel(rs domain.InstanceRuns) string {
	runs := "runs"
	if len(rs.Runs) == 1 {
		runs = "run"
	}
	return fmt.Sprintf("%s <br/> %d %s", escapeLabel(rs.Instance), len(rs.Runs), runs)
}

// escapeLabel keeps a name from terminating the quoted Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

package graphviz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/awantoch/flowsketch/graph"
	"github.com/awantoch/flowsketch/model"
)

var dotShapes = map[model.StepType]string{
	model.StepTrigger:   "circle",
	model.StepCondition: "diamond",
	model.StepAction:    "box",
}

// ExportDOT renders workflow steps as a Graphviz digraph using the same edges and palette
// as the Mermaid export.
func ExportDOT(steps []model.WorkflowStep) (string, error) {
	if len(steps) == 0 {
		return "", nil
	}
	g := graph.NewGraph(steps)
	var sb strings.Builder
	sb.WriteString("digraph workflow {\n")
	sb.WriteString("  rankdir=TB;\n")
	sb.WriteString("  node [style=filled, fontname=\"Helvetica\"];\n")
	for _, n := range g.Nodes {
		if n.ID == "" {
			return "", fmt.Errorf("node with label %q has no id", n.Label)
		}
		style := n.Type.Style()
		shape, ok := dotShapes[n.Type]
		if !ok {
			shape = "box"
		}
		sb.WriteString(fmt.Sprintf("  %s [label=%s, shape=%s, fillcolor=%q, color=%q, fontcolor=%q];\n",
			strconv.Quote(n.ID), strconv.Quote(n.Label), shape, style.Fill, style.Stroke, style.Color))
	}
	for _, e := range g.Edges {
		if e.Label != "" {
			sb.WriteString(fmt.Sprintf("  %s -> %s [label=%s];\n", strconv.Quote(e.From), strconv.Quote(e.To), strconv.Quote(e.Label)))
		} else {
			sb.WriteString(fmt.Sprintf("  %s -> %s;\n", strconv.Quote(e.From), strconv.Quote(e.To)))
		}
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

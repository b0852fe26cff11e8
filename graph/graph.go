package graph

import (
	"fmt"
	"strings"

	"github.com/awantoch/flowsketch/model"
)

// Node is a vertex in the graph.
type Node struct {
	ID    string
	Label string
	Type  model.StepType
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From  string
	To    string
	Label string
}

// Graph is a directed graph composed of nodes and edges.
type Graph struct {
	Nodes []*Node
	Edges []*Edge
}

// Renderer renders a Graph into a specific output format.
type Renderer interface {
	Render(g *Graph) (string, error)
}

// MermaidRenderer outputs Graphs in Mermaid flowchart syntax, styled per step type.
type MermaidRenderer struct{}

// declarations are the leading keywords Mermaid accepts for a flowchart.
var declarations = []string{"graph", "flowchart"}

// HasDeclaration reports whether syntax opens with a flowchart declaration such as "graph TD".
func HasDeclaration(syntax string) bool {
	fields := strings.Fields(syntax)
	if len(fields) == 0 {
		return false
	}
	for _, d := range declarations {
		if fields[0] == d {
			return true
		}
	}
	return false
}

// NewGraph builds a graph from workflow steps. Steps are chained in order. A condition's
// next step is its Yes branch and the step after that is its No branch.
func NewGraph(steps []model.WorkflowStep) *Graph {
	g := &Graph{}
	for i, step := range steps {
		g.Nodes = append(g.Nodes, &Node{ID: step.ID, Label: step.Title, Type: step.Type})
		if i == 0 {
			continue
		}
		if i >= 2 && steps[i-2].Type == model.StepCondition && steps[i-1].Type != model.StepCondition {
			g.Edges = append(g.Edges, &Edge{From: steps[i-2].ID, To: step.ID, Label: "No"})
			continue
		}
		prev := steps[i-1]
		edge := &Edge{From: prev.ID, To: step.ID}
		if prev.Type == model.StepCondition {
			edge.Label = "Yes"
		}
		g.Edges = append(g.Edges, edge)
	}
	return g
}

// Render renders the graph using Mermaid syntax, with one style directive per node at the end.
func (r *MermaidRenderer) Render(g *Graph) (string, error) {
	if len(g.Nodes) == 0 {
		return "", nil
	}
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	for _, node := range g.Nodes {
		if node.ID == "" {
			return "", fmt.Errorf("node with label %q has no id", node.Label)
		}
		sb.WriteString(fmt.Sprintf("%s%s\n", node.ID, node.Type.Shape(mermaidLabel(node.Label))))
	}
	for _, edge := range g.Edges {
		if edge.Label != "" {
			sb.WriteString(fmt.Sprintf("%s-->|%s|%s\n", edge.From, edge.Label, edge.To))
		} else {
			sb.WriteString(fmt.Sprintf("%s-->%s\n", edge.From, edge.To))
		}
	}
	for _, node := range g.Nodes {
		sb.WriteString(fmt.Sprintf("style %s %s\n", node.ID, node.Type.Style()))
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// mermaidLabel quotes labels containing characters that would end a node shape early.
func mermaidLabel(label string) string {
	if strings.ContainsAny(label, `()[]{}|"`) {
		return `"` + strings.ReplaceAll(label, `"`, "#quot;") + `"`
	}
	return label
}

// ExportMermaid is a helper to create a Mermaid diagram from workflow steps.
func ExportMermaid(steps []model.WorkflowStep) (string, error) {
	renderer := &MermaidRenderer{}
	return renderer.Render(NewGraph(steps))
}

package model

import (
	"encoding/json"
	"fmt"
)

// Workflow is the generated result: a Mermaid flowchart plus the ordered steps it depicts.
type Workflow struct {
	MermaidSyntax string         `yaml:"mermaidSyntax" json:"mermaidSyntax"`
	Steps         []WorkflowStep `yaml:"workflow" json:"workflow"`
}

// WorkflowStep is one typed step of a generated workflow.
type WorkflowStep struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Type        StepType `yaml:"type" json:"type"`
}

type StepType string

const (
	StepTrigger   StepType = "trigger"
	StepAction    StepType = "action"
	StepCondition StepType = "condition"
)

// StepTypes lists every valid step type in prompt order.
var StepTypes = []StepType{StepTrigger, StepCondition, StepAction}

// ParseStepType returns the StepType named by s, or an error for anything outside the closed set.
func ParseStepType(s string) (StepType, error) {
	switch t := StepType(s); t {
	case StepTrigger, StepAction, StepCondition:
		return t, nil
	default:
		return "", fmt.Errorf("unknown step type %q", s)
	}
}

// Valid reports whether t is one of the known step types.
func (t StepType) Valid() bool {
	_, err := ParseStepType(string(t))
	return err == nil
}

func (t *StepType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseStepType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NodeStyle is the fill/stroke/text color triple used for a step type's diagram node.
type NodeStyle struct {
	Fill   string
	Stroke string
	Color  string
}

// String renders the style in Mermaid `style` directive form.
func (s NodeStyle) String() string {
	return fmt.Sprintf("fill:%s,stroke:%s,color:%s", s.Fill, s.Stroke, s.Color)
}

var nodeStyles = map[StepType]NodeStyle{
	StepTrigger:   {Fill: "#1f4532", Stroke: "#4ade80", Color: "#4ade80"},
	StepCondition: {Fill: "#1f3f52", Stroke: "#60a5fa", Color: "#60a5fa"},
	StepAction:    {Fill: "#1f1f52", Stroke: "#818cf8", Color: "#818cf8"},
}

// Style returns the node color triple for t. Unknown types get the action style.
func (t StepType) Style() NodeStyle {
	if s, ok := nodeStyles[t]; ok {
		return s
	}
	return nodeStyles[StepAction]
}

// Shape wraps label in the Mermaid node shape for t: ((trigger)), {condition}, [action].
func (t StepType) Shape(label string) string {
	switch t {
	case StepTrigger:
		return "((" + label + "))"
	case StepCondition:
		return "{" + label + "}"
	default:
		return "[" + label + "]"
	}
}

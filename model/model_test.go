package model_test

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/awantoch/flowsketch/model"
)

func TestParseStepType(t *testing.T) {
	for _, s := range []string{"trigger", "action", "condition"} {
		got, err := model.ParseStepType(s)
		if err != nil {
			t.Errorf("ParseStepType(%q) returned error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStepType(%q) = %q", s, got)
		}
	}
	for _, s := range []string{"", "Trigger", "loop", "delay"} {
		if _, err := model.ParseStepType(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestWorkflow_UnmarshalJSON(t *testing.T) {
	data := `{"mermaidSyntax":"graph TD\nA-->B","workflow":[{"id":"A","title":"Start","description":"d","type":"trigger"}]}`
	var wf model.Workflow
	if err := json.Unmarshal([]byte(data), &wf); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(wf.Steps) != 1 || wf.Steps[0].Type != model.StepTrigger {
		t.Errorf("unexpected steps: %+v", wf.Steps)
	}
}

func TestWorkflow_UnmarshalJSON_UnknownType(t *testing.T) {
	data := `{"mermaidSyntax":"graph TD","workflow":[{"id":"A","title":"t","description":"d","type":"loop"}]}`
	var wf model.Workflow
	if err := json.Unmarshal([]byte(data), &wf); err == nil {
		t.Error("expected error for unknown step type")
	}
}

func TestWorkflow_MarshalJSONKeys(t *testing.T) {
	wf := model.Workflow{
		MermaidSyntax: "graph TD",
		Steps:         []model.WorkflowStep{{ID: "A", Title: "t", Description: "d", Type: model.StepAction}},
	}
	b, err := json.Marshal(wf)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"mermaidSyntax":"graph TD","workflow":[{"id":"A","title":"t","description":"d","type":"action"}]}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}
}

func TestWorkflow_MarshalYAML(t *testing.T) {
	wf := model.Workflow{
		MermaidSyntax: "graph TD",
		Steps:         []model.WorkflowStep{{ID: "A", Title: "t", Description: "d", Type: model.StepCondition}},
	}
	b, err := yaml.Marshal(wf)
	if err != nil {
		t.Fatalf("yaml marshal failed: %v", err)
	}
	var back model.Workflow
	if err := yaml.Unmarshal(b, &back); err != nil {
		t.Fatalf("yaml unmarshal failed: %v", err)
	}
	if back.Steps[0].Type != model.StepCondition {
		t.Errorf("expected condition, got %q", back.Steps[0].Type)
	}
}

func TestStepType_StyleAndShape(t *testing.T) {
	cases := []struct {
		typ   model.StepType
		style string
		shape string
	}{
		{model.StepTrigger, "fill:#1f4532,stroke:#4ade80,color:#4ade80", "((x))"},
		{model.StepCondition, "fill:#1f3f52,stroke:#60a5fa,color:#60a5fa", "{x}"},
		{model.StepAction, "fill:#1f1f52,stroke:#818cf8,color:#818cf8", "[x]"},
	}
	for _, c := range cases {
		if got := c.typ.Style().String(); got != c.style {
			t.Errorf("%s style: expected %s, got %s", c.typ, c.style, got)
		}
		if got := c.typ.Shape("x"); got != c.shape {
			t.Errorf("%s shape: expected %s, got %s", c.typ, c.shape, got)
		}
	}
}

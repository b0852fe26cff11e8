package workflow

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/awantoch/flowsketch/graph"
	"github.com/awantoch/flowsketch/model"
	"github.com/awantoch/flowsketch/utils"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed step.schema.json
var stepSchemaJSON string

var stepSchema = jsonschema.MustCompileString("step.schema.json", stepSchemaJSON)

// NormalizeDiagram turns every literal backslash-n pair into a newline and trims the result.
func NormalizeDiagram(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `\n`, "\n"))
}

// Validate parses a raw completion into a Workflow. The diagram is normalized and every
// step is checked against the step schema; step order is kept.
func Validate(raw string) (*model.Workflow, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, newError(KindMalformedJSON, err, "completion is not valid JSON")
	}

	obj, ok := utils.SafeMapAssert(doc)
	if !ok {
		return nil, newError(KindInvalidShape, nil, "completion is not a JSON object")
	}
	diagram, ok := utils.SafeStringAssert(obj["mermaidSyntax"])
	if !ok || diagram == "" {
		return nil, newError(KindInvalidShape, nil, "mermaidSyntax must be a non-empty string")
	}
	rawSteps, ok := utils.SafeSliceAssert(obj["workflow"])
	if !ok {
		return nil, newError(KindInvalidShape, nil, "workflow must be an array")
	}

	diagram = NormalizeDiagram(diagram)
	if !graph.HasDeclaration(diagram) {
		return nil, newError(KindInvalidShape, nil, "mermaidSyntax does not start with a graph declaration")
	}

	steps := make([]model.WorkflowStep, 0, len(rawSteps))
	for i, rs := range rawSteps {
		if err := stepSchema.Validate(rs); err != nil {
			return nil, newError(KindInvalidShape, err, "workflow[%d] is not a valid step", i)
		}
		m, _ := utils.SafeMapAssert(rs)
		stepType, err := model.ParseStepType(m["type"].(string))
		if err != nil {
			return nil, newError(KindInvalidShape, err, "workflow[%d] is not a valid step", i)
		}
		steps = append(steps, model.WorkflowStep{
			ID:          m["id"].(string),
			Title:       m["title"].(string),
			Description: m["description"].(string),
			Type:        stepType,
		})
	}

	return &model.Workflow{MermaidSyntax: diagram, Steps: steps}, nil
}

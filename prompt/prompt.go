// Package prompt builds the chat messages that ask a completion model for a workflow.
package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/awantoch/flowsketch/model"
	pongo2 "github.com/flosch/pongo2/v6"
)

//go:embed system_prompt.md
var systemPromptTemplate string

const userPromptTemplate = `Convert this workflow description to a JSON response with valid Mermaid.js flowchart syntax: {{ description|safe }}`

// ErrEmptyDescription is returned when the description is empty after trimming.
var ErrEmptyDescription = errors.New("workflow description is empty")

var (
	systemPrompt = mustRenderSystemPrompt()
	userTemplate = pongo2.Must(pongo2.FromString(userPromptTemplate))
)

// Messages is a system instruction plus the user instruction built from a description.
type Messages struct {
	System string
	User   string
}

// SystemPrompt returns the fixed system instruction.
func SystemPrompt() string {
	return systemPrompt
}

// Compose validates description and builds the messages for it. The description is
// embedded in the user instruction exactly as given.
func Compose(description string) (Messages, error) {
	if strings.TrimSpace(description) == "" {
		return Messages{}, ErrEmptyDescription
	}
	user, err := userTemplate.Execute(pongo2.Context{"description": description})
	if err != nil {
		return Messages{}, fmt.Errorf("render user prompt: %w", err)
	}
	return Messages{System: systemPrompt, User: user}, nil
}

func mustRenderSystemPrompt() string {
	styles := make(map[string]string, len(model.StepTypes))
	for _, t := range model.StepTypes {
		styles[string(t)] = t.Style().String()
	}
	tpl := pongo2.Must(pongo2.FromString(systemPromptTemplate))
	out, err := tpl.Execute(pongo2.Context{"styles": styles})
	if err != nil {
		panic(fmt.Sprintf("render system prompt: %v", err))
	}
	return strings.TrimSpace(out)
}

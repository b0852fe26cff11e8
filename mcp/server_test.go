package mcp

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/model"
	"github.com/awantoch/flowsketch/workflow"
	mcp "github.com/metoro-io/mcp-golang"
	mcpstdio "github.com/metoro-io/mcp-golang/transport/stdio"
)

type fakeGenerator struct {
	wf     *model.Workflow
	err    error
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, description string) (*model.Workflow, error) {
	f.prompt = description
	return f.wf, f.err
}

// startTestServer launches an in-memory stdio MCP server with the given tool registrations and returns a client.
func startTestServer(t *testing.T, regs []ToolRegistration) *mcp.Client {
	serverReader, clientWriter := io.Pipe()
	clientReader, serverWriter := io.Pipe()
	server := mcp.NewServer(mcpstdio.NewStdioServerTransportWithIO(serverReader, serverWriter))
	if err := RegisterAllTools(server, regs); err != nil {
		t.Fatalf("RegisterAllTools failed: %v", err)
	}
	go func() {
		if err := server.Serve(); err != nil {
			t.Errorf("MCP server Serve failed: %v", err)
		}
	}()
	client := mcp.NewClient(mcpstdio.NewStdioServerTransportWithIO(clientReader, clientWriter))
	if _, err := client.Initialize(context.Background()); err != nil {
		t.Fatalf("Failed to initialize MCP client: %v", err)
	}
	return client
}

func TestListTools(t *testing.T) {
	client := startTestServer(t, []ToolRegistration{GenerateWorkflowTool(&fakeGenerator{})})
	resp, err := client.ListTools(context.Background(), new(string))
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}
	if len(resp.Tools) != 1 {
		t.Fatalf("Expected 1 tool, got %d", len(resp.Tools))
	}
	if resp.Tools[0].Name != "generate_workflow" {
		t.Errorf("unexpected tool name %q", resp.Tools[0].Name)
	}
}

func TestCallGenerateWorkflow(t *testing.T) {
	gen := &fakeGenerator{wf: &model.Workflow{
		MermaidSyntax: "graph TD\nA((Start))",
		Steps:         []model.WorkflowStep{{ID: "A", Title: "Start", Description: "d", Type: model.StepTrigger}},
	}}
	client := startTestServer(t, []ToolRegistration{GenerateWorkflowTool(gen)})

	resp, err := client.CallTool(context.Background(), "generate_workflow", GenerateWorkflowArgs{Prompt: "start"})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if len(resp.Content) == 0 || resp.Content[0].TextContent == nil {
		t.Fatalf("Expected text content, got %+v", resp.Content)
	}
	var wf model.Workflow
	if err := json.Unmarshal([]byte(resp.Content[0].TextContent.Text), &wf); err != nil {
		t.Fatalf("tool output is not workflow JSON: %v", err)
	}
	if wf.MermaidSyntax != "graph TD\nA((Start))" || len(wf.Steps) != 1 {
		t.Errorf("unexpected workflow: %+v", wf)
	}
	if gen.prompt != "start" {
		t.Errorf("expected prompt to be forwarded, got %q", gen.prompt)
	}
}

func TestCallGenerateWorkflow_Error(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"parse failure", &workflow.Error{Kind: workflow.KindInvalidShape, Msg: "workflow must be an array"}, constants.ResponseParseFailed},
		{"empty completion", &workflow.Error{Kind: workflow.KindEmptyCompletion, Msg: constants.ResponseEmptyCompletion}, "Failed to generate workflow: No response from completion service"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := startTestServer(t, []ToolRegistration{GenerateWorkflowTool(&fakeGenerator{err: tc.err})})

			// tool failures come back as error content, not as a transport error
			resp, err := client.CallTool(context.Background(), "generate_workflow", GenerateWorkflowArgs{Prompt: "start"})
			if err != nil {
				t.Fatalf("CallTool failed: %v", err)
			}
			if resp == nil || len(resp.Content) == 0 || resp.Content[0].TextContent == nil {
				t.Fatalf("Expected error text content, got %+v", resp)
			}
			if got := resp.Content[0].TextContent.Text; !strings.Contains(got, tc.want) {
				t.Errorf("expected %q in tool error, got %q", tc.want, got)
			}
		})
	}
}

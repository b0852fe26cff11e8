package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/model"
	"github.com/awantoch/flowsketch/utils"
	"github.com/awantoch/flowsketch/workflow"
	mcp "github.com/metoro-io/mcp-golang"
	mcphttp "github.com/metoro-io/mcp-golang/transport/http"
	mcpstdio "github.com/metoro-io/mcp-golang/transport/stdio"
)

// ToolRegistration holds a tool's registration info for the MCP server.
type ToolRegistration struct {
	Name        string
	Description string
	Handler     any // must be a func(ctx, args) (*mcp.ToolResponse, error)
}

// Generator produces a workflow from a description.
type Generator interface {
	Generate(ctx context.Context, description string) (*model.Workflow, error)
}

// GenerateWorkflowArgs are the arguments of the generate_workflow tool.
type GenerateWorkflowArgs struct {
	Prompt string `json:"prompt" jsonschema:"required,description=Plain-language description of the business workflow"`
}

// Options selects the MCP transport.
type Options struct {
	Stdio bool
	Addr  string
	Debug bool
}

// Serve starts the MCP server with the given tools. Over stdio it returns when ctx is
// cancelled; over HTTP it returns when the listener stops.
func Serve(ctx context.Context, opts Options, tools []ToolRegistration) error {
	// Stdout carries the protocol on stdio, so user-facing logs go quiet unless debugging.
	if opts.Stdio && !opts.Debug {
		utils.SetUserOutput(io.Discard)
	}

	var server *mcp.Server
	if opts.Stdio {
		utils.Info("Starting MCP server on stdio...")
		server = mcp.NewServer(mcpstdio.NewStdioServerTransport())
	} else {
		addr := opts.Addr
		if addr == "" {
			addr = constants.DefaultMCPAddr
		}
		utils.Info("Starting MCP server on HTTP at %s...", addr)
		server = mcp.NewServer(mcphttp.NewHTTPTransport("/mcp").WithAddr(addr))
	}
	if err := RegisterAllTools(server, tools); err != nil {
		return err
	}
	if err := server.Serve(); err != nil {
		return err
	}
	if opts.Stdio {
		<-ctx.Done()
		utils.Info("Shutting down MCP stdio server")
	}
	return nil
}

// RegisterAllTools registers all provided tools with the MCP server.
func RegisterAllTools(server *mcp.Server, tools []ToolRegistration) error {
	for _, t := range tools {
		if err := server.RegisterTool(t.Name, t.Description, t.Handler); err != nil {
			return utils.Errorf("register tool %s: %w", t.Name, err)
		}
	}
	return nil
}

// GenerateWorkflowTool exposes gen as the generate_workflow tool. The result is the
// workflow JSON as text content; failures carry the same messages the HTTP API returns.
func GenerateWorkflowTool(gen Generator) ToolRegistration {
	return ToolRegistration{
		Name:        constants.MCPToolGenerateWorkflow,
		Description: constants.MCPToolGenerateWorkflowDesc,
		Handler: func(ctx context.Context, args GenerateWorkflowArgs) (*mcp.ToolResponse, error) {
			ctx = utils.WithRequestID(ctx, utils.NewRequestID())
			wf, err := gen.Generate(ctx, args.Prompt)
			if err != nil {
				return nil, errors.New(workflow.UserMessage(err))
			}
			data, err := json.Marshal(wf)
			if err != nil {
				return nil, utils.Errorf("marshal workflow: %w", err)
			}
			return mcp.NewToolResponse(mcp.NewTextContent(string(data))), nil
		},
	}
}

package constants

// CLI Commands and Subcommands
const (
	CmdServe    = "serve"
	CmdGenerate = "generate"
	CmdGraph    = "graph"
	CmdPrompt   = "prompt"
	CmdMCP      = "mcp"
)

// CLI Short Descriptions
const (
	DescServe       = "Start the flowsketch HTTP server"
	DescGenerate    = "Generate a workflow and flowchart from a plain-English description"
	DescGraph       = "Render a saved workflow as a Mermaid or Graphviz diagram"
	DescPrompt      = "Print the system prompt sent to the completion service"
	DescMCPCommands = "MCP server commands"
	DescMCPServe    = "Serve flowsketch as an MCP server (HTTP or stdio)"
)

// Output Formats
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMermaid = "mermaid"
	FormatDOT     = "dot"
)

// CLI Error Messages
const (
	ErrUnknownFormat     = "unknown output format: %s"
	ErrReadFileFailed    = "failed to read workflow file: %w"
	ErrWriteOutputFailed = "failed to write output file: %w"
	ErrMarshalFailed     = "failed to marshal result: %w"
)

// CLI Output Messages
const (
	MsgDraftWritten = "Workflow written to %s"
)

// MCP
const (
	MCPToolGenerateWorkflow     = "generate_workflow"
	MCPToolGenerateWorkflowDesc = "Turn a plain-English workflow description into typed steps and a Mermaid flowchart"
	DefaultMCPAddr              = ":9090"
)

package constants

// HTTP Response Messages
const (
	ResponsePromptRequired       = "Prompt is required"
	ResponseParseFailed          = "Failed to parse workflow response"
	ResponseGenerateFailedFmt    = "Failed to generate workflow: %s"
	ResponseMethodNotAllowed     = "method not allowed"
	ResponseEmptyCompletion      = "No response from completion service"
	ResponseMissingCredentialFmt = "%s is not set in environment variables"
)

// Error Messages for Logging
const (
	LogFailedWriteHealthCheck = "Failed to write health check response: %v"
	LogJSONEncodeFailed       = "json.Encode failed: %v"
	LogWorkflowParseError     = "JSON parsing error"
	LogWorkflowGenerateError  = "Workflow generation error"
	LogEventPublishFailed     = "Failed to publish %s event: %v"
)

// Event Topics
const (
	TopicWorkflowGenerated = "workflow.generated"
	TopicWorkflowFailed    = "workflow.failed"
)

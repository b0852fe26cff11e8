package constants

// Content Types
const (
	ContentTypeJSON = "application/json"
)

// HTTP Headers
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)

// HTTP Routes
const (
	RouteGenerateWorkflow = "/api/generate-workflow"
	RouteHealthz          = "/healthz"
	RouteMetrics          = "/metrics"
)

// HealthCheckResponse is the static body served by the health endpoint.
const HealthCheckResponse = `{"status":"ok"}`

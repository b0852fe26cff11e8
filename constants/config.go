package constants

// Configuration Files
const (
	ConfigFileName = "flowsketch.config.json"
)

// Environment Variables
const (
	EnvDebug        = "FLOWSKETCH_DEBUG"
	EnvModel        = "FLOWSKETCH_MODEL"
	EnvProvider     = "FLOWSKETCH_PROVIDER"
	EnvPort         = "PORT"
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
)

// Completion Providers
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Completion Defaults
const (
	DefaultModel          = "gpt-3.5-turbo-1106"
	DefaultAnthropicModel = "claude-3-5-haiku-20241022"
	DefaultTemperature    = 0.7
	DefaultMaxTokens      = 1500
	DefaultTimeout        = "60s"
	DefaultOpenAIBaseURL  = "https://api.openai.com/v1"
)

// HTTP Defaults
const (
	DefaultHTTPHost = "0.0.0.0"
	DefaultHTTPPort = 3000
)

// Secrets Drivers
const (
	SecretsDriverEnv = "env"
	SecretsDriverAWS = "aws-sm"
)

// Event Drivers
const (
	EventDriverMemory = "memory"
	EventDriverNATS   = "nats"

	NATSClusterID = "flowsketch"
	NATSClientID  = "flowsketch-client"
)

// Tracing Exporters
const (
	TracingExporterStdout = "stdout"
	TracingExporterOTLP   = "otlp"
	DefaultServiceName    = "flowsketch"
)

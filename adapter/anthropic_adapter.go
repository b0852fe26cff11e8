package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/awantoch/flowsketch/constants"
)

// AnthropicAdapter calls the Anthropic Messages API. It has no JSON response mode; the
// system prompt alone constrains the output.
type AnthropicAdapter struct {
	client anthropic.Client
}

var _ Completer = (*AnthropicAdapter)(nil)

// NewAnthropicAdapter returns an adapter for baseURL (the public API when empty).
func NewAnthropicAdapter(apiKey, baseURL string, httpClient *http.Client) *AnthropicAdapter {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// retries stay with the caller
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &AnthropicAdapter{client: anthropic.NewClient(opts...)}
}

func (a *AnthropicAdapter) ID() string {
	return constants.ProviderAnthropic
}

type anthropicErrorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends one user message and concatenates the text blocks of the reply.
func (a *AnthropicAdapter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = constants.DefaultMaxTokens
	}
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(req.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			upstream := &UpstreamError{Provider: "Anthropic", Status: apiErr.StatusCode, Message: http.StatusText(apiErr.StatusCode)}
			var eb anthropicErrorBody
			if json.Unmarshal([]byte(apiErr.RawJSON()), &eb) == nil && eb.Error.Message != "" {
				upstream.Message = eb.Error.Message
			}
			return "", upstream
		}
		return "", fmt.Errorf("Anthropic API request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	return stripCodeFence(sb.String()), nil
}

// stripCodeFence removes a surrounding ``` or ```json fence, which models without a JSON
// mode tend to add.
func stripCodeFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") || !strings.HasSuffix(t, "```") || len(t) < 6 {
		return s
	}
	t = strings.TrimSuffix(strings.TrimPrefix(t, "```"), "```")
	if nl := strings.IndexByte(t, '\n'); nl >= 0 && !strings.ContainsAny(t[:nl], "{[") {
		t = t[nl+1:]
	}
	return strings.TrimSpace(t)
}

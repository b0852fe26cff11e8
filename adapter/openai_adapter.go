package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/awantoch/flowsketch/constants"
)

// OpenAIAdapter calls the OpenAI chat completions API.
type OpenAIAdapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

var _ Completer = (*OpenAIAdapter)(nil)

// NewOpenAIAdapter returns an adapter for baseURL (the public API when empty).
func NewOpenAIAdapter(apiKey, baseURL string, client *http.Client) *OpenAIAdapter {
	if baseURL == "" {
		baseURL = constants.DefaultOpenAIBaseURL
	}
	if client == nil {
		client = defaultHTTPClient()
	}
	return &OpenAIAdapter{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (a *OpenAIAdapter) ID() string {
	return constants.ProviderOpenAI
}

// OpenAI API structures
type OpenAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponseFormat struct {
	Type string `json:"type"`
}

type OpenAIRequest struct {
	Model          string                `json:"model"`
	Messages       []OpenAIMessage       `json:"messages"`
	Temperature    *float64              `json:"temperature,omitempty"`
	MaxTokens      *int                  `json:"max_tokens,omitempty"`
	ResponseFormat *OpenAIResponseFormat `json:"response_format,omitempty"`
	Stream         bool                  `json:"stream"`
}

type OpenAIChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string  `json:"role"`
		Content *string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type OpenAIResponse struct {
	ID      string         `json:"id"`
	Model   string         `json:"model"`
	Choices []OpenAIChoice `json:"choices"`
	Usage   struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

type openAIErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends req to /chat/completions and returns the first choice's content.
func (a *OpenAIAdapter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body := OpenAIRequest{
		Model: req.Model,
		Messages: []OpenAIMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		Temperature: &req.Temperature,
	}
	if req.MaxTokens > 0 {
		body.MaxTokens = &req.MaxTokens
	}
	if req.JSONObject {
		body.ResponseFormat = &OpenAIResponseFormat{Type: "json_object"}
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	httpReq.Header.Set(constants.HeaderAuthorization, "Bearer "+a.apiKey)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("OpenAI API request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read OpenAI response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstream := &UpstreamError{Provider: "OpenAI", Status: resp.StatusCode}
		var eb openAIErrorBody
		if json.Unmarshal(data, &eb) == nil {
			upstream.Message = eb.Error.Message
		}
		return "", upstream
	}

	var openaiResp OpenAIResponse
	if err := json.Unmarshal(data, &openaiResp); err != nil {
		return "", fmt.Errorf("failed to decode OpenAI response: %w", err)
	}
	if len(openaiResp.Choices) == 0 || openaiResp.Choices[0].Message.Content == nil {
		return "", nil
	}
	return *openaiResp.Choices[0].Message.Content, nil
}

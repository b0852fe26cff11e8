// Package adapter talks to chat-completion services.
package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/awantoch/flowsketch/config"
	"github.com/awantoch/flowsketch/constants"
)

// CompletionRequest is a single-turn chat completion: one system and one user message.
type CompletionRequest struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	// JSONObject asks the service to constrain its output to a JSON object when it supports that.
	JSONObject bool
}

// Completer is implemented by every completion backend. Complete returns the text of the
// first choice; an empty string means the service replied without content.
type Completer interface {
	ID() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// UpstreamError is a non-success reply from a completion service.
type UpstreamError struct {
	Provider string
	Status   int
	Message  string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s API error: status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s API error: status %d: %s", e.Provider, e.Status, e.Message)
}

// Registry holds completers by provider ID.
type Registry struct {
	completers map[string]Completer
}

func NewRegistry() *Registry {
	return &Registry{completers: make(map[string]Completer)}
}

func (r *Registry) Register(c Completer) {
	r.completers[c.ID()] = c
}

func (r *Registry) Get(id string) (Completer, bool) {
	c, ok := r.completers[strings.ToLower(id)]
	return c, ok
}

// NewCompleter builds the completer named by cfg.Completion.Provider, authenticated with apiKey.
// It is meant to be called once at startup; the result is safe for concurrent use.
func NewCompleter(cfg *config.Config, apiKey string) (Completer, error) {
	timeout, err := cfg.CompletionTimeout()
	if err != nil {
		return nil, err
	}
	httpClient := &http.Client{Timeout: timeout}

	reg := NewRegistry()
	reg.Register(NewOpenAIAdapter(apiKey, cfg.Completion.BaseURL, httpClient))
	reg.Register(NewAnthropicAdapter(apiKey, cfg.Completion.BaseURL, httpClient))

	c, ok := reg.Get(cfg.Completion.Provider)
	if !ok {
		return nil, fmt.Errorf("unsupported completion provider: %s", cfg.Completion.Provider)
	}
	return c, nil
}

// defaultHTTPClient is used when a caller passes no client.
func defaultHTTPClient() *http.Client {
	timeout, _ := time.ParseDuration(constants.DefaultTimeout)
	return &http.Client{Timeout: timeout}
}

// Package llm provides chat backend client interfaces and implementations.
package llm

import (
	"context"
	"fmt"
	"time"
)

// ChatMessage represents a chat message for the backend.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest represents a completion request. System carries the
// fixed persona instruction; Messages is the dialogue, oldest first.
type CompletionRequest struct {
	Model       string
	System      string
	Messages    []ChatMessage
	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
}

// CompletionResponse represents a completion response.
type CompletionResponse struct {
	Content    string
	Model      string
	TokensIn   int
	TokensOut  int
	StopReason string
	LatencyMs  int64
}

// Client is the interface for chat backend providers.
type Client interface {
	// Complete sends a completion request and returns the reply.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name.
	Name() string

	// Models returns available models.
	Models() []string
}

// Provider is the type of chat backend provider.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// Options are the generation parameters fixed for a session. They are
// never renegotiated per message.
type Options struct {
	Model       string
	System      string
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultOptions returns the GameBot generation parameters.
func DefaultOptions() Options {
	return Options{
		System:      GamingPrompt,
		Temperature: 0.7,
		TopP:        0.85,
		TopK:        40,
		MaxTokens:   2048,
		Timeout:     60 * time.Second,
	}
}

// Request builds a completion request from the options and a dialogue.
func (o Options) Request(messages []ChatMessage) *CompletionRequest {
	return &CompletionRequest{
		Model:       o.Model,
		System:      o.System,
		Messages:    messages,
		MaxTokens:   o.MaxTokens,
		Temperature: o.Temperature,
		TopP:        o.TopP,
		TopK:        o.TopK,
	}
}

// NewClient creates a chat backend client for the provider.
func NewClient(ctx context.Context, provider Provider, apiKey string) (Client, error) {
	switch provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, apiKey)
	case ProviderAnthropic:
		return NewAnthropicClient(apiKey)
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey)
	default:
		return nil, fmt.Errorf("unsupported chat provider %q", provider)
	}
}

// dropLeadingAssistant removes assistant turns before the first user
// turn. Gemini and Anthropic reject dialogues that open with the model.
func dropLeadingAssistant(messages []ChatMessage) []ChatMessage {
	for i, msg := range messages {
		if msg.Role != "assistant" {
			return messages[i:]
		}
	}
	return nil
}

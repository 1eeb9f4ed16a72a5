package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/genai"
)

const geminiDefaultModel = "gemini-2.0-flash"

// geminiModels is the subset of genai.Models the client calls.
type geminiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGenaiClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// GeminiClient is the Google Gemini chat backend client.
type GeminiClient struct {
	models geminiModels
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	client, err := newGenaiClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &GeminiClient{models: client.Models}, nil
}

// Name returns the provider name.
func (c *GeminiClient) Name() string {
	return string(ProviderGemini)
}

// Models returns available models.
func (c *GeminiClient) Models() []string {
	return []string{
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-1.5-pro",
		"gemini-1.5-flash",
	}
}

// Complete sends a completion request.
func (c *GeminiClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()

	model := req.Model
	if model == "" {
		model = geminiDefaultModel
	}

	messages := dropLeadingAssistant(req.Messages)
	if len(messages) == 0 {
		return nil, errors.New("at least one user message is required")
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := genai.Role(genai.RoleUser)
		if msg.Role == "assistant" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(req.Temperature)),
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.TopP > 0 {
		config.TopP = genai.Ptr(float32(req.TopP))
	}
	if req.TopK > 0 {
		config.TopK = genai.Ptr(float32(req.TopK))
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, err
	}

	content := geminiText(resp)
	if content == "" {
		return nil, errors.New("Gemini returned an empty reply")
	}

	out := &CompletionResponse{
		Content:   content,
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if resp.UsageMetadata != nil {
		out.TokensIn = int(resp.UsageMetadata.PromptTokenCount)
		out.TokensOut = int(resp.UsageMetadata.CandidatesTokenCount)
	}
	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		out.StopReason = string(resp.Candidates[0].FinishReason)
	}

	return out, nil
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought || part.Text == "" {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}

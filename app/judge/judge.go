// Package judge wraps the language-model completion endpoint used for
// relevance scoring and summarization.
package judge

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

// Usage holds cumulative token counts for a run.
type Usage struct {
	InputTokens  int64 `json:"input"`
	OutputTokens int64 `json:"output"`
}

// Judge is the completion contract the pipeline components depend on.
// Usage accounting is cumulative and reset explicitly at run start.
type Judge interface {
	Complete(ctx context.Context, prompt, system string) (string, error)
	Usage() Usage
	ResetUsage()
}

// GeminiJudge implements Judge backed by the Gemini API.
type GeminiJudge struct {
	client *genai.Client
	model  string

	mu    sync.Mutex
	usage Usage
}

var _ Judge = (*GeminiJudge)(nil)

func NewGemini(ctx context.Context, apiKey, model string) (*GeminiJudge, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiJudge{client: client, model: model}, nil
}

// Complete sends a single-turn prompt with an optional system instruction and
// returns the reply text.
func (j *GeminiJudge) Complete(ctx context.Context, prompt, system string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	resp, err := j.client.Models.GenerateContent(ctx, j.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp.UsageMetadata != nil {
		j.mu.Lock()
		j.usage.InputTokens += int64(resp.UsageMetadata.PromptTokenCount)
		j.usage.OutputTokens += int64(resp.UsageMetadata.CandidatesTokenCount)
		j.mu.Unlock()
	}

	return resp.Text(), nil
}

func (j *GeminiJudge) Usage() Usage {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.usage
}

func (j *GeminiJudge) ResetUsage() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.usage = Usage{}
}

// Package extract drives the generative stages of the pipeline: turning
// natural-language rule text into structured rule records, and inferring the
// implicit channels those records touch. The model service is an external
// collaborator; its output re-enters the pipeline only after validation.
package extract

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient is the completion surface the extraction stages need. The
// production implementation talks to an OpenAI-compatible endpoint; tests
// substitute a canned one.
type ChatClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OpenAIClient adapts the go-openai client to ChatClient.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// NewOpenAIClient builds a client against an OpenAI-compatible base URL.
func NewOpenAIClient(apiKey, baseURL, model string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg), model: model}
}

// Complete sends one user prompt and returns the raw completion text.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

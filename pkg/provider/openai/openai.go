// Package openai implements the OpenAI chat completion provider
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/xinguang/stock-sentinel/pkg/provider"
)

// ErrNoChoices is returned when the API responds without any completion
var ErrNoChoices = errors.New("no choices in OpenAI response")

// Provider implements the OpenAI API provider
type Provider struct {
	client *goopenai.Client
}

// New creates a new OpenAI provider. baseURL may be empty for the default
// endpoint; a custom URL points at any OpenAI-compatible server.
func New(apiKey, baseURL string) *Provider {
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Provider{
		client: goopenai.NewClientWithConfig(cfg),
	}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "openai"
}

// Generate performs one blocking completion
func (p *Provider) Generate(ctx context.Context, req *provider.Request) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("call openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Package enhance rewrites raw transcripts through a local LLM exposed on
// an OpenAI-compatible endpoint (e.g. a llama.cpp server).
package enhance

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = `You clean raw speech-to-text output.
Rules:
- Preserve meaning.
- Keep wording close to the original.
- Fix punctuation, capitalization, and obvious transcription mistakes.
- Return only cleaned text.`

// Config describes the local rewrite endpoint.
type Config struct {
	Enabled     bool
	Endpoint    string
	Model       string
	Temperature float32
}

type completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Enhancer cleans transcript text. Any internal failure returns the input
// unchanged; dictation never depends on the rewrite model being up.
type Enhancer struct {
	client      completer
	model       string
	temperature float32
	enabled     bool
	reason      string
}

func New(cfg Config) *Enhancer {
	e := &Enhancer{model: cfg.Model, temperature: cfg.Temperature, enabled: cfg.Enabled}
	if !cfg.Enabled {
		return e
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		e.reason = "enhancer_endpoint is empty"
		return e
	}
	clientCfg := openai.DefaultConfig("local")
	clientCfg.BaseURL = strings.TrimRight(cfg.Endpoint, "/")
	e.client = openai.NewClientWithConfig(clientCfg)
	return e
}

// Status reports "enabled", "disabled", or "disabled (<reason>)".
func (e *Enhancer) Status() string {
	if !e.enabled {
		return "disabled"
	}
	if e.reason != "" {
		return "disabled (" + e.reason + ")"
	}
	return "enabled"
}

// Enhance returns the cleaned text, or the input unchanged when the
// enhancer is unavailable, the model fails, or it produces nothing.
func (e *Enhancer) Enhance(ctx context.Context, text string) (string, error) {
	if e.client == nil || strings.TrimSpace(text) == "" {
		return text, nil
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: e.temperature,
		TopP:        0.9,
		MaxTokens:   maxTokensFor(text),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return text, err
	}
	if len(resp.Choices) == 0 {
		return text, nil
	}
	cleaned := strings.TrimSpace(resp.Choices[0].Message.Content)
	if cleaned == "" {
		return text, nil
	}
	return cleaned, nil
}

func maxTokensFor(text string) int {
	tokens := len(text) * 2
	if tokens < 64 {
		return 64
	}
	if tokens > 256 {
		return 256
	}
	return tokens
}

// Package ai wraps the Gemini API for chat generation and text embeddings.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/fintrack/backend/internal/domain/chat"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"google.golang.org/genai"
)

// Client is a thin wrapper over the genai client pinned to the configured models.
type Client struct {
	genai          *genai.Client
	chatModel      string
	embeddingModel string
	timeout        time.Duration
}

// NewClient creates a Gemini-backed AI client
func NewClient(ctx context.Context, cfg config.AIConfig) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{
		genai:          client,
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		timeout:        cfg.RequestTimeout,
	}, nil
}

// ChatModel returns the configured chat model name
func (c *Client) ChatModel() string {
	return c.chatModel
}

// EmbedText returns the embedding vector for a piece of text
func (c *Client) EmbedText(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.genai.Models.EmbedContent(ctx, c.embeddingModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("embed content: empty response")
	}
	values := resp.Embeddings[0].Values
	vector := make([]float64, len(values))
	for i, v := range values {
		vector[i] = float64(v)
	}
	return vector, nil
}

// StreamChat streams a model response for the given system instruction and
// conversation history. onDelta is invoked for each text fragment as it
// arrives; the full concatenated response is returned at the end.
func (c *Client) StreamChat(ctx context.Context, system string, history []chat.Message, onDelta func(delta string) error) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := genai.RoleUser
		if msg.Role == chat.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}

	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: system}},
			},
		}
	}

	var full string
	for resp, err := range c.genai.Models.GenerateContentStream(ctx, c.chatModel, contents, cfg) {
		if err != nil {
			return full, fmt.Errorf("generate content: %w", err)
		}
		delta := resp.Text()
		if delta == "" {
			continue
		}
		full += delta
		if onDelta != nil {
			if err := onDelta(delta); err != nil {
				return full, err
			}
		}
	}
	return full, nil
}

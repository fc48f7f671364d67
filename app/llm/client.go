// Package llm wraps the completion service used for takeaways, article
// questions, and draft generation.
package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrMissingFields is returned when a question call lacks one of its
// required inputs. Distinct from provider failures so the HTTP layer can
// answer 400 instead of 500.
var ErrMissingFields = errors.New("question, title and summary are all required")

const (
	takeawaySystemPrompt = "You are a helpful assistant that generates one-line key takeaways from news articles. Keep it brief and focused on the main point."
	askSystemPrompt      = "You are a helpful assistant that answers questions about news articles. Keep responses concise and informative."
	writerSystemPrompt   = "You are a technology journalist. Write a short, well-structured news article on the given topic with a headline and two or three paragraphs."

	samplingTemperature = 0.7
)

// Client calls an OpenAI-compatible completion API.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a completion client. Set baseURL to a non-empty string
// to point at a local OpenAI-compatible server; leave empty for
// api.openai.com.
func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// Takeaway produces a one-line takeaway for an article.
func (c *Client) Takeaway(ctx context.Context, title, summary string) (string, error) {
	user := fmt.Sprintf("Title: %s\n\nSummary: %s\n\nProvide a one-line key takeaway from this article.", title, summary)
	return c.complete(ctx, takeawaySystemPrompt, user, 60)
}

// Ask answers a free-form question about an article. All three inputs are
// required.
func (c *Client) Ask(ctx context.Context, question, title, summary string) (string, error) {
	if question == "" || title == "" || summary == "" {
		return "", ErrMissingFields
	}

	user := fmt.Sprintf("Article Title: %s\nArticle Summary: %s\n\nQuestion: %s\n\nPlease answer this question about the article.", title, summary, question)
	return c.complete(ctx, askSystemPrompt, user, 150)
}

// WriteArticle drafts a short article on the given topic.
func (c *Client) WriteArticle(ctx context.Context, topic string) (string, error) {
	user := fmt.Sprintf("Write an article about: %s", topic)
	return c.complete(ctx, writerSystemPrompt, user, 700)
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: samplingTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from model %q", c.model)
	}

	return resp.Choices[0].Message.Content, nil
}

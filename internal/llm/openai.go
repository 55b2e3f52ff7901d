package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"docdigest/internal/config"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI is a Generator backed by an OpenAI-compatible chat completions API.
// Only text and image parts are accepted.
type OpenAI struct {
	client chatCompleter
	model  string
}

// NewOpenAI creates a chat completions client. cfg.BaseURL may point at any
// compatible endpoint.
func NewOpenAI(cfg config.ModelConfig, httpClient *http.Client) *OpenAI {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	if httpClient != nil {
		oc.HTTPClient = httpClient
	}
	return &OpenAI{client: openai.NewClientWithConfig(oc), model: cfg.Model}
}

var _ Generator = (*OpenAI)(nil)

// Generate sends all parts as a single user message.
func (o *OpenAI) Generate(ctx context.Context, parts ...Part) (string, error) {
	msg, err := userMessage(parts)
	if err != nil {
		return "", err
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: []openai.ChatCompletionMessage{msg},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func userMessage(parts []Part) (openai.ChatCompletionMessage, error) {
	msg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}

	hasBlob := false
	for _, p := range parts {
		if p.IsBlob() {
			hasBlob = true
			break
		}
	}

	if !hasBlob {
		texts := make([]string, 0, len(parts))
		for _, p := range parts {
			texts = append(texts, p.Text)
		}
		msg.Content = strings.Join(texts, "\n\n")
		return msg, nil
	}

	for _, p := range parts {
		if !p.IsBlob() {
			msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeText,
				Text: p.Text,
			})
			continue
		}
		if !strings.HasPrefix(p.MIMEType, "image/") {
			return msg, fmt.Errorf("%w: %s", ErrUnsupportedPart, p.MIMEType)
		}
		msg.MultiContent = append(msg.MultiContent, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data),
				Detail: openai.ImageURLDetailHigh,
			},
		})
	}
	return msg, nil
}

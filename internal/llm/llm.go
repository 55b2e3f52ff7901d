// Package llm wraps the external generative model behind a small Generator
// contract so stages do not depend on a specific provider SDK.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"docdigest/internal/config"
)

var (
	// ErrEmptyResponse is returned when the model answers without any text.
	ErrEmptyResponse = errors.New("model returned an empty response")
	// ErrUnsupportedPart is returned when a provider cannot accept a binary part's MIME type.
	ErrUnsupportedPart = errors.New("provider does not accept this content type")
)

// Part is one element of a prompt: either text or binary data with a MIME type.
type Part struct {
	Text     string
	Data     []byte
	MIMEType string
}

// IsBlob reports whether the part carries binary data.
func (p Part) IsBlob() bool {
	return p.Data != nil
}

// Text builds a text part.
func Text(s string) Part {
	return Part{Text: s}
}

// Blob builds a binary part.
func Blob(data []byte, mimeType string) Part {
	return Part{Data: data, MIMEType: mimeType}
}

// Generator produces a text completion for a multi-part prompt.
type Generator interface {
	Generate(ctx context.Context, parts ...Part) (string, error)
}

// New builds the Generator selected by cfg.Provider. The HTTP transport is
// instrumented with OpenTelemetry.
func New(ctx context.Context, cfg config.ModelConfig) (Generator, error) {
	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg, httpClient)
	case config.ProviderOpenAI:
		return NewOpenAI(cfg, httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported model provider %q", cfg.Provider)
	}
}

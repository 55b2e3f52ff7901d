// Package stage holds the model-backed steps of the digitization pipeline.
// Each stage owns a fixed instruction template and a narrow input/output
// contract, and reports failures as *Error values.
package stage

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"docdigest/internal/llm"
)

var tracer = otel.Tracer("docdigest/stage")

// caller runs one bounded model call and classifies its failure.
type caller struct {
	gen     llm.Generator
	timeout time.Duration
}

func (c caller) generate(ctx context.Context, op string, parts ...llm.Part) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, span := tracer.Start(ctx, "stage."+op)
	defer span.End()
	span.SetAttributes(attribute.Int("prompt.parts", len(parts)))

	out, err := c.gen.Generate(ctx, parts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, llm.ErrUnsupportedPart) {
			return "", Fail(op, ErrUnsupportedKind, err)
		}
		return "", Fail(op, ErrModelCall, err)
	}
	span.SetAttributes(attribute.Int("response.length", len(out)))
	return out, nil
}

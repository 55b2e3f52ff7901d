package stage

import (
	"context"
	"time"

	"docdigest/internal/llm"
)

// Corrector asks the model to fix recognition errors in extracted text.
type Corrector struct {
	caller
}

func NewCorrector(gen llm.Generator, timeout time.Duration) *Corrector {
	return &Corrector{caller{gen: gen, timeout: timeout}}
}

// Correct returns the model output verbatim.
func (c *Corrector) Correct(ctx context.Context, text string) (string, error) {
	return c.generate(ctx, "correct", llm.Text(correctionInstruction(text)))
}

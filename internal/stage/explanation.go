package stage

import (
	"context"
	"time"

	"docdigest/internal/llm"
)

// Explainer asks the model for a plain-language explanation of a text.
type Explainer struct {
	caller
}

func NewExplainer(gen llm.Generator, timeout time.Duration) *Explainer {
	return &Explainer{caller{gen: gen, timeout: timeout}}
}

// Explain returns the model output verbatim.
func (e *Explainer) Explain(ctx context.Context, text string) (string, error) {
	return e.generate(ctx, "explain", llm.Text(explanationInstruction(text)))
}

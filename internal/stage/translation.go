package stage

import (
	"context"
	"strings"
	"time"

	"docdigest/internal/llm"
	"docdigest/internal/model"
)

// Translator asks the model to translate text into a target language.
type Translator struct {
	caller
}

func NewTranslator(gen llm.Generator, timeout time.Duration) *Translator {
	return &Translator{caller{gen: gen, timeout: timeout}}
}

// Translate returns the input unchanged, without a model call, when the
// current language already matches the target (case-insensitive).
func (t *Translator) Translate(ctx context.Context, req model.TranslationRequest) (model.TranslationResult, error) {
	target := req.TargetLanguage
	if target == "" {
		target = model.DefaultTargetLanguage
	}

	if strings.EqualFold(req.CurrentLanguage, target) {
		return model.TranslationResult{TranslatedText: req.Text, AlreadyTargetLanguage: true}, nil
	}

	out, err := t.generate(ctx, "translate", llm.Text(translationInstruction(req.Text, target)))
	if err != nil {
		return model.TranslationResult{}, err
	}
	return model.TranslationResult{TranslatedText: out}, nil
}

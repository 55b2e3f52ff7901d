// Package parser turns raw extraction responses from the model into an
// accuracy score and clean text.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"docdigest/internal/model"
)

// DefaultAccuracy is reported when a response carries no accuracy marker.
const DefaultAccuracy = 100

// ResponseParser extracts an ExtractionResult from a raw model response.
// Implementations never fail; malformed input yields a best-effort result.
type ResponseParser interface {
	Parse(raw string) model.ExtractionResult
}

var (
	accuracyMarker = regexp.MustCompile(`\[Accuracy:\s*(\d+)%\]`)
	textLabel      = regexp.MustCompile(`(?i)^Extracted Text:\s*`)
)

// MarkerParser reads a "[Accuracy: NN%]" marker and strips the
// "Extracted Text:" label the extraction prompt asks for.
type MarkerParser struct{}

// New returns the default ResponseParser.
func New() *MarkerParser {
	return &MarkerParser{}
}

var _ ResponseParser = (*MarkerParser)(nil)

// Parse implements ResponseParser.
func (p *MarkerParser) Parse(raw string) model.ExtractionResult {
	accuracy := DefaultAccuracy
	text := raw

	if m := accuracyMarker.FindStringSubmatch(raw); m != nil {
		accuracy = clampAccuracy(m[1])
		text = strings.ReplaceAll(raw, m[0], "")
	}

	text = strings.TrimSpace(text)
	text = textLabel.ReplaceAllString(text, "")

	return model.ExtractionResult{
		AccuracyPercent: accuracy,
		Text:            strings.TrimSpace(text),
	}
}

func clampAccuracy(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil || n > 100 {
		// only overflow reaches err; \d+ guarantees digits
		return 100
	}
	return n
}

package stage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"docdigest/internal/llm"
	"docdigest/internal/model"
)

// formats the model accepts as-is; anything else is re-encoded to PNG.
var passthroughFormats = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
}

// Extractor asks the model for a verbatim transcription of a document.
type Extractor struct {
	caller
}

// NewExtractor builds an Extractor. A zero timeout leaves calls unbounded.
func NewExtractor(gen llm.Generator, timeout time.Duration) *Extractor {
	return &Extractor{caller{gen: gen, timeout: timeout}}
}

// Extract returns the raw model response for doc, uninterpreted.
func (e *Extractor) Extract(ctx context.Context, doc model.Document) (string, error) {
	const op = "extract"

	if len(doc.Data) == 0 {
		return "", Fail(op, ErrInputMissing, nil)
	}

	var content llm.Part
	switch doc.Kind {
	case model.KindImage:
		data, mimeType, err := decodeImage(doc.Data)
		if err != nil {
			return "", Fail(op, ErrUnsupportedKind, err)
		}
		content = llm.Blob(data, mimeType)
	case model.KindPDF:
		content = llm.Blob(doc.Data, "application/pdf")
	default:
		return "", Fail(op, ErrUnsupportedKind, fmt.Errorf("kind %q", doc.Kind))
	}

	return e.generate(ctx, op, llm.Text(extractionPrompt), content)
}

// decodeImage checks that data is a decodable pixel image and returns bytes
// in a format the model accepts.
func decodeImage(data []byte) ([]byte, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if mimeType, ok := passthroughFormats[format]; ok {
		return data, mimeType, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), "image/png", nil
}

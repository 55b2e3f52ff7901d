package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Kind discriminates the documents the pipeline accepts.
type Kind string

const (
	KindImage Kind = "image"
	KindPDF   Kind = "pdf"
)

// ErrUnsupportedKind is returned when a filename does not map to a known Kind.
var ErrUnsupportedKind = errors.New("unsupported document kind")

var kindByExt = map[string]Kind{
	".pdf":  KindPDF,
	".png":  KindImage,
	".jpg":  KindImage,
	".jpeg": KindImage,
	".gif":  KindImage,
	".bmp":  KindImage,
	".tif":  KindImage,
	".tiff": KindImage,
	".webp": KindImage,
}

// KindFromFilename derives the document kind from the file extension.
func KindFromFilename(name string) (Kind, error) {
	k, ok := kindByExt[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, filepath.Ext(name))
	}
	return k, nil
}

// Document is an uploaded file held in memory for a single pipeline run.
type Document struct {
	Filename string
	Kind     Kind
	Data     []byte
}

// NewDocument builds a Document, deriving its kind from the filename.
func NewDocument(filename string, data []byte) (Document, error) {
	k, err := KindFromFilename(filename)
	if err != nil {
		return Document{}, err
	}
	return Document{Filename: SanitizeFilename(filename), Kind: k, Data: data}, nil
}

// ExtractionResult is the parsed form of a raw extraction response.
type ExtractionResult struct {
	AccuracyPercent int
	Text            string
}

// ProcessResult is returned by the upload flow.
type ProcessResult struct {
	AccuracyPercent int    `json:"accuracy"`
	CorrectedText   string `json:"extracted_text"`
	Filename        string `json:"filename"`
}

// DefaultTargetLanguage is used when a translation request names no target.
const DefaultTargetLanguage = "English"

// TranslationRequest exists for the duration of one translation call.
type TranslationRequest struct {
	Text            string
	TargetLanguage  string
	CurrentLanguage string
}

// TranslationResult carries the translated text. AlreadyTargetLanguage is set
// when the input was returned unchanged without calling the model.
type TranslationResult struct {
	TranslatedText        string
	AlreadyTargetLanguage bool
}

// DefaultExportName is used when an export request names no file.
const DefaultExportName = "document"

// ExportRequest asks for text to be rendered into a downloadable PDF.
type ExportRequest struct {
	Text         string
	Filename     string
	IsTranslated bool
}

// ExportResult is a rendered PDF along with its download name.
type ExportResult struct {
	Filename string
	Data     []byte
	Pages    int
}

// ExportFilename builds {base}_{translated|extracted}_{YYYYMMDD}.pdf.
func ExportFilename(base string, translated bool, at time.Time) string {
	base = SanitizeFilename(base)
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".pdf") {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" {
		base = DefaultExportName
	}
	variant := "extracted"
	if translated {
		variant = "translated"
	}
	return fmt.Sprintf("%s_%s_%s.pdf", base, variant, at.Format("20060102"))
}

// SanitizeFilename strips directories and replaces characters outside
// [A-Za-z0-9._-] with underscores. Leading dots are dropped.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}

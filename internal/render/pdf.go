// Package render lays plain text out as a paginated PDF.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"
)

// DefaultTitle is printed in the header of every page.
const DefaultTitle = "Document Translation"

const (
	fontFamily   = "Courier"
	bodyFontSize = 10
	rowHeight    = 5.0
	rowGap       = 4.0
)

// ErrInvalidLine marks a line that could not be encoded for the PDF text layer.
var ErrInvalidLine = errors.New("line is not valid UTF-8")

// PDF is a finished document.
type PDF struct {
	Data  []byte
	Pages int
	Rows  int
}

// Renderer converts text into PDF bytes. The zero value is not usable; call New.
type Renderer struct {
	log      zerolog.Logger
	title    string
	compress bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTitle overrides the page header text.
func WithTitle(title string) Option {
	return func(r *Renderer) { r.title = title }
}

// WithCompression toggles stream compression (on by default).
func WithCompression(on bool) Option {
	return func(r *Renderer) { r.compress = on }
}

// New builds a Renderer that reports skipped lines to log.
func New(log zerolog.Logger, opts ...Option) *Renderer {
	r := &Renderer{log: log, title: DefaultTitle, compress: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays out every non-blank line of text top to bottom, starting new
// pages as needed. Lines that fail to encode are logged and skipped.
func (r *Renderer) Render(text string) (*PDF, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.compress)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(0, 10, r.title, "", 1, "C", false, 0, "")
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(fontFamily, "", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(fontFamily, "", bodyFontSize)

	rows := 0
	for i, line := range Lines(text) {
		encoded, err := EncodeLine(line)
		if err != nil {
			r.log.Warn().Err(err).Int("line", i).Msg("skipping line during pdf render")
			continue
		}
		pdf.MultiCell(0, rowHeight, encoded, "", "L", false)
		pdf.Ln(rowGap)
		rows++
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}

	return &PDF{Data: buf.Bytes(), Pages: pdf.PageCount(), Rows: rows}, nil
}

// Lines normalises line endings and returns the lines that are not blank.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// EncodeLine converts a line to ISO-8859-1, which the built-in PDF fonts
// expect. Runes outside that repertoire, and control characters, become '?'.
func EncodeLine(line string) (string, error) {
	if !utf8.ValidString(line) {
		return "", ErrInvalidLine
	}
	out := make([]byte, 0, len(line))
	for _, r := range line {
		if r == '\t' {
			out = append(out, ' ')
			continue
		}
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok || unicode.IsControl(r) {
			b = '?'
		}
		out = append(out, b)
	}
	return string(out), nil
}

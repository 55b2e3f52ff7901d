package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromFilename(t *testing.T) {
	tests := []struct {
		name    string
		want    Kind
		wantErr bool
	}{
		{name: "scan.pdf", want: KindPDF},
		{name: "SCAN.PDF", want: KindPDF},
		{name: "photo.jpg", want: KindImage},
		{name: "photo.JPEG", want: KindImage},
		{name: "photo.png", want: KindImage},
		{name: "photo.webp", want: KindImage},
		{name: "notes.txt", wantErr: true},
		{name: "noextension", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KindFromFilename(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedKind)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewDocument(t *testing.T) {
	doc, err := NewDocument("../../etc/my scan.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, KindPDF, doc.Kind)
	assert.Equal(t, "my_scan.pdf", doc.Filename)

	_, err = NewDocument("archive.zip", []byte("PK"))
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestExportFilename(t *testing.T) {
	day := time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "report_translated_20240501.pdf", ExportFilename("report", true, day))
	assert.Equal(t, "report_extracted_20240501.pdf", ExportFilename("report", false, day))
	assert.Equal(t, "document_extracted_20240501.pdf", ExportFilename("", false, day))
	assert.Equal(t, "scan_extracted_20240501.pdf", ExportFilename("scan.pdf", false, day))
	assert.Equal(t, "report_extracted_20240501.pdf", ExportFilename("report.PDF", false, day))
	assert.Equal(t, "report_translated_20240501.pdf", ExportFilename("report.Pdf", true, day))
	assert.Equal(t, "notes.txt_extracted_20240501.pdf", ExportFilename("notes.txt", false, day))
	assert.Equal(t, "x_y_translated_20240501.pdf", ExportFilename("dir/x y", true, day))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "a_b.png", SanitizeFilename(`C:\Users\me\a b.png`))
	assert.Equal(t, "env", SanitizeFilename(".env"))
	assert.Equal(t, "", SanitizeFilename(""))
}

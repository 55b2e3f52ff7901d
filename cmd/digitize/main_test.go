package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_OUTPUT", "stderr")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestExportCmd(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "Line one\nLine two\n", "export", "--name", "report", "--translated", "--out", dir)
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Regexp(t, `^report_translated_\d{8}\.pdf$`, filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportCmd_NameFromInputFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "minutes.txt")
	require.NoError(t, os.WriteFile(src, []byte("agenda"), 0o644))

	out, err := run(t, "", "export", src, "--out", dir)
	require.NoError(t, err)
	assert.Regexp(t, `minutes_extracted_\d{8}\.pdf$`, strings.TrimSpace(out))
}

func TestExportCmd_EmptyInput(t *testing.T) {
	_, err := run(t, "   \n", "export", "--out", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input missing")
}

func TestProcessCmd_UnsupportedFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "notes.docx")
	require.NoError(t, os.WriteFile(src, []byte("PK"), 0o644))

	_, err := run(t, "", "process", src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document kind")
}

func TestTranslateCmd_RequiresAPIKey(t *testing.T) {
	t.Setenv("MODEL_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := run(t, "Hello", "translate", "--to", "German")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY is required")
}

func TestProcessCmd_MissingFile(t *testing.T) {
	_, err := run(t, "", "process", filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
}

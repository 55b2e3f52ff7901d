package stage

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"docdigest/internal/llm"
	llmMocks "docdigest/internal/llm/mocks"
	"docdigest/internal/model"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.Black)
	return img
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))
	return buf.Bytes()
}

func bmpBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, testImage()))
	return buf.Bytes()
}

func TestExtractor_Extract(t *testing.T) {
	ctx := context.Background()

	t.Run("pdf is sent as raw bytes", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		pdf := []byte("%PDF-1.7 ...")
		gen.On("Generate", mock.Anything, mock.MatchedBy(func(parts []llm.Part) bool {
			return len(parts) == 2 &&
				strings.Contains(parts[0].Text, "[Accuracy: XX%]") &&
				parts[1].MIMEType == "application/pdf" &&
				bytes.Equal(parts[1].Data, pdf)
		})).Return("[Accuracy: 95%]\nExtracted Text:\nhi", nil).Once()

		out, err := NewExtractor(gen, 0).Extract(ctx, model.Document{Kind: model.KindPDF, Data: pdf})
		require.NoError(t, err)
		assert.Equal(t, "[Accuracy: 95%]\nExtracted Text:\nhi", out)
		gen.AssertExpectations(t)
	})

	t.Run("png is passed through", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		data := pngBytes(t)
		gen.On("Generate", mock.Anything, mock.MatchedBy(func(parts []llm.Part) bool {
			return parts[1].MIMEType == "image/png" && bytes.Equal(parts[1].Data, data)
		})).Return("text", nil).Once()

		_, err := NewExtractor(gen, 0).Extract(ctx, model.Document{Kind: model.KindImage, Data: data})
		require.NoError(t, err)
		gen.AssertExpectations(t)
	})

	t.Run("bmp is re-encoded as png", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		gen.On("Generate", mock.Anything, mock.MatchedBy(func(parts []llm.Part) bool {
			return parts[1].MIMEType == "image/png" && bytes.HasPrefix(parts[1].Data, []byte("\x89PNG"))
		})).Return("text", nil).Once()

		_, err := NewExtractor(gen, 0).Extract(ctx, model.Document{Kind: model.KindImage, Data: bmpBytes(t)})
		require.NoError(t, err)
		gen.AssertExpectations(t)
	})

	t.Run("undecodable image", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		_, err := NewExtractor(gen, 0).Extract(ctx, model.Document{Kind: model.KindImage, Data: []byte("not an image")})
		assert.ErrorIs(t, err, ErrUnsupportedKind)
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("unknown kind", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		_, err := NewExtractor(gen, 0).Extract(ctx, model.Document{Kind: "docx", Data: []byte("x")})
		assert.ErrorIs(t, err, ErrUnsupportedKind)
	})

	t.Run("empty document", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		_, err := NewExtractor(gen, 0).Extract(ctx, model.Document{Kind: model.KindPDF})
		assert.ErrorIs(t, err, ErrInputMissing)
	})

	t.Run("model failure", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("503 overloaded")).Once()

		_, err := NewExtractor(gen, 0).Extract(ctx, model.Document{Kind: model.KindPDF, Data: []byte("%PDF")})
		assert.ErrorIs(t, err, ErrModelCall)
		assert.Contains(t, err.Error(), "503 overloaded")
		assert.Contains(t, err.Error(), "extract")
	})

	t.Run("provider rejects content type", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", llm.ErrUnsupportedPart).Once()

		_, err := NewExtractor(gen, 0).Extract(ctx, model.Document{Kind: model.KindPDF, Data: []byte("%PDF")})
		assert.ErrorIs(t, err, ErrUnsupportedKind)
		assert.ErrorIs(t, err, llm.ErrUnsupportedPart)
	})

	t.Run("timeout bounds the call", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		gen.On("Generate", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		}), mock.Anything).Return("ok", nil).Once()

		_, err := NewExtractor(gen, time.Minute).Extract(ctx, model.Document{Kind: model.KindPDF, Data: []byte("%PDF")})
		require.NoError(t, err)
		gen.AssertExpectations(t)
	})
}

func TestCorrector_Correct(t *testing.T) {
	gen := new(llmMocks.MockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(parts []llm.Part) bool {
		return len(parts) == 1 &&
			strings.Contains(parts[0].Text, "Fix obvious OCR errors") &&
			strings.HasSuffix(parts[0].Text, "Helo wrld")
	})).Return("Hello world", nil).Once()

	out, err := NewCorrector(gen, 0).Correct(context.Background(), "Helo wrld")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", out)
	gen.AssertExpectations(t)
}

func TestTranslator_Translate(t *testing.T) {
	ctx := context.Background()

	t.Run("already in target language", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		res, err := NewTranslator(gen, 0).Translate(ctx, model.TranslationRequest{
			Text:            "Bonjour",
			TargetLanguage:  "French",
			CurrentLanguage: "french",
		})
		require.NoError(t, err)
		assert.Equal(t, model.TranslationResult{TranslatedText: "Bonjour", AlreadyTargetLanguage: true}, res)
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("translates with target in prompt", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		gen.On("Generate", mock.Anything, mock.MatchedBy(func(parts []llm.Part) bool {
			return strings.HasPrefix(parts[0].Text, "Translate this to German") &&
				strings.HasSuffix(parts[0].Text, "Good morning")
		})).Return("Guten Morgen", nil).Once()

		res, err := NewTranslator(gen, 0).Translate(ctx, model.TranslationRequest{
			Text:            "Good morning",
			TargetLanguage:  "German",
			CurrentLanguage: "English",
		})
		require.NoError(t, err)
		assert.Equal(t, "Guten Morgen", res.TranslatedText)
		assert.False(t, res.AlreadyTargetLanguage)
		gen.AssertExpectations(t)
	})

	t.Run("defaults target to English", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		res, err := NewTranslator(gen, 0).Translate(ctx, model.TranslationRequest{
			Text:            "Hello",
			CurrentLanguage: "ENGLISH",
		})
		require.NoError(t, err)
		assert.True(t, res.AlreadyTargetLanguage)

		gen.On("Generate", mock.Anything, mock.MatchedBy(func(parts []llm.Part) bool {
			return strings.HasPrefix(parts[0].Text, "Translate this to English")
		})).Return("Hello", nil).Once()
		_, err = NewTranslator(gen, 0).Translate(ctx, model.TranslationRequest{Text: "Hola"})
		require.NoError(t, err)
		gen.AssertExpectations(t)
	})

	t.Run("model failure", func(t *testing.T) {
		gen := new(llmMocks.MockGenerator)
		gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("boom")).Once()

		_, err := NewTranslator(gen, 0).Translate(ctx, model.TranslationRequest{Text: "x", TargetLanguage: "Spanish"})
		assert.ErrorIs(t, err, ErrModelCall)
	})
}

func TestExplainer_Explain(t *testing.T) {
	gen := new(llmMocks.MockGenerator)
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(parts []llm.Part) bool {
		return strings.Contains(parts[0].Text, "Do NOT use asterisks") &&
			strings.HasSuffix(parts[0].Text, "E = mc^2")
	})).Return("Energy equals mass times...", nil).Once()

	out, err := NewExplainer(gen, 0).Explain(context.Background(), "E = mc^2")
	require.NoError(t, err)
	assert.Equal(t, "Energy equals mass times...", out)
	gen.AssertExpectations(t)
}

func TestError(t *testing.T) {
	cause := errors.New("network down")
	err := Fail("translate", ErrModelCall, cause)

	assert.ErrorIs(t, err, ErrModelCall)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrRender)
	assert.Equal(t, "translate: model call failed: network down", err.Error())
	assert.Equal(t, ErrModelCall, KindOf(err))
	assert.Nil(t, KindOf(cause))

	bare := Fail("explain", ErrInputMissing, nil)
	assert.Equal(t, "explain: input missing", bare.Error())
	assert.ErrorIs(t, bare, ErrInputMissing)
}

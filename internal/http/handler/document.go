package handler

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docdigest/internal/model"
	"docdigest/internal/service"
	"docdigest/internal/storage"
)

type processResponse struct {
	Success       bool   `json:"success"`
	ExtractedText string `json:"extracted_text"`
	Accuracy      int    `json:"accuracy"`
	Filename      string `json:"filename"`
}

type objectRequest struct {
	Key string `json:"key"`
}

type translateRequest struct {
	Text            string `json:"text"`
	Language        string `json:"language"`
	CurrentLanguage string `json:"current_language"`
}

type translateResponse struct {
	Success        bool   `json:"success"`
	TranslatedText string `json:"translated_text"`
	Message        string `json:"message,omitempty"`
}

type explainRequest struct {
	Text string `json:"text"`
}

type explainResponse struct {
	Success     bool   `json:"success"`
	Explanation string `json:"explanation"`
}

type exportRequest struct {
	Text         string `json:"text"`
	Filename     string `json:"filename"`
	IsTranslated bool   `json:"is_translated"`
}

func toProcessResponse(res *model.ProcessResult) processResponse {
	return processResponse{
		Success:       true,
		ExtractedText: res.CorrectedText,
		Accuracy:      res.AccuracyPercent,
		Filename:      res.Filename,
	}
}

// UploadDocument godoc
// @Summary Digitize an uploaded document
// @Description Extracts, scores and corrects the text of an uploaded PDF or image.
// @Tags pipeline
// @Accept mpfd
// @Produce json
// @Param file formData file true "PDF or image"
// @Success 200 {object} processResponse
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /upload [post]
func UploadDocument(svc service.DigitizeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil || fh.Filename == "" {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}

		doc, err := model.NewDocument(fh.Filename, data)
		if err != nil {
			return writeFailure(c, err)
		}

		res, err := svc.Process(c.UserContext(), doc)
		if err != nil {
			return writeFailure(c, err)
		}
		return c.JSON(toProcessResponse(res))
	}
}

// ProcessObject godoc
// @Summary Digitize a stored document
// @Description Reads a document from the configured bucket and runs the pipeline on it.
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body objectRequest true "Object key"
// @Success 200 {object} processResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /upload/object [post]
func ProcessObject(svc service.DigitizeService, src storage.Source) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req objectRequest
		if err := bindJSON(c, objectBody, &req); err != nil {
			return writeFailure(c, err)
		}

		doc, err := model.NewDocument(path.Base(req.Key), nil)
		if err != nil {
			return writeFailure(c, err)
		}

		obj, err := src.Get(c.UserContext(), req.Key)
		if err != nil {
			return writeFailure(c, fmt.Errorf("object source: %w", err))
		}
		doc.Data = obj.Data

		res, err := svc.Process(c.UserContext(), doc)
		if err != nil {
			return writeFailure(c, err)
		}
		return c.JSON(toProcessResponse(res))
	}
}

// TranslateText godoc
// @Summary Translate text
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body translateRequest true "Text and languages"
// @Success 200 {object} translateResponse
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /translate [post]
func TranslateText(svc service.DigitizeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req translateRequest
		if err := bindJSON(c, translateBody, &req); err != nil {
			return writeFailure(c, err)
		}

		target := strings.TrimSpace(req.Language)
		if target == "" {
			target = model.DefaultTargetLanguage
		}

		res, err := svc.Translate(c.UserContext(), model.TranslationRequest{
			Text:            req.Text,
			TargetLanguage:  target,
			CurrentLanguage: req.CurrentLanguage,
		})
		if err != nil {
			return writeFailure(c, err)
		}

		out := translateResponse{Success: true, TranslatedText: res.TranslatedText}
		if res.AlreadyTargetLanguage {
			out.Message = "Text is already in the target language"
		}
		return c.JSON(out)
	}
}

// ExplainText godoc
// @Summary Explain text in plain language
// @Tags pipeline
// @Accept json
// @Produce json
// @Param request body explainRequest true "Text"
// @Success 200 {object} explainResponse
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /explain [post]
func ExplainText(svc service.DigitizeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req explainRequest
		if err := bindJSON(c, explainBody, &req); err != nil {
			return writeFailure(c, err)
		}

		out, err := svc.Explain(c.UserContext(), req.Text)
		if err != nil {
			return writeFailure(c, err)
		}
		return c.JSON(explainResponse{Success: true, Explanation: out})
	}
}

// ExportPDF godoc
// @Summary Export text as PDF
// @Tags pipeline
// @Accept json
// @Produce application/pdf
// @Param request body exportRequest true "Text and naming options"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /export_pdf [post]
func ExportPDF(svc service.DigitizeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req exportRequest
		if err := bindJSON(c, exportBody, &req); err != nil {
			return writeFailure(c, err)
		}

		res, err := svc.Export(c.UserContext(), model.ExportRequest{
			Text:         req.Text,
			Filename:     req.Filename,
			IsTranslated: req.IsTranslated,
		})
		if err != nil {
			return writeFailure(c, err)
		}

		c.Attachment(res.Filename)
		c.Set(fiber.HeaderContentType, "application/pdf")
		return c.Send(res.Data)
	}
}

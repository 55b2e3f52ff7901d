package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"docdigest/internal/llm"
	"docdigest/internal/logger"
	"docdigest/internal/model"
	"docdigest/internal/parser"
	"docdigest/internal/render"
	"docdigest/internal/stage"
)

var tracer = otel.Tracer("docdigest/service")

// DigitizeService defines the use cases exposed to the HTTP and CLI layers.
type DigitizeService interface {
	// Process runs extraction, response parsing and correction on an uploaded document.
	Process(ctx context.Context, doc model.Document) (*model.ProcessResult, error)

	// Translate translates text the caller already holds.
	Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error)

	// Explain returns a plain-language explanation of text.
	Explain(ctx context.Context, text string) (string, error)

	// Export renders text into a PDF and names the download.
	Export(ctx context.Context, req model.ExportRequest) (*model.ExportResult, error)
}

type Extractor interface {
	Extract(ctx context.Context, doc model.Document) (string, error)
}

type Corrector interface {
	Correct(ctx context.Context, text string) (string, error)
}

type Translator interface {
	Translate(ctx context.Context, req model.TranslationRequest) (model.TranslationResult, error)
}

type Explainer interface {
	Explain(ctx context.Context, text string) (string, error)
}

type Renderer interface {
	Render(text string) (*render.PDF, error)
}

// Stages groups the model-backed steps the service composes.
type Stages struct {
	Extractor  Extractor
	Corrector  Corrector
	Translator Translator
	Explainer  Explainer
}

// StagesFor builds every stage on top of a single generator.
func StagesFor(gen llm.Generator, timeout time.Duration) Stages {
	return Stages{
		Extractor:  stage.NewExtractor(gen, timeout),
		Corrector:  stage.NewCorrector(gen, timeout),
		Translator: stage.NewTranslator(gen, timeout),
		Explainer:  stage.NewExplainer(gen, timeout),
	}
}

// Option configures the service.
type Option func(*digitizeService)

// WithClock overrides the time source used for export filenames.
func WithClock(now func() time.Time) Option {
	return func(s *digitizeService) { s.now = now }
}

// WithLocation sets the time zone used for export filenames.
func WithLocation(loc *time.Location) Option {
	return func(s *digitizeService) { s.loc = loc }
}

// WithMetrics enables stage metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *digitizeService) { s.metrics = m }
}

// digitizeService is a concrete implementation of DigitizeService.
type digitizeService struct {
	stages   Stages
	parser   parser.ResponseParser
	renderer Renderer
	metrics  *Metrics
	now      func() time.Time
	loc      *time.Location
}

// NewDigitizeService constructs a new DigitizeService.
func NewDigitizeService(stages Stages, p parser.ResponseParser, r Renderer, opts ...Option) DigitizeService {
	s := &digitizeService{
		stages:   stages,
		parser:   p,
		renderer: r,
		now:      time.Now,
		loc:      time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *digitizeService) Process(ctx context.Context, doc model.Document) (*model.ProcessResult, error) {
	ctx, span := tracer.Start(ctx, "pipeline.process")
	defer span.End()
	span.SetAttributes(
		attribute.String("document.kind", string(doc.Kind)),
		attribute.Int("document.size", len(doc.Data)),
	)
	log := logger.FromContext(ctx)

	if len(doc.Data) == 0 {
		return nil, stage.Fail("process", stage.ErrInputMissing, nil)
	}

	start := time.Now()
	raw, err := s.stages.Extractor.Extract(ctx, doc)
	s.metrics.observe("extract", start, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Error().Err(err).Str("filename", doc.Filename).Msg("extraction failed")
		return nil, err
	}

	start = time.Now()
	parsed := s.parser.Parse(raw)
	s.metrics.observe("parse", start, nil)
	span.SetAttributes(attribute.Int("extraction.accuracy", parsed.AccuracyPercent))

	start = time.Now()
	corrected, err := s.stages.Corrector.Correct(ctx, parsed.Text)
	s.metrics.observe("correct", start, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Error().Err(err).Str("filename", doc.Filename).Msg("correction failed")
		return nil, err
	}

	log.Info().
		Str("filename", doc.Filename).
		Str("kind", string(doc.Kind)).
		Int("accuracy", parsed.AccuracyPercent).
		Int("text_len", len(corrected)).
		Msg("document processed")

	return &model.ProcessResult{
		AccuracyPercent: parsed.AccuracyPercent,
		CorrectedText:   corrected,
		Filename:        doc.Filename,
	}, nil
}

func (s *digitizeService) Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, stage.Fail("translate", stage.ErrInputMissing, nil)
	}

	start := time.Now()
	res, err := s.stages.Translator.Translate(ctx, req)
	s.metrics.observe("translate", start, err)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("target", req.TargetLanguage).Msg("translation failed")
		return nil, err
	}
	return &res, nil
}

func (s *digitizeService) Explain(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", stage.Fail("explain", stage.ErrInputMissing, nil)
	}

	start := time.Now()
	out, err := s.stages.Explainer.Explain(ctx, text)
	s.metrics.observe("explain", start, err)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("explanation failed")
		return "", err
	}
	return out, nil
}

func (s *digitizeService) Export(ctx context.Context, req model.ExportRequest) (*model.ExportResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, stage.Fail("export", stage.ErrInputMissing, nil)
	}

	_, span := tracer.Start(ctx, "pipeline.export")
	defer span.End()

	start := time.Now()
	pdf, err := s.renderer.Render(req.Text)
	s.metrics.observe("render", start, err)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.FromContext(ctx).Error().Err(err).Msg("pdf render failed")
		return nil, stage.Fail("export", stage.ErrRender, err)
	}

	name := model.ExportFilename(req.Filename, req.IsTranslated, s.now().In(s.loc))
	span.SetAttributes(attribute.Int("pdf.pages", pdf.Pages), attribute.Int("pdf.rows", pdf.Rows))

	return &model.ExportResult{Filename: name, Data: pdf.Data, Pages: pdf.Pages}, nil
}

// Package generator is the content generation client: it builds prompts,
// invokes the generative backend and parses structured JSON responses into
// typed results. Every call is a single attempt with no retry and no cache.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ustoz-pro/ustoz/internal/ai"
	"github.com/ustoz-pro/ustoz/internal/course"
	"github.com/ustoz-pro/ustoz/internal/i18n"
)

const (
	defaultSyllabusModel  = "gemini-3-flash-preview"
	defaultMaterialsModel = "gemini-3-pro-preview"

	materialsThinkingBudget = 16000
	maxSynthesizedSources   = 3
)

// Service wraps a generative backend provider.
type Service struct {
	provider       ai.Provider
	catalog        *i18n.Catalog
	syllabusModel  string
	materialsModel string
}

// Option configures a Service.
type Option func(*Service)

// WithSyllabusModel overrides the model used for syllabus generation.
func WithSyllabusModel(model string) Option {
	return func(s *Service) {
		if model != "" {
			s.syllabusModel = model
		}
	}
}

// WithMaterialsModel overrides the model used for materials generation.
func WithMaterialsModel(model string) Option {
	return func(s *Service) {
		if model != "" {
			s.materialsModel = model
		}
	}
}

// NewService creates a generation client on top of the given provider.
func NewService(provider ai.Provider, catalog *i18n.Catalog, opts ...Option) *Service {
	s := &Service{
		provider:       provider,
		catalog:        catalog,
		syllabusModel:  defaultSyllabusModel,
		materialsModel: defaultMaterialsModel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SyllabusRequest is the input to GenerateSyllabus. Subject is expected
// non-empty; the caller enforces that. TopicCount is a target the backend
// may deviate from.
type SyllabusRequest struct {
	Subject    string
	TopicCount int
	Difficulty course.Difficulty
	Language   i18n.Language
}

// GenerateSyllabus asks the backend for a multi-week syllabus with
// web-grounded citations. When the response carries grounding metadata but
// no explicit sources, up to three sources are synthesized from the chunks.
func (s *Service) GenerateSyllabus(ctx context.Context, req SyllabusRequest) (*course.Syllabus, error) {
	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Messages:         []ai.Message{{Role: "user", Content: s.syllabusPrompt(req)}},
		Model:            s.syllabusModel,
		ResponseMIMEType: "application/json",
		EnableSearch:     true,
	})
	if err != nil {
		return nil, &GenerationError{Kind: KindCall, Err: err}
	}

	payload := stripFences(resp.Content)
	if err := validatePayload(syllabusSchema, payload); err != nil {
		return nil, &GenerationError{Kind: KindParse, Err: err}
	}

	var syllabus course.Syllabus
	if err := json.Unmarshal([]byte(payload), &syllabus); err != nil {
		return nil, &GenerationError{Kind: KindParse, Err: fmt.Errorf("decoding syllabus: %w", err)}
	}

	if len(syllabus.Sources) == 0 && len(resp.Grounding) > 0 {
		syllabus.Sources = synthesizeSources(resp.Grounding)
	}

	slog.Info("syllabus generated",
		"subject", req.Subject,
		"requested_topics", req.TopicCount,
		"returned_topics", len(syllabus.Topics),
		"sources", len(syllabus.Sources),
		"tokens", resp.TotalTokens(),
	)
	return &syllabus, nil
}

// MaterialsRequest is the input to GenerateMaterials.
type MaterialsRequest struct {
	TopicTitle string
	Subject    string
	Difficulty course.Difficulty
	Language   i18n.Language
}

// GenerateMaterials asks the backend for the five per-topic artifacts.
// The stated minimum sizes are hints to the model; the result is accepted
// as returned with no size or count validation.
func (s *Service) GenerateMaterials(ctx context.Context, req MaterialsRequest) (*course.GeneratedContent, error) {
	resp, err := s.provider.Complete(ctx, ai.CompletionRequest{
		Messages:         []ai.Message{{Role: "user", Content: s.materialsPrompt(req)}},
		Model:            s.materialsModel,
		ResponseMIMEType: "application/json",
		ThinkingBudget:   materialsThinkingBudget,
	})
	if err != nil {
		return nil, &GenerationError{Kind: KindCall, Err: err}
	}

	payload := stripFences(resp.Content)
	if err := validatePayload(materialsSchema, payload); err != nil {
		return nil, &GenerationError{Kind: KindParse, Err: err}
	}

	var content course.GeneratedContent
	if err := json.Unmarshal([]byte(payload), &content); err != nil {
		return nil, &GenerationError{Kind: KindParse, Err: fmt.Errorf("decoding materials: %w", err)}
	}

	slog.Info("materials generated",
		"topic", req.TopicTitle,
		"questions", len(content.Questions),
		"tests", len(content.Tests),
		"tokens", resp.TotalTokens(),
	)
	return &content, nil
}

// synthesizeSources derives placeholder sources from grounding chunks.
func synthesizeSources(chunks []ai.GroundingChunk) []course.Source {
	n := len(chunks)
	if n > maxSynthesizedSources {
		n = maxSynthesizedSources
	}
	sources := make([]course.Source, 0, n)
	for _, c := range chunks[:n] {
		src := course.Source{
			University: c.Title,
			URL:        c.URI,
			Title:      "Original Syllabus",
		}
		if src.University == "" {
			src.University = "Top University"
		}
		if src.URL == "" {
			src.URL = "#"
		}
		sources = append(sources, src)
	}
	return sources
}

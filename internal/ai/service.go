package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrUnsupportedType is returned for content types outside the dispatch table.
var ErrUnsupportedType = fmt.Errorf("unsupported content type")

// Service is the stateless adapter between caller intent and the generative
// model. One outbound call per invocation; no retry, no caching.
type Service struct {
	model   Model
	timeout time.Duration
}

// NewService constructs the generation service around an injected model client.
func NewService(model Model, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Service{model: model, timeout: timeout}
}

func (s *Service) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// GenerateContent dispatches on the request's content type, builds the prompt
// pair, runs a JSON-mode completion and returns the decoded object. An empty
// model body yields an empty object. Every failure is wrapped once.
func (s *Service) GenerateContent(ctx context.Context, req ContentRequest) (map[string]any, error) {
	spec, ok := promptSpecs[req.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, req.Type)
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	raw, err := s.model.GenerateJSON(ctx, spec.system, spec.buildUser(req.Prompt, req.Options), nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("generate content: decode model output: %w", err)
	}
	return result, nil
}

const analyzeSystemPrompt = `You are an expert ATS (Applicant Tracking System) analyst and resume reviewer.
Score the resume the way an ATS would, compare it against the job description when one
is provided, and report concrete, actionable findings. Be honest and data-driven; never
invent content that is not on the resume.`

// AnalyzeResume runs the schema-constrained scorecard call. The returned
// AtsScore is clamped to [0,100] regardless of the raw model output.
func (s *Service) AnalyzeResume(ctx context.Context, resumeText, jobDescription string) (*AnalysisReport, error) {
	var b strings.Builder
	b.WriteString("Analyze the following resume.\n\nResume:\n-----\n")
	b.WriteString(resumeText)
	b.WriteString("\n-----\n")
	if strings.TrimSpace(jobDescription) != "" {
		b.WriteString("\nTarget job description:\n-----\n")
		b.WriteString(jobDescription)
		b.WriteString("\n-----\n")
	} else {
		b.WriteString("\nNo target job description was provided; score against general industry expectations.\n")
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	raw, err := s.model.GenerateJSON(ctx, analyzeSystemPrompt, b.String(), analysisReportSchema)
	if err != nil {
		return nil, fmt.Errorf("analyze resume: %w", err)
	}

	var report AnalysisReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return nil, fmt.Errorf("analyze resume: decode model output: %w", err)
	}

	report.AtsScore = clampScore(report.AtsScore)
	report.FormatScore = clampScore(report.FormatScore)
	report.ReadabilityScore = clampScore(report.ReadabilityScore)
	return &report, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

const extractTextPrompt = `Extract all text content from this document verbatim.
Preserve the reading order. Return the plain text only, with no commentary.`

// ExtractText pulls plain text out of an uploaded resume file. Image and PDF
// payloads go through the model; anything else is interpreted as UTF-8 locally.
func (s *Service) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if !strings.HasPrefix(mimeType, "image/") && mimeType != "application/pdf" {
		return string(data), nil
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	text, err := s.model.GenerateFromBlob(ctx, extractTextPrompt, mimeType, data)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return text, nil
}

const improveSystemPrompt = `You are an expert resume writer. Rewrite the resume applying the given
suggestions and weaving in the missing keywords where they are truthful. Keep every fact
from the original; change only wording, ordering and emphasis. Return the rewritten
resume as plain text.`

// ImproveResume requests a one-shot rewrite. On failure the result carries the
// unmodified original with Fallback set, and the error is returned so the
// caller decides whether the fallback is acceptable.
func (s *Service) ImproveResume(ctx context.Context, original string, suggestions, missingKeywords []string) (ImproveResult, error) {
	var b strings.Builder
	b.WriteString("Rewrite this resume.\n\nResume:\n-----\n")
	b.WriteString(original)
	b.WriteString("\n-----\n")
	if len(suggestions) > 0 {
		b.WriteString("\nApply these suggestions:\n- ")
		b.WriteString(strings.Join(suggestions, "\n- "))
		b.WriteString("\n")
	}
	if len(missingKeywords) > 0 {
		b.WriteString("\nWork in these missing keywords where truthful: ")
		b.WriteString(strings.Join(missingKeywords, ", "))
		b.WriteString("\n")
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	text, err := s.model.GenerateText(ctx, improveSystemPrompt, b.String())
	if err != nil {
		return ImproveResult{Text: original, Fallback: true}, fmt.Errorf("improve resume: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return ImproveResult{Text: original, Fallback: true}, fmt.Errorf("improve resume: empty model output")
	}
	return ImproveResult{Text: text}, nil
}

package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"talentd/internal/config"
)

// Model is the slice of the generative provider this package needs. The
// production implementation wraps the Gemini SDK; tests substitute a fake.
type Model interface {
	// GenerateJSON runs a JSON-mode completion and returns the raw JSON text.
	// schema may be nil; when set the provider constrains decoding to it.
	GenerateJSON(ctx context.Context, system, user string, schema *genai.Schema) (string, error)
	// GenerateText runs a plain-text completion.
	GenerateText(ctx context.Context, system, user string) (string, error)
	// GenerateFromBlob runs a completion over inline binary data (image/PDF).
	GenerateFromBlob(ctx context.Context, prompt, mimeType string, data []byte) (string, error)
}

// GeminiModel implements Model on top of the Gemini API.
type GeminiModel struct {
	client *genai.Client
	name   string
}

// NewGeminiModel dials the Gemini API with the configured key.
func NewGeminiModel(ctx context.Context, cfg config.GeminiConfig) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &GeminiModel{client: client, name: cfg.Model}, nil
}

// Close releases the underlying client.
func (m *GeminiModel) Close() error {
	return m.client.Close()
}

// GenerateJSON implements Model.
func (m *GeminiModel) GenerateJSON(ctx context.Context, system, user string, schema *genai.Schema) (string, error) {
	model := m.client.GenerativeModel(m.name)
	model.ResponseMIMEType = "application/json"
	if schema != nil {
		model.ResponseSchema = schema
	}
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return firstText(resp), nil
}

// GenerateText implements Model.
func (m *GeminiModel) GenerateText(ctx context.Context, system, user string) (string, error) {
	model := m.client.GenerativeModel(m.name)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return firstText(resp), nil
}

// GenerateFromBlob implements Model.
func (m *GeminiModel) GenerateFromBlob(ctx context.Context, prompt, mimeType string, data []byte) (string, error) {
	model := m.client.GenerativeModel(m.name)

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(prompt),
	)
	if err != nil {
		return "", fmt.Errorf("generate content from blob: %w", err)
	}
	return firstText(resp), nil
}

// firstText concatenates the text parts of the first candidate.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
)

type fakeModel struct {
	jsonOut string
	textOut string
	blobOut string
	err     error

	lastSystem string
	lastUser   string
	lastSchema *genai.Schema
	blobCalls  int
}

func (f *fakeModel) GenerateJSON(_ context.Context, system, user string, schema *genai.Schema) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	f.lastSchema = schema
	if f.err != nil {
		return "", f.err
	}
	return f.jsonOut, nil
}

func (f *fakeModel) GenerateText(_ context.Context, system, user string) (string, error) {
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.textOut, nil
}

func (f *fakeModel) GenerateFromBlob(_ context.Context, _, _ string, _ []byte) (string, error) {
	f.blobCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.blobOut, nil
}

func newTestService(m Model) *Service {
	return NewService(m, 5*time.Second)
}

var allContentTypes = []ContentType{
	TypeJob, TypeInternship, TypeArticle, TypeRoadmap,
	TypeDsaProblem, TypeDsaTopic, TypeDsaCompany, TypeDsaSheet,
	TypePortfolioWebsite, TypeAdvertisingTemplate, TypeScholarship,
}

func TestGenerateContent_AllTypesSucceed(t *testing.T) {
	fake := &fakeModel{jsonOut: `{"title":"x"}`}
	svc := newTestService(fake)

	for _, ct := range allContentTypes {
		result, err := svc.GenerateContent(context.Background(), ContentRequest{Type: ct, Prompt: "p"})
		if err != nil {
			t.Fatalf("type %s: unexpected error: %v", ct, err)
		}
		if result["title"] != "x" {
			t.Fatalf("type %s: unexpected result %v", ct, result)
		}
	}
}

func TestGenerateContent_AllTypesWrapModelFailure(t *testing.T) {
	fake := &fakeModel{err: errors.New("provider down")}
	svc := newTestService(fake)

	for _, ct := range allContentTypes {
		_, err := svc.GenerateContent(context.Background(), ContentRequest{Type: ct, Prompt: "p"})
		if err == nil {
			t.Fatalf("type %s: expected error", ct)
		}
		if !strings.Contains(err.Error(), "generate content") {
			t.Fatalf("type %s: error not wrapped: %v", ct, err)
		}
		if !strings.Contains(err.Error(), "provider down") {
			t.Fatalf("type %s: original message lost: %v", ct, err)
		}
	}
}

func TestGenerateContent_UnsupportedType(t *testing.T) {
	svc := newTestService(&fakeModel{jsonOut: `{}`})

	_, err := svc.GenerateContent(context.Background(), ContentRequest{Type: "mixtape", Prompt: "p"})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestGenerateContent_EmptyBodyYieldsEmptyObject(t *testing.T) {
	svc := newTestService(&fakeModel{jsonOut: "  "})

	result, err := svc.GenerateContent(context.Background(), ContentRequest{Type: TypeJob, Prompt: "p"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected empty object, got %v", result)
	}
}

func TestGenerateContent_OptionsAppendSentences(t *testing.T) {
	fake := &fakeModel{jsonOut: `{}`}
	svc := newTestService(fake)

	req := ContentRequest{
		Type:   TypeJob,
		Prompt: "A backend role in Bengaluru.",
		Options: GenerateOptions{
			FetchFromWeb:       true,
			IncludeCompanyLogo: true,
			TargetCompany:      "Zerodha",
		},
	}
	if _, err := svc.GenerateContent(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(fake.lastUser, req.Prompt) {
		t.Fatalf("user prompt must start with the caller's text: %q", fake.lastUser)
	}
	for _, want := range []string{"Zerodha", "logo.clearbit.com", "realistic, current"} {
		if !strings.Contains(fake.lastUser, want) {
			t.Fatalf("user prompt missing %q: %q", want, fake.lastUser)
		}
	}
}

func TestGenerateContent_IrrelevantOptionsIgnored(t *testing.T) {
	fake := &fakeModel{jsonOut: `{}`}
	svc := newTestService(fake)

	req := ContentRequest{
		Type:    TypeJob,
		Prompt:  "A role.",
		Options: GenerateOptions{GenerateMindmap: true},
	}
	if _, err := svc.GenerateContent(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(fake.lastUser, "flowchartData") {
		t.Fatalf("job prompt must not react to the mindmap option: %q", fake.lastUser)
	}
}

func TestAnalyzeResume_ClampsScores(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`{"atsScore":140}`, 100},
		{`{"atsScore":-5}`, 0},
		{`{"atsScore":73}`, 73},
	}

	for _, tc := range cases {
		svc := newTestService(&fakeModel{jsonOut: tc.raw})
		report, err := svc.AnalyzeResume(context.Background(), "resume text", "")
		if err != nil {
			t.Fatalf("raw %s: unexpected error: %v", tc.raw, err)
		}
		if report.AtsScore != tc.want {
			t.Fatalf("raw %s: atsScore = %d, want %d", tc.raw, report.AtsScore, tc.want)
		}
	}
}

func TestAnalyzeResume_UsesSchema(t *testing.T) {
	fake := &fakeModel{jsonOut: `{"atsScore":50}`}
	svc := newTestService(fake)

	if _, err := svc.AnalyzeResume(context.Background(), "resume", "jd"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.lastSchema == nil {
		t.Fatal("analysis call must pass the response schema")
	}
	if !strings.Contains(fake.lastUser, "jd") {
		t.Fatalf("job description not forwarded: %q", fake.lastUser)
	}
}

func TestAnalyzeResume_WrapsFailure(t *testing.T) {
	svc := newTestService(&fakeModel{err: errors.New("quota")})

	_, err := svc.AnalyzeResume(context.Background(), "resume", "")
	if err == nil || !strings.Contains(err.Error(), "analyze resume") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestImproveResume_FallbackOnFailure(t *testing.T) {
	svc := newTestService(&fakeModel{err: errors.New("quota")})

	const original = "original resume text"
	result, err := svc.ImproveResume(context.Background(), original, []string{"add metrics"}, nil)
	if err == nil {
		t.Fatal("expected error to surface alongside the fallback")
	}
	if !result.Fallback {
		t.Fatal("expected fallback flag")
	}
	if result.Text != original {
		t.Fatalf("fallback must return the original unchanged, got %q", result.Text)
	}
}

func TestImproveResume_Success(t *testing.T) {
	svc := newTestService(&fakeModel{textOut: "rewritten resume"})

	result, err := svc.ImproveResume(context.Background(), "original", nil, []string{"golang"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fallback {
		t.Fatal("fallback flag must be unset on success")
	}
	if result.Text == "" {
		t.Fatal("expected non-empty rewritten text")
	}
}

func TestExtractText_PlainBytesSkipModel(t *testing.T) {
	fake := &fakeModel{}
	svc := newTestService(fake)

	text, err := svc.ExtractText(context.Background(), []byte("hello resume"), "text/plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello resume" {
		t.Fatalf("unexpected text %q", text)
	}
	if fake.blobCalls != 0 {
		t.Fatalf("plain text must not hit the model, got %d calls", fake.blobCalls)
	}
}

func TestExtractText_PDFUsesModel(t *testing.T) {
	fake := &fakeModel{blobOut: "extracted"}
	svc := newTestService(fake)

	text, err := svc.ExtractText(context.Background(), []byte{0x25, 0x50}, "application/pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "extracted" || fake.blobCalls != 1 {
		t.Fatalf("expected one model call returning %q, got %q (%d calls)", "extracted", text, fake.blobCalls)
	}
}

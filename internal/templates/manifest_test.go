package templates

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeArchive builds a zip at a temp path from path->content pairs.
func writeArchive(t *testing.T, entries map[string]string) string {
	t.Helper()

	archivePath := filepath.Join(t.TempDir(), "template.zip")
	out, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for name, content := range entries {
		entry, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %q: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %q: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
	return archivePath
}

const validManifest = `{
  "id": "minimal-dark",
  "name": "Minimal Dark",
  "version": "1.0.0",
  "category": "developer",
  "entryFile": "index.html"
}`

func newTestTemplateService(t *testing.T) *Service {
	t.Helper()
	return NewService(t.TempDir(), DefaultLimits)
}

func TestExtractManifest_Valid(t *testing.T) {
	svc := newTestTemplateService(t)
	archive := writeArchive(t, map[string]string{
		"manifest.json": validManifest,
		"index.html":    "<html></html>",
		"style.css":     "body{}",
	})

	manifest, err := svc.ExtractManifest(archive)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manifest.ID != "minimal-dark" || manifest.EntryFile != "index.html" {
		t.Fatalf("unexpected manifest: %+v", manifest)
	}
}

func TestExtractManifest_MissingManifest(t *testing.T) {
	svc := newTestTemplateService(t)
	archive := writeArchive(t, map[string]string{"index.html": "<html></html>"})

	_, err := svc.ExtractManifest(archive)
	if !errors.Is(err, ErrManifestMissing) {
		t.Fatalf("expected ErrManifestMissing, got %v", err)
	}
}

func TestExtractManifest_MissingRequiredFields(t *testing.T) {
	svc := newTestTemplateService(t)
	archive := writeArchive(t, map[string]string{
		"manifest.json": `{"id":"x","name":"X"}`,
		"index.html":    "<html></html>",
	})

	_, err := svc.ExtractManifest(archive)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, field := range []string{"version", "category", "entryFile"} {
		if !strings.Contains(err.Error(), field) {
			t.Fatalf("error must name missing field %q: %v", field, err)
		}
	}
}

func TestExtractManifest_EntryFileAbsent(t *testing.T) {
	svc := newTestTemplateService(t)
	archive := writeArchive(t, map[string]string{
		"manifest.json": validManifest,
		"other.html":    "<html></html>",
	})

	_, err := svc.ExtractManifest(archive)
	if err == nil || !strings.Contains(err.Error(), "index.html") {
		t.Fatalf("expected entryFile error, got %v", err)
	}
}

func TestExtractManifest_MalformedJSON(t *testing.T) {
	svc := newTestTemplateService(t)
	archive := writeArchive(t, map[string]string{
		"manifest.json": `{"id": `,
		"index.html":    "<html></html>",
	})

	if _, err := svc.ExtractManifest(archive); err == nil {
		t.Fatal("expected error for malformed manifest")
	}
}

func TestExtractManifest_RejectsTraversalEntries(t *testing.T) {
	svc := newTestTemplateService(t)

	for _, name := range []string{"../escape.html", "/etc/passwd", "a/../../b.html", `bad\\slash.html`} {
		archive := writeArchive(t, map[string]string{
			"manifest.json": validManifest,
			"index.html":    "<html></html>",
			name:            "evil",
		})

		if _, err := svc.ExtractManifest(archive); err == nil {
			t.Fatalf("entry %q must be rejected", name)
		}
	}
}

func TestExtractManifest_TooManyEntries(t *testing.T) {
	svc := NewService(t.TempDir(), Limits{MaxEntries: 3})

	archive := writeArchive(t, map[string]string{
		"manifest.json": validManifest,
		"index.html":    "<html></html>",
		"a.css":         "",
		"b.css":         "",
	})

	_, err := svc.ExtractManifest(archive)
	if err == nil || !strings.Contains(err.Error(), "entries") {
		t.Fatalf("expected entry-count error, got %v", err)
	}
}

func TestExtractManifest_EntryTooLarge(t *testing.T) {
	svc := NewService(t.TempDir(), Limits{MaxEntryBytes: 16})

	archive := writeArchive(t, map[string]string{
		"manifest.json": validManifest,
		"index.html":    strings.Repeat("x", 64),
	})

	_, err := svc.ExtractManifest(archive)
	if err == nil || !strings.Contains(err.Error(), "byte limit") {
		t.Fatalf("expected size-limit error, got %v", err)
	}
}

func TestExtractManifest_ArchiveTooLarge(t *testing.T) {
	svc := NewService(t.TempDir(), Limits{MaxArchiveBytes: 100})

	archive := writeArchive(t, map[string]string{
		"manifest.json": validManifest,
		"index.html":    strings.Repeat("x", 512),
	})

	info, err := os.Stat(archive)
	if err != nil {
		t.Fatalf("stat archive: %v", err)
	}
	if info.Size() <= 100 {
		t.Fatalf("fixture too small to exercise the cap: %d bytes", info.Size())
	}

	_, err = svc.ExtractManifest(archive)
	if err == nil || !strings.Contains(err.Error(), "limit") {
		t.Fatalf("expected archive-size error, got %v", err)
	}
}

func TestExtractManifest_UnsafeID(t *testing.T) {
	svc := newTestTemplateService(t)
	archive := writeArchive(t, map[string]string{
		"manifest.json": `{
		  "id": "../sneaky",
		  "name": "Sneaky",
		  "version": "1.0.0",
		  "category": "developer",
		  "entryFile": "index.html"
		}`,
		"index.html": "<html></html>",
	})

	_, err := svc.ExtractManifest(archive)
	if err == nil || !strings.Contains(err.Error(), "unsafe") {
		t.Fatalf("expected unsafe-id error, got %v", err)
	}
}

func TestExtractManifest_EntryFileWithDotSlashPrefix(t *testing.T) {
	svc := newTestTemplateService(t)
	archive := writeArchive(t, map[string]string{
		"manifest.json": `{
		  "id": "dotty",
		  "name": "Dotty",
		  "version": "1.0.0",
		  "category": "developer",
		  "entryFile": "./index.html"
		}`,
		"index.html": "<html></html>",
	})

	if _, err := svc.ExtractManifest(archive); err != nil {
		t.Fatalf("./-prefixed entryFile must resolve: %v", err)
	}
}

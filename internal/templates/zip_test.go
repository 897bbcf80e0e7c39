package templates

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"testing"
)

func TestWriteZipTo_RoundTrip(t *testing.T) {
	files := map[string]string{
		"README.md":    "# hi",
		"src/main.tsx": "export {}",
		"package.json": "{}",
	}

	var buf bytes.Buffer
	if err := WriteZipTo(&buf, files); err != nil {
		t.Fatalf("write zip: %v", err)
	}

	reader, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("reopen zip: %v", err)
	}
	if len(reader.File) != len(files) {
		t.Fatalf("expected %d entries, got %d", len(files), len(reader.File))
	}
	for _, f := range reader.File {
		want, ok := files[f.Name]
		if !ok {
			t.Fatalf("unexpected entry %q", f.Name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %q: %v", f.Name, err)
		}
		got, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %q: %v", f.Name, err)
		}
		if string(got) != want {
			t.Fatalf("entry %q = %q, want %q", f.Name, got, want)
		}
	}
}

func TestWriteZipTo_DeterministicOrder(t *testing.T) {
	files := map[string]string{"b.txt": "2", "a.txt": "1", "c/d.txt": "3"}

	var first, second bytes.Buffer
	if err := WriteZipTo(&first, files); err != nil {
		t.Fatalf("write zip: %v", err)
	}
	if err := WriteZipTo(&second, files); err != nil {
		t.Fatalf("write zip: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatal("identical inputs must produce identical archives")
	}
}

func TestCreatePortfolioZip_ProducesReadableArchive(t *testing.T) {
	svc := newTestTemplateService(t)
	outputPath := filepath.Join(t.TempDir(), "exports", "portfolio.zip")

	if err := svc.CreatePortfolioZip(samplePortfolioData(), "minimal-dark", outputPath); err != nil {
		t.Fatalf("create portfolio zip: %v", err)
	}

	reader, err := zip.OpenReader(outputPath)
	if err != nil {
		t.Fatalf("open exported zip: %v", err)
	}
	defer reader.Close()

	found := map[string]bool{}
	for _, f := range reader.File {
		found[f.Name] = true
	}
	for _, want := range []string{"package.json", "index.html", "src/App.tsx", "README.md"} {
		if !found[want] {
			t.Fatalf("export missing %q", want)
		}
	}
}

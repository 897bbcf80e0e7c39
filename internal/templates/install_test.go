package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInstall_ExtractsArchive(t *testing.T) {
	svc := newTestTemplateService(t)
	archive := writeArchive(t, map[string]string{
		"manifest.json":  validManifest,
		"index.html":     "<html>v1</html>",
		"css/style.css":  "body{}",
		"js/template.js": "export {}",
	})

	manifest, err := svc.ExtractManifest(archive)
	if err != nil {
		t.Fatalf("extract manifest: %v", err)
	}
	dir, err := svc.Install(archive, manifest)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	if dir != svc.InstalledPath("minimal-dark") {
		t.Fatalf("unexpected install dir %q", dir)
	}

	for _, rel := range []string{"index.html", "css/style.css", "js/template.js", "manifest.json"} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Fatalf("missing installed file %q: %v", rel, err)
		}
	}
}

func TestInstall_ReplacesPreviousInstall(t *testing.T) {
	svc := newTestTemplateService(t)

	first := writeArchive(t, map[string]string{
		"manifest.json": validManifest,
		"index.html":    "<html>v1</html>",
		"old-only.css":  "body{}",
	})
	second := writeArchive(t, map[string]string{
		"manifest.json": strings.Replace(validManifest, "1.0.0", "2.0.0", 1),
		"index.html":    "<html>v2</html>",
		"new-only.css":  "body{}",
	})

	for _, archive := range []string{first, second} {
		manifest, err := svc.ExtractManifest(archive)
		if err != nil {
			t.Fatalf("extract manifest: %v", err)
		}
		if _, err := svc.Install(archive, manifest); err != nil {
			t.Fatalf("install: %v", err)
		}
	}

	dir := svc.InstalledPath("minimal-dark")
	content, err := os.ReadFile(filepath.Join(dir, "index.html"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	if string(content) != "<html>v2</html>" {
		t.Fatalf("index not replaced, got %q", content)
	}
	if _, err := os.Stat(filepath.Join(dir, "old-only.css")); !os.IsNotExist(err) {
		t.Fatal("files from the previous install must be gone")
	}
	if _, err := os.Stat(filepath.Join(dir, "new-only.css")); err != nil {
		t.Fatalf("new install incomplete: %v", err)
	}
}

func TestInstall_RejectsNilManifest(t *testing.T) {
	svc := newTestTemplateService(t)
	if _, err := svc.Install("nowhere.zip", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestDelete_RemovesInstalledTemplate(t *testing.T) {
	svc := newTestTemplateService(t)
	archive := writeArchive(t, map[string]string{
		"manifest.json": validManifest,
		"index.html":    "<html></html>",
	})
	manifest, err := svc.ExtractManifest(archive)
	if err != nil {
		t.Fatalf("extract manifest: %v", err)
	}
	dir, err := svc.Install(archive, manifest)
	if err != nil {
		t.Fatalf("install: %v", err)
	}

	if err := svc.Delete(manifest.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatal("template dir must be removed")
	}
}

func TestDelete_MissingTemplateIsNoop(t *testing.T) {
	svc := newTestTemplateService(t)

	if err := svc.Delete("never-installed"); err != nil {
		t.Fatalf("delete of a missing template must succeed: %v", err)
	}
	if err := svc.Delete("never-installed"); err != nil {
		t.Fatalf("repeated delete must stay a no-op: %v", err)
	}
}

func TestDelete_RejectsUnsafeID(t *testing.T) {
	svc := newTestTemplateService(t)
	if err := svc.Delete("../outside"); err == nil {
		t.Fatal("expected error for traversal id")
	}
}

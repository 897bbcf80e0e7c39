package templates

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Service installs and removes portfolio templates under a fixed root
// directory and packages generated portfolio projects.
type Service struct {
	root   string
	limits Limits
}

// NewService builds the packaging service. root is the public templates
// directory templates are served from.
func NewService(root string, limits Limits) *Service {
	return &Service{root: root, limits: limits}
}

// MaxArchiveBytes returns the effective archive size cap, so upload handlers
// can reject oversized files before buffering them.
func (s *Service) MaxArchiveBytes() int64 {
	return s.limits.orDefaults().MaxArchiveBytes
}

// InstalledPath returns the directory a template id installs to.
func (s *Service) InstalledPath(templateID string) string {
	return filepath.Join(s.root, templateID)
}

// Install extracts the whole archive into <root>/<manifest.ID>/. An existing
// install with the same id is replaced completely, so repeated installs leave
// only the newest archive's files.
func (s *Service) Install(archivePath string, manifest *Manifest) (string, error) {
	if manifest == nil {
		return "", fmt.Errorf("install template: manifest is required")
	}
	if !isSafeTemplateID(manifest.ID) {
		return "", fmt.Errorf("install template: unsafe template id %q", manifest.ID)
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("open template archive: %w", err)
	}
	defer reader.Close()

	targetDir := s.InstalledPath(manifest.ID)
	if err := os.RemoveAll(targetDir); err != nil {
		return "", fmt.Errorf("clear previous install of %q: %w", manifest.ID, err)
	}
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("create template dir %q: %w", targetDir, err)
	}

	limits := s.limits.orDefaults()
	for _, f := range reader.File {
		cleaned, err := safeEntryName(f.Name)
		if err != nil {
			return "", err
		}

		destPath := filepath.Join(targetDir, filepath.FromSlash(cleaned))
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, 0o755); err != nil {
				return "", fmt.Errorf("create dir %q: %w", destPath, err)
			}
			continue
		}

		if err := extractEntry(f, destPath, limits.MaxEntryBytes); err != nil {
			return "", err
		}
	}

	return targetDir, nil
}

func extractEntry(f *zip.File, destPath string, maxBytes int64) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create dir for %q: %w", destPath, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create file %q: %w", destPath, err)
	}
	defer out.Close()

	// LimitReader guards against decompression bombs lying about their size.
	written, err := io.Copy(out, io.LimitReader(rc, maxBytes+1))
	if err != nil {
		return fmt.Errorf("extract entry %q: %w", f.Name, err)
	}
	if written > maxBytes {
		return fmt.Errorf("entry %q exceeds the %d byte limit", f.Name, maxBytes)
	}
	return nil
}

// Delete removes an installed template directory. A missing directory is a
// no-op; any other filesystem failure is surfaced with context.
func (s *Service) Delete(templateID string) error {
	if !isSafeTemplateID(templateID) {
		return fmt.Errorf("delete template: unsafe template id %q", templateID)
	}
	if err := os.RemoveAll(s.InstalledPath(templateID)); err != nil {
		return fmt.Errorf("delete template %q: %w", templateID, err)
	}
	return nil
}

package templates

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"talentd/internal/ai"
)

// WriteZipTo streams files into w as a zip archive. Entries are written in
// sorted path order so identical inputs produce identical archives.
func WriteZipTo(w io.Writer, files map[string]string) error {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	zw := zip.NewWriter(w)
	for _, p := range paths {
		entry, err := zw.Create(p)
		if err != nil {
			return fmt.Errorf("create zip entry %q: %w", p, err)
		}
		if _, err := entry.Write([]byte(files[p])); err != nil {
			return fmt.Errorf("write zip entry %q: %w", p, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	return nil
}

// WriteZip packages files into a zip archive at outputPath.
func WriteZip(files map[string]string, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create zip file %q: %w", outputPath, err)
	}
	defer out.Close()

	if err := WriteZipTo(out, files); err != nil {
		return err
	}
	return out.Close()
}

// CreatePortfolioZip renders the portfolio project and packages it into a
// downloadable zip at outputPath.
func (s *Service) CreatePortfolioZip(data ai.PortfolioData, templateID, outputPath string) error {
	files := BuildPortfolioProject(data, templateID)
	if err := WriteZip(files, outputPath); err != nil {
		return fmt.Errorf("package portfolio: %w", err)
	}
	return nil
}

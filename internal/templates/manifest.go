package templates

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// Manifest describes an uploaded template archive, parsed from the root-level
// manifest.json entry.
type Manifest struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Version     string   `json:"version"`
	Category    string   `json:"category"`
	EntryFile   string   `json:"entryFile"`
	Features    []string `json:"features,omitempty"`
	IsPremium   bool     `json:"isPremium,omitempty"`
}

const manifestEntryName = "manifest.json"

// Limits bounds uploaded archives. Zero values fall back to the defaults.
type Limits struct {
	MaxArchiveBytes int64
	MaxEntries      int
	MaxEntryBytes   int64
}

// DefaultLimits mirrors the config defaults.
var DefaultLimits = Limits{
	MaxArchiveBytes: 20 << 20,
	MaxEntries:      512,
	MaxEntryBytes:   5 << 20,
}

func (l Limits) orDefaults() Limits {
	out := l
	if out.MaxArchiveBytes <= 0 {
		out.MaxArchiveBytes = DefaultLimits.MaxArchiveBytes
	}
	if out.MaxEntries <= 0 {
		out.MaxEntries = DefaultLimits.MaxEntries
	}
	if out.MaxEntryBytes <= 0 {
		out.MaxEntryBytes = DefaultLimits.MaxEntryBytes
	}
	return out
}

// ErrManifestMissing is returned when the archive has no root manifest.json.
var ErrManifestMissing = errors.New("template archive has no manifest.json")

// ExtractManifest opens the archive, validates every entry name, locates the
// root manifest.json and checks the manifest contract: required fields
// {id,name,version,category,entryFile} and an entryFile that actually exists
// among the archive's entries. Any violation is a hard validation failure.
func (s *Service) ExtractManifest(archivePath string) (*Manifest, error) {
	limits := s.limits.orDefaults()

	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("stat template archive: %w", err)
	}
	if info.Size() > limits.MaxArchiveBytes {
		return nil, fmt.Errorf("template archive is %d bytes, limit is %d", info.Size(), limits.MaxArchiveBytes)
	}

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open template archive: %w", err)
	}
	defer reader.Close()

	manifest, err := s.extractManifest(&reader.Reader)
	if err != nil {
		return nil, err
	}
	return manifest, nil
}

func (s *Service) extractManifest(reader *zip.Reader) (*Manifest, error) {
	limits := s.limits.orDefaults()

	if len(reader.File) > limits.MaxEntries {
		return nil, fmt.Errorf("template archive has %d entries, limit is %d", len(reader.File), limits.MaxEntries)
	}

	names := make(map[string]struct{}, len(reader.File))
	var manifestFile *zip.File
	for _, f := range reader.File {
		cleaned, err := safeEntryName(f.Name)
		if err != nil {
			return nil, err
		}
		if f.UncompressedSize64 > uint64(limits.MaxEntryBytes) {
			return nil, fmt.Errorf("entry %q exceeds the %d byte limit", f.Name, limits.MaxEntryBytes)
		}
		names[cleaned] = struct{}{}
		if cleaned == manifestEntryName {
			manifestFile = f
		}
	}

	if manifestFile == nil {
		return nil, ErrManifestMissing
	}

	rc, err := manifestFile.Open()
	if err != nil {
		return nil, fmt.Errorf("open manifest entry: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limits.MaxEntryBytes))
	if err != nil {
		return nil, fmt.Errorf("read manifest entry: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest.json: %w", err)
	}

	if err := manifest.validate(); err != nil {
		return nil, err
	}

	entryFile := path.Clean(strings.TrimPrefix(manifest.EntryFile, "./"))
	if _, ok := names[entryFile]; !ok {
		return nil, fmt.Errorf("manifest entryFile %q not found in archive", manifest.EntryFile)
	}

	return &manifest, nil
}

func (m *Manifest) validate() error {
	missing := make([]string, 0, 5)
	for field, value := range map[string]string{
		"id":        m.ID,
		"name":      m.Name,
		"version":   m.Version,
		"category":  m.Category,
		"entryFile": m.EntryFile,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("manifest is missing required fields: %s", strings.Join(missing, ", "))
	}
	if !isSafeTemplateID(m.ID) {
		return fmt.Errorf("manifest id %q contains unsafe characters", m.ID)
	}
	return nil
}

// safeEntryName normalizes an archive entry name and rejects anything that
// would escape the install directory (absolute paths, .., backslashes).
func safeEntryName(name string) (string, error) {
	if name == "" {
		return "", errors.New("archive contains an empty entry name")
	}
	if strings.Contains(name, "\\") {
		return "", fmt.Errorf("archive entry %q uses backslash separators", name)
	}
	if strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("archive entry %q is an absolute path", name)
	}
	cleaned := path.Clean(name)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("archive entry %q escapes the target directory", name)
	}
	return cleaned, nil
}

// isSafeTemplateID accepts IDs usable as a directory name: letters, digits,
// dash, underscore.
func isSafeTemplateID(id string) bool {
	if id == "" || len(id) > 128 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// manifestVersion identifies the manifest schema.
const manifestVersion = 1

// FileInfo records the identity of one indexed catalog file at build time.
type FileInfo struct {
	ProductID string `json:"product_id"`
	Size      int64  `json:"size"`
	// MTime is the file's modification time in Unix nanoseconds.
	MTime int64 `json:"mtime_unix_nano"`
}

// FileStat is the live identity of a catalog file observed by a scan.
type FileStat struct {
	Size  int64
	MTime int64
}

// Manifest maps every indexed file's catalog-relative path (POSIX
// separators) to the identity captured when the index was built, plus
// the embedder the build used. A snapshot is trusted only while the
// directory still matches its manifest exactly.
type Manifest struct {
	Version   int                 `json:"manifest_version"`
	CreatedAt time.Time           `json:"created_at"`
	ModelID   string              `json:"model_id"`
	Dim       int                 `json:"dim"`
	Files     map[string]FileInfo `json:"files"`
}

// NewManifest creates an empty manifest for the given embedder identity.
func NewManifest(modelID string, dim int) *Manifest {
	return &Manifest{
		Version:   manifestVersion,
		CreatedAt: time.Now().UTC(),
		ModelID:   modelID,
		Dim:       dim,
		Files:     make(map[string]FileInfo),
	}
}

// LoadManifest reads the manifest at path. A missing file returns (nil, nil).
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Files == nil {
		m.Files = make(map[string]FileInfo)
	}
	return &m, nil
}

// Save writes the manifest to path via a temp file and rename.
func (m *Manifest) Save(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// Diff compares the manifest against the directory's current files and
// the active embedder. It returns an empty string when everything
// matches, or a short reason naming the first inconsistency.
func (m *Manifest) Diff(files map[string]FileStat, modelID string, dim int) string {
	if m.Version != manifestVersion {
		return fmt.Sprintf("manifest version %d, expected %d", m.Version, manifestVersion)
	}
	if m.ModelID != modelID {
		return fmt.Sprintf("model changed: %q -> %q", m.ModelID, modelID)
	}
	if m.Dim != dim {
		return fmt.Sprintf("dimension changed: %d -> %d", m.Dim, dim)
	}
	for path, fi := range m.Files {
		st, ok := files[path]
		if !ok {
			return "file removed: " + path
		}
		if st.Size != fi.Size || st.MTime != fi.MTime {
			return "file modified: " + path
		}
	}
	for path := range files {
		if _, ok := m.Files[path]; !ok {
			return "file added: " + path
		}
	}
	return ""
}

// Record sets the manifest entry for a file.
func (m *Manifest) Record(relPath, productID string, st FileStat) {
	m.Files[relPath] = FileInfo{ProductID: productID, Size: st.Size, MTime: st.MTime}
}

// Forget drops the manifest entry for a file, if present.
func (m *Manifest) Forget(relPath string) {
	delete(m.Files, relPath)
}

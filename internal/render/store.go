package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"totem-quiz-bot/internal/domain"
)

const (
	PurposeResult = "result"
	PurposeShare  = "share"
)

var nameReplacer = strings.NewReplacer(" ", "_", "/", "_", `\`, "_")

// ArtifactName is <purpose>_<outcomeKey>_<displayName>.png with the display
// name lowercased and spaces turned into underscores. Path separators are
// replaced too so the name always stays inside the output directory.
func ArtifactName(purpose, outcomeKey, displayName string) string {
	return fmt.Sprintf("%s_%s_%s.png", purpose, outcomeKey, nameReplacer.Replace(strings.ToLower(displayName)))
}

// FileStore writes artifacts into a single directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Save writes the artifact and returns its path. Existing files are overwritten.
func (s *FileStore) Save(artifact domain.Artifact) (string, error) {
	if artifact.Name == "" || filepath.Base(artifact.Name) != artifact.Name {
		return "", fmt.Errorf("invalid artifact name %q", artifact.Name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, artifact.Name)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}

package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// WriteTemp writes data to a new codeshot-<uuid>.png file in dir and
// returns its path. An empty dir means the system temp directory.
func WriteTemp(dir string, data []byte) (string, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, fmt.Sprintf("codeshot-%s.%s", uuid.NewString(), FormatPNG))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

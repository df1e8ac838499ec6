package tempfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Write persists data as a uniquely named file in the OS temp dir and returns
// its path plus a cleanup func. The cleanup is safe to call on every exit path
// and must run before the next temp resource is acquired, so peak temp usage
// stays bounded to a single payload.
func Write(data []byte, suffix string) (string, func(), error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("textextract-%s%s", uuid.NewString(), suffix))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(path) }
	return path, cleanup, nil
}

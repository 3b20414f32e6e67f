package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
)

// CleanPath trims whitespace and surrounding quote characters from a
// user-entered path. Shells and file managers commonly quote paths with
// spaces on copy.
func CleanPath(p string) string {
	p = strings.TrimSpace(p)
	if len(p) >= 2 {
		if (p[0] == '"' && p[len(p)-1] == '"') || (p[0] == '\'' && p[len(p)-1] == '\'') {
			p = p[1 : len(p)-1]
		}
	}
	return p
}

// Validate checks that every expected filename exists as a direct child of
// dir. It returns the missing names in expected order. A path that does not
// exist or is not a directory is an error; a non-empty missing list is not.
func Validate(dir string, expected []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: folder does not exist or is not a directory: %s", domain.ErrInvalidModelDir, dir)
	}

	var missing []string
	for _, name := range expected {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			missing = append(missing, name)
		}
	}

	return missing, nil
}

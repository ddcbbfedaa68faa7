package paths

import (
	"path/filepath"
	"strings"

	"github.com/zanyuzhao/spec-coding/pkg/errors"
)

// ValidatePath rejects paths that can never name a usable location:
// empty, containing null bytes, or longer than common filesystem limits.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}

	if strings.Contains(path, "\x00") {
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	}

	if len(path) > 4096 {
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}

	return nil
}

// SanitizePath expands ~ and cleans the path
func SanitizePath(path string) string {
	cleaned := filepath.Clean(ExpandHome(path))
	if cleaned == "" {
		return "."
	}
	return cleaned
}

// ContainsPath checks if child is parent or lies below it.
// Both paths are normalized before comparison.
func ContainsPath(parent, child string) bool {
	parent = SanitizePath(parent)
	child = SanitizePath(child)

	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

package rules

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/zanyuzhao/spec-coding/pkg/errors"
)

// DefaultIgnore lists files that are never templates
var DefaultIgnore = []string{
	"**/.DS_Store",
	"**/Thumbs.db",
	"**/*.swp",
	"**/*~",
	".claude/settings*.json",
}

// Ignore is a set of doublestar patterns matched against source-relative paths
type Ignore []string

// Match reports whether rel is excluded from classification
func (ig Ignore) Match(rel string) bool {
	rel = path.Clean(strings.TrimPrefix(rel, "./"))
	for _, p := range ig {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Validate rejects malformed patterns
func (ig Ignore) Validate() error {
	for _, p := range ig {
		if !doublestar.ValidatePattern(p) {
			return errors.Newf(errors.ErrConfigValid, "invalid ignore pattern %q", p)
		}
	}
	return nil
}

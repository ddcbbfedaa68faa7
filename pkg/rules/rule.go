package rules

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Rule maps one subtree or file between the source, staging and target layouts
type Rule struct {
	Name     string
	Category Category

	// Source, Staging and Target are slash-separated prefixes relative to
	// their respective roots
	Source  string
	Staging string
	Target  string

	// File marks a single-file rule instead of a subtree
	File bool

	// Verbatim disables substitution for this member even when the
	// category is substitutable
	Verbatim bool

	// Essential members are materialized even in docs-only runs
	Essential bool
}

// Substitutes reports whether placeholders apply to files of this rule
func (r Rule) Substitutes() bool {
	return PolicyOf(r.Category).Substitutable && !r.Verbatim
}

// RefreshOnUpdate reports whether existing target files are overwritten on update
func (r Rule) RefreshOnUpdate() bool {
	return PolicyOf(r.Category).RefreshOnUpdate
}

// SourcePattern returns the doublestar pattern matched against source paths
func (r Rule) SourcePattern() string {
	return pattern(r.Source, r.File)
}

// StagingPattern returns the doublestar pattern matched against staging paths
func (r Rule) StagingPattern() string {
	return pattern(r.Staging, r.File)
}

// MatchSource reports whether rel (relative to the source root) belongs to this rule
func (r Rule) MatchSource(rel string) bool {
	return match(r.SourcePattern(), rel)
}

// MatchStaging reports whether rel (relative to the staging root) belongs to this rule
func (r Rule) MatchStaging(rel string) bool {
	return match(r.StagingPattern(), rel)
}

// SourceToStaging maps a matched source path to its staging path
func (r Rule) SourceToStaging(rel string) string {
	return rebase(rel, r.Source, r.Staging, r.File)
}

// StagingToTarget maps a matched staging path to its target path
func (r Rule) StagingToTarget(rel string) string {
	return rebase(rel, r.Staging, r.Target, r.File)
}

func pattern(prefix string, file bool) string {
	if file {
		return prefix
	}
	return prefix + "/**"
}

func match(pattern, rel string) bool {
	rel = path.Clean(strings.TrimPrefix(rel, "./"))
	ok, err := doublestar.Match(pattern, rel)
	return err == nil && ok
}

func rebase(rel, from, to string, file bool) string {
	if file {
		return to
	}
	rel = path.Clean(strings.TrimPrefix(rel, "./"))
	return path.Join(to, strings.TrimPrefix(strings.TrimPrefix(rel, from), "/"))
}

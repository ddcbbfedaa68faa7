package rules

import (
	"path"
	"strings"

	"github.com/zanyuzhao/spec-coding/pkg/errors"
)

// Table is the static policy table: the rules plus the completeness
// requirements of a staging tree
type Table struct {
	Rules []Rule

	// Required categories must each hold at least one file for a staging
	// tree to be complete
	Required []Category

	// RequiredSourceDirs must exist below the source root for a build to run
	RequiredSourceDirs []string
}

// DefaultTable returns the layout of the canonical spec-coding repository
func DefaultTable() *Table {
	return &Table{
		Rules: []Rule{
			{Name: "cursor-rules", Category: CategoryRules, Source: ".cursor/rules", Staging: "cursor/rules", Target: ".cursor/rules"},
			{Name: "cursor-skills", Category: CategorySkills, Source: ".cursor/skills", Staging: "cursor/skills", Target: ".cursor/skills"},
			{Name: "claude-skills", Category: CategorySkills, Source: ".claude/skills", Staging: "claude/skills", Target: ".claude/skills"},
			{Name: "docs-spec", Category: CategoryDocsSpec, Source: "docs/spec", Staging: "docs/spec", Target: "docs/spec"},
			{Name: "docs-process", Category: CategoryDocsProcess, Source: "docs/spec_process", Staging: "docs/spec_process", Target: "docs/spec_process"},
			{Name: "claude-rules", Category: CategorySingletonConfig, Source: ".claude/rules", Staging: "claude/rules", Target: ".claude/rules", Essential: true},
			{Name: "claude-md", Category: CategorySingletonConfig, Source: "CLAUDE.md", Staging: "CLAUDE.md", Target: "CLAUDE.md", File: true, Essential: true},
			{Name: "cursor-mcp", Category: CategorySingletonConfig, Source: ".cursor/mcp.json", Staging: "cursor/mcp.json", Target: ".cursor/mcp.json", File: true, Verbatim: true},
		},
		Required:           []Category{CategoryRules, CategoryDocsSpec, CategorySingletonConfig},
		RequiredSourceDirs: []string{".cursor", "docs"},
	}
}

// ByCategory returns the rules of one category in table order
func (t *Table) ByCategory(c Category) []Rule {
	var out []Rule
	for _, r := range t.Rules {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}

// SourceRoots returns the distinct top-level entries of the source tree
// that hold template files, e.g. ".cursor", "docs/spec", "CLAUDE.md"
func (t *Table) SourceRoots() []string {
	seen := make(map[string]bool)
	var roots []string
	for _, r := range t.Rules {
		// Tool directories (.cursor, .claude) are scanned whole so that
		// unexpected files in them surface as layout drift.
		root := r.Source
		if first, _, ok := strings.Cut(r.Source, "/"); ok && strings.HasPrefix(first, ".") {
			root = first
		}
		if !seen[root] {
			seen[root] = true
			roots = append(roots, root)
		}
	}
	return roots
}

// ClassifySource returns the rule owning a path relative to the source root
func (t *Table) ClassifySource(rel string) (Rule, error) {
	return t.classify(rel, func(r Rule, p string) bool { return r.MatchSource(p) })
}

// ClassifyStaging returns the rule owning a path relative to the staging root
func (t *Table) ClassifyStaging(rel string) (Rule, error) {
	return t.classify(rel, func(r Rule, p string) bool { return r.MatchStaging(p) })
}

// Classify accepts a path relative to either the source or the staging root
func (t *Table) Classify(rel string) (Rule, error) {
	return t.classify(rel, func(r Rule, p string) bool { return r.MatchSource(p) || r.MatchStaging(p) })
}

// CategoryOf is Classify reduced to the category
func (t *Table) CategoryOf(rel string) (Category, error) {
	r, err := t.Classify(rel)
	if err != nil {
		return "", err
	}
	return r.Category, nil
}

func (t *Table) classify(rel string, matches func(Rule, string) bool) (Rule, error) {
	rel = path.Clean(strings.TrimPrefix(rel, "./"))

	var found []Rule
	for _, r := range t.Rules {
		if matches(r, rel) {
			found = append(found, r)
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return Rule{}, errors.Newf(errors.ErrLayoutDrift, "no category matches %s", rel).
			WithDetail("path", rel)
	default:
		names := make([]string, len(found))
		for i, r := range found {
			names[i] = r.Name
		}
		return Rule{}, errors.Newf(errors.ErrCategoryAmbiguous, "%s matches %d rules: %s", rel, len(found), strings.Join(names, ", ")).
			WithDetail("path", rel).
			WithDetail("rules", names)
	}
}

// Validate checks the table itself: known categories, unique names and
// non-empty prefixes
func (t *Table) Validate() error {
	names := make(map[string]bool)
	for _, r := range t.Rules {
		if r.Name == "" || r.Source == "" || r.Staging == "" || r.Target == "" {
			return errors.Newf(errors.ErrConfigValid, "rule %q has an empty name or prefix", r.Name)
		}
		if !r.Category.Valid() {
			return errors.Newf(errors.ErrConfigValid, "rule %q has unknown category %q", r.Name, r.Category)
		}
		if names[r.Name] {
			return errors.Newf(errors.ErrConfigValid, "duplicate rule name %q", r.Name)
		}
		names[r.Name] = true
	}
	for _, c := range t.Required {
		if len(t.ByCategory(c)) == 0 {
			return errors.Newf(errors.ErrConfigValid, "required category %q has no rules", c)
		}
	}
	return nil
}

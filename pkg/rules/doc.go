// Package rules is the category policy table of the template engine.
//
// Every file the engine handles belongs to exactly one Category, decided by
// the path prefix of the file relative to the source tree or the staging
// tree. A category carries two fixed attributes: whether placeholder
// substitution applies and whether an existing copy in the target project
// is refreshed on update.
//
// # Pattern Conventions
//
// A Rule names one subtree (or one file) in three coordinate systems:
//
//	source   .cursor/rules/**    canonical repository layout
//	staging  cursor/rules/**     generated template tree
//	target   .cursor/rules/**    materialized project layout
//
// Patterns are doublestar globs. Subtree rules match "prefix/**", file
// rules match the exact path. A path matching no rule is layout drift; a
// path matching two rules is an ambiguous table. Both are errors.
//
// Singleton-config rules carry two per-member flags: Verbatim suppresses
// substitution for machine-readable files, and Essential marks files that
// are materialized even in docs-only runs.
package rules

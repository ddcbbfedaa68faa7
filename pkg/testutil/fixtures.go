package testutil

import "github.com/zanyuzhao/spec-coding/pkg/placeholder"

// CanonicalSource is a minimal source tree that exercises every rule of the
// default table, including files with substitutable names
var CanonicalSource = map[string]string{
	".cursor/rules/backend.mdc":              "Put handlers in backend/app/api and import app.models.\n",
	".cursor/rules/frontend.mdc":             "Components live in frontend/src. The application shell stays.\n",
	".cursor/skills/review/SKILL.md":         "Review backend/ changes first.\n",
	".cursor/mcp.json":                       `{"servers": {"backend": {"cwd": "backend/app"}}}` + "\n",
	".claude/skills/plan/SKILL.md":           "Plan work in backend and frontend.\n",
	".claude/rules/core.md":                  "Run tests from backend/.\n",
	"CLAUDE.md":                              "# Project\nSource lives in backend/app/ and frontend/.\n",
	"docs/spec/README.md":                    "# Specs\nWrite specs for backend features here.\n",
	"docs/spec/templates/feature.md":         "## Feature\n",
	"docs/spec_process/workflow.md":          "1. spec\n2. backend\n3. frontend\n",
	"docs/spec_process/checklists/review.md": "- [ ] app.settings reviewed\n",
}

// CanonicalParams are non-default names used to check substitution
var CanonicalParams = placeholder.Params{
	BackendDir:  "server",
	FrontendDir: "web",
	AppPackage:  "core",
}

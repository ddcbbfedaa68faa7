package materialize

import (
	"os"

	"github.com/zanyuzhao/spec-coding/pkg/placeholder"
	"github.com/zanyuzhao/spec-coding/pkg/rules"
	"github.com/zanyuzhao/spec-coding/pkg/staging"
	"github.com/zanyuzhao/spec-coding/pkg/state"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// Step names one stage of a sync
type Step string

const (
	StepDocs      Step = "docs"
	StepEssential Step = "essential-config"
	StepSkills    Step = "skills"
	StepRules     Step = "rules"
	StepConfig    Step = "config"
	StepMarker    Step = "marker"
	StepCleanup   Step = "cleanup"
)

// Stager releases the staging tree after a successful sync
type Stager interface {
	Cleanup() staging.CleanupResult
}

// Options configures a sync
type Options struct {
	FS          types.FS
	StagingRoot string
	TargetRoot  string
	Params      placeholder.Params
	Mode        state.InstallMode
	DocsOnly    bool
	DryRun      bool

	// Version is recorded in the marker
	Version string

	Table    *rules.Table
	FilePerm os.FileMode
	DirPerm  os.FileMode

	// Stager is optional; without it the staging tree is left in place
	Stager Stager
}

// Action is one file written (or planned, in a dry run)
type Action struct {
	Step     Step
	Rule     string
	Category rules.Category
	// Staged and Target are slash-separated and relative to their roots
	Staged      string
	Target      string
	Substituted bool
}

// SkippedStep records a step that did not run and why
type SkippedStep struct {
	Step   Step
	Reason string
}

// Result describes a sync
type Result struct {
	Mode    state.InstallMode
	DryRun  bool
	Actions []Action
	Skipped []SkippedStep
	Marker  *state.Marker
	Cleanup *staging.CleanupResult
}

// Files returns the target paths of all actions of one step
func (r *Result) Files(step Step) []string {
	var out []string
	for _, a := range r.Actions {
		if a.Step == step {
			out = append(out, a.Target)
		}
	}
	return out
}

// WasSkipped reports whether step did not run
func (r *Result) WasSkipped(step Step) bool {
	for _, s := range r.Skipped {
		if s.Step == step {
			return true
		}
	}
	return false
}

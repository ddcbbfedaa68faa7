package staging

// Status is the outcome of a staging operation
type Status string

const (
	StatusDone    Status = "done"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// BuildResult describes a build
type BuildResult struct {
	Status Status
	// Reason explains a skipped build
	Reason string
	// Files lists the staged files, slash-separated and relative to the
	// staging root, in build order
	Files []string
}

// CleanupResult describes a cleanup. Cleanup never fails the caller; a
// failure is reported through Status and Err.
type CleanupResult struct {
	Status Status
	Reason string
	Err    error
}

package types

import "time"

// StepReport describes one sync step for display
type StepReport struct {
	Name    string   `json:"name"`
	Skipped bool     `json:"skipped"`
	Reason  string   `json:"reason,omitempty"`
	Files   []string `json:"files,omitempty"`
}

// ParamsReport holds the names substituted into templates
type ParamsReport struct {
	BackendDir  string `json:"backendDir"`
	FrontendDir string `json:"frontendDir"`
	AppPackage  string `json:"appPackage"`
}

// InitResult holds the result of the 'init' command
type InitResult struct {
	Target           string        `json:"target"`
	EngineVersion    string        `json:"engineVersion"`
	InstalledVersion string        `json:"installedVersion,omitempty"`
	LegacyMarker     bool          `json:"legacyMarker"`
	Comparison       string        `json:"comparison"`
	Detected         string        `json:"detected"` // "fresh" or "update"
	Mode             string        `json:"mode"`     // mode applied after --force
	Forced           bool          `json:"forced"`
	DocsOnly         bool          `json:"docsOnly"`
	DryRun           bool          `json:"dryRun"`
	Params           ParamsReport  `json:"params"`
	Staging          string        `json:"staging"` // "built", "reused"
	Steps            []StepReport  `json:"steps"`
	Cleanup          string        `json:"cleanup,omitempty"`
	CleanupError     string        `json:"cleanupError,omitempty"`
	FilesWritten     int           `json:"filesWritten"`
	Duration         time.Duration `json:"duration"`
}

// StatusResult holds the result of the 'status' command
type StatusResult struct {
	Target           string       `json:"target"`
	EngineVersion    string       `json:"engineVersion"`
	MarkerPresent    bool         `json:"markerPresent"`
	InstalledVersion string       `json:"installedVersion,omitempty"`
	LegacyMarker     bool         `json:"legacyMarker"`
	Comparison       string       `json:"comparison"`
	DocsPresent      []string     `json:"docsPresent"`
	Mode             string       `json:"mode"`
	Params           ParamsReport `json:"params"`
	SourceRoot       string       `json:"sourceRoot"`
	SourceAvailable  bool         `json:"sourceAvailable"`
	StagingRoot      string       `json:"stagingRoot"`
	StagingComplete  bool         `json:"stagingComplete"`
}

// TemplatesResult holds the result of 'templates build' and 'templates clean'
type TemplatesResult struct {
	Action      string `json:"action"` // "build" or "clean"
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	Error       string `json:"error,omitempty"`
	SourceRoot  string `json:"sourceRoot"`
	StagingRoot string `json:"stagingRoot"`
	Files       int    `json:"files"`
}

// GenConfigResult holds the result of the 'config' command
type GenConfigResult struct {
	ConfigContent string   `json:"configContent"`
	FilesWritten  []string `json:"filesWritten"`
}

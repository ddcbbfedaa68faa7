// Package placeholder converts between the concrete directory and package
// names used in the canonical source tree and the symbolic placeholders
// stored in staged templates.
//
// Three names are parameterized: the backend directory, the frontend
// directory and the backend application package. Backend and frontend are
// replaced literally. The application package name is short enough to occur
// inside ordinary words, so it is only replaced when it stands alone as a
// path segment ("app/") or as a member-access prefix ("app.").
package placeholder

import (
	"regexp"
	"strings"

	"github.com/zanyuzhao/spec-coding/pkg/errors"
)

// Placeholder tokens embedded in staged templates.
const (
	BackendDir  = "{{BACKEND_DIR}}"
	FrontendDir = "{{FRONTEND_DIR}}"
	AppPackage  = "{{APP_PACKAGE}}"
)

// Literal names used by the canonical source tree.
const (
	DefaultBackendDir  = "backend"
	DefaultFrontendDir = "frontend"
	DefaultAppPackage  = "app"
)

var (
	appSegment = regexp.MustCompile(`\bapp/`)
	appMember  = regexp.MustCompile(`\bapp\.`)
)

// Params holds the concrete names substituted for each placeholder when a
// template is materialized into a target project.
type Params struct {
	BackendDir  string `json:"backend_dir" koanf:"backend_dir" toml:"backend_dir"`
	FrontendDir string `json:"frontend_dir" koanf:"frontend_dir" toml:"frontend_dir"`
	AppPackage  string `json:"app_package" koanf:"app_package" toml:"app_package"`
}

// DefaultParams maps every placeholder back to the literal it replaced.
func DefaultParams() Params {
	return Params{
		BackendDir:  DefaultBackendDir,
		FrontendDir: DefaultFrontendDir,
		AppPackage:  DefaultAppPackage,
	}
}

// Validate rejects names that cannot be used as a single path segment.
func (p Params) Validate() error {
	fields := []struct {
		flag  string
		value string
	}{
		{"backend-dir", p.BackendDir},
		{"frontend-dir", p.FrontendDir},
		{"app-package", p.AppPackage},
	}
	for _, f := range fields {
		switch {
		case f.value == "":
			return errors.Newf(errors.ErrInvalidInput, "%s cannot be empty", f.flag)
		case f.value == "." || f.value == "..":
			return errors.Newf(errors.ErrInvalidInput, "%s cannot be %q", f.flag, f.value)
		case strings.ContainsAny(f.value, "/\\"):
			return errors.Newf(errors.ErrInvalidInput, "%s must be a single path segment: %q", f.flag, f.value)
		case strings.ContainsAny(f.value, " \t\r\n"):
			return errors.Newf(errors.ErrInvalidInput, "%s cannot contain whitespace: %q", f.flag, f.value)
		case strings.Contains(f.value, "{{") || strings.Contains(f.value, "}}"):
			return errors.Newf(errors.ErrInvalidInput, "%s cannot contain placeholder braces: %q", f.flag, f.value)
		}
	}
	return nil
}

// ToPlaceholders replaces the concrete names of the canonical source tree
// with their placeholders.
func ToPlaceholders(text string) string {
	s := strings.ReplaceAll(text, DefaultBackendDir, BackendDir)
	s = strings.ReplaceAll(s, DefaultFrontendDir, FrontendDir)
	s = appSegment.ReplaceAllLiteralString(s, AppPackage+"/")
	s = appMember.ReplaceAllLiteralString(s, AppPackage+".")
	return s
}

// FromPlaceholders replaces every placeholder with the value from params.
func FromPlaceholders(text string, params Params) string {
	r := strings.NewReplacer(
		BackendDir, params.BackendDir,
		FrontendDir, params.FrontendDir,
		AppPackage, params.AppPackage,
	)
	return r.Replace(text)
}

package state

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/zanyuzhao/spec-coding/pkg/errors"
	"github.com/zanyuzhao/spec-coding/pkg/logging"
	"github.com/zanyuzhao/spec-coding/pkg/paths"
	"github.com/zanyuzhao/spec-coding/pkg/placeholder"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// LegacyVersion stands in for a marker that exists but cannot be read as a
// version record. It sorts below every released version.
const LegacyVersion = "0.0.0"

// Marker is the version record stored at the target root
type Marker struct {
	Version     string `json:"version"`
	BackendDir  string `json:"backend_dir,omitempty"`
	FrontendDir string `json:"frontend_dir,omitempty"`
	AppPackage  string `json:"app_package,omitempty"`

	// Legacy is set when the marker was present but unparsable or empty
	Legacy bool `json:"-"`
}

// NewMarker records an engine version together with the parameters a sync used
func NewMarker(version string, params placeholder.Params) Marker {
	return Marker{
		Version:     version,
		BackendDir:  params.BackendDir,
		FrontendDir: params.FrontendDir,
		AppPackage:  params.AppPackage,
	}
}

// Params returns the recorded parameters as a flat map keyed like the
// configuration (backend_dir, ...). Fields the marker does not carry are
// omitted.
func (m *Marker) Params() map[string]interface{} {
	out := make(map[string]interface{})
	if m == nil {
		return out
	}
	if m.BackendDir != "" {
		out["backend_dir"] = m.BackendDir
	}
	if m.FrontendDir != "" {
		out["frontend_dir"] = m.FrontendDir
	}
	if m.AppPackage != "" {
		out["app_package"] = m.AppPackage
	}
	return out
}

// ReadMarker reads the version marker of target. It returns nil when there
// is no marker. Malformed content is never an error: it yields a legacy
// marker so the target is handled as an update.
func ReadMarker(fs types.FS, target string) (*Marker, error) {
	logger := logging.GetLogger("state.marker")
	path := paths.VersionFile(target)

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read version marker %s", path)
	}

	var m Marker
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("Version marker is malformed, treating as legacy")
		return &Marker{Version: LegacyVersion, Legacy: true}, nil
	}

	m.Version = strings.TrimSpace(m.Version)
	if m.Version == "" {
		logger.Warn().Str("path", path).Msg("Version marker has no version, treating as legacy")
		m.Version = LegacyVersion
		m.Legacy = true
	}
	return &m, nil
}

// WriteMarker replaces the marker of target with m
func WriteMarker(fs types.FS, target string, m Marker, perm os.FileMode) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode version marker")
	}
	data = append(data, '\n')

	path := paths.VersionFile(target)
	if err := fs.WriteFile(path, data, perm); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write version marker %s", path)
	}
	return nil
}

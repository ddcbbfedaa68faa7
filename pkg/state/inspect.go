package state

import (
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/zanyuzhao/spec-coding/pkg/filesystem"
	"github.com/zanyuzhao/spec-coding/pkg/rules"
	"github.com/zanyuzhao/spec-coding/pkg/types"
)

// InstallMode is the classification of a target
type InstallMode string

const (
	ModeFresh  InstallMode = "fresh"
	ModeUpdate InstallMode = "update"
)

// Comparison relates an installed version to the engine version
type Comparison string

const (
	CompareNone      Comparison = "none"
	CompareSame      Comparison = "same"
	CompareUpgrade   Comparison = "upgrade"
	CompareDowngrade Comparison = "downgrade"
	CompareUnknown   Comparison = "unknown"
)

// Inspection is everything known about a target before a sync
type Inspection struct {
	Target string
	Marker *Marker

	// DocsPresent lists the documentation target directories that exist
	DocsPresent []string
}

// Inspect reads the observable state of target
func Inspect(fs types.FS, target string, table *rules.Table) (*Inspection, error) {
	m, err := ReadMarker(fs, target)
	if err != nil {
		return nil, err
	}

	in := &Inspection{Target: target, Marker: m}
	for _, c := range []rules.Category{rules.CategoryDocsSpec, rules.CategoryDocsProcess} {
		for _, r := range table.ByCategory(c) {
			if filesystem.Exists(fs, filepath.Join(target, filepath.FromSlash(r.Target))) {
				in.DocsPresent = append(in.DocsPresent, r.Target)
			}
		}
	}
	return in, nil
}

// Mode classifies the target: update iff a marker exists or documentation
// is already present, fresh otherwise
func (in *Inspection) Mode() InstallMode {
	if in.Marker != nil || len(in.DocsPresent) > 0 {
		return ModeUpdate
	}
	return ModeFresh
}

// InstalledVersion returns the recorded version, or "" without a marker
func (in *Inspection) InstalledVersion() string {
	if in.Marker == nil {
		return ""
	}
	return in.Marker.Version
}

// Compare relates the installed version to engineVersion
func (in *Inspection) Compare(engineVersion string) Comparison {
	if in.Marker == nil {
		return CompareNone
	}
	return CompareVersions(in.Marker.Version, engineVersion)
}

// ClassifyInstall is Inspect reduced to the install mode
func ClassifyInstall(fs types.FS, target string, table *rules.Table) (InstallMode, error) {
	in, err := Inspect(fs, target, table)
	if err != nil {
		return "", err
	}
	return in.Mode(), nil
}

// CompareVersions compares an installed version against the engine version.
// Versions may be given with or without a leading "v".
func CompareVersions(installed, engine string) Comparison {
	a, b := canonical(installed), canonical(engine)
	if !semver.IsValid(a) || !semver.IsValid(b) {
		return CompareUnknown
	}
	switch semver.Compare(a, b) {
	case 0:
		return CompareSame
	case -1:
		return CompareUpgrade
	default:
		return CompareDowngrade
	}
}

func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

// Package paths provides centralized path handling for spec-coding.
//
// It owns the names of the files spec-coding writes into a target project
// and the default locations it uses on the host:
//
//   - Staging: $XDG_DATA_HOME/spec-coding/templates (prepared template tree)
//   - Config: $XDG_CONFIG_HOME/spec-coding/config.toml (user configuration)
//   - State: $XDG_STATE_HOME/spec-coding (log file)
//
// Inside a target project it manages the version marker
// (.spec-coding-version), the optional project configuration
// (.spec-coding.toml) and the advisory run lock (.spec-coding.lock).
package paths

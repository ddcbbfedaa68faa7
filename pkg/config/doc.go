// Package config loads the spec-coding configuration.
//
// Configuration is layered with koanf; later layers win:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. parameters recorded in the target's version marker
//  3. user configuration ($XDG_CONFIG_HOME/spec-coding/config.toml)
//  4. project configuration (<target>/.spec-coding.toml)
//  5. SPEC_CODING_* environment variables
//  6. command-line flags that were explicitly set
//
// Lists are merged by appending, so ignore patterns from a project add to
// the defaults instead of replacing them.
package config

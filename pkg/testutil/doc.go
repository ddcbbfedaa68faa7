// Package testutil provides fixtures shared by the spec-coding tests.
//
// Key components:
//   - TestEnvironment: source, staging and target roots on either an
//     in-memory filesystem or a real temporary directory
//   - CanonicalSource: a small source tree covering every category
//   - Tree helpers: writing, reading and snapshotting file trees
//
// Usage guidelines:
//   - Prefer EnvMemoryOnly; use EnvIsolated when the code under test
//     renames directories (staging builds) or talks to the OS directly
//   - Test data is defined inline
package testutil

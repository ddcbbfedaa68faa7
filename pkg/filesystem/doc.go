// Package filesystem provides filesystem implementations for spec-coding.
//
// This package contains implementations of the types.FS interface,
// the standard OS filesystem and an afero-backed one used by tests,
// plus the deterministic file walk shared by the staging builder and
// the sync engine.
package filesystem

// Package state inspects and records the spec-coding state of a target
// project.
//
// The observable state of a target is small: the version marker written
// after the last successful sync, and whether the documentation categories
// (docs/spec, docs/spec_process) already exist. From those two signals
// ClassifyInstall decides between a fresh install, which may write
// documentation, and an update, which must never touch it.
//
// The package also provides the advisory lock that serializes runs
// against the same target.
package state

// Package types defines the interfaces and data structures shared between
// spec-coding packages: the filesystem abstraction and the display results
// commands hand to the renderer.
package types

// Package materialize writes the staging tree into a target project.
//
// A sync runs a fixed sequence of steps. Documentation is written only on a
// fresh install; on an update it belongs to the project and is left alone.
// Framework files (rules, skills and the singleton configuration files) are
// refreshed on every run, with placeholders replaced by the project's names
// except for members marked verbatim. The version marker is the last write
// of a successful run, so an interrupted run is retried as an update.
// Finally the staging tree is handed back for cleanup.
package materialize

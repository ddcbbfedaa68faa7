// Package staging builds and removes the staging tree, the placeholder
// form of the canonical source tree that materialization reads from.
//
// The staging tree is ephemeral. It is built on demand, either lazily
// before a sync or explicitly before packaging, and removed again after
// every successful sync so the source tree stays the single source of
// truth. A build writes into a sibling work directory and only replaces
// the staging tree once the work directory holds every required
// category, so the staging tree is always either absent or complete.
package staging

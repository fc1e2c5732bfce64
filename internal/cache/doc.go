// Package cache provides the process-lifetime, in-memory cache behind the
// fund data service.
//
// It holds two kinds of entries:
//   - a single snapshot of the all-funds listing with the time it was fetched,
//     valid for a fixed TTL (default 5 minutes)
//   - NAV detail per scheme code, which never expires and is never evicted
//
// An expired snapshot is not removed: it stays readable through Funds so
// callers can fall back to it when a refresh fails. Every mutation replaces
// a whole snapshot (listing and timestamp together) or a single map entry
// inside one critical section, so readers never observe a torn update.
// Concurrent writers resolve by last-writer-wins.
package cache

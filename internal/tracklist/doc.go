// Package tracklist mirrors a remote media player's playback queue.
//
// A [TrackList] holds the authoritative id order plus a metadata cache, and
// keeps the two consistent across inserts, removals, wholesale replacement,
// and reloads from the remote [Player]. The cache is deliberately allowed to
// be sparse, stale, or ahead of the list; a missing entry is a cue to fetch,
// never an error.
//
// # Iteration
//
// [TrackList.MetadataIter] completes the cache and returns a [MetadataIter],
// a one-shot iterator over an owned snapshot of order and cache. Later
// mutation of the source list has no effect on an iterator already created,
// and a cache miss during iteration yields a placeholder record instead of
// failing.
//
// # Borrow discipline
//
// A TrackList has a single logical owner and is not safe for concurrent use.
// The cache alone is guarded by a runtime-checked single-writer discipline:
// methods that mutate the cache through a shared receiver ([TrackList.ReloadCache],
// [TrackList.CompleteCache], [TrackList.MetadataIter]) take the write side
// with a non-blocking acquire and report [ErrCacheBusy] when a conflicting
// access is outstanding. Methods that require exclusive access to the whole
// list (Insert, Remove, Replace, Reload) can assume no conflicting borrow
// exists and lock directly.
package tracklist

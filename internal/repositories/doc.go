// Package repositories implements SQLite persistence for captured queue
// snapshots.
//
// [SnapshotRepository] stores one header row per snapshot plus one row per
// track in queue position order, so duplicate track ids survive round trips.
// Sequence numbers provide stable, human-readable snapshot numbering
// (snapshot #42) independent of UUIDs and timestamps; the [NextSequence]
// function atomically increments a per-table counter in a dedicated sequence
// table.
package repositories

// Package tasks orchestrates queue capture with real-time progress reporting.
//
// The [CaptureEngine] reloads a track list from the remote player, fills the
// metadata cache in rate-limited batches, and drains the result into a
// [models.QueueSnapshot], optionally persisting it through a [SnapshotStore]
// (repositories.SnapshotRepository in production).
//
// Batching exists because players with large queues reject or throttle
// oversized GetTracksMetadata calls; the batch size and fetch rate come from
// the player configuration.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates: sends use
// select with default so a slow or absent consumer never stalls a capture.
// The [ProgressUpdate] struct carries the phase, step counters, and a
// display message.
package tasks

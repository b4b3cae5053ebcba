// Package models defines the domain value types for the queue mirroring core.
//
// The package contains two categories of types:
//
// 1. Identity: [TrackID], an opaque validated token naming one instance of a
// track within a player's track list. IDs are valid D-Bus object paths and are
// comparable by value, so they can key maps directly.
//
// 2. Descriptive data: [Metadata], the record a player reports for one track,
// and [QueueSnapshot], a point-in-time capture of an entire queue with
// metadata attached, used by the snapshot store and the export formatters.
//
// A [Metadata] record optionally self-reports the [TrackID] it describes via
// [Metadata.TrackID]; records without one are anonymous and cannot be keyed
// into a cache.
package models

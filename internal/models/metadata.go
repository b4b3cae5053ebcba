package models

import "time"

// Metadata is the descriptive record a player reports for one track.
//
// A record may be anonymous: players occasionally emit metadata without a
// track id, in which case it cannot be keyed into a metadata cache and
// identifier-keyed operations skip it.
type Metadata struct {
	Title   string
	Artists []string
	Album   string
	Length  time.Duration
	ArtURL  string
	URL     string

	id    TrackID
	hasID bool
}

// NewMetadata returns an empty record that only names the given track.
//
// The track list iterator yields these as placeholders when the cache has no
// entry for an id, so iteration degrades instead of failing.
func NewMetadata(id TrackID) Metadata {
	return Metadata{id: id, hasID: true}
}

// WithTrackID returns a copy of m keyed to the given id.
func (m Metadata) WithTrackID(id TrackID) Metadata {
	m.id = id
	m.hasID = true
	return m
}

// TrackID returns the identifier this record claims to describe, if any.
func (m Metadata) TrackID() (TrackID, bool) {
	return m.id, m.hasID
}

// Artist returns the first listed artist, or an empty string.
func (m Metadata) Artist() string {
	if len(m.Artists) == 0 {
		return ""
	}
	return m.Artists[0]
}

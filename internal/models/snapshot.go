package models

import "time"

// QueueSnapshot is a point-in-time capture of a player's queue with metadata
// attached, in queue order.
type QueueSnapshot struct {
	ID         string // storage id, empty until persisted
	Sequence   int
	Player     string
	CapturedAt time.Time
	Tracks     []Metadata
}

// TrackIDs returns the ids of all tracks in the snapshot, in queue order.
// Anonymous records contribute the zero id.
func (s *QueueSnapshot) TrackIDs() []TrackID {
	ids := make([]TrackID, len(s.Tracks))
	for i, m := range s.Tracks {
		if id, ok := m.TrackID(); ok {
			ids[i] = id
		}
	}
	return ids
}

// TotalLength returns the combined reported length of all tracks.
func (s *QueueSnapshot) TotalLength() time.Duration {
	var total time.Duration
	for _, m := range s.Tracks {
		total += m.Length
	}
	return total
}

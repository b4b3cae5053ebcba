package models

import (
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ErrInvalidTrackID is returned when a track identifier fails object path validation.
var ErrInvalidTrackID = errors.New("invalid track id")

// NoTrack is the identifier players report when no track is current.
var NoTrack = MustTrackID("/org/mpris/MediaPlayer2/TrackList/NoTrack")

// TrackID names one instance of a track within a player's track list.
//
// IDs must be valid D-Bus object paths per the MPRIS spec. They are immutable,
// comparable by value, and usable as map keys. The zero value carries no path
// and is not a valid ID.
type TrackID struct {
	value string
}

// NewTrackID validates raw as a D-Bus object path and wraps it.
//
// IDs are minted by the remote player and are only meaningful to the player
// that produced them, so constructing one manually is mostly useful for tests
// and comparisons.
func NewTrackID(raw string) (TrackID, error) {
	if !dbus.ObjectPath(raw).IsValid() {
		return TrackID{}, fmt.Errorf("%w: %q is not a valid object path", ErrInvalidTrackID, raw)
	}
	return TrackID{value: raw}, nil
}

// MustTrackID wraps raw, panicking on invalid input. Intended for fixtures and
// well-known constants.
func MustTrackID(raw string) TrackID {
	id, err := NewTrackID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// String returns the underlying object path string.
func (id TrackID) String() string {
	return id.value
}

// Path returns the identifier as a typed object path for transport calls.
func (id TrackID) Path() dbus.ObjectPath {
	return dbus.ObjectPath(id.value)
}

// IsZero reports whether the ID carries no path at all.
func (id TrackID) IsZero() bool {
	return id.value == ""
}

// Package services implements the remote player client over D-Bus.
//
// [MPRISPlayer] satisfies the track list core's Player contract against any
// media player exposing the MPRIS TrackList interface on the session bus:
//
//   - GetTrackList reads the org.mpris.MediaPlayer2.TrackList.Tracks property
//   - GetTracksMetadata calls TrackList.GetTracksMetadata
//
// Wire metadata arrives as a{sv} dictionaries keyed by MPRIS/xesam names
// ("mpris:trackid", "mpris:length", "xesam:title", ...) and is mapped onto
// [models.Metadata]. Players are loose with value types in practice, so the
// mapping coerces rather than rejects: lengths accept any numeric type,
// artist lists accept a bare string, and records with an invalid track id
// simply stay anonymous.
//
// # Error Handling
//
// Connection problems surface typed errors from the shared package:
//   - [shared.ErrBusUnavailable] : the session bus cannot be reached
//   - [shared.ErrPlayerNotFound] : no MPRIS player matches the configuration
//   - [shared.ErrNoTrackList] : the player lacks the TrackList interface
//
// Per-call transport failures are returned as-is for the track list core to
// wrap.
package services

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/godbus/dbus/v5"

	"github.com/dmholland/queuectl/internal/models"
	"github.com/dmholland/queuectl/internal/shared"
)

const (
	mprisPrefix    = "org.mpris.MediaPlayer2."
	mprisPath      = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	rootInterface  = "org.mpris.MediaPlayer2"
	trackListIface = "org.mpris.MediaPlayer2.TrackList"
)

// MPRISPlayer drives one MPRIS media player over the session bus.
//
// It implements the track list core's Player contract; both calls are plain
// synchronous D-Bus round trips.
type MPRISPlayer struct {
	conn    *dbus.Conn
	busName string
	logger  *log.Logger
}

// Connect opens the session bus and wraps the player at busName.
func Connect(busName string, logger *log.Logger) (*MPRISPlayer, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrBusUnavailable, err)
	}
	return NewMPRISPlayer(conn, busName, logger)
}

// NewMPRISPlayer wraps an existing bus connection for the given player bus
// name. When busName is empty, the first MPRIS-capable name on the bus is
// selected.
func NewMPRISPlayer(conn *dbus.Conn, busName string, logger *log.Logger) (*MPRISPlayer, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	if busName == "" {
		players, err := ListPlayers(conn)
		if err != nil {
			return nil, err
		}
		if len(players) == 0 {
			return nil, fmt.Errorf("%w: no MPRIS players on the session bus", shared.ErrPlayerNotFound)
		}
		busName = players[0]
		logger.Debug("selected player", "bus_name", busName)
	} else if !strings.HasPrefix(busName, mprisPrefix) {
		return nil, fmt.Errorf("%w: %q is not an MPRIS bus name", shared.ErrInvalidArgument, busName)
	}

	return &MPRISPlayer{conn: conn, busName: busName, logger: logger}, nil
}

// Name returns the player's bus name.
func (p *MPRISPlayer) Name() string {
	return p.busName
}

// Identity returns the player's human-readable name, falling back to the bus
// name when the property is unavailable.
func (p *MPRISPlayer) Identity(ctx context.Context) string {
	var variant dbus.Variant
	err := p.object().CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0, rootInterface, "Identity").Store(&variant)
	if err != nil {
		return p.busName
	}
	if identity := variantString(variant); identity != "" {
		return identity
	}
	return p.busName
}

// GetTrackList reads the player's current queue order from the TrackList
// Tracks property. Invalid paths reported by the player are skipped with a
// warning rather than failing the whole read.
func (p *MPRISPlayer) GetTrackList(ctx context.Context) ([]models.TrackID, error) {
	var variant dbus.Variant
	err := p.object().CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0, trackListIface, "Tracks").Store(&variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNoTrackList, err)
	}

	paths, ok := variant.Value().([]dbus.ObjectPath)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected Tracks type %T", shared.ErrNoTrackList, variant.Value())
	}

	ids := make([]models.TrackID, 0, len(paths))
	for _, path := range paths {
		id, err := models.NewTrackID(string(path))
		if err != nil {
			p.logger.Warn("skipping invalid track id from player", "path", path, "error", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetTracksMetadata fetches metadata records for the given ids, in request
// order.
func (p *MPRISPlayer) GetTracksMetadata(ctx context.Context, ids []models.TrackID) ([]models.Metadata, error) {
	paths := make([]dbus.ObjectPath, len(ids))
	for i, id := range ids {
		paths[i] = id.Path()
	}

	var raw []map[string]dbus.Variant
	err := p.object().CallWithContext(ctx, trackListIface+".GetTracksMetadata", 0, paths).Store(&raw)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata for %d tracks: %w", len(ids), err)
	}

	records := make([]models.Metadata, 0, len(raw))
	for _, entry := range raw {
		records = append(records, metadataFromVariants(entry))
	}
	return records, nil
}

func (p *MPRISPlayer) object() dbus.BusObject {
	return p.conn.Object(p.busName, mprisPath)
}

// ListPlayers returns the MPRIS-capable bus names currently on conn, sorted.
func ListPlayers(conn *dbus.Conn) ([]string, error) {
	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return nil, fmt.Errorf("listing bus names: %w", err)
	}

	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			players = append(players, name)
		}
	}
	sort.Strings(players)
	return players, nil
}

// metadataFromVariants maps one a{sv} metadata entry onto a record. Unknown
// keys are ignored and malformed values degrade to zero fields; a missing or
// invalid mpris:trackid leaves the record anonymous.
func metadataFromVariants(entry map[string]dbus.Variant) models.Metadata {
	m := models.Metadata{
		Title:   variantString(entry["xesam:title"]),
		Artists: variantStrings(entry["xesam:artist"]),
		Album:   variantString(entry["xesam:album"]),
		Length:  shared.DurationFromMicros(variantInt(entry["mpris:length"])),
		ArtURL:  variantString(entry["mpris:artUrl"]),
		URL:     variantString(entry["xesam:url"]),
	}

	if id, err := models.NewTrackID(variantPath(entry["mpris:trackid"])); err == nil {
		m = m.WithTrackID(id)
	}
	return m
}

func variantString(v dbus.Variant) string {
	s, _ := v.Value().(string)
	return s
}

func variantStrings(v dbus.Variant) []string {
	switch val := v.Value().(type) {
	case []string:
		return val
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	}
	return nil
}

// variantInt coerces the numeric types players actually send for lengths.
func variantInt(v dbus.Variant) int64 {
	switch val := v.Value().(type) {
	case int64:
		return val
	case uint64:
		return int64(val)
	case int32:
		return int64(val)
	case uint32:
		return int64(val)
	case int:
		return int64(val)
	case float64:
		return int64(val)
	}
	return 0
}

func variantPath(v dbus.Variant) string {
	switch val := v.Value().(type) {
	case dbus.ObjectPath:
		return string(val)
	case string:
		return val
	}
	return ""
}

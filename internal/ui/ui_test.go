package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/dmholland/queuectl/internal/models"
)

func TestRenderQueue(t *testing.T) {
	snap := &models.QueueSnapshot{
		Player:     "org.mpris.MediaPlayer2.vlc",
		CapturedAt: time.Now(),
		Tracks: []models.Metadata{
			models.Metadata{
				Title:   "Song One",
				Artists: []string{"Artist One"},
				Length:  3 * time.Minute,
			}.WithTrackID(models.MustTrackID("/track/1")),
			models.NewMetadata(models.MustTrackID("/track/2")),
		},
	}

	output := RenderQueue(snap)

	if !strings.Contains(output, "org.mpris.MediaPlayer2.vlc") {
		t.Errorf("queue missing player name: %s", output)
	}
	if !strings.Contains(output, "2 tracks, 3:00 total") {
		t.Errorf("queue missing summary line: %s", output)
	}
	if !strings.Contains(output, "1. Artist One - Song One") {
		t.Errorf("queue missing track line: %s", output)
	}
	if !strings.Contains(output, "/track/2 (no metadata)") {
		t.Errorf("uncached track should show its id: %s", output)
	}
}

func TestRenderPlayers(t *testing.T) {
	names := []string{"org.mpris.MediaPlayer2.mpv", "org.mpris.MediaPlayer2.vlc"}
	output := RenderPlayers(names, "org.mpris.MediaPlayer2.vlc")

	if !strings.Contains(output, "* org.mpris.MediaPlayer2.vlc") {
		t.Errorf("active player should be marked: %s", output)
	}
	if !strings.Contains(output, "  org.mpris.MediaPlayer2.mpv") {
		t.Errorf("inactive player missing: %s", output)
	}
}

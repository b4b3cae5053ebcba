// package formatter provides functions to export queue snapshots to various formats (CSV, Markdown, JSON, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmholland/queuectl/internal/models"
	"github.com/dmholland/queuectl/internal/shared"
)

// Formats supported by [WriteExport].
const (
	FormatCSV      = "csv"
	FormatMarkdown = "markdown"
	FormatText     = "text"
	FormatJSON     = "json"
)

// exportTrack is the serialized form of one queue entry.
type exportTrack struct {
	Position int      `json:"position"`
	TrackID  string   `json:"track_id,omitempty"`
	Title    string   `json:"title,omitempty"`
	Artists  []string `json:"artists,omitempty"`
	Album    string   `json:"album,omitempty"`
	LengthUs int64    `json:"length_us,omitempty"`
	ArtURL   string   `json:"art_url,omitempty"`
	URL      string   `json:"url,omitempty"`
}

// exportDocument is the serialized form of a snapshot.
type exportDocument struct {
	Player      string        `json:"player"`
	Sequence    int           `json:"sequence,omitempty"`
	CapturedAt  string        `json:"captured_at"`
	TrackCount  int           `json:"track_count"`
	TotalLength string        `json:"total_length"`
	Tracks      []exportTrack `json:"tracks"`
}

func documentFor(snap *models.QueueSnapshot) exportDocument {
	doc := exportDocument{
		Player:      snap.Player,
		Sequence:    snap.Sequence,
		CapturedAt:  snap.CapturedAt.UTC().Format("2006-01-02T15:04:05Z"),
		TrackCount:  len(snap.Tracks),
		TotalLength: shared.FormatDuration(snap.TotalLength()),
		Tracks:      make([]exportTrack, 0, len(snap.Tracks)),
	}

	for position, m := range snap.Tracks {
		track := exportTrack{
			Position: position + 1,
			Title:    m.Title,
			Artists:  m.Artists,
			Album:    m.Album,
			LengthUs: shared.DurationMicros(m.Length),
			ArtURL:   m.ArtURL,
			URL:      m.URL,
		}
		if id, ok := m.TrackID(); ok {
			track.TrackID = id.String()
		}
		doc.Tracks = append(doc.Tracks, track)
	}

	return doc
}

// ExportToCSV converts a QueueSnapshot to CSV format with columns: Position, Track ID, Title, Artist, Album, Length, URL
func ExportToCSV(snap *models.QueueSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Track ID", "Title", "Artist", "Album", "Length", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for position, m := range snap.Tracks {
		var path string
		if id, ok := m.TrackID(); ok {
			path = id.String()
		}

		record := []string{
			fmt.Sprintf("%d", position+1),
			path,
			m.Title,
			strings.Join(m.Artists, "; "),
			m.Album,
			shared.FormatDuration(m.Length),
			m.URL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a QueueSnapshot to Markdown format
func ExportToMarkdown(snap *models.QueueSnapshot) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Queue: %s\n\n", snap.Player))

	if snap.Sequence > 0 {
		buf.WriteString(fmt.Sprintf("**Snapshot**: #%d\n", snap.Sequence))
	}
	buf.WriteString(fmt.Sprintf("**Captured**: %s\n", snap.CapturedAt.Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n", len(snap.Tracks)))
	buf.WriteString(fmt.Sprintf("**Total length**: %s\n\n", shared.FormatDuration(snap.TotalLength())))

	buf.WriteString("## Tracks\n\n")
	for i, m := range snap.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, trackLine(m, true)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a QueueSnapshot to plain text format
func ExportToText(snap *models.QueueSnapshot) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Player: %s\n", snap.Player))
	buf.WriteString(fmt.Sprintf("Captured: %s\n", snap.CapturedAt.Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("Tracks: %d\n\n", len(snap.Tracks)))

	for i, m := range snap.Tracks {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, trackLine(m, false)))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a QueueSnapshot to an indented JSON document
func ExportToJSON(snap *models.QueueSnapshot) ([]byte, error) {
	return shared.MarshalJSON(documentFor(snap), true)
}

// trackLine renders one queue entry for the listing formats. A record with no
// title falls back to its track id so the line is never blank.
func trackLine(m models.Metadata, withDetail bool) string {
	title := m.Title
	if title == "" {
		if id, ok := m.TrackID(); ok {
			title = id.String()
		} else {
			title = "(unknown)"
		}
	}

	line := title
	if artist := m.Artist(); artist != "" {
		line = fmt.Sprintf("%s - %s", artist, title)
	}

	if withDetail {
		if m.Album != "" {
			line += fmt.Sprintf(" (%s)", m.Album)
		}
		if m.Length > 0 {
			line += fmt.Sprintf(" [%s]", shared.FormatDuration(m.Length))
		}
	}

	return line
}

// baseName derives a default file base from the snapshot's capture time.
func baseName(snap *models.QueueSnapshot) string {
	if snap.Sequence > 0 {
		return fmt.Sprintf("queue_%04d", snap.Sequence)
	}
	return "queue_" + snap.CapturedAt.Format("20060102_150405")
}

// extensions maps a format name to its file extension.
var extensions = map[string]string{
	FormatCSV:      ".csv",
	FormatMarkdown: ".md",
	FormatText:     ".txt",
	FormatJSON:     ".json",
}

// WriteExport renders snap in the given format and writes it under outputDir,
// creating the directory if needed. An empty filename derives one from the
// snapshot. Returns the path of the written file.
func WriteExport(snap *models.QueueSnapshot, format, outputDir, filename string) (string, error) {
	ext, ok := extensions[format]
	if !ok {
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}

	var data []byte
	var err error
	switch format {
	case FormatCSV:
		data, err = ExportToCSV(snap)
	case FormatMarkdown:
		data, err = ExportToMarkdown(snap)
	case FormatText:
		data, err = ExportToText(snap)
	case FormatJSON:
		data, err = ExportToJSON(snap)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s export: %w", format, err)
	}

	if filename == "" {
		filename = baseName(snap) + ext
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmholland/queuectl/internal/models"
	"github.com/dmholland/queuectl/internal/shared"
)

// artistSeparator joins the artist list into a single column.
const artistSeparator = "; "

// SnapshotRepository persists captured queue snapshots.
type SnapshotRepository struct {
	db *sql.DB
}

// SnapshotInfo is a snapshot header row as returned by [SnapshotRepository.List];
// track rows are not loaded.
type SnapshotInfo struct {
	ID         string
	Sequence   int
	Player     string
	CapturedAt time.Time
	TrackCount int
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create persists snap atomically and fills in its storage ID and sequence
// number. Track rows are written in queue position order.
func (r *SnapshotRepository) Create(snap *models.QueueSnapshot) error {
	if snap.Player == "" {
		return fmt.Errorf("%w: snapshot needs a player name", shared.ErrInvalidInput)
	}
	if snap.CapturedAt.IsZero() {
		snap.CapturedAt = time.Now()
	}

	sequence, err := NextSequence(r.db, "snapshots")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO snapshots (id, sequence, player, captured_at) VALUES (?, ?, ?, ?)`,
		id, sequence, snap.Player, snap.CapturedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO snapshot_tracks (id, snapshot_id, position, track_path, title, artists, album, length_us, art_url, url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare track insert: %w", err)
	}
	defer stmt.Close()

	for position, m := range snap.Tracks {
		var path string
		if tid, ok := m.TrackID(); ok {
			path = tid.String()
		}

		_, err = stmt.Exec(
			shared.GenerateID(),
			id,
			position,
			path,
			m.Title,
			strings.Join(m.Artists, artistSeparator),
			m.Album,
			shared.DurationMicros(m.Length),
			m.ArtURL,
			m.URL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert track at position %d: %w", position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	snap.ID = id
	snap.Sequence = sequence
	return nil
}

// Get retrieves a snapshot with its tracks in queue order.
func (r *SnapshotRepository) Get(id string) (*models.QueueSnapshot, error) {
	var snap models.QueueSnapshot

	row := r.db.QueryRow(`SELECT id, sequence, player, captured_at FROM snapshots WHERE id = ?`, id)
	err := row.Scan(&snap.ID, &snap.Sequence, &snap.Player, &snap.CapturedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrSnapshotNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT track_path, title, artists, album, length_us, art_url, url
		FROM snapshot_tracks
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot tracks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			path     string
			artists  string
			lengthUs int64
			m        models.Metadata
		)
		if err := rows.Scan(&path, &m.Title, &artists, &m.Album, &lengthUs, &m.ArtURL, &m.URL); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot track: %w", err)
		}

		if artists != "" {
			m.Artists = strings.Split(artists, artistSeparator)
		}
		m.Length = shared.DurationFromMicros(lengthUs)

		// Rows with a blank or invalid path stay anonymous.
		if tid, err := models.NewTrackID(path); err == nil {
			m = m.WithTrackID(tid)
		}

		snap.Tracks = append(snap.Tracks, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return &snap, nil
}

// GetBySequence retrieves a snapshot by its human-readable sequence number.
func (r *SnapshotRepository) GetBySequence(sequence int) (*models.QueueSnapshot, error) {
	var id string
	err := r.db.QueryRow(`SELECT id FROM snapshots WHERE sequence = ?`, sequence).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: #%d", shared.ErrSnapshotNotFound, sequence)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up snapshot #%d: %w", sequence, err)
	}
	return r.Get(id)
}

// List returns snapshot headers, newest first. A limit <= 0 returns all.
func (r *SnapshotRepository) List(limit int) ([]SnapshotInfo, error) {
	query := `
		SELECT s.id, s.sequence, s.player, s.captured_at, COUNT(t.id)
		FROM snapshots s
		LEFT JOIN snapshot_tracks t ON t.snapshot_id = s.id
		GROUP BY s.id
		ORDER BY s.sequence DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.Sequence, &info.Player, &info.CapturedAt, &info.TrackCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return infos, nil
}

// Delete removes a snapshot and its track rows.
func (r *SnapshotRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM snapshot_tracks WHERE snapshot_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete snapshot tracks: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSnapshotNotFound, id)
	}

	return tx.Commit()
}

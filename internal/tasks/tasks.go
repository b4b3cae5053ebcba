package tasks

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmholland/queuectl/internal/models"
	"github.com/dmholland/queuectl/internal/shared"
	"github.com/dmholland/queuectl/internal/tracklist"
)

// Player is the remote dependency of the engine: the track list core's
// contract plus a name for labelling snapshots. services.MPRISPlayer
// satisfies it.
type Player interface {
	tracklist.Player
	Name() string
}

// SnapshotStore persists captured snapshots. repositories.SnapshotRepository
// is the production implementation.
type SnapshotStore interface {
	Create(snap *models.QueueSnapshot) error
}

// CaptureOpts contains configuration for a queue capture.
type CaptureOpts struct {
	BatchSize int     // Ids per metadata fetch (default: 25, max: 100)
	RateLimit float64 // Metadata fetches per second (default: 5)
}

// CaptureEngine captures queue snapshots from a remote player.
type CaptureEngine struct {
	player Player
	store  SnapshotStore
}

// NewCaptureEngine creates a CaptureEngine. The store may be nil for
// capture-only use (exports); Capture then skips persistence.
func NewCaptureEngine(player Player, store SnapshotStore) *CaptureEngine {
	return &CaptureEngine{player: player, store: store}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *CaptureEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Capture reloads list from the player, completes its metadata cache in
// rate-limited batches, and drains it into a snapshot. When the engine has a
// store, the snapshot is persisted and its ID and sequence are filled in.
//
// Unlike the track list's own cache completion, capture pairs records that
// carry no id positionally with the requested batch, trading strict keying
// for a complete snapshot.
func (e *CaptureEngine) Capture(ctx context.Context, progress chan<- ProgressUpdate, list *tracklist.TrackList, opts CaptureOpts) (*models.QueueSnapshot, error) {
	if e.player == nil {
		return nil, fmt.Errorf("%w: player not initialized", shared.ErrPlayerNotFound)
	}

	if opts.BatchSize <= 0 {
		opts.BatchSize = 25
	}
	if opts.BatchSize > 100 {
		opts.BatchSize = 100
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := list.Reload(ctx, e.player); err != nil {
		return nil, err
	}
	e.sendProgress(progress, fetchListUpdate(list.Len()))

	if err := e.fillCache(ctx, progress, list, opts); err != nil {
		return nil, err
	}

	// The cache now covers every id on the list, so this issues no
	// further remote calls.
	iter, err := list.MetadataIter(ctx, e.player)
	if err != nil {
		return nil, err
	}

	snap := &models.QueueSnapshot{
		Player:     e.player.Name(),
		CapturedAt: time.Now(),
		Tracks:     iter.Collect(),
	}

	if e.store != nil {
		if err := e.store.Create(snap); err != nil {
			return nil, fmt.Errorf("failed to persist snapshot: %w", err)
		}
		e.sendProgress(progress, persistUpdate(snap.Sequence))
	}

	return snap, nil
}

// fillCache fetches metadata for the ids missing from list's cache in
// batches, waiting on the rate limiter between fetches.
func (e *CaptureEngine) fillCache(ctx context.Context, progress chan<- ProgressUpdate, list *tracklist.TrackList, opts CaptureOpts) error {
	missing := list.MissingIDs()
	if len(missing) == 0 {
		return nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	batches := (len(missing) + opts.BatchSize - 1) / opts.BatchSize

	for i := 0; i < len(missing); i += opts.BatchSize {
		batch := missing[i:min(i+opts.BatchSize, len(missing))]
		e.sendProgress(progress, fetchMetadataUpdate(i/opts.BatchSize+1, batches, len(batch)))

		if err := limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", tracklist.ErrPlayer, err)
		}

		records, err := e.player.GetTracksMetadata(ctx, batch)
		if err != nil {
			return fmt.Errorf("%w: %v", tracklist.ErrPlayer, err)
		}

		for j, m := range records {
			id, ok := m.TrackID()
			if !ok {
				if j >= len(batch) {
					continue
				}
				id = batch[j]
				m = m.WithTrackID(id)
			}
			list.UpdateMetadata(id, m)
		}
	}

	return nil
}

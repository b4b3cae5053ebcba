package tracklist

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/dmholland/queuectl/internal/models"
)

// Player is the remote collaborator that is authoritative for the live queue
// order and for metadata content.
//
// Both calls are synchronous as observed by this package and failures
// propagate immediately. GetTracksMetadata must return records positionally
// matching the requested ids; [TrackList.ReloadCache] relies on that pairing.
type Player interface {
	GetTrackList(ctx context.Context) ([]models.TrackID, error)
	GetTracksMetadata(ctx context.Context, ids []models.TrackID) ([]models.Metadata, error)
}

// TrackList is an ordered sequence of track ids plus a metadata cache.
//
// The id order is the primary authoritative state. Duplicate ids are
// permitted, and the order is never filtered by cache presence. The cache may
// hold entries for ids no longer on the list; they survive until [TrackList.Reload]
// prunes them.
type TrackList struct {
	ids []models.TrackID

	mu    sync.RWMutex // guards cache only, see package doc
	cache map[models.TrackID]models.Metadata
}

// New constructs a track list with the given id order and an empty cache
// sized for it.
func New(ids []models.TrackID) *TrackList {
	return &TrackList{
		ids:   slices.Clone(ids),
		cache: make(map[models.TrackID]models.Metadata, len(ids)),
	}
}

// IDs returns a copy of the ids on the list, in list order.
func (l *TrackList) IDs() []models.TrackID {
	return slices.Clone(l.ids)
}

// Len returns the number of tracks on the list, not the cache size.
func (l *TrackList) Len() int {
	return len(l.ids)
}

// Insert adds the track described by m immediately after the first occurrence
// of after, or at the end when after is not on the list, and caches m under
// the new id.
//
// Anonymous records are skipped entirely: with no id to key on, neither the
// order nor the cache changes.
func (l *TrackList) Insert(after models.TrackID, m models.Metadata) {
	id, ok := m.TrackID()
	if !ok {
		return
	}

	if index := slices.Index(l.ids, after); index >= 0 {
		l.ids = slices.Insert(l.ids, index+1, id)
	} else {
		l.ids = append(l.ids, id)
	}

	// Exclusive receiver: no conflicting cache access can be outstanding.
	l.mu.Lock()
	l.cache[id] = m
	l.mu.Unlock()
}

// Remove drops every occurrence of id from the list, and its cache entry if
// present. Removing an absent id is a no-op.
func (l *TrackList) Remove(id models.TrackID) {
	l.ids = slices.DeleteFunc(l.ids, func(existing models.TrackID) bool {
		return existing == id
	})

	l.mu.Lock()
	delete(l.cache, id)
	l.mu.Unlock()
}

// Replace substitutes the id order with other's and merges other's cache into
// this one, other's entries winning on conflict. Entries for ids outside the
// incoming order are retained; pruning is [TrackList.Reload]'s job, not
// Replace's.
//
// Replace assumes ownership of other, which must not be used afterwards.
func (l *TrackList) Replace(other *TrackList) {
	l.ids = other.ids

	l.mu.Lock()
	maps.Copy(l.cache, other.cache)
	l.mu.Unlock()
}

// UpdateMetadata upserts a cache entry for id, even when id is not currently
// on the list. Off-list entries survive until the next reload prunes them,
// which lets signal handlers pre-populate the cache for tracks about to be
// added.
func (l *TrackList) UpdateMetadata(id models.TrackID, m models.Metadata) {
	l.mu.Lock()
	l.cache[id] = m
	l.mu.Unlock()
}

// Reload fetches the player's current id order and replaces the list
// wholesale, then prunes cache entries for ids that left the list. Cache
// entries for ids that persist across the reload are kept.
func (l *TrackList) Reload(ctx context.Context, player Player) error {
	ids, err := player.GetTrackList(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlayer, err)
	}

	l.ids = ids
	l.clearExtraCache()
	return nil
}

// ReloadCache drops the whole cache and refetches metadata for every id on
// the list, paired positionally with the id order. The swap happens only
// after a successful fetch, so on failure the old cache is left untouched.
func (l *TrackList) ReloadCache(ctx context.Context, player Player) error {
	metadata, err := player.GetTracksMetadata(ctx, l.IDs())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlayer, err)
	}

	next := make(map[models.TrackID]models.Metadata, len(l.ids))
	for i, id := range l.ids {
		if i >= len(metadata) {
			break
		}
		next[id] = metadata[i]
	}

	if !l.mu.TryLock() {
		return fmt.Errorf("%w: reloading cache", ErrCacheBusy)
	}
	l.cache = next
	l.mu.Unlock()
	return nil
}

// CompleteCache fills any holes so that every id on the list has a cache
// entry. When nothing is missing it does no remote call at all.
//
// Fetched records are keyed by the id they self-report; anonymous records are
// dropped since there is nothing to key them on. On fetch failure the cache
// is untouched.
func (l *TrackList) CompleteCache(ctx context.Context, player Player) error {
	missing := l.MissingIDs()
	if len(missing) == 0 {
		return nil
	}

	metadata, err := player.GetTracksMetadata(ctx, missing)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPlayer, err)
	}

	if !l.mu.TryLock() {
		return fmt.Errorf("%w: completing cache", ErrCacheBusy)
	}
	defer l.mu.Unlock()

	for _, m := range metadata {
		if id, ok := m.TrackID(); ok {
			l.cache[id] = m
		}
	}
	return nil
}

// MetadataIter completes the cache and returns a one-shot iterator over the
// list's tracks in order. The iterator owns copies of the order and the
// cache, so later mutation of the list does not affect it.
func (l *TrackList) MetadataIter(ctx context.Context, player Player) (*MetadataIter, error) {
	if err := l.CompleteCache(ctx, player); err != nil {
		return nil, err
	}

	if !l.mu.TryRLock() {
		return nil, fmt.Errorf("%w: snapshotting cache", ErrCacheBusy)
	}
	metadata := maps.Clone(l.cache)
	l.mu.RUnlock()

	return &MetadataIter{
		order:    slices.Clone(l.ids),
		metadata: metadata,
	}, nil
}

// MissingIDs returns the ids on the list lacking a cache entry, in list
// order. An id appearing several times uncached is reported once per
// occurrence.
func (l *TrackList) MissingIDs() []models.TrackID {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var missing []models.TrackID
	for _, id := range l.ids {
		if _, ok := l.cache[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// clearExtraCache rebuilds the cache keeping only entries for ids currently
// on the list.
func (l *TrackList) clearExtraCache() {
	// Exclusive receiver: no conflicting cache access can be outstanding.
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make(map[models.TrackID]models.Metadata, len(l.ids))
	for _, id := range l.ids {
		if m, ok := l.cache[id]; ok {
			next[id] = m
		}
	}
	l.cache = next
}

package tracklist

import "github.com/dmholland/queuectl/internal/models"

// MetadataIter is a one-shot, order-preserving walk over a track list
// snapshot, yielding one metadata record per id.
//
// Cached records are consumed as they are yielded, so an id appearing twice
// in the order receives its cached record on the first occurrence and
// placeholders afterwards. A cache miss never fails the iteration; a
// placeholder naming the id is synthesized instead.
type MetadataIter struct {
	order    []models.TrackID
	metadata map[models.TrackID]models.Metadata
	current  int
}

// Next returns the next record in snapshot order. The second return value is
// false once the iterator is exhausted.
func (it *MetadataIter) Next() (models.Metadata, bool) {
	if it.current >= len(it.order) {
		return models.Metadata{}, false
	}

	id := it.order[it.current]
	it.current++

	if m, ok := it.metadata[id]; ok {
		delete(it.metadata, id)
		return m, true
	}

	// Cache population can race a refresh; degrade to an empty record
	// naming the id rather than failing the iteration.
	return models.NewMetadata(id), true
}

// Collect drains the iterator into a slice.
func (it *MetadataIter) Collect() []models.Metadata {
	out := make([]models.Metadata, 0, len(it.order)-it.current)
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		out = append(out, m)
	}
	return out
}

package tracklist

import (
	"context"
	"testing"

	"github.com/dmholland/queuectl/internal/models"
	tu "github.com/dmholland/queuectl/internal/testing"
)

func TestMetadataIter(t *testing.T) {
	t.Run("yields cached records in list order", func(t *testing.T) {
		list := New(trackIDs(t, "/track/1", "/track/2"))
		player := &tu.MockPlayer{Metadata: map[models.TrackID]models.Metadata{
			trackID(t, "/track/1"): metadataFor(t, "/track/1"),
			trackID(t, "/track/2"): metadataFor(t, "/track/2"),
		}}

		iter, err := list.MetadataIter(context.Background(), player)
		if err != nil {
			t.Fatalf("metadata iter failed: %v", err)
		}

		for _, want := range []string{"Track /track/1", "Track /track/2"} {
			m, ok := iter.Next()
			if !ok {
				t.Fatal("iterator exhausted early")
			}
			if m.Title != want {
				t.Errorf("expected %q, got %q", want, m.Title)
			}
		}
		if _, ok := iter.Next(); ok {
			t.Error("iterator should be exhausted")
		}
	})

	t.Run("consumes cached records for repeated ids", func(t *testing.T) {
		a := trackID(t, "/track/a")
		b := trackID(t, "/track/b")

		iter := &MetadataIter{
			order: []models.TrackID{a, b, a},
			metadata: map[models.TrackID]models.Metadata{
				a: models.Metadata{Title: "M1"}.WithTrackID(a),
			},
		}

		first, ok := iter.Next()
		if !ok || first.Title != "M1" {
			t.Fatalf("expected cached M1 first, got %v (ok=%v)", first, ok)
		}

		second, ok := iter.Next()
		if !ok || second.Title != "" {
			t.Fatalf("expected placeholder for b, got %v (ok=%v)", second, ok)
		}
		if id, _ := second.TrackID(); id != b {
			t.Errorf("placeholder should name /track/b, got %v", id)
		}

		// The record for a was consumed on its first yield.
		third, ok := iter.Next()
		if !ok || third.Title != "" {
			t.Fatalf("expected placeholder for repeated a, got %v (ok=%v)", third, ok)
		}
		if id, _ := third.TrackID(); id != a {
			t.Errorf("placeholder should name /track/a, got %v", id)
		}

		if _, ok := iter.Next(); ok {
			t.Error("iterator should be exhausted after the snapshot order")
		}
	})

	t.Run("is unaffected by later list mutation", func(t *testing.T) {
		list := New(trackIDs(t, "/track/1"))
		player := &tu.MockPlayer{Metadata: map[models.TrackID]models.Metadata{
			trackID(t, "/track/1"): metadataFor(t, "/track/1"),
		}}

		iter, err := list.MetadataIter(context.Background(), player)
		if err != nil {
			t.Fatalf("metadata iter failed: %v", err)
		}

		list.Remove(trackID(t, "/track/1"))
		list.Insert(trackID(t, "/track/1"), metadataFor(t, "/track/99"))

		m, ok := iter.Next()
		if !ok || m.Title != "Track /track/1" {
			t.Errorf("snapshot should be isolated from the source list, got %v (ok=%v)", m, ok)
		}
		if _, ok := iter.Next(); ok {
			t.Error("iterator should only cover the snapshot order")
		}
	})

	t.Run("completes the cache before snapshotting", func(t *testing.T) {
		list := New(trackIDs(t, "/track/1"))
		player := &tu.MockPlayer{Metadata: map[models.TrackID]models.Metadata{
			trackID(t, "/track/1"): metadataFor(t, "/track/1"),
		}}

		iter, err := list.MetadataIter(context.Background(), player)
		if err != nil {
			t.Fatalf("metadata iter failed: %v", err)
		}

		if player.MetadataCalls != 1 {
			t.Errorf("expected one completing fetch, got %d", player.MetadataCalls)
		}
		if m, _ := iter.Next(); m.Title != "Track /track/1" {
			t.Errorf("expected fetched record, got %q", m.Title)
		}
	})

	t.Run("propagates completion failures", func(t *testing.T) {
		list := New(trackIDs(t, "/track/1"))
		player := &tu.MockPlayer{Err: context.DeadlineExceeded}

		if _, err := list.MetadataIter(context.Background(), player); err == nil {
			t.Fatal("expected completion error")
		}
	})

	t.Run("Collect drains the iterator", func(t *testing.T) {
		list := New(trackIDs(t, "/track/1", "/track/2"))
		player := &tu.MockPlayer{}

		iter, err := list.MetadataIter(context.Background(), player)
		if err != nil {
			t.Fatalf("metadata iter failed: %v", err)
		}

		records := iter.Collect()
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if _, ok := iter.Next(); ok {
			t.Error("iterator should be exhausted after Collect")
		}
	})
}

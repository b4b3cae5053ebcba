// Package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/dmholland/queuectl/internal/models"
)

// MockPlayer is a scripted test double for the remote player.
//
// GetTrackList serves the TrackList field. GetTracksMetadata serves records
// from the Metadata map positionally, synthesizing empty records for unknown
// ids, unless MetadataFunc overrides the behavior. When Err is set every call
// fails with it.
type MockPlayer struct {
	TrackList    []models.TrackID
	Metadata     map[models.TrackID]models.Metadata
	MetadataFunc func(ids []models.TrackID) ([]models.Metadata, error)
	Err          error

	ListCalls     int
	MetadataCalls int
	Requested     [][]models.TrackID
}

func (p *MockPlayer) GetTrackList(ctx context.Context) ([]models.TrackID, error) {
	p.ListCalls++
	if p.Err != nil {
		return nil, p.Err
	}
	return append([]models.TrackID(nil), p.TrackList...), nil
}

func (p *MockPlayer) GetTracksMetadata(ctx context.Context, ids []models.TrackID) ([]models.Metadata, error) {
	p.MetadataCalls++
	p.Requested = append(p.Requested, append([]models.TrackID(nil), ids...))
	if p.Err != nil {
		return nil, p.Err
	}
	if p.MetadataFunc != nil {
		return p.MetadataFunc(ids)
	}

	out := make([]models.Metadata, 0, len(ids))
	for _, id := range ids {
		if m, ok := p.Metadata[id]; ok {
			out = append(out, m)
		} else {
			out = append(out, models.NewMetadata(id))
		}
	}
	return out, nil
}

func (p *MockPlayer) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if err == nil && !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return dir
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

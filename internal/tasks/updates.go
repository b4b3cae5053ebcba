package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchList Phase = iota
	FetchMetadata
	Persist
)

func (p Phase) String() string {
	switch p {
	case FetchList:
		return "fetch_list"
	case FetchMetadata:
		return "fetch_metadata"
	case Persist:
		return "persist"
	default:
		return ""
	}
}

func fetchListUpdate(tracks int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchList,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetched queue order (%d tracks)", tracks),
	}
}

func fetchMetadataUpdate(batch, batches, ids int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchMetadata,
		Step:    batch,
		Total:   batches,
		Message: fmt.Sprintf("Fetching metadata batch %d/%d (%d tracks)", batch, batches, ids),
	}
}

func persistUpdate(sequence int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Persist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Saved snapshot #%d", sequence),
	}
}

package domain

// Phase represents the current state of a retrieval session
type Phase string

const (
	PhaseIdle                Phase = "idle"
	PhaseAwaitingContentType Phase = "awaiting_content_type"
	PhaseSearching           Phase = "searching"
	PhaseReady               Phase = "ready"
	PhaseDownloading         Phase = "downloading"
	PhaseFailed              Phase = "failed"
)

// IsBusy reports whether a fetch is logically in flight
func (p Phase) IsBusy() bool {
	return p == PhaseSearching || p == PhaseDownloading
}

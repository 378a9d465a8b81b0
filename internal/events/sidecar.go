package events

// Entity types used by sidecar and scan events.
const (
	EntityMovie   = "movie"
	EntitySidecar = "sidecar"
	EntityScan    = "scan"
)

// Sidecar lifecycle event types.
const (
	EventSidecarWritten     = "sidecar.written"
	EventSidecarUnchanged   = "sidecar.unchanged"
	EventSidecarWriteFailed = "sidecar.write_failed"
	EventSidecarRemoved     = "sidecar.removed"
	EventScanCompleted      = "scan.completed"
)

// SidecarWritten is emitted when a sidecar file is created or rewritten on
// disk because its content changed.
type SidecarWritten struct {
	BaseEvent
	MovieID int64  `json:"movie_id"`
	Path    string `json:"path"`
	Dialect string `json:"dialect"`
}

// SidecarUnchanged is emitted when the regenerated content matched what was
// already on disk and the write was skipped.
type SidecarUnchanged struct {
	BaseEvent
	MovieID int64  `json:"movie_id"`
	Path    string `json:"path"`
	Dialect string `json:"dialect"`
}

// SidecarWriteFailed is emitted when writing one target failed. Other targets
// of the same movie are unaffected.
type SidecarWriteFailed struct {
	BaseEvent
	MovieID int64  `json:"movie_id"`
	Path    string `json:"path"`
	Dialect string `json:"dialect"`
	Reason  string `json:"reason"`
}

// SidecarRemoved is emitted when an orphaned sidecar no longer named by any
// target is deleted.
type SidecarRemoved struct {
	BaseEvent
	MovieID int64  `json:"movie_id"`
	Path    string `json:"path"`
}

// ScanCompleted is emitted after a library scan finishes.
type ScanCompleted struct {
	BaseEvent
	Root    string `json:"root"`
	Found   int    `json:"found"`
	Added   int    `json:"added"`
	Updated int    `json:"updated"`
	Sets    int    `json:"sets"`
	Failed  int    `json:"failed"`
}

package domain

import "time"

// UploadMeta carries the request-level facts about an uploaded report file.
// File type and magic-byte validation happen before ingestion; the extension
// here is the already-detected one.
type UploadMeta struct {
	FileName   string
	Extension  string
	FileSize   int64
	UploadedBy string
	ReportDate time.Time
}

// PositionFilter narrows a snapshot's position list. Checkpoint and Direction
// are case-insensitive exact matches; FleetGroup and TruckNo are
// case-insensitive substring matches. An empty SnapshotID targets the latest
// snapshot.
type PositionFilter struct {
	SnapshotID string
	Checkpoint string
	Direction  string
	FleetGroup string
	TruckNo    string
}

// CheckpointTrucks splits the trucks at one checkpoint by direction.
type CheckpointTrucks struct {
	Checkpoint string          `json:"checkpoint"`
	SnapshotID string          `json:"snapshot_id"`
	Total      int             `json:"total"`
	Going      []TruckPosition `json:"going"`
	Returning  []TruckPosition `json:"returning"`
	Unknown    []TruckPosition `json:"unknown,omitempty"`
}

// DistributionEntry is one checkpoint's truck counts within a snapshot.
type DistributionEntry struct {
	Checkpoint string `json:"checkpoint"`
	Order      int    `json:"order"`
	Total      int    `json:"total"`
	Going      int    `json:"going"`
	Returning  int    `json:"returning"`
	Unknown    int    `json:"unknown"`
}

// ListFormat selects the rendering of a copyable truck list.
type ListFormat string

const (
	// ListFormatComma joins truck numbers with ", ".
	ListFormatComma ListFormat = "comma"
	// ListFormatLine joins truck numbers with newlines.
	ListFormatLine ListFormat = "line"
	// ListFormatArray renders a JSON array literal.
	ListFormatArray ListFormat = "array"
	// ListFormatDetailed renders one "<truck> (<direction>, <status>)" line per truck.
	ListFormatDetailed ListFormat = "detailed"
)

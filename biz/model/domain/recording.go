package domain

import "time"

type RecordingSession struct {
	UserID     string
	SessionID  string
	ChunkCount int
	CreatedAt  time.Time
}

// SessionSummary is a session as listed to its owner, with the chunk count
// taken from the blob store.
type SessionSummary struct {
	SessionID  string
	Label      string
	ChunkCount int
	CreatedAt  time.Time
}

type ChunkInfo struct {
	Filename string
	Size     int64
}

// ChunkLocator is one downloadable chunk; Order starts at 1.
type ChunkLocator struct {
	Filename string
	Order    int
	Size     int64
	URL      string
}

type StorageInfo struct {
	UsedSeconds  int64
	LimitSeconds int64
	Percentage   float64
	SessionCount int64
	Tier         string
}

type Subscription struct {
	Tier         string
	LimitSeconds int64
	ExpiresAt    *time.Time
}

type MigrationAvailability struct {
	Available   bool
	LegacyCount int64
}

type ServerStats struct {
	TotalUsers      int64
	TotalRecordings int64
	ActiveUsers30d  int64
}

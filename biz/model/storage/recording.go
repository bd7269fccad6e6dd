package storage

import "time"

// RecordingSessionRecord has no soft delete: a deleted session must free its
// (user_id, session_id) key for reuse.
type RecordingSessionRecord struct {
	ID         uint      `gorm:"primarykey"`
	UserId     string    `gorm:"size:64;not null;uniqueIndex:idx_recording_user_session"`
	SessionId  string    `gorm:"size:128;not null;uniqueIndex:idx_recording_user_session"`
	ChunkCount int       `gorm:"not null;default:0"`
	CreatedAt  time.Time `gorm:"index"`
}

func (RecordingSessionRecord) TableName() string {
	return "recording_sessions"
}

const (
	LegacyUserTable    = "users_old_pin_backup"
	LegacySessionTable = "recording_sessions_old_backup"
)

// LegacyUserRecord is a row of the archived PIN-era users table.
type LegacyUserRecord struct {
	UserId  string `gorm:"size:64"`
	PinHash string `gorm:"size:128"`
	Salt    string `gorm:"size:64"`
}

func (LegacyUserRecord) TableName() string {
	return LegacyUserTable
}

type LegacySessionRecord struct {
	UserId     string
	SessionId  string
	CreatedAt  time.Time
	ChunkCount int
}

func (LegacySessionRecord) TableName() string {
	return LegacySessionTable
}

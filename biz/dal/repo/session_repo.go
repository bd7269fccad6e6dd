package repo

import (
	"context"
	"errors"
	"time"

	"righttorecord/be/biz/model/convert"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository interface {
	// CreateOrGet returns the (userID, sessionID) row, inserting it if
	// missing. Concurrent callers converge on one row.
	CreateOrGet(ctx context.Context, userID, sessionID string, at time.Time) (*domain.RecordingSession, error)
	// RaiseChunkCount sets chunk_count to max(chunk_count, index).
	RaiseChunkCount(ctx context.Context, userID, sessionID string, index int) error
	Find(ctx context.Context, userID, sessionID string) (*domain.RecordingSession, error)
	// ListByUser is newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.RecordingSession, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, sessionID string) (bool, error)
}

type SessionRepositoryGorm struct {
	db *gorm.DB
}

func NewSessionRepositoryGorm(db *gorm.DB) *SessionRepositoryGorm {
	return &SessionRepositoryGorm{db: db}
}

func (r *SessionRepositoryGorm) CreateOrGet(ctx context.Context, userID, sessionID string, at time.Time) (*domain.RecordingSession, error) {
	db := r.db.WithContext(ctx)
	m := &storage.RecordingSessionRecord{
		UserId:    userID,
		SessionId: sessionID,
		CreatedAt: at.UTC(),
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error; err != nil {
		return nil, err
	}

	var got storage.RecordingSessionRecord
	if err := db.Where("user_id = ? AND session_id = ?", userID, sessionID).First(&got).Error; err != nil {
		return nil, err
	}
	return convert.SessionRecordToDomain(&got), nil
}

func (r *SessionRepositoryGorm) RaiseChunkCount(ctx context.Context, userID, sessionID string, index int) error {
	return r.db.WithContext(ctx).Model(&storage.RecordingSessionRecord{}).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Update("chunk_count", gorm.Expr("CASE WHEN chunk_count < ? THEN ? ELSE chunk_count END", index, index)).Error
}

func (r *SessionRepositoryGorm) Find(ctx context.Context, userID, sessionID string) (*domain.RecordingSession, error) {
	var m storage.RecordingSessionRecord
	err := r.db.WithContext(ctx).Where("user_id = ? AND session_id = ?", userID, sessionID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return convert.SessionRecordToDomain(&m), nil
}

func (r *SessionRepositoryGorm) ListByUser(ctx context.Context, userID string) ([]*domain.RecordingSession, error) {
	var ms []storage.RecordingSessionRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return convert.SessionRecordsToDomain(ms), nil
}

func (r *SessionRepositoryGorm) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&storage.RecordingSessionRecord{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *SessionRepositoryGorm) Delete(ctx context.Context, userID, sessionID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&storage.RecordingSessionRecord{})
	return res.RowsAffected > 0, res.Error
}

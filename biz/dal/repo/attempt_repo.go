package repo

import (
	"context"
	"time"

	"righttorecord/be/biz/model/convert"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/storage"

	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(ctx context.Context, a *domain.LoginAttempt) error
	// CountFailuresSince counts failed attempts strictly after since.
	CountFailuresSince(ctx context.Context, email string, since time.Time) (int64, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

type AttemptRepositoryGorm struct {
	db *gorm.DB
}

func NewAttemptRepositoryGorm(db *gorm.DB) *AttemptRepositoryGorm {
	return &AttemptRepositoryGorm{db: db}
}

func (r *AttemptRepositoryGorm) Create(ctx context.Context, a *domain.LoginAttempt) error {
	m := convert.AttemptDomainToRecord(a)
	m.AttemptTime = m.AttemptTime.UTC()
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *AttemptRepositoryGorm) CountFailuresSince(ctx context.Context, email string, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&storage.LoginAttemptRecord{}).
		Where("email = ? AND attempt_time > ? AND success = ?", email, since.UTC(), false).
		Count(&n).Error
	return n, err
}

func (r *AttemptRepositoryGorm) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("attempt_time < ?", before.UTC()).
		Delete(&storage.LoginAttemptRecord{})
	return res.RowsAffected, res.Error
}

package repo

import (
	"context"
	"errors"
	"time"

	"righttorecord/be/biz/model/convert"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/storage"

	"gorm.io/gorm"
)

type UserRepository interface {
	// Create stores the profile and credential atomically.
	Create(ctx context.Context, u *domain.User, cred *domain.Credential) (*domain.User, error)
	FindByUserID(ctx context.Context, userID string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// ExistsUserID also sees soft-deleted rows, which still own the id.
	ExistsUserID(ctx context.Context, userID string) (bool, error)
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
	UpdateSubscription(ctx context.Context, userID, tier string, expiresAt *time.Time) error
	// UpdateStorageUsed writes seconds only if no newer computation was
	// stored; it reports whether the row was updated.
	UpdateStorageUsed(ctx context.Context, userID string, seconds int64, computedAt time.Time) (bool, error)
}

type UserRepositoryGorm struct {
	db *gorm.DB
}

func NewUserRepositoryGorm(db *gorm.DB) *UserRepositoryGorm {
	return &UserRepositoryGorm{db: db}
}

func (r *UserRepositoryGorm) Create(ctx context.Context, u *domain.User, cred *domain.Credential) (*domain.User, error) {
	var created *storage.UserRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := createAccount(tx, u, cred)
		created = m
		return err
	})
	if err != nil {
		return nil, err
	}
	return convert.UserRecordToDomain(created), nil
}

func createAccount(tx *gorm.DB, u *domain.User, cred *domain.Credential) (*storage.UserRecord, error) {
	m := convert.UserDomainToRecord(u)
	if err := tx.Create(m).Error; err != nil {
		return nil, err
	}
	if err := tx.Create(convert.CredentialDomainToRecord(cred)).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *UserRepositoryGorm) FindByUserID(ctx context.Context, userID string) (*domain.User, error) {
	var m storage.UserRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return convert.UserRecordToDomain(&m), nil
}

func (r *UserRepositoryGorm) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m storage.UserRecord
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return convert.UserRecordToDomain(&m), nil
}

func (r *UserRepositoryGorm) ExistsUserID(ctx context.Context, userID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Unscoped().Model(&storage.UserRecord{}).Where("user_id = ?", userID).Count(&n).Error
	return n > 0, err
}

func (r *UserRepositoryGorm) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&storage.UserRecord{}).
		Where("user_id = ?", userID).
		Update("last_login", at.UTC()).Error
}

func (r *UserRepositoryGorm) UpdateSubscription(ctx context.Context, userID, tier string, expiresAt *time.Time) error {
	var exp *time.Time
	if expiresAt != nil {
		t := expiresAt.UTC()
		exp = &t
	}
	return r.db.WithContext(ctx).Model(&storage.UserRecord{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"subscription_tier":       tier,
			"subscription_expires_at": exp,
		}).Error
}

func (r *UserRepositoryGorm) UpdateStorageUsed(ctx context.Context, userID string, seconds int64, computedAt time.Time) (bool, error) {
	at := computedAt.UTC()
	res := r.db.WithContext(ctx).Model(&storage.UserRecord{}).
		Where("user_id = ?", userID).
		Where("storage_computed_at IS NULL OR storage_computed_at < ?", at).
		Updates(map[string]any{
			"storage_used":        seconds,
			"storage_computed_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

package repo

import (
	"context"
	"errors"

	"righttorecord/be/biz/model/convert"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/storage"

	"gorm.io/gorm"
)

type CredentialRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Credential, error)
}

type CredentialRepositoryGorm struct {
	db *gorm.DB
}

func NewCredentialRepositoryGorm(db *gorm.DB) *CredentialRepositoryGorm {
	return &CredentialRepositoryGorm{db: db}
}

func (r *CredentialRepositoryGorm) FindByUserID(ctx context.Context, userID string) (*domain.Credential, error) {
	var m storage.UserCredentialRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return convert.CredentialRecordToDomain(&m), nil
}

package repo

import (
	"context"
	"fmt"

	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/storage"

	"gorm.io/gorm"
)

type LegacyRepository interface {
	// Count returns false when no archive exists.
	Count(ctx context.Context) (exists bool, n int64, err error)
	// Scan walks archived credentials in batches until fn returns stop.
	Scan(ctx context.Context, batchSize int, fn func(batch []domain.LegacyCredential) (stop bool)) error
	// Migrate creates the new account under the legacy id and copies its
	// archived sessions, in one transaction. It returns the copied count.
	Migrate(ctx context.Context, u *domain.User, cred *domain.Credential) (int64, error)
}

type LegacyRepositoryGorm struct {
	db *gorm.DB
}

func NewLegacyRepositoryGorm(db *gorm.DB) *LegacyRepositoryGorm {
	return &LegacyRepositoryGorm{db: db}
}

func (r *LegacyRepositoryGorm) Count(ctx context.Context) (bool, int64, error) {
	db := r.db.WithContext(ctx)
	if !db.Migrator().HasTable(storage.LegacyUserTable) {
		return false, 0, nil
	}
	var n int64
	if err := db.Table(storage.LegacyUserTable).Count(&n).Error; err != nil {
		return true, 0, err
	}
	return true, n, nil
}

func (r *LegacyRepositoryGorm) Scan(ctx context.Context, batchSize int, fn func([]domain.LegacyCredential) bool) error {
	db := r.db.WithContext(ctx)
	for offset := 0; ; offset += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		var rows []storage.LegacyUserRecord
		err := db.Table(storage.LegacyUserTable).
			Select("user_id, pin_hash, salt").
			Order("user_id").
			Limit(batchSize).Offset(offset).
			Find(&rows).Error
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		batch := make([]domain.LegacyCredential, 0, len(rows))
		for _, row := range rows {
			batch = append(batch, domain.LegacyCredential{UserID: row.UserId, PinHash: row.PinHash, Salt: row.Salt})
		}
		if fn(batch) || len(rows) < batchSize {
			return nil
		}
	}
}

func (r *LegacyRepositoryGorm) Migrate(ctx context.Context, u *domain.User, cred *domain.Credential) (int64, error) {
	var copied int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := createAccount(tx, u, cred); err != nil {
			return err
		}
		if !tx.Migrator().HasTable(storage.LegacySessionTable) {
			return nil
		}
		res := tx.Exec(fmt.Sprintf(
			"INSERT INTO %s (user_id, session_id, created_at, chunk_count) "+
				"SELECT user_id, session_id, COALESCE(created_at, CURRENT_TIMESTAMP), COALESCE(chunk_count, 0) FROM %s WHERE user_id = ?",
			storage.RecordingSessionRecord{}.TableName(), storage.LegacySessionTable,
		), u.UserID)
		copied = res.RowsAffected
		return res.Error
	})
	return copied, err
}

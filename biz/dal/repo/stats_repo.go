package repo

import (
	"context"
	"time"

	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/storage"

	"gorm.io/gorm"
)

type StatsRepository interface {
	Stats(ctx context.Context, activeSince time.Time) (*domain.ServerStats, error)
	Ping(ctx context.Context) error
}

type StatsRepositoryGorm struct {
	db *gorm.DB
}

func NewStatsRepositoryGorm(db *gorm.DB) *StatsRepositoryGorm {
	return &StatsRepositoryGorm{db: db}
}

func (r *StatsRepositoryGorm) Stats(ctx context.Context, activeSince time.Time) (*domain.ServerStats, error) {
	db := r.db.WithContext(ctx)
	var s domain.ServerStats
	if err := db.Model(&storage.UserRecord{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&storage.RecordingSessionRecord{}).Count(&s.TotalRecordings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&storage.UserRecord{}).Where("last_login > ?", activeSince.UTC()).Count(&s.ActiveUsers30d).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StatsRepositoryGorm) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

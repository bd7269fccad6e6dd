package storage

import (
	"time"

	"gorm.io/plugin/soft_delete"
)

type GormModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt soft_delete.DeletedAt
}

type UserRecord struct {
	GormModel
	UserId             string     `gorm:"size:64;not null;uniqueIndex"`  // 用户唯一索引, 同时是存储目录名
	Email              string     `gorm:"size:255;not null;uniqueIndex"` // 小写登录邮箱
	FullName           string     `gorm:"size:128;not null"`
	SubscriptionTier   string     `gorm:"size:16;not null;default:free"`
	SubscriptionExpire *time.Time `gorm:"column:subscription_expires_at"`
	StorageUsed        int64      `gorm:"column:storage_used;not null;default:0"` // 秒, 仅供展示
	StorageComputedAt  *time.Time
	LastLogin          *time.Time `gorm:"column:last_login;index"`
}

func (UserRecord) TableName() string {
	return "users"
}

type UserCredentialRecord struct {
	GormModel
	UserId       string `gorm:"size:64;not null;uniqueIndex"`
	PasscodeSalt string `gorm:"size:64;not null"`
	PasscodeHash string `gorm:"size:128;not null"`
}

func (UserCredentialRecord) TableName() string {
	return "user_credentials"
}

type LoginAttemptRecord struct {
	ID          uint      `gorm:"primarykey"`
	Email       string    `gorm:"size:255;not null;index:idx_login_attempt_email_time"`
	AttemptTime time.Time `gorm:"not null;index:idx_login_attempt_email_time"`
	Success     bool      `gorm:"not null;default:false"`
	IPAddress   string    `gorm:"size:64"`
}

func (LoginAttemptRecord) TableName() string {
	return "login_attempts"
}

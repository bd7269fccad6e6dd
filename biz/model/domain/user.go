package domain

import "time"

const (
	TierFree    = "free"
	TierPremium = "premium"
	TierPro     = "pro"
)

type User struct {
	UserID                string
	Email                 string
	FullName              string
	Tier                  string
	SubscriptionExpiresAt *time.Time
	StorageUsedSeconds    int64
	LastLoginAt           *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Credential is the stored passcode digest of a user.
type Credential struct {
	UserID       string
	PasscodeSalt string
	PasscodeHash string
}

// EffectiveTier is the tier that governs limits at now.
func (u *User) EffectiveTier(now time.Time) string {
	if u.SubscriptionExpiresAt != nil && u.SubscriptionExpiresAt.Before(now) {
		return TierFree
	}
	return u.Tier
}

type LoginAttempt struct {
	Email       string
	AttemptTime time.Time
	Success     bool
	IPAddress   string
}

// LegacyCredential is an archived PIN-era account.
type LegacyCredential struct {
	UserID  string
	PinHash string
	Salt    string
}

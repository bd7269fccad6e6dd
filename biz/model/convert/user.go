package convert

import (
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/storage"
)

func UserDomainToRecord(u *domain.User) *storage.UserRecord {
	if u == nil {
		return nil
	}
	return &storage.UserRecord{
		GormModel: storage.GormModel{
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		UserId:             u.UserID,
		Email:              u.Email,
		FullName:           u.FullName,
		SubscriptionTier:   u.Tier,
		SubscriptionExpire: u.SubscriptionExpiresAt,
		StorageUsed:        u.StorageUsedSeconds,
		LastLogin:          u.LastLoginAt,
	}
}

func UserRecordToDomain(m *storage.UserRecord) *domain.User {
	if m == nil {
		return nil
	}
	tier := m.SubscriptionTier
	if tier == "" {
		tier = domain.TierFree
	}
	return &domain.User{
		UserID:                m.UserId,
		Email:                 m.Email,
		FullName:              m.FullName,
		Tier:                  tier,
		SubscriptionExpiresAt: m.SubscriptionExpire,
		StorageUsedSeconds:    m.StorageUsed,
		LastLoginAt:           m.LastLogin,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func CredentialDomainToRecord(c *domain.Credential) *storage.UserCredentialRecord {
	if c == nil {
		return nil
	}
	return &storage.UserCredentialRecord{
		UserId:       c.UserID,
		PasscodeSalt: c.PasscodeSalt,
		PasscodeHash: c.PasscodeHash,
	}
}

func CredentialRecordToDomain(m *storage.UserCredentialRecord) *domain.Credential {
	if m == nil {
		return nil
	}
	return &domain.Credential{
		UserID:       m.UserId,
		PasscodeSalt: m.PasscodeSalt,
		PasscodeHash: m.PasscodeHash,
	}
}

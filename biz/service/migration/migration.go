// Package migration moves archived PIN accounts onto email and passcode
// credentials, keeping the legacy user id so stored recordings stay reachable.
package migration

import (
	"context"
	"strings"

	"righttorecord/be/biz/blob"
	"righttorecord/be/biz/dal/repo"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/encode"
	"righttorecord/be/biz/util/random"
	"righttorecord/be/biz/util/validate"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	defaultBatchSize = 100
	saltBytes        = 32
)

type Service struct {
	legacy    repo.LegacyRepository
	users     repo.UserRepository
	blobs     blob.Store
	batchSize int
}

func New(legacy repo.LegacyRepository, users repo.UserRepository, blobs blob.Store) *Service {
	return &Service{legacy: legacy, users: users, blobs: blobs, batchSize: defaultBatchSize}
}

func (s *Service) Available(ctx context.Context) (*domain.MigrationAvailability, errs.Error) {
	exists, n, err := s.legacy.Count(ctx)
	if err != nil {
		hlog.CtxErrorf(ctx, "count legacy accounts err: %v", err)
		return nil, errs.ServerError
	}
	return &domain.MigrationAvailability{Available: exists && n > 0, LegacyCount: n}, nil
}

// findLegacyID recomputes the PIN digest against each archived record. The
// archive is bounded and only read during the transition.
func (s *Service) findLegacyID(ctx context.Context, pin string) (string, error) {
	var matched string
	err := s.legacy.Scan(ctx, s.batchSize, func(batch []domain.LegacyCredential) bool {
		for _, c := range batch {
			if encode.VerifyPassword(c.Salt, pin, c.PinHash) {
				matched = c.UserID
				return true
			}
		}
		return false
	})
	return matched, err
}

func (s *Service) Migrate(ctx context.Context, pin, email, passcode, fullName string) (*domain.User, errs.Error) {
	pin = strings.TrimSpace(pin)
	email = validate.CanonicalEmail(email)
	fullName = strings.TrimSpace(fullName)
	if pin == "" || email == "" || passcode == "" || fullName == "" {
		return nil, errs.ParamError.SetMsg("PIN, email, password, and full name required")
	}
	if !validate.IsEmail(email) {
		return nil, errs.ParamError.SetMsg("invalid email format")
	}
	if !validate.IsPasscode(passcode) {
		return nil, errs.ParamError.SetMsg("password must be exactly 6 digits")
	}

	exists, _, err := s.legacy.Count(ctx)
	if err != nil {
		hlog.CtxErrorf(ctx, "count legacy accounts err: %v", err)
		return nil, errs.ServerError
	}
	if !exists {
		return nil, errs.NotFound.SetMsg("no PIN-based accounts found to migrate")
	}

	legacyID, err := s.findLegacyID(ctx, pin)
	if err != nil {
		hlog.CtxErrorf(ctx, "scan legacy accounts err: %v", err)
		return nil, errs.ServerError
	}
	if legacyID == "" {
		return nil, errs.NotFound.SetMsg("PIN not found in system")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user by email err: %v", err)
		return nil, errs.ServerError
	}
	if existing != nil {
		return nil, errs.EmailRegistered
	}
	taken, err := s.users.ExistsUserID(ctx, legacyID)
	if err != nil {
		hlog.CtxErrorf(ctx, "check user id %s err: %v", legacyID, err)
		return nil, errs.ServerError
	}
	if taken {
		return nil, errs.Conflict.SetMsg("account already migrated")
	}

	salt, err := random.TokenHex(saltBytes)
	if err != nil {
		hlog.CtxErrorf(ctx, "generate salt err: %v", err)
		return nil, errs.ServerError
	}
	u := &domain.User{UserID: legacyID, Email: email, FullName: fullName, Tier: domain.TierFree}
	cred := &domain.Credential{
		UserID:       legacyID,
		PasscodeSalt: salt,
		PasscodeHash: encode.EncodePassword(salt, passcode),
	}
	copied, err := s.legacy.Migrate(ctx, u, cred)
	if err != nil {
		if errs.IsDuplicatedErr(err) {
			return nil, errs.Conflict
		}
		hlog.CtxErrorf(ctx, "migrate legacy account %s err: %v", legacyID, err)
		return nil, errs.ServerError
	}

	// 旧账号的目录一般已存在
	if err := s.blobs.EnsureNamespace(ctx, legacyID); err != nil {
		hlog.CtxWarnf(ctx, "ensure namespace %s err: %v", legacyID, err)
	}
	hlog.CtxInfof(ctx, "migrated legacy account %s to %s, %d sessions copied", legacyID, email, copied)
	return u, nil
}

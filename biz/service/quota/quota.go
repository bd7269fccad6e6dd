// Package quota estimates storage usage and maps subscription tiers to limits.
package quota

import (
	"context"
	"errors"
	"strings"
	"time"

	"righttorecord/be/biz/blob"
	"righttorecord/be/biz/config"
	"righttorecord/be/biz/dal/repo"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/clock"
	"righttorecord/be/biz/util/receipt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var expiresLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

type Service struct {
	users    repo.UserRepository
	sessions repo.SessionRepository
	blobs    blob.Store
	verifier receipt.Verifier
	clock    clock.Clock

	chunkSeconds int64
	limits       map[string]int64
	enforce      bool
}

func New(users repo.UserRepository, sessions repo.SessionRepository, blobs blob.Store,
	verifier receipt.Verifier, clk clock.Clock, conf config.QuotaConf) *Service {
	limits := make(map[string]int64, len(conf.TierLimits))
	for tier, v := range conf.TierLimits {
		limits[tier] = int64(v)
	}
	return &Service{
		users:        users,
		sessions:     sessions,
		blobs:        blobs,
		verifier:     verifier,
		clock:        clk,
		chunkSeconds: int64(conf.ChunkSeconds),
		limits:       limits,
		enforce:      conf.EnforceOnUpload,
	}
}

// ValidTier reports whether tier is one of the known tiers.
func ValidTier(tier string) bool {
	switch tier {
	case domain.TierFree, domain.TierPremium, domain.TierPro:
		return true
	}
	return false
}

// TierLimit falls back to the free limit for unknown tiers.
func (s *Service) TierLimit(tier string) int64 {
	if limit, ok := s.limits[tier]; ok && ValidTier(tier) {
		return limit
	}
	return s.limits[domain.TierFree]
}

func UsagePercentage(used, limit int64) float64 {
	if limit <= 0 {
		return 100
	}
	return min(float64(used)/float64(limit)*100, 100)
}

// EstimateUsage counts stored chunks of every session the user owns and
// prices each at the fixed chunk estimate. The result is cached on the user
// row only if no newer computation got there first.
func (s *Service) EstimateUsage(ctx context.Context, userID string) (int64, errs.Error) {
	startedAt := s.clock.Now()

	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "list sessions of %s err: %v", userID, err)
		return 0, errs.ServerError
	}

	var chunks int64
	for _, sess := range sessions {
		objs, err := s.blobs.List(ctx, userID, sess.SessionID)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) {
				continue
			}
			hlog.CtxErrorf(ctx, "list chunks %s/%s err: %v", userID, sess.SessionID, err)
			return 0, errs.ServerError
		}
		chunks += int64(len(objs))
	}
	used := chunks * s.chunkSeconds

	if _, err := s.users.UpdateStorageUsed(ctx, userID, used, startedAt); err != nil {
		hlog.CtxWarnf(ctx, "cache storage used of %s err: %v", userID, err)
	}
	return used, nil
}

func (s *Service) StorageInfo(ctx context.Context, u *domain.User) (*domain.StorageInfo, errs.Error) {
	used, bizErr := s.EstimateUsage(ctx, u.UserID)
	if bizErr != nil {
		return nil, bizErr
	}
	count, err := s.sessions.CountByUser(ctx, u.UserID)
	if err != nil {
		hlog.CtxErrorf(ctx, "count sessions of %s err: %v", u.UserID, err)
		return nil, errs.ServerError
	}

	tier := u.EffectiveTier(s.clock.Now())
	limit := s.TierLimit(tier)
	return &domain.StorageInfo{
		UsedSeconds:  used,
		LimitSeconds: limit,
		Percentage:   UsagePercentage(used, limit),
		SessionCount: count,
		Tier:         tier,
	}, nil
}

type SubscriptionUpdate struct {
	Tier         string
	ProductID    string
	ExpiresAt    string
	ReceiptToken string
}

// ApplySubscriptionUpdate checks the receipt when one is given, coerces
// unknown tiers to free and persists tier and expiry.
func (s *Service) ApplySubscriptionUpdate(ctx context.Context, userID string, req SubscriptionUpdate) (*domain.Subscription, errs.Error) {
	if req.ReceiptToken != "" {
		if err := s.verifier.Verify(ctx, req.ReceiptToken); err != nil {
			hlog.CtxWarnf(ctx, "invalid receipt for %s: %v", userID, err)
			return nil, errs.InvalidReceipt
		}
	}

	tier := req.Tier
	if tier == "" && req.ProductID != "" {
		tier = receipt.ProductTier(req.ProductID)
	}
	if !ValidTier(tier) {
		tier = domain.TierFree
	}

	expiresAt, err := ParseExpiresAt(req.ExpiresAt)
	if err != nil {
		return nil, errs.ParamError.SetMsg("invalid expires_at")
	}

	if err := s.users.UpdateSubscription(ctx, userID, tier, expiresAt); err != nil {
		hlog.CtxErrorf(ctx, "update subscription of %s err: %v", userID, err)
		return nil, errs.ServerError
	}
	hlog.CtxInfof(ctx, "subscription of %s set to %s", userID, tier)
	return &domain.Subscription{
		Tier:         tier,
		LimitSeconds: s.TierLimit(tier),
		ExpiresAt:    expiresAt,
	}, nil
}

// CheckUploadAllowed rejects an upload that would push usage past the tier
// limit. It is a no-op unless enforcement is configured.
func (s *Service) CheckUploadAllowed(ctx context.Context, u *domain.User) errs.Error {
	if !s.enforce {
		return nil
	}
	used, bizErr := s.EstimateUsage(ctx, u.UserID)
	if bizErr != nil {
		return bizErr
	}
	if used+s.chunkSeconds > s.TierLimit(u.EffectiveTier(s.clock.Now())) {
		return errs.QuotaExceeded
	}
	return nil
}

// ParseExpiresAt returns nil for an empty value.
func ParseExpiresAt(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	var lastErr error
	for _, layout := range expiresLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			t = t.UTC()
			return &t, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

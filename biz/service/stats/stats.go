package stats

import (
	"context"
	"time"

	"righttorecord/be/biz/blob"
	"righttorecord/be/biz/dal/repo"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/clock"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const activeWindow = 30 * 24 * time.Hour

type Health struct {
	Database error
	Storage  error
}

func (h Health) OK() bool {
	return h.Database == nil && h.Storage == nil
}

type Service struct {
	stats repo.StatsRepository
	blobs blob.Store
	clock clock.Clock
}

func New(stats repo.StatsRepository, blobs blob.Store, clk clock.Clock) *Service {
	return &Service{stats: stats, blobs: blobs, clock: clk}
}

func (s *Service) Stats(ctx context.Context) (*domain.ServerStats, errs.Error) {
	st, err := s.stats.Stats(ctx, s.clock.Now().Add(-activeWindow))
	if err != nil {
		hlog.CtxErrorf(ctx, "collect stats err: %v", err)
		return nil, errs.ServerError
	}
	return st, nil
}

func (s *Service) Health(ctx context.Context) Health {
	h := Health{
		Database: s.stats.Ping(ctx),
		Storage:  s.blobs.Ping(ctx),
	}
	if !h.OK() {
		hlog.CtxWarnf(ctx, "health check failed, database: %v, storage: %v", h.Database, h.Storage)
	}
	return h
}

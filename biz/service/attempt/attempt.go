// Package attempt throttles login attempts per email over a trailing window.
package attempt

import (
	"context"
	"time"

	"righttorecord/be/biz/config"
	"righttorecord/be/biz/dal/repo"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/util/clock"
	"righttorecord/be/biz/util/keylock"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const lockPrefix = "login:"

type Limiter struct {
	attempts  repo.AttemptRepository
	locker    keylock.Locker
	clock     clock.Clock
	max       int
	window    time.Duration
	retention time.Duration
}

func New(attempts repo.AttemptRepository, locker keylock.Locker, clk clock.Clock, conf config.AuthConf) *Limiter {
	return &Limiter{
		attempts:  attempts,
		locker:    locker,
		clock:     clk,
		max:       conf.MaxFailedAttempts,
		window:    conf.Window(),
		retention: conf.Retention(),
	}
}

func (l *Limiter) MaxAttempts() int {
	return l.max
}

func (l *Limiter) failures(ctx context.Context, email string) (int, errs.Error) {
	n, err := l.attempts.CountFailuresSince(ctx, email, l.clock.Now().Add(-l.window))
	if err != nil {
		hlog.CtxErrorf(ctx, "count login failures err: %v", err)
		return 0, errs.ServerError
	}
	return int(n), nil
}

// CheckAllowed reports whether the failures in the trailing window are
// still below the cap.
func (l *Limiter) CheckAllowed(ctx context.Context, email string) (bool, errs.Error) {
	n, bizErr := l.failures(ctx, email)
	if bizErr != nil {
		return false, bizErr
	}
	return n < l.max, nil
}

// Record appends an attempt. Successes never reset the failure tally.
func (l *Limiter) Record(ctx context.Context, email string, success bool, ip string) errs.Error {
	err := l.attempts.Create(ctx, &domain.LoginAttempt{
		Email:       email,
		AttemptTime: l.clock.Now(),
		Success:     success,
		IPAddress:   ip,
	})
	if err != nil {
		hlog.CtxErrorf(ctx, "record login attempt err: %v", err)
		return errs.ServerError
	}
	return nil
}

func (l *Limiter) Remaining(ctx context.Context, email string) (int, errs.Error) {
	n, bizErr := l.failures(ctx, email)
	if bizErr != nil {
		return 0, bizErr
	}
	return max(0, l.max-n), nil
}

// Guard runs fn while holding the per-email lock, so check and record of
// concurrent attempts on one email never interleave.
func (l *Limiter) Guard(ctx context.Context, email string, fn func(ctx context.Context) errs.Error) errs.Error {
	unlock, err := l.locker.Lock(ctx, lockPrefix+email)
	if err != nil {
		hlog.CtxErrorf(ctx, "acquire login lock err: %v", err)
		return errs.ServerError
	}
	defer unlock()
	return fn(ctx)
}

// Purge drops attempts older than the retention period.
func (l *Limiter) Purge(ctx context.Context) (int64, error) {
	return l.attempts.DeleteBefore(ctx, l.clock.Now().Add(-l.retention))
}

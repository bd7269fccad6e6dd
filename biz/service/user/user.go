package user

import (
	"context"
	"strings"
	"unicode"

	"righttorecord/be/biz/blob"
	"righttorecord/be/biz/dal/repo"
	"righttorecord/be/biz/model/domain"
	"righttorecord/be/biz/model/errs"
	"righttorecord/be/biz/service/attempt"
	"righttorecord/be/biz/util/clock"
	"righttorecord/be/biz/util/encode"
	"righttorecord/be/biz/util/random"
	"righttorecord/be/biz/util/validate"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	saltBytes   = 32
	userIDBytes = 16
)

// 未知邮箱也做一次摘要计算, 两种失败耗时一致
var (
	dummySalt = strings.Repeat("0", saltBytes*2)
	dummyHash = strings.Repeat("0", encode.KeyLength*2)
)

type Service struct {
	users   repo.UserRepository
	creds   repo.CredentialRepository
	blobs   blob.Store
	limiter *attempt.Limiter
	clock   clock.Clock
}

func New(users repo.UserRepository, creds repo.CredentialRepository, blobs blob.Store,
	limiter *attempt.Limiter, clk clock.Clock) *Service {
	return &Service{users: users, creds: creds, blobs: blobs, limiter: limiter, clock: clk}
}

// LoginResult is filled on failure too, so callers can report what is
// left of the attempt budget.
type LoginResult struct {
	User        *domain.User
	Remaining   int
	RateLimited bool
}

func (s *Service) Register(ctx context.Context, fullName, email, passcode string) (*domain.User, errs.Error) {
	email = validate.CanonicalEmail(email)
	if !validate.IsEmail(email) {
		return nil, errs.ParamError.SetMsg("invalid email format")
	}
	if !validate.IsPasscode(passcode) {
		return nil, errs.ParamError.SetMsg("password must be exactly 6 digits")
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		fullName = nameFromEmail(email)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user by email err: %v", err)
		return nil, errs.ServerError
	}
	if existing != nil {
		return nil, errs.EmailRegistered
	}

	salt, err := random.TokenHex(saltBytes)
	if err != nil {
		hlog.CtxErrorf(ctx, "generate salt err: %v", err)
		return nil, errs.ServerError
	}
	userID, err := random.TokenURLSafe(userIDBytes)
	if err != nil {
		hlog.CtxErrorf(ctx, "generate user id err: %v", err)
		return nil, errs.ServerError
	}

	if err := s.blobs.EnsureNamespace(ctx, userID); err != nil {
		hlog.CtxErrorf(ctx, "provision namespace %s err: %v", userID, err)
		return nil, errs.ServerError
	}

	u := &domain.User{
		UserID:   userID,
		Email:    email,
		FullName: fullName,
		Tier:     domain.TierFree,
	}
	cred := &domain.Credential{
		UserID:       userID,
		PasscodeSalt: salt,
		PasscodeHash: encode.EncodePassword(salt, passcode),
	}
	created, err := s.users.Create(ctx, u, cred)
	if err != nil {
		if rmErr := s.blobs.RemoveNamespace(ctx, userID); rmErr != nil {
			hlog.CtxWarnf(ctx, "remove namespace %s err: %v", userID, rmErr)
		}
		if errs.IsDuplicatedErr(err) {
			return nil, errs.EmailRegistered
		}
		hlog.CtxErrorf(ctx, "create user err: %v", err)
		return nil, errs.ServerError
	}
	return created, nil
}

// Authenticate does not tell an unknown email from a wrong passcode.
func (s *Service) Authenticate(ctx context.Context, email, passcode string) (*domain.User, errs.Error) {
	email = validate.CanonicalEmail(email)

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user by email err: %v", err)
		return nil, errs.ServerError
	}
	if u == nil {
		encode.VerifyPassword(dummySalt, passcode, dummyHash)
		return nil, errs.Unauthorized
	}

	cred, err := s.creds.FindByUserID(ctx, u.UserID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find credential err: %v", err)
		return nil, errs.ServerError
	}
	if cred == nil {
		hlog.CtxWarnf(ctx, "user %s has no credential", u.UserID)
		encode.VerifyPassword(dummySalt, passcode, dummyHash)
		return nil, errs.Unauthorized
	}
	if !encode.VerifyPassword(cred.PasscodeSalt, passcode, cred.PasscodeHash) {
		return nil, errs.Unauthorized
	}
	return u, nil
}

// TouchLastLogin is best effort.
func (s *Service) TouchLastLogin(ctx context.Context, userID string) {
	if err := s.users.TouchLastLogin(ctx, userID, s.clock.Now()); err != nil {
		hlog.CtxWarnf(ctx, "touch last login %s err: %v", userID, err)
	}
}

// Login runs check, authenticate and record under the per-email lock. A
// rate limited email never reaches the credential comparison.
func (s *Service) Login(ctx context.Context, email, passcode, ip string) (*LoginResult, errs.Error) {
	email = validate.CanonicalEmail(email)
	passcode = strings.TrimSpace(passcode)
	if email == "" || passcode == "" {
		return nil, errs.ParamError.SetMsg("email and password required")
	}

	res := &LoginResult{}
	bizErr := s.limiter.Guard(ctx, email, func(ctx context.Context) errs.Error {
		allowed, bizErr := s.limiter.CheckAllowed(ctx, email)
		if bizErr != nil {
			return bizErr
		}
		if !allowed {
			res.RateLimited = true
			hlog.CtxWarnf(ctx, "login rate limited for %s from %s", email, ip)
			return errs.RateLimited
		}

		u, authErr := s.Authenticate(ctx, email, passcode)
		if authErr != nil && !errs.ErrorEqual(authErr, errs.Unauthorized) {
			return authErr
		}
		if bizErr := s.limiter.Record(ctx, email, authErr == nil, ip); bizErr != nil {
			return bizErr
		}
		remaining, bizErr := s.limiter.Remaining(ctx, email)
		if bizErr != nil {
			return bizErr
		}
		res.Remaining = remaining

		if authErr != nil {
			res.RateLimited = remaining == 0
			hlog.CtxInfof(ctx, "failed login for %s from %s, %d remaining", email, ip, remaining)
			return authErr
		}
		res.User = u
		return nil
	})
	if bizErr != nil {
		return res, bizErr
	}

	s.TouchLastLogin(ctx, res.User.UserID)
	return res, nil
}

func (s *Service) CheckAttempts(ctx context.Context, email string) (remaining int, limited bool, bizErr errs.Error) {
	email = validate.CanonicalEmail(email)
	if email == "" {
		return 0, false, errs.ParamError.SetMsg("email required")
	}
	remaining, bizErr = s.limiter.Remaining(ctx, email)
	if bizErr != nil {
		return 0, false, bizErr
	}
	return remaining, remaining == 0, nil
}

func (s *Service) MaxAttempts() int {
	return s.limiter.MaxAttempts()
}

// AuthenticateForRequest gates every authenticated operation.
func (s *Service) AuthenticateForRequest(ctx context.Context, email, passcode string) (*domain.User, errs.Error) {
	if !validate.IsPasscode(passcode) {
		return nil, errs.Unauthorized
	}
	u, bizErr := s.Authenticate(ctx, email, passcode)
	if bizErr != nil {
		return nil, bizErr
	}
	s.TouchLastLogin(ctx, u.UserID)
	return u, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (*domain.User, errs.Error) {
	u, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "find user %s err: %v", userID, err)
		return nil, errs.ServerError
	}
	if u == nil {
		return nil, errs.UserNotExist
	}
	return u, nil
}

// nameFromEmail title-cases the local part: "jane.doe" -> "Jane.Doe".
func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	out := []rune(local)
	prevLetter := false
	for i, r := range out {
		if prevLetter {
			out[i] = unicode.ToLower(r)
		} else {
			out[i] = unicode.ToUpper(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return string(out)
}

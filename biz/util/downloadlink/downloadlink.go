package downloadlink

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("download token invalid")

type claims struct {
	UserID    string `json:"uid"`
	SessionID string `json:"sid"`
	Filename  string `json:"fn"`
	jwt.RegisteredClaims
}

// Signer issues and checks short-lived HS256 tokens bound to one chunk.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *Signer) Sign(userID, sessionID, filename string) (string, error) {
	now := s.now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:    userID,
		SessionID: sessionID,
		Filename:  filename,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}).SignedString(s.secret)
}

func (s *Signer) Verify(token, userID, sessionID, filename string) error {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	if c.UserID != userID || c.SessionID != sessionID || c.Filename != filename {
		return ErrInvalidToken
	}
	return nil
}

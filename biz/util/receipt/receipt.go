package receipt

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTooShort  = errors.New("invalid transaction data")
	ErrMalformed = errors.New("invalid JWS format")
)

// Verifier decides whether an opaque subscription receipt is acceptable.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

// JWSVerifier checks that the token is a well-formed compact JWS. It does not
// check the signature; that is the store's job.
type JWSVerifier struct {
	parser *jwt.Parser
}

func NewJWSVerifier() *JWSVerifier {
	return &JWSVerifier{parser: jwt.NewParser()}
}

func (v *JWSVerifier) Verify(_ context.Context, token string) error {
	if len(token) < 10 {
		return ErrTooShort
	}
	if len(strings.Split(token, ".")) != 3 {
		return ErrMalformed
	}
	if _, _, err := v.parser.ParseUnverified(token, jwt.MapClaims{}); err != nil {
		return errors.Join(ErrMalformed, err)
	}
	return nil
}

// ProductTier maps an App Store product id to a subscription tier.
func ProductTier(productID string) string {
	switch productID {
	case "com.righttorecord.premium2.monthly", "com.righttorecord.premium.monthly":
		return "premium"
	case "com.righttorecord.pro2.monthly", "com.righttorecord.pro.monthly":
		return "pro"
	default:
		return "free"
	}
}

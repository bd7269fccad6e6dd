package validate

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	passcodePattern = regexp.MustCompile(`^[0-9]{6}$`)
	idPattern       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New()
		_ = v.RegisterValidation("passcode", func(fl validator.FieldLevel) bool {
			return IsPasscode(fl.Field().String())
		})
		_ = v.RegisterValidation("storage_id", func(fl validator.FieldLevel) bool {
			return IsStorageID(fl.Field().String())
		})
	})
	return v
}

// Struct validates `validate` tags on a request DTO.
func Struct(s any) error {
	return instance().Struct(s)
}

// CanonicalEmail trims and lowercases.
func CanonicalEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsPasscode reports exactly six ASCII digits.
func IsPasscode(passcode string) bool {
	return passcodePattern.MatchString(passcode)
}

// IsStorageID reports whether id is safe to use as a storage path segment.
func IsStorageID(id string) bool {
	return idPattern.MatchString(id)
}

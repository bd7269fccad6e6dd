package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorEqual(t *testing.T) {
	assert.True(t, ErrorEqual(nil, nil))
	assert.False(t, ErrorEqual(NotFound, nil))
	assert.True(t, ErrorEqual(ParamError, ParamError.SetMsg("passcode must be exactly 6 digits")))
	assert.False(t, ErrorEqual(Unauthorized, RateLimited))
	assert.Equal(t, "10002:bad", ParamError.SetErr(errors.New("bad")).Error())
}

func TestIsDuplicatedErr(t *testing.T) {
	assert.False(t, IsDuplicatedErr(nil))
	assert.False(t, IsDuplicatedErr(errors.New("connection refused")))
	assert.True(t, IsDuplicatedErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicatedErr(fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062})))
	assert.False(t, IsDuplicatedErr(&mysql.MySQLError{Number: 1045}))
	assert.True(t, IsDuplicatedErr(errors.New("UNIQUE constraint failed: users.email")))
}

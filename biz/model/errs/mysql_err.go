package errs

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// IsDuplicatedErr reports a unique-key violation from either backend.
func IsDuplicatedErr(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}

	// sqlite 驱动只给出文本
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package database

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"righttorecord/be/biz/config"
	"righttorecord/be/biz/model/storage"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to mysql or sqlite according to conf.
func Open(conf config.DatabaseConf) (*gorm.DB, error) {
	gormConf := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	switch conf.Driver {
	case "mysql":
		dsn := mysqldriver.Config{
			User:                 conf.Username,
			Passwd:               conf.Password,
			Net:                  "tcp",
			Addr:                 net.JoinHostPort(conf.IP, strconv.Itoa(conf.Port)),
			DBName:               conf.DBName,
			ParseTime:            true,
			Loc:                  time.UTC,
			AllowNativePasswords: true,
			Params:               map[string]string{"charset": "utf8mb4"},
		}
		db, err := gorm.Open(mysql.Open(dsn.FormatDSN()), gormConf)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		return db, nil
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(conf.SQLitePath), gormConf)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite 只允许单写, 串行化连接避免 database is locked
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}
}

// Migrate creates or updates the current schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&storage.UserRecord{},
		&storage.UserCredentialRecord{},
		&storage.RecordingSessionRecord{},
		&storage.LoginAttemptRecord{},
	)
}

// ArchiveLegacySchema renames a PIN-era schema out of the way so the current
// schema can be created beside it. It reports whether anything was archived.
func ArchiveLegacySchema(ctx context.Context, db *gorm.DB) (bool, error) {
	m := db.WithContext(ctx).Migrator()
	if !m.HasTable("users") {
		return false, nil
	}
	if !m.HasColumn("users", "pin_hash") || m.HasColumn("users", "email") {
		return false, nil
	}
	if m.HasTable(storage.LegacyUserTable) {
		return false, fmt.Errorf("legacy users table found but %s already exists", storage.LegacyUserTable)
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tm := tx.Migrator()
		if err := tm.RenameTable("users", storage.LegacyUserTable); err != nil {
			return err
		}
		if tm.HasTable("recording_sessions") {
			if err := tm.RenameTable("recording_sessions", storage.LegacySessionTable); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("archive legacy schema: %w", err)
	}
	hlog.CtxInfof(ctx, "legacy PIN schema archived to %s", storage.LegacyUserTable)
	return true, nil
}

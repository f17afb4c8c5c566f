package gorm

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectToSqlite func - path may be ":memory:" or a file DSN
func ConnectToSqlite(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("sqlite path is empty")
	}

	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	// sqlite serializes writers; one connection keeps ":memory:" databases shared
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	logrus.WithField("path", path).Info("Connected to sqlite")
	return &DB{Conn: conn, Dialect: DialectSqlite}, nil
}

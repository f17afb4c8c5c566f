package gorm

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB struct
type DB struct {
	Conn    *gorm.DB
	Dialect string
}

const (
	// DialectPostgres - PostgreSQL connection
	DialectPostgres = "postgres"
	// DialectSqlite - SQLite connection
	DialectSqlite = "sqlite"
)

// ConnectToPostgreSQL func
func ConnectToPostgreSQL(host, port, username, pass, dbname string, sslmode bool) (*DB, error) {
	if host == "" && port == "" && dbname == "" {
		return nil, errors.New("cannot estabished the connection")
	}

	mode := "disable"
	if sslmode {
		mode = "require"
	}
	connectionStr := fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=%v connect_timeout=0", host, username, pass, dbname, port, mode)

	pg, err := gorm.Open(postgres.Open(connectionStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	sqlDB, err := pg.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)

	logrus.WithFields(logrus.Fields{
		"host":    host,
		"port":    port,
		"db":      dbname,
		"sslmode": mode,
	}).Info("Connected to postgres")
	return &DB{Conn: pg, Dialect: DialectPostgres}, nil
}

// Disconnect func
func Disconnect(db *DB) {
	if db == nil || db.Conn == nil {
		return
	}
	sqlDb, err := db.Conn.DB()
	if err != nil {
		logrus.Error(err)
		return
	}
	if err = sqlDb.Close(); err != nil {
		logrus.Error(err)
	}
	logrus.Printf("Connected with %s has closed", db.Dialect)
}

// Ping func - Health probe for the underlying connection
func Ping(db *DB) error {
	if db == nil || db.Conn == nil {
		return errors.New("database not configured")
	}
	sqlDb, err := db.Conn.DB()
	if err != nil {
		return err
	}
	return sqlDb.Ping()
}

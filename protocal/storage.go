package protocal

import (
	"context"
	"fmt"

	"counsel-interview/configs"
	"counsel-interview/internal/adapters/output/gemini"
	"counsel-interview/internal/adapters/output/lmstudio"
	"counsel-interview/internal/adapters/output/memory"
	"counsel-interview/internal/adapters/output/postgres"
	redisAdapter "counsel-interview/internal/adapters/output/redis"
	"counsel-interview/internal/ports/output"
	database "counsel-interview/pkg/database_driver/gorm"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Store drivers accepted by store.driver
const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverSqlite   = "sqlite"
	StoreDriverRedis    = "redis"
)

// Generation providers accepted by generation.provider
const (
	ProviderLMStudio = "lmstudio"
	ProviderGemini   = "gemini"
)

// Storage struct - Session repository chosen by store.driver plus the SQL
// database that holds appointments (postgres for the postgres driver, sqlite otherwise)
type Storage struct {
	Sessions  output.InterviewSessionRepository
	Inspector output.SessionInspector
	SQL       *database.DB

	redis *goredis.Client
}

// BuildStorage func - Connects the configured session store
func BuildStorage(ctx context.Context, cfg *configs.Config) (*Storage, error) {
	storage := &Storage{}

	switch cfg.Store.Driver {
	case StoreDriverMemory:
		repo := memory.NewSessionRepository()
		storage.Sessions, storage.Inspector = repo, repo
	case "", StoreDriverPostgres, StoreDriverSqlite:
		db, err := connectSQL(cfg)
		if err != nil {
			return nil, err
		}
		storage.SQL = db
		repo := postgres.NewSessionRepository(db.Conn)
		storage.Sessions, storage.Inspector = repo, repo
	case StoreDriverRedis:
		client, err := redisAdapter.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		storage.redis = client
		repo := redisAdapter.NewSessionRepository(client, cfg.Redis.KeyPrefix)
		storage.Sessions, storage.Inspector = repo, repo
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	logrus.Infof("Interview session store: %s", storeDriverName(cfg.Store.Driver))
	return storage, nil
}

// AppointmentDB func - Returns the SQL database for appointments, opening sqlite when the
// session store does not use SQL
func (s *Storage) AppointmentDB(cfg *configs.Config) (*database.DB, error) {
	if s.SQL != nil {
		return s.SQL, nil
	}
	db, err := database.ConnectToSqlite(cfg.Sqlite.Path)
	if err != nil {
		return nil, err
	}
	s.SQL = db
	return db, nil
}

// Close func - Releases every connection opened by BuildStorage and AppointmentDB
func (s *Storage) Close() {
	database.Disconnect(s.SQL)
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			logrus.Error(err)
		}
	}
}

func connectSQL(cfg *configs.Config) (*database.DB, error) {
	if cfg.Store.Driver == StoreDriverPostgres {
		return database.ConnectToPostgreSQL(
			cfg.Postgres.Host,
			cfg.Postgres.Port,
			cfg.Postgres.Username,
			cfg.Postgres.Password,
			cfg.Postgres.DbName,
			cfg.Postgres.SSLMode,
		)
	}
	return database.ConnectToSqlite(cfg.Sqlite.Path)
}

func storeDriverName(driver string) string {
	if driver == "" {
		return StoreDriverSqlite
	}
	return driver
}

// BuildGenerator func - Creates the configured text-generation backend
func BuildGenerator(ctx context.Context, cfg *configs.Config) (output.TextGenerator, error) {
	switch cfg.Generation.Provider {
	case "", ProviderLMStudio:
		return lmstudio.NewLMStudioClientAdapter(cfg.LMStudio)
	case ProviderGemini:
		return gemini.NewGeminiClientAdapter(ctx, cfg.Gemini)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Generation.Provider)
	}
}

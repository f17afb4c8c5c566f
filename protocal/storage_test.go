package protocal

import (
	"context"
	"testing"
	"time"

	"counsel-interview/configs"
	"counsel-interview/internal/adapters/output/gemini"
	"counsel-interview/internal/adapters/output/lmstudio"
	"counsel-interview/internal/adapters/output/memory"
	"counsel-interview/internal/adapters/output/postgres"
	"counsel-interview/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStorageMemory(t *testing.T) {
	storage, err := BuildStorage(context.Background(), &configs.Config{Store: configs.Store{Driver: StoreDriverMemory}})
	require.NoError(t, err)
	defer storage.Close()

	assert.IsType(t, &memory.SessionRepository{}, storage.Sessions)
	assert.Nil(t, storage.SQL)
}

func TestBuildStorageSqlite(t *testing.T) {
	cfg := &configs.Config{
		Store:  configs.Store{Driver: StoreDriverSqlite},
		Sqlite: configs.Sqlite{Path: ":memory:"},
	}
	storage, err := BuildStorage(context.Background(), cfg)
	require.NoError(t, err)
	defer storage.Close()

	assert.IsType(t, &postgres.SessionRepository{}, storage.Sessions)
	require.NotNil(t, storage.SQL)

	db, err := storage.AppointmentDB(cfg)
	require.NoError(t, err)
	assert.Same(t, storage.SQL, db, "appointments share the session database")

	session := domain.NewInterviewSession("alice", time.Now())
	require.NoError(t, storage.Sessions.CreateSession(context.Background(), session))
	raw, err := storage.Inspector.GetRawSession(context.Background(), "alice")
	require.NoError(t, err)
	assert.Contains(t, string(raw), session.SessionID)
}

func TestBuildStorageDefaultsToSqlite(t *testing.T) {
	storage, err := BuildStorage(context.Background(), &configs.Config{Sqlite: configs.Sqlite{Path: ":memory:"}})
	require.NoError(t, err)
	defer storage.Close()

	assert.IsType(t, &postgres.SessionRepository{}, storage.Sessions)
	require.NotNil(t, storage.SQL)
	assert.Equal(t, "sqlite", storage.SQL.Dialect)
}

func TestAppointmentDBFallsBackToSqlite(t *testing.T) {
	cfg := &configs.Config{
		Store:  configs.Store{Driver: StoreDriverMemory},
		Sqlite: configs.Sqlite{Path: ":memory:"},
	}
	storage, err := BuildStorage(context.Background(), cfg)
	require.NoError(t, err)
	defer storage.Close()

	db, err := storage.AppointmentDB(cfg)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialect)
}

func TestBuildStorageUnknownDriver(t *testing.T) {
	_, err := BuildStorage(context.Background(), &configs.Config{Store: configs.Store{Driver: "etcd"}})
	assert.Error(t, err)
}

func TestBuildGenerator(t *testing.T) {
	generator, err := BuildGenerator(context.Background(), &configs.Config{})
	require.NoError(t, err)
	assert.IsType(t, &lmstudio.LMStudioClientAdapter{}, generator)

	generator, err = BuildGenerator(context.Background(), &configs.Config{
		Generation: configs.Generation{Provider: ProviderGemini},
		Gemini:     configs.Gemini{APIKey: "test-key"},
	})
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiClientAdapter{}, generator)

	_, err = BuildGenerator(context.Background(), &configs.Config{Generation: configs.Generation{Provider: "gpt"}})
	assert.Error(t, err)
}

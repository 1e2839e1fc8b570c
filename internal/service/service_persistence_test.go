package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bigcommunity/ashypass/internal/config"
	"github.com/bigcommunity/ashypass/internal/logger"
	"github.com/bigcommunity/ashypass/internal/store"
	"github.com/bigcommunity/ashypass/models"
)

// openVaultFile wires a full service stack over the sqlite file at path, the
// same way main does at startup: connect, migrate, repositories, services.
// Closing the returned *store.DB and calling openVaultFile again on the same
// path simulates a process restart.
func openVaultFile(t *testing.T, path string) (VaultService, *store.DB) {
	t.Helper()

	cfg := &config.StructuredConfig{
		Storage: config.Storage{DB: config.DB{Path: path}},
		Security: config.Security{
			MinMasterPasswordLength: 8,
			ArgonTime:               1,
			ArgonMemoryKiB:          8 * 1024,
			ArgonThreads:            1,
			KDFIterations:           1000,
		},
		Session: config.Session{IdleTimeout: 5 * time.Second},
	}

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage.DB, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	repos := store.NewRepositories(db, logger.Nop())

	return NewServices(repos, cfg, logger.Nop()).VaultService, db
}

func TestVaultFile_CredentialAndRecordsSurviveReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vault.db")

	svc, db := openVaultFile(t, path)

	require.NoError(t, svc.SetMasterPassword(ctx, "correcthorse1"))

	id, err := svc.AddRecord(ctx, models.Record{
		Title:    "Email",
		Username: "user@example.com",
		URL:      "https://mail.example.com",
		Password: "p@ss1234",
		Notes:    "personal inbox",
	})
	require.NoError(t, err)

	svc.Lock()
	require.NoError(t, db.Close())

	// Fresh connection and service stack over the same file: the stored
	// hash and kdf_salt, not anything in memory, must carry verification
	// and key derivation across the restart.
	svc, db = openVaultFile(t, path)
	defer db.Close()

	has, err := svc.HasMasterCredential(ctx)
	require.NoError(t, err)
	require.True(t, has)

	require.ErrorIs(t, svc.VerifyMasterPassword(ctx, "wrong-passphrase"), ErrInvalidPassword)
	require.ErrorIs(t, svc.SetMasterPassword(ctx, "another-pass1"), ErrAlreadyInitialized)

	require.NoError(t, svc.VerifyMasterPassword(ctx, "correcthorse1"))

	record, err := svc.GetRecord(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Email", record.Title)
	require.Equal(t, "user@example.com", record.Username)
	require.Equal(t, "https://mail.example.com", record.URL)
	require.Equal(t, "p@ss1234", record.Password)
	require.Equal(t, "personal inbox", record.Notes)
}

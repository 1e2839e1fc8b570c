// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Ashy Pass Authors

package service

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigcommunity/ashypass/internal/crypto"
	"github.com/bigcommunity/ashypass/internal/logger"
	"github.com/bigcommunity/ashypass/internal/session"
	"github.com/bigcommunity/ashypass/internal/store"
	"github.com/bigcommunity/ashypass/internal/validators"
	"github.com/bigcommunity/ashypass/models"
)

// ---------------------------------------------------------------------------
// In-memory fakes
// ---------------------------------------------------------------------------

type fakeMasterRepo struct {
	credential *models.MasterCredential
}

func (f *fakeMasterRepo) SaveCredential(_ context.Context, credential models.MasterCredential) error {
	if f.credential != nil {
		return store.ErrAlreadyInitialized
	}
	if credential.CreatedAt.IsZero() {
		credential.CreatedAt = time.Now()
	}
	f.credential = &credential
	return nil
}

func (f *fakeMasterRepo) GetCredential(_ context.Context) (models.MasterCredential, error) {
	if f.credential == nil {
		return models.MasterCredential{}, store.ErrNoCredential
	}
	return *f.credential, nil
}

func (f *fakeMasterRepo) CredentialExists(_ context.Context) (bool, error) {
	return f.credential != nil, nil
}

type fakeRecordRepo struct {
	records map[int64]models.Record
	nextID  int64
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[int64]models.Record), nextID: 1}
}

func (f *fakeRecordRepo) CreateRecord(_ context.Context, record *models.Record) error {
	record.ID = f.nextID
	f.nextID++
	now := time.Now()
	record.CreatedAt, record.UpdatedAt = now, now
	f.records[record.ID] = *record
	return nil
}

func (f *fakeRecordRepo) GetRecord(_ context.Context, id int64) (models.Record, error) {
	record, ok := f.records[id]
	if !ok {
		return models.Record{}, store.ErrRecordNotFound
	}
	record.LastAccessedAt = time.Now()
	f.records[id] = record
	return record, nil
}

func (f *fakeRecordRepo) GetAllRecords(_ context.Context) ([]models.Record, error) {
	all := make([]models.Record, 0, len(f.records))
	for _, record := range f.records {
		all = append(all, record)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })
	return all, nil
}

func (f *fakeRecordRepo) SearchRecords(_ context.Context, term string) ([]models.RecordSummary, error) {
	term = strings.ToLower(term)
	summaries := make([]models.RecordSummary, 0, len(f.records))
	for _, record := range f.records {
		haystack := strings.ToLower(record.Title + " " + record.Username + " " + record.URL)
		if term != "" && !strings.Contains(haystack, term) {
			continue
		}
		summaries = append(summaries, models.RecordSummary{
			ID:       record.ID,
			Title:    record.Title,
			Username: record.Username,
			URL:      record.URL,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Title < summaries[j].Title })
	return summaries, nil
}

func (f *fakeRecordRepo) UpdateRecord(_ context.Context, patch models.RecordPatch) error {
	record, ok := f.records[patch.ID]
	if !ok {
		return store.ErrRecordNotFound
	}
	if patch.Title != nil {
		record.Title = *patch.Title
	}
	if patch.Username != nil {
		record.Username = *patch.Username
	}
	if patch.URL != nil {
		record.URL = *patch.URL
	}
	if patch.PasswordEncrypted != nil {
		record.PasswordEncrypted = patch.PasswordEncrypted
	}
	if patch.SetNotes {
		record.NotesEncrypted = patch.NotesEncrypted
	}
	record.UpdatedAt = time.Now()
	f.records[patch.ID] = record
	return nil
}

func (f *fakeRecordRepo) DeleteRecord(_ context.Context, id int64) error {
	if _, ok := f.records[id]; !ok {
		return store.ErrRecordNotFound
	}
	delete(f.records, id)
	return nil
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type vaultHarness struct {
	service VaultService
	masters *fakeMasterRepo
	records *fakeRecordRepo
	guard   *session.Guard
}

// newVaultHarness wires a service over in-memory repositories with fast
// (non-production) crypto costs.
func newVaultHarness(t *testing.T) *vaultHarness {
	t.Helper()

	masters := &fakeMasterRepo{}
	records := newFakeRecordRepo()
	guard := session.NewGuard(5*time.Second, logger.Nop())
	keyChain := crypto.NewKeyChain(crypto.Params{
		ArgonTime:      1,
		ArgonMemoryKiB: 8 * 1024,
		ArgonThreads:   1,
		KDFIterations:  1000,
	})

	svc := NewVaultService(
		&store.Repositories{MasterRepository: masters, RecordRepository: records},
		keyChain,
		guard,
		validators.NewVaultValidator(8),
		logger.Nop(),
	)

	return &vaultHarness{service: svc, masters: masters, records: records, guard: guard}
}

func (h *vaultHarness) mustUnlock(t *testing.T) {
	t.Helper()
	require.NoError(t, h.service.SetMasterPassword(context.Background(), "correcthorse1"))
	require.Equal(t, session.Unlocked, h.service.SessionState())
}

// ---------------------------------------------------------------------------
// Master credential
// ---------------------------------------------------------------------------

func TestSetMasterPassword_InitializesAndUnlocks(t *testing.T) {
	h := newVaultHarness(t)
	ctx := context.Background()

	has, err := h.service.HasMasterCredential(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, h.service.SetMasterPassword(ctx, "correcthorse1"))

	has, err = h.service.HasMasterCredential(ctx)
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, session.Unlocked, h.service.SessionState())
	assert.Greater(t, h.service.RemainingSeconds(), 0)
}

func TestSetMasterPassword_AlreadyInitialized(t *testing.T) {
	h := newVaultHarness(t)
	ctx := context.Background()

	require.NoError(t, h.service.SetMasterPassword(ctx, "correcthorse1"))

	err := h.service.SetMasterPassword(ctx, "anything-else")
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestSetMasterPassword_TooShort(t *testing.T) {
	h := newVaultHarness(t)

	err := h.service.SetMasterPassword(context.Background(), "short")
	assert.ErrorIs(t, err, ErrValidation)

	has, getErr := h.service.HasMasterCredential(context.Background())
	require.NoError(t, getErr)
	assert.False(t, has, "rejected passphrase must not initialize the vault")
}

func TestVerifyMasterPassword(t *testing.T) {
	h := newVaultHarness(t)
	ctx := context.Background()

	t.Run("no credential", func(t *testing.T) {
		err := h.service.VerifyMasterPassword(ctx, "correcthorse1")
		assert.ErrorIs(t, err, ErrNoCredentialSet)
	})

	require.NoError(t, h.service.SetMasterPassword(ctx, "correcthorse1"))
	h.service.Lock()

	t.Run("wrong passphrase", func(t *testing.T) {
		err := h.service.VerifyMasterPassword(ctx, "wrong-passphrase")
		assert.ErrorIs(t, err, ErrInvalidPassword)
		assert.Equal(t, session.Locked, h.service.SessionState())
	})

	t.Run("correct passphrase unlocks", func(t *testing.T) {
		require.NoError(t, h.service.VerifyMasterPassword(ctx, "correcthorse1"))
		assert.Equal(t, session.Unlocked, h.service.SessionState())
	})
}

// ---------------------------------------------------------------------------
// Record CRUD
// ---------------------------------------------------------------------------

func TestAddRecord_LockedVault(t *testing.T) {
	h := newVaultHarness(t)

	_, err := h.service.AddRecord(context.Background(), models.Record{Title: "Email", Password: "p@ss1234"})
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestAddRecord_RoundTrip(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	id, err := h.service.AddRecord(ctx, models.Record{
		Title:    "Email",
		Username: "me@example.org",
		Password: "p@ss1234",
		Notes:    "personal mailbox",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// plaintext never reaches the store
	stored := h.records.records[id]
	assert.NotContains(t, string(stored.PasswordEncrypted), "p@ss1234")
	assert.NotContains(t, string(stored.NotesEncrypted), "personal mailbox")

	record, err := h.service.GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "p@ss1234", record.Password)
	assert.Equal(t, "personal mailbox", record.Notes)
	assert.False(t, record.LastAccessedAt.IsZero())
}

func TestAddRecord_Validation(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	_, err := h.service.AddRecord(ctx, models.Record{Password: "p@ss1234"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = h.service.AddRecord(ctx, models.Record{Title: "Email"})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, h.records.records, "rejected records must not be persisted")
}

func TestGetRecord_NotFound(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)

	_, err := h.service.GetRecord(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRecord_CorruptedCiphertext(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	id, err := h.service.AddRecord(ctx, models.Record{Title: "Email", Password: "p@ss1234"})
	require.NoError(t, err)

	record := h.records.records[id]
	record.PasswordEncrypted[len(record.PasswordEncrypted)-1] ^= 0x01
	h.records.records[id] = record

	_, err = h.service.GetRecord(ctx, id)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestUpdateRecord_PartialReencryption(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	id, err := h.service.AddRecord(ctx, models.Record{
		Title:    "Email",
		Password: "p@ss1234",
		Notes:    "old notes",
	})
	require.NoError(t, err)

	newPassword := "n3w-p@ss"
	require.NoError(t, h.service.UpdateRecord(ctx, models.RecordUpdate{ID: id, Password: &newPassword}))

	record, err := h.service.GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "n3w-p@ss", record.Password)
	assert.Equal(t, "Email", record.Title, "unnamed fields stay untouched")
	assert.Equal(t, "old notes", record.Notes, "unnamed notes keep their ciphertext")
}

func TestUpdateRecord_ClearNotes(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	id, err := h.service.AddRecord(ctx, models.Record{Title: "Email", Password: "p@ss1234", Notes: "secret"})
	require.NoError(t, err)

	empty := ""
	require.NoError(t, h.service.UpdateRecord(ctx, models.RecordUpdate{ID: id, Notes: &empty}))

	assert.Nil(t, h.records.records[id].NotesEncrypted, "cleared notes drop the ciphertext")

	record, err := h.service.GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, record.Notes)
}

func TestUpdateRecord_Errors(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	err := h.service.UpdateRecord(ctx, models.RecordUpdate{ID: 1})
	assert.ErrorIs(t, err, ErrValidation)

	title := "x"
	err = h.service.UpdateRecord(ctx, models.RecordUpdate{ID: 999, Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRecord(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	err := h.service.DeleteRecord(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	id, err := h.service.AddRecord(ctx, models.Record{Title: "Email", Password: "p@ss1234"})
	require.NoError(t, err)

	require.NoError(t, h.service.DeleteRecord(ctx, id))

	_, err = h.service.GetRecord(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRecords_SearchAndNoSecrets(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	_, err := h.service.AddRecord(ctx, models.Record{Title: "Email", Username: "me@example.org", Password: "a1b2c3d4"})
	require.NoError(t, err)
	_, err = h.service.AddRecord(ctx, models.Record{Title: "Bank", URL: "https://bank.example", Password: "a1b2c3d4"})
	require.NoError(t, err)

	all, err := h.service.ListRecords(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bank", all[0].Title, "summaries are ordered by title")

	matched, err := h.service.ListRecords(ctx, "example.org")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Email", matched[0].Title)
}

// ---------------------------------------------------------------------------
// Session interplay
// ---------------------------------------------------------------------------

func TestLock_RevokesAccess(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	id, err := h.service.AddRecord(ctx, models.Record{Title: "Email", Password: "p@ss1234"})
	require.NoError(t, err)

	h.service.Lock()

	assert.Equal(t, session.Locked, h.service.SessionState())
	assert.Equal(t, 0, h.service.RemainingSeconds())

	_, err = h.service.GetRecord(ctx, id)
	assert.ErrorIs(t, err, ErrVaultLocked)

	// unlock restores access to the same ciphertext
	require.NoError(t, h.service.VerifyMasterPassword(ctx, "correcthorse1"))
	record, err := h.service.GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "p@ss1234", record.Password)
}

func TestSetLockCallback_FiresOnExplicitLock(t *testing.T) {
	h := newVaultHarness(t)

	calls := 0
	h.service.SetLockCallback(func() { calls++ })

	h.mustUnlock(t)
	h.service.Lock()

	assert.Equal(t, 1, calls)
}

// ---------------------------------------------------------------------------
// Import / export
// ---------------------------------------------------------------------------

func TestImportEntries(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	entries := []models.ImportEntry{
		{Title: "Email", Username: "me@example.org", Password: "a1b2c3d4"},
		{Title: "", Password: "missing-title"},
		{Title: "Bank", Password: "a1b2c3d4", Notes: "savings"},
		{Title: "missing-password"},
	}

	result, err := h.service.ImportEntries(ctx, entries)
	require.NoError(t, err)
	assert.Equal(t, models.ImportResult{Imported: 2, Skipped: 2}, result)

	all, err := h.service.ListRecords(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestImportEntries_Locked(t *testing.T) {
	h := newVaultHarness(t)

	_, err := h.service.ImportEntries(context.Background(), []models.ImportEntry{{Title: "t", Password: "p"}})
	assert.ErrorIs(t, err, ErrVaultLocked)
}

func TestExportEntries_RoundTrip(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	ctx := context.Background()

	_, err := h.service.AddRecord(ctx, models.Record{Title: "Email", Password: "p@ss1234", Notes: "inbox"})
	require.NoError(t, err)
	_, err = h.service.AddRecord(ctx, models.Record{Title: "Bank", Password: "s3cret!!"})
	require.NoError(t, err)

	entries, err := h.service.ExportEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Bank", entries[0].Title)
	assert.Equal(t, "s3cret!!", entries[0].Password)
	assert.Equal(t, "Email", entries[1].Title)
	assert.Equal(t, "p@ss1234", entries[1].Password)
	assert.Equal(t, "inbox", entries[1].Notes)
}

func TestExportEntries_FailsClosed(t *testing.T) {
	h := newVaultHarness(t)
	h.mustUnlock(t)
	h.service.Lock()

	_, err := h.service.ExportEntries(context.Background())
	assert.ErrorIs(t, err, ErrVaultLocked)
}

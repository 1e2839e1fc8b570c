package store

import (
	"context"

	"github.com/bigcommunity/ashypass/models"
)

// MasterRepository persists the singleton master credential.
type MasterRepository interface {
	SaveCredential(ctx context.Context, credential models.MasterCredential) error
	GetCredential(ctx context.Context) (models.MasterCredential, error)
	CredentialExists(ctx context.Context) (bool, error)
}

// RecordRepository persists encrypted vault records. Secret columns enter
// and leave this layer as ciphertext only; decryption is the caller's job.
type RecordRepository interface {
	CreateRecord(ctx context.Context, record *models.Record) error
	GetRecord(ctx context.Context, id int64) (models.Record, error)
	GetAllRecords(ctx context.Context) ([]models.Record, error)
	SearchRecords(ctx context.Context, term string) ([]models.RecordSummary, error)
	UpdateRecord(ctx context.Context, patch models.RecordPatch) error
	DeleteRecord(ctx context.Context, id int64) error
}

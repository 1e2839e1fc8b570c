package store

import "github.com/bigcommunity/ashypass/internal/logger"

type Repositories struct {
	MasterRepository MasterRepository
	RecordRepository RecordRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		MasterRepository: NewMasterRepository(db, log),
		RecordRepository: NewRecordRepository(db, log),
	}
}

package store

import (
	"database/sql"

	"github.com/bigcommunity/ashypass/internal/logger"
	"github.com/bigcommunity/ashypass/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

package service

import (
	"github.com/bigcommunity/ashypass/internal/config"
	"github.com/bigcommunity/ashypass/internal/crypto"
	"github.com/bigcommunity/ashypass/internal/logger"
	"github.com/bigcommunity/ashypass/internal/session"
	"github.com/bigcommunity/ashypass/internal/store"
	"github.com/bigcommunity/ashypass/internal/validators"
)

type Services struct {
	VaultService VaultService
}

func NewServices(repos *store.Repositories, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	keyChain := crypto.NewKeyChain(crypto.Params{
		ArgonTime:      cfg.Security.ArgonTime,
		ArgonMemoryKiB: cfg.Security.ArgonMemoryKiB,
		ArgonThreads:   cfg.Security.ArgonThreads,
		KDFIterations:  cfg.Security.KDFIterations,
	})
	guard := session.NewGuard(cfg.Session.IdleTimeout, log)
	validator := validators.NewVaultValidator(cfg.Security.MinMasterPasswordLength)

	return &Services{
		VaultService: NewVaultService(repos, keyChain, guard, validator, log),
	}
}

package config

import (
	"flag"
	"time"
)

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-db vault database file path
//	-c/-config json file path with configs
//	-idle-timeout session idle timeout (e.g., "30s", "2m")
//	-min-master-length minimum master passphrase length
//	-kdf-iterations PBKDF2 iteration count
//
// The Argon2id cost parameters are deliberately not exposed as flags: they
// only apply at vault creation and are configured via environment or JSON.
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("ashypass", flag.ContinueOnError)

	var dbPath string
	var jsonConfigPath string
	var idleTimeout time.Duration
	var minMasterLength int
	var kdfIterations int

	fs.StringVar(&dbPath, "db", "", "Vault database file path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&idleTimeout, "idle-timeout", 0, "Session idle timeout (e.g., 30s, 2m)")
	fs.IntVar(&minMasterLength, "min-master-length", 0, "Minimum master passphrase length")
	fs.IntVar(&kdfIterations, "kdf-iterations", 0, "PBKDF2 iteration count")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				Path: dbPath,
			},
		},
		Security: Security{
			MinMasterPasswordLength: minMasterLength,
			KDFIterations:           kdfIterations,
		},
		Session: Session{
			IdleTimeout: idleTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

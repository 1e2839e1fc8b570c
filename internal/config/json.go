package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	Storage struct {
		DB struct {
			Path string `json:"path"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Security struct {
		MinMasterPasswordLength int    `json:"min_master_password_length"`
		ArgonTime               uint32 `json:"argon_time"`
		ArgonMemoryKiB          uint32 `json:"argon_memory_kib"`
		ArgonThreads            uint8  `json:"argon_threads"`
		KDFIterations           int    `json:"kdf_iterations"`
	} `json:"security,omitempty"`

	Session struct {
		IdleTimeout Duration `json:"idle_timeout"`
	} `json:"session,omitempty"`

	Generator struct {
		PasswordLength  int `json:"password_length"`
		PassphraseWords int `json:"passphrase_words"`
		PINLength       int `json:"pin_length"`
	} `json:"generator,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Storage: Storage{
			DB: DB{
				Path: jsonCfg.Storage.DB.Path,
			},
		},
		Security: Security{
			MinMasterPasswordLength: jsonCfg.Security.MinMasterPasswordLength,
			ArgonTime:               jsonCfg.Security.ArgonTime,
			ArgonMemoryKiB:          jsonCfg.Security.ArgonMemoryKiB,
			ArgonThreads:            jsonCfg.Security.ArgonThreads,
			KDFIterations:           jsonCfg.Security.KDFIterations,
		},
		Session: Session{
			IdleTimeout: time.Duration(jsonCfg.Session.IdleTimeout),
		},
		Generator: Generator{
			PasswordLength:  jsonCfg.Generator.PasswordLength,
			PassphraseWords: jsonCfg.Generator.PassphraseWords,
			PINLength:       jsonCfg.Generator.PINLength,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

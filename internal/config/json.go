// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		APIToken string   `json:"api_token,omitempty"`
		CacheTTL Duration `json:"cache_ttl,omitempty"`
		LogLevel string   `json:"log_level,omitempty"`
		LogFile  string   `json:"log_file,omitempty"`
	} `json:"app"`

	Adapter struct {
		SyncURL        string   `json:"sync_url,omitempty"`
		RequestTimeout Duration `json:"request_timeout,omitempty"`
	} `json:"adapter,omitempty"`

	Storage struct {
		Cache struct {
			Driver string `json:"driver,omitempty"`
			Path   string `json:"path,omitempty"`
			DSN    string `json:"dsn,omitempty"`
		} `json:"cache,omitempty"`
	} `json:"storage,omitempty"`

	Workers struct {
		RefreshInterval Duration `json:"refresh_interval,omitempty"`
	} `json:"workers,omitempty"`

	Metrics struct {
		TextFile string `json:"textfile,omitempty"`
	} `json:"metrics,omitempty"`
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
		App: App{
			APIToken: jsonCfg.App.APIToken,
			CacheTTL: time.Duration(jsonCfg.App.CacheTTL),
			LogLevel: jsonCfg.App.LogLevel,
			LogFile:  jsonCfg.App.LogFile,
		},
		Adapter: Adapter{
			SyncURL:        jsonCfg.Adapter.SyncURL,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Storage: Storage{
			Cache: Cache{
				Driver: jsonCfg.Storage.Cache.Driver,
				Path:   jsonCfg.Storage.Cache.Path,
				DSN:    jsonCfg.Storage.Cache.DSN,
			},
		},
		Workers: Workers{
			RefreshInterval: time.Duration(jsonCfg.Workers.RefreshInterval),
		},
		Metrics: Metrics{
			TextFile: jsonCfg.Metrics.TextFile,
		},
	}

	return cfg, nil
}

// InitJSON writes a config file holding token. The parent directory is
// created with owner-only permissions and the file is readable by the owner
// only, since it contains the credential. An existing file is replaced.
func InitJSON(path, token string) error {
	if path == "" {
		return fmt.Errorf("%w: no config path", ErrInvalidAppConfigs)
	}
	if token == "" {
		return fmt.Errorf("%w: empty api token", ErrInvalidAppConfigs)
	}

	var jsonCfg StructuredJSONConfig
	jsonCfg.App.APIToken = token

	data, err := json.MarshalIndent(jsonCfg, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding json config: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err = os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
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

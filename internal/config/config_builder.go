// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"os"

	"dario.cat/mergo"
)

// configBuilder collects partial configurations. They are merged in the
// order they were added; a field already set by an earlier source is kept.
type configBuilder struct {
	configs []*StructuredConfig
	rest    []string
	err     error

	// defaultJSONPath is consulted when no source names a JSON file.
	defaultJSONPath string
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs:         make([]*StructuredConfig, 0, 4),
		defaultJSONPath: DefaultConfigPath(),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err))
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	flagsCfg, rest, err := ParseFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.rest = rest
	b.configs = append(b.configs, flagsCfg)
	return b
}

// withJSON adds the JSON file named by an earlier source. Without one, the
// default location is used if a file exists there.
func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}

	if jsonPath == "" {
		if b.defaultJSONPath == "" {
			return b
		}
		if _, err := os.Stat(b.defaultJSONPath); err != nil {
			return b
		}
		jsonPath = b.defaultJSONPath
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%w: %w", ErrInvalidAppConfigs, err))
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, Defaults())
	return b
}

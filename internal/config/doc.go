// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// for the todosync client.
//
// Values come from command-line flags, environment variables and an
// optional JSON file. They are merged field by field with dario.cat/mergo:
// flags take precedence over the environment, the environment over the
// JSON file, and built-in defaults fill whatever is still unset.
package config

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/MKhiriev/go-todo-sync/internal/app"
	"github.com/MKhiriev/go-todo-sync/internal/command"
	"github.com/MKhiriev/go-todo-sync/models"
)

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", app.ErrUsage, fs.Name(), err)
	}
	return nil
}

// changedString returns nil unless the flag was given, so an update never
// overwrites a field the user did not mention. The other changed* helpers
// work the same way.
func changedString(fs *pflag.FlagSet, name string) *string {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetString(name)
	return &v
}

func changedInt(fs *pflag.FlagSet, name string) *int {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetInt(name)
	return &v
}

func changedInt64(fs *pflag.FlagSet, name string) *int64 {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetInt64(name)
	return &v
}

func changedBool(fs *pflag.FlagSet, name string) *bool {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetBool(name)
	return &v
}

func changedStrings(fs *pflag.FlagSet, name string) *[]string {
	if !fs.Changed(name) {
		return nil
	}
	v, _ := fs.GetStringSlice(name)
	return &v
}

// idArg returns the single positional id of fs.
func idArg(fs *pflag.FlagSet, what string) (string, error) {
	if fs.NArg() != 1 || strings.TrimSpace(fs.Arg(0)) == "" {
		return "", fmt.Errorf("%w: %s: expected exactly one %s id", app.ErrUsage, fs.Name(), what)
	}
	return fs.Arg(0), nil
}

func parseKinds(names []string) ([]models.ResourceType, error) {
	kinds := make([]models.ResourceType, 0, len(names))
	for _, name := range names {
		kind, err := models.ParseResourceType(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// parseOrder reads "id:order" pairs.
func parseOrder(pairs []string) ([]command.OrderEntry, error) {
	entries := make([]command.OrderEntry, 0, len(pairs))
	for _, pair := range pairs {
		id, raw, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %q is not id:order", app.ErrUsage, pair)
		}
		order, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: order of %q: %v", app.ErrUsage, id, err)
		}
		entries = append(entries, command.OrderEntry{ID: id, Order: order})
	}
	return entries, nil
}

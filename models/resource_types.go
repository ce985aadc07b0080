// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"
	"strings"
)

// ResourceType names one collection the sync endpoint can return.
type ResourceType string

const (
	ResourceProjects ResourceType = "projects"
	ResourceItems    ResourceType = "items"
	ResourceSections ResourceType = "sections"
	ResourceLabels   ResourceType = "labels"
	ResourceFilters  ResourceType = "filters"

	// ResourceAll asks the server for every collection in one round trip.
	ResourceAll ResourceType = "all"
)

// FullSyncToken is the continuation token that requests the complete state.
const FullSyncToken = "*"

// AllResourceTypes lists the concrete collections in the order they are
// persisted.
var AllResourceTypes = []ResourceType{
	ResourceProjects,
	ResourceItems,
	ResourceSections,
	ResourceLabels,
	ResourceFilters,
}

// ErrUnknownResourceType is returned by ParseResourceType.
var ErrUnknownResourceType = errors.New("unknown resource type")

// ParseResourceType converts a user supplied name (case-insensitive) into a
// ResourceType. "tasks" is accepted as a synonym for "items".
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "projects":
		return ResourceProjects, nil
	case "items", "tasks":
		return ResourceItems, nil
	case "sections":
		return ResourceSections, nil
	case "labels":
		return ResourceLabels, nil
	case "filters":
		return ResourceFilters, nil
	case "all":
		return ResourceAll, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownResourceType, s)
}

// ExpandResourceTypes replaces ResourceAll with the concrete collections and
// removes duplicates while keeping the first-seen order.
func ExpandResourceTypes(kinds []ResourceType) []ResourceType {
	seen := make(map[ResourceType]struct{}, len(AllResourceTypes))
	out := make([]ResourceType, 0, len(kinds))

	add := func(k ResourceType) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	for _, k := range kinds {
		if k == ResourceAll {
			for _, each := range AllResourceTypes {
				add(each)
			}
			continue
		}
		add(k)
	}

	return out
}

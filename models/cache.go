// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"time"
)

// CacheSnapshot is the locally persisted result of the most recent read sync.
//
// CachedAt is a unix timestamp in seconds. Fetched lists the resource types
// that some read has stored into Data; a section not listed there is empty
// because it was never asked for, not because the server has no records.
// Data holds the wire records so that a snapshot written by one version of
// the client can be re-read after the mapper learns new field spellings.
type CacheSnapshot struct {
	SyncToken string         `json:"sync_token"`
	CachedAt  int64          `json:"cached_at"`
	Fetched   []ResourceType `json:"fetched,omitempty"`
	Data      CacheData      `json:"data"`
}

// CacheData holds one section per resource type.
type CacheData struct {
	Projects []SyncProject `json:"projects"`
	Items    []SyncTask    `json:"items"`
	Sections []SyncSection `json:"sections"`
	Labels   []SyncLabel   `json:"labels"`
	Filters  []SyncFilter  `json:"filters"`
}

// CapturedAt returns CachedAt as a time.Time.
func (s *CacheSnapshot) CapturedAt() time.Time {
	return time.Unix(s.CachedAt, 0)
}

// Clone returns a copy whose section slices do not alias the receiver's.
func (s *CacheSnapshot) Clone() *CacheSnapshot {
	if s == nil {
		return nil
	}

	return &CacheSnapshot{
		SyncToken: s.SyncToken,
		CachedAt:  s.CachedAt,
		Fetched:   slices.Clone(s.Fetched),
		Data: CacheData{
			Projects: slices.Clone(s.Data.Projects),
			Items:    slices.Clone(s.Data.Items),
			Sections: slices.Clone(s.Data.Sections),
			Labels:   slices.Clone(s.Data.Labels),
			Filters:  slices.Clone(s.Data.Filters),
		},
	}
}

// Covers reports whether every kind in kinds (ResourceAll expanded) has been
// fetched into the snapshot. A nil snapshot covers nothing.
func (s *CacheSnapshot) Covers(kinds []ResourceType) bool {
	if s == nil {
		return false
	}
	for _, kind := range ExpandResourceTypes(kinds) {
		if !slices.Contains(s.Fetched, kind) {
			return false
		}
	}
	return true
}

// MarkFetched adds kinds to Fetched. The result keeps the order of
// AllResourceTypes, so equal coverage always compares equal.
func (s *CacheSnapshot) MarkFetched(kinds []ResourceType) {
	added := ExpandResourceTypes(kinds)

	fetched := make([]ResourceType, 0, len(AllResourceTypes))
	for _, kind := range AllResourceTypes {
		if slices.Contains(s.Fetched, kind) || slices.Contains(added, kind) {
			fetched = append(fetched, kind)
		}
	}
	s.Fetched = fetched
}

// Replace overwrites the section for kind with the matching collection from
// resp. Sections are replaced wholesale, never merged record by record.
// ResourceAll replaces every section.
func (d *CacheData) Replace(kind ResourceType, resp ReadResponse) {
	switch kind {
	case ResourceProjects:
		d.Projects = slices.Clone(resp.Projects)
	case ResourceItems:
		d.Items = slices.Clone(resp.Items)
	case ResourceSections:
		d.Sections = slices.Clone(resp.Sections)
	case ResourceLabels:
		d.Labels = slices.Clone(resp.Labels)
	case ResourceFilters:
		d.Filters = slices.Clone(resp.Filters)
	case ResourceAll:
		for _, each := range AllResourceTypes {
			d.Replace(each, resp)
		}
	}
}

// Len reports the number of records in the section for kind.
func (d *CacheData) Len(kind ResourceType) int {
	switch kind {
	case ResourceProjects:
		return len(d.Projects)
	case ResourceItems:
		return len(d.Items)
	case ResourceSections:
		return len(d.Sections)
	case ResourceLabels:
		return len(d.Labels)
	case ResourceFilters:
		return len(d.Filters)
	}
	return 0
}

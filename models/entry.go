// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// UnknownEntryName is the display name given to whitelisted entries the
// account does not own.
const UnknownEntryName = "unknown"

// Entry is a catalog item identified by its numeric id.
type Entry struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

// EntryDetails is the subset of a catalog detail lookup the acquisition
// engine needs.
type EntryDetails struct {
	Success     bool
	IsFree      bool
	ComingSoon  bool
	Name        string
	CanonicalID uint32
}

// Claimable reports whether the details describe a released free entry.
func (d EntryDetails) Claimable() bool {
	return d.Success && d.IsFree && !d.ComingSoon
}

// EntryIDs returns the ids of entries in order.
func EntryIDs(entries []Entry) []uint32 {
	ids := make([]uint32, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

// IDSet is a set of entry ids.
type IDSet map[uint32]struct{}

// NewIDSet builds a set from any number of id slices.
func NewIDSet(lists ...[]uint32) IDSet {
	set := make(IDSet)
	for _, list := range lists {
		set.Add(list...)
	}
	return set
}

// Add inserts ids into the set.
func (s IDSet) Add(ids ...uint32) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// Has reports whether id is in the set.
func (s IDSet) Has(id uint32) bool {
	_, ok := s[id]
	return ok
}

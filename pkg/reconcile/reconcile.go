// Package reconcile computes the one-way delta between a source vault and a
// destination vault. Membership is decided by content fingerprint, so an
// entry counts as present only when every identity field matches exactly.
package reconcile

import (
	"github.com/agentstation/vaultsync/pkg/vault"
)

// Index is a fingerprint membership set built from a vault's entries.
type Index map[vault.Fingerprint]struct{}

// NewIndex builds an Index from the given entries. Duplicate fingerprints
// collapse; the index answers membership only.
func NewIndex(entries []vault.Entry) Index {
	idx := make(Index, len(entries))
	for _, entry := range entries {
		idx[entry.Fingerprint()] = struct{}{}
	}
	return idx
}

// Contains reports whether the entry's fingerprint is in the index.
func (idx Index) Contains(entry vault.Entry) bool {
	_, ok := idx[entry.Fingerprint()]
	return ok
}

// Delta returns the source entries missing from the destination, in source
// order. Source-internal duplicates are kept: if the source holds two
// identical entries and the destination holds none, both are returned.
//
// Delta is total: empty or nil inputs yield an empty (nil) delta, and no
// error path exists.
func Delta(source, destination []vault.Entry) []vault.Entry {
	idx := NewIndex(destination)

	var missing []vault.Entry
	for _, entry := range source {
		if idx.Contains(entry) {
			continue
		}
		missing = append(missing, entry)
	}
	return missing
}

// Package dedup tracks ContentHash -> BlobId assignments made by the writer so that
// byte-identical baked entities produced in the same run share one blob.
package dedup

import "fmt"

// BlobID is the writer-assigned index of a blob within the archive's blob table.
type BlobID uint32

// entry remembers the length of the bytes that first claimed a hash, so a same-hash,
// different-length pair (the only kind of xxHash64 collision forge is likely to ever
// see in practice) is detected instead of silently aliased.
type entry struct {
	id     BlobID
	length int
}

// Tracker maps ContentHash values to the BlobID of the first blob written with that
// hash. It is owned exclusively by the writer's single coordinator goroutine; it is not
// safe for concurrent use.
type Tracker struct {
	byHash map[uint64]entry
	next   BlobID
}

// NewTracker creates an empty dedup tracker.
func NewTracker() *Tracker {
	return &Tracker{byHash: make(map[uint64]entry)}
}

// Lookup returns the BlobID already assigned to contentHash for a blob of the given
// length, if one was seen earlier in this run.
func (t *Tracker) Lookup(contentHash uint64, length int) (BlobID, bool) {
	e, ok := t.byHash[contentHash]
	if !ok || e.length != length {
		return 0, false
	}

	return e.id, true
}

// Assign records a brand-new blob under contentHash and returns its freshly allocated
// BlobID. Callers must have already confirmed via Lookup that no reusable blob exists.
func (t *Tracker) Assign(contentHash uint64, length int) BlobID {
	id := t.next
	t.next++
	t.byHash[contentHash] = entry{id: id, length: length}

	return id
}

// Count returns the number of distinct blobs assigned so far.
func (t *Tracker) Count() int {
	return int(t.next)
}

// String implements fmt.Stringer for debugging/logging.
func (t *Tracker) String() string {
	return fmt.Sprintf("dedup.Tracker{blobs=%d}", t.next)
}

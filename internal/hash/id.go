// Package hash computes the content hashes forge uses to deduplicate baked blobs.
package hash

import "github.com/cespare/xxhash/v2"

// Content computes the xxHash64 digest of a baked entity's canonical serialized bytes.
// It is a ContentHash per the archive format's dedup contract: two blobs with equal
// Content hash and equal length are assumed identical and share one BlobId.
func Content(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String computes the xxHash64 digest of a string, used to synthesize a stable key
// for inline asset descriptions that have no backing file path.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}

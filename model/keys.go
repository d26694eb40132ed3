package model

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/forgekit/forge/format"
)

// AssetKey is the stable, canonicalized identifier a manifest table is keyed
// by. For path-backed assets it is an absolute, cleaned filesystem path; for
// inline asset descriptions with no backing file it is a synthesized key.
type AssetKey string

// NewAssetKey canonicalizes path into an AssetKey: it is made absolute
// (relative to the current working directory if not already) and cleaned,
// so two descriptions naming the same file under different spellings resolve
// to byte-identical keys (spec §3.1, §8 scenario 5).
func NewAssetKey(path string) (AssetKey, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("forge: canonicalize path %q: %w", path, err)
	}

	return AssetKey(abs), nil
}

// syntheticNamespace seeds the version-5 UUIDs SyntheticKey derives its ids
// from. It has no meaning beyond being fixed: any two forge builds hash the
// same seed string to the same id.
var syntheticNamespace = uuid.MustParse("c9c2b1d8-3a4f-4e1b-9c2a-7f3e5d6a8b1c")

// SyntheticKey synthesizes a stable AssetKey for an inline asset description
// that has no backing source file (e.g. a material's inline bitmap table).
// id is derived deterministically from seed (the referencing document's key,
// the slot the inline table was found under, and its resolved source path)
// via a version-5 UUID, so the same inline description synthesizes the same
// key on every bake run over the same inputs (spec §8 determinism).
func SyntheticKey(kind format.AssetKind, seed string) AssetKey {
	id := uuid.NewSHA1(syntheticNamespace, []byte(seed))
	return AssetKey(fmt.Sprintf("inline://%s/%s", kind, id))
}

// BlobID is the writer-assigned index of a blob within the archive's blob
// table, referenced from manifest entries and from one baked entity to
// another (e.g. a Model's mesh/material references).
type BlobID uint32

// ContentHash is the digest of a baked entity's canonical serialized bytes,
// used only to deduplicate byte-identical blobs within one bake run.
type ContentHash uint64

package section

import (
	"encoding/binary"
	"fmt"
	"iter"
	"sort"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
)

// ManifestEntry is one AssetKey's record in its kind's manifest table: the
// BlobId of its compressed payload, and kind-specific light metadata that the
// reader can use without decompressing the blob (e.g. a bitmap's
// width/height/mip count).
//
// Metadata is opaque to this package; it is produced and parsed by the model
// package's per-kind metadata codecs.
type ManifestEntry struct {
	BlobID   uint32
	Metadata []byte
}

// kindTable holds one AssetKind's AssetKey -> ManifestEntry table, preserving
// the order entries were inserted in until Sort puts them in AssetKey order
// (the writer calls Sort before serializing, so output is deterministic).
type kindTable struct {
	order   []string
	entries map[string]ManifestEntry
}

func newKindTable() *kindTable {
	return &kindTable{entries: make(map[string]ManifestEntry)}
}

// Manifest is the full set of per-kind manifest tables.
type Manifest struct {
	tables map[format.AssetKind]*kindTable
}

// NewManifest creates an empty Manifest.
func NewManifest() *Manifest {
	return &Manifest{tables: make(map[format.AssetKind]*kindTable)}
}

// Put inserts or replaces the manifest entry for key within kind's table.
func (m *Manifest) Put(kind format.AssetKind, key string, entry ManifestEntry) {
	t, ok := m.tables[kind]
	if !ok {
		t = newKindTable()
		m.tables[kind] = t
	}

	if _, exists := t.entries[key]; !exists {
		t.order = append(t.order, key)
	}
	t.entries[key] = entry
}

// Get looks up the manifest entry for key within kind's table.
func (m *Manifest) Get(kind format.AssetKind, key string) (ManifestEntry, bool) {
	t, ok := m.tables[kind]
	if !ok {
		return ManifestEntry{}, false
	}
	e, ok := t.entries[key]

	return e, ok
}

// Keys iterates the AssetKeys of kind's table in their manifest order.
func (m *Manifest) Keys(kind format.AssetKind) iter.Seq[string] {
	return func(yield func(string) bool) {
		t, ok := m.tables[kind]
		if !ok {
			return
		}
		for _, k := range t.order {
			if !yield(k) {
				return
			}
		}
	}
}

// Len returns the number of entries in kind's table.
func (m *Manifest) Len(kind format.AssetKind) int {
	t, ok := m.tables[kind]
	if !ok {
		return 0
	}

	return len(t.order)
}

// Sort reorders every kind's table into ascending AssetKey order, making
// serialization deterministic regardless of insertion order. The writer
// calls this once, after every baked entity has been added.
func (m *Manifest) Sort() {
	for _, t := range m.tables {
		sort.Strings(t.order)
	}
}

// Bytes serializes the manifest: for each kind in format.AllKinds order, a
// kind byte, an entry count, then each entry as
// [key_len u32][key][blob_id u32][metadata_len u32][metadata].
func (m *Manifest) Bytes() []byte {
	var out []byte

	for _, kind := range format.AllKinds {
		t, ok := m.tables[kind]
		if !ok || len(t.order) == 0 {
			continue
		}

		head := make([]byte, 5)
		head[0] = byte(kind)
		binary.LittleEndian.PutUint32(head[1:5], uint32(len(t.order)))
		out = append(out, head...)

		for _, key := range t.order {
			e := t.entries[key]

			keyHdr := make([]byte, 4)
			binary.LittleEndian.PutUint32(keyHdr, uint32(len(key)))
			out = append(out, keyHdr...)
			out = append(out, key...)

			rest := make([]byte, 8)
			binary.LittleEndian.PutUint32(rest[0:4], e.BlobID)
			binary.LittleEndian.PutUint32(rest[4:8], uint32(len(e.Metadata)))
			out = append(out, rest...)
			out = append(out, e.Metadata...)
		}
	}

	return out
}

// ParseManifest parses a Manifest from its serialized bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	m := NewManifest()
	pos := 0

	for pos < len(data) {
		if pos+5 > len(data) {
			return nil, fmt.Errorf("%w: truncated manifest kind header", errs.ErrCorrupt)
		}
		kind := format.AssetKind(data[pos])
		count := binary.LittleEndian.Uint32(data[pos+1 : pos+5])
		pos += 5

		t := newKindTable()
		for i := uint32(0); i < count; i++ {
			if pos+4 > len(data) {
				return nil, fmt.Errorf("%w: truncated manifest key length", errs.ErrCorrupt)
			}
			keyLen := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
			pos += 4

			if pos+keyLen+8 > len(data) {
				return nil, fmt.Errorf("%w: truncated manifest entry", errs.ErrCorrupt)
			}
			key := string(data[pos : pos+keyLen])
			pos += keyLen

			blobID := binary.LittleEndian.Uint32(data[pos : pos+4])
			metaLen := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
			pos += 8

			if pos+metaLen > len(data) {
				return nil, fmt.Errorf("%w: truncated manifest metadata", errs.ErrCorrupt)
			}
			metadata := append([]byte(nil), data[pos:pos+metaLen]...)
			pos += metaLen

			t.order = append(t.order, key)
			t.entries[key] = ManifestEntry{BlobID: blobID, Metadata: metadata}
		}

		m.tables[kind] = t
	}

	return m, nil
}

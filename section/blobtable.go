package section

import (
	"encoding/binary"
	"fmt"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
)

// BlobTableEntry addresses one compressed blob within the archive's payload
// region.
type BlobTableEntry struct {
	Offset uint64
	Length uint32
	Codec  format.CompressionKind
}

// BlobTable is the ordered list of blob addresses; a blob's position in the
// slice is its BlobId.
type BlobTable []BlobTableEntry

// Bytes serializes the blob table as a blob_count u32 followed by
// blob_count x (offset u64, length u32, codec u8).
func (bt BlobTable) Bytes() []byte {
	out := make([]byte, 4+len(bt)*format.BlobTableEntrySize)
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(bt)))

	pos := 4
	for _, e := range bt {
		binary.LittleEndian.PutUint64(out[pos:pos+8], e.Offset)
		binary.LittleEndian.PutUint32(out[pos+8:pos+12], e.Length)
		out[pos+12] = byte(e.Codec)
		pos += format.BlobTableEntrySize
	}

	return out
}

// ParseBlobTable parses a BlobTable from the start of data and returns the
// table along with the number of bytes consumed.
func ParseBlobTable(data []byte) (BlobTable, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("%w: truncated blob table count", errs.ErrCorrupt)
	}

	count := binary.LittleEndian.Uint32(data[0:4])
	need := 4 + int(count)*format.BlobTableEntrySize
	if len(data) < need {
		return nil, 0, fmt.Errorf("%w: blob table needs %d bytes, got %d", errs.ErrCorrupt, need, len(data))
	}

	bt := make(BlobTable, count)
	pos := 4
	for i := range bt {
		bt[i] = BlobTableEntry{
			Offset: binary.LittleEndian.Uint64(data[pos : pos+8]),
			Length: binary.LittleEndian.Uint32(data[pos+8 : pos+12]),
			Codec:  format.CompressionKind(data[pos+12]),
		}
		pos += format.BlobTableEntrySize
	}

	return bt, need, nil
}

package pak

import (
	"fmt"
	"iter"
	"os"

	"github.com/forgekit/forge/codec"
	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/section"
)

// Reader opens a baked archive and serves its entities back out by key
// (spec §4.9). A Reader holds the whole manifest and blob table in memory
// but decodes blob payloads lazily, on each lookup.
type Reader struct {
	header   section.Header
	manifest *section.Manifest
	blobs    section.BlobTable
	payload  []byte
}

// Open reads path and parses it as an archive. It returns errs.ErrRead if
// the file can't be read, errs.ErrVersionMismatch if the magic/version
// bytes are incompatible, and errs.ErrCorrupt if the bytes are truncated or
// structurally invalid.
func Open(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open archive %q: %v", errs.ErrRead, path, err)
	}
	return parse(data)
}

// OpenBytes parses an in-memory archive, for callers that already have the
// bytes (e.g. fetched from storage rather than a local path).
func OpenBytes(data []byte) (*Reader, error) {
	return parse(data)
}

func parse(data []byte) (*Reader, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	pos := format.HeaderSize
	if pos+int(header.ManifestCompressedLen) > len(data) {
		return nil, fmt.Errorf("%w: truncated manifest block", errs.ErrCorrupt)
	}
	compressedManifest := data[pos : pos+int(header.ManifestCompressedLen)]
	pos += int(header.ManifestCompressedLen)

	manifestCodec, err := codec.GetCodec(manifestCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCodec, err)
	}
	manifestBytes, err := manifestCodec.Decompress(compressedManifest)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress manifest: %v", errs.ErrCodec, err)
	}
	if uint32(len(manifestBytes)) != header.ManifestUncompressedLen {
		return nil, fmt.Errorf("%w: manifest length mismatch: header says %d, got %d",
			errs.ErrCorrupt, header.ManifestUncompressedLen, len(manifestBytes))
	}

	manifest, err := section.ParseManifest(manifestBytes)
	if err != nil {
		return nil, err
	}

	blobs, consumed, err := section.ParseBlobTable(data[pos:])
	if err != nil {
		return nil, err
	}
	pos += consumed

	return &Reader{
		header:   header,
		manifest: manifest,
		blobs:    blobs,
		payload:  data[pos:],
	}, nil
}

// Contains reports whether kind's manifest table has an entry for key.
func (r *Reader) Contains(kind format.AssetKind, key model.AssetKey) bool {
	_, ok := r.manifest.Get(kind, string(key))
	return ok
}

// Keys iterates the AssetKeys of kind's manifest table.
func (r *Reader) Keys(kind format.AssetKind) iter.Seq[model.AssetKey] {
	return func(yield func(model.AssetKey) bool) {
		for k := range r.manifest.Keys(kind) {
			if !yield(model.AssetKey(k)) {
				return
			}
		}
	}
}

// blob decompresses and returns the canonical bytes of the entity at
// blobID, per its recorded codec and offset/length in the blob table.
func (r *Reader) blob(blobID uint32) ([]byte, error) {
	if int(blobID) >= len(r.blobs) {
		return nil, fmt.Errorf("%w: blob id %d out of range (have %d)", errs.ErrCorrupt, blobID, len(r.blobs))
	}
	entry := r.blobs[blobID]

	end := entry.Offset + uint64(entry.Length)
	if end > uint64(len(r.payload)) {
		return nil, fmt.Errorf("%w: blob id %d extends past payload end", errs.ErrCorrupt, blobID)
	}
	compressed := r.payload[entry.Offset:end]

	c, err := codec.GetCodec(entry.Codec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrCodec, err)
	}
	data, err := c.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: decompress blob %d: %v", errs.ErrCodec, blobID, err)
	}
	return data, nil
}

// entry looks up key's manifest entry in kind's table, returning
// errs.ErrUnknownKey if it's absent.
func (r *Reader) entry(kind format.AssetKind, key model.AssetKey) (section.ManifestEntry, error) {
	e, ok := r.manifest.Get(kind, string(key))
	if !ok {
		return section.ManifestEntry{}, fmt.Errorf("%w: %s %q", errs.ErrUnknownKey, kind, key)
	}
	return e, nil
}

// ReadBitmap decodes and returns the Bitmap stored under key.
func (r *Reader) ReadBitmap(key model.AssetKey) (*model.Bitmap, error) {
	e, err := r.entry(format.KindBitmap, key)
	if err != nil {
		return nil, err
	}
	data, err := r.blob(e.BlobID)
	if err != nil {
		return nil, err
	}
	return model.DecodeBitmap(data)
}

// BitmapMetadata returns the light width/height/channel/mip metadata for
// key without decompressing its pixel payload (spec §4.9).
func (r *Reader) BitmapMetadata(key model.AssetKey) (model.BitmapMetadata, error) {
	e, err := r.entry(format.KindBitmap, key)
	if err != nil {
		return model.BitmapMetadata{}, err
	}
	return model.DecodeBitmapMetadata(e.Metadata)
}

// ReadBitmapFont decodes and returns the BitmapFont stored under key.
func (r *Reader) ReadBitmapFont(key model.AssetKey) (*model.BitmapFont, error) {
	e, err := r.entry(format.KindFont, key)
	if err != nil {
		return nil, err
	}
	data, err := r.blob(e.BlobID)
	if err != nil {
		return nil, err
	}
	return model.DecodeBitmapFont(data)
}

// ReadMesh decodes and returns the Mesh stored under key.
func (r *Reader) ReadMesh(key model.AssetKey) (*model.Mesh, error) {
	e, err := r.entry(format.KindMesh, key)
	if err != nil {
		return nil, err
	}
	data, err := r.blob(e.BlobID)
	if err != nil {
		return nil, err
	}
	return model.DecodeMesh(data)
}

// ReadAnimation decodes and returns the Animation stored under key.
func (r *Reader) ReadAnimation(key model.AssetKey) (*model.Animation, error) {
	e, err := r.entry(format.KindAnim, key)
	if err != nil {
		return nil, err
	}
	data, err := r.blob(e.BlobID)
	if err != nil {
		return nil, err
	}
	return model.DecodeAnimation(data)
}

// ReadMaterial decodes and returns the Material stored under key.
func (r *Reader) ReadMaterial(key model.AssetKey) (*model.Material, error) {
	e, err := r.entry(format.KindMaterial, key)
	if err != nil {
		return nil, err
	}
	data, err := r.blob(e.BlobID)
	if err != nil {
		return nil, err
	}
	return model.DecodeMaterial(data)
}

// ReadModel decodes and returns the Model stored under key.
func (r *Reader) ReadModel(key model.AssetKey) (*model.Model, error) {
	e, err := r.entry(format.KindModel, key)
	if err != nil {
		return nil, err
	}
	data, err := r.blob(e.BlobID)
	if err != nil {
		return nil, err
	}
	return model.DecodeModel(data)
}

// ReadScene decodes and returns the Scene stored under key.
func (r *Reader) ReadScene(key model.AssetKey) (*model.Scene, error) {
	e, err := r.entry(format.KindScene, key)
	if err != nil {
		return nil, err
	}
	data, err := r.blob(e.BlobID)
	if err != nil {
		return nil, err
	}
	return model.DecodeScene(data)
}

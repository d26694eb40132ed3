// Package pak implements the archive container's writer and reader: the
// coordinator that drives resolve.WorkItems through the bake package and
// commits their output to the on-disk envelope defined by section and
// format, and the reverse path that opens an archive and serves baked
// entities back out by key.
package pak

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/forgekit/forge/bake"
	"github.com/forgekit/forge/codec"
	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
	"github.com/forgekit/forge/internal/dedup"
	"github.com/forgekit/forge/internal/hash"
	"github.com/forgekit/forge/internal/options"
	"github.com/forgekit/forge/internal/pool"
	"github.com/forgekit/forge/internal/workerpool"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/resolve"
	"github.com/forgekit/forge/section"
)

// entity is anything the writer can serialize to its canonical blob bytes.
// Every baked model type (Bitmap, BitmapFont, Mesh, Animation, Material,
// Model, Scene) implements it with a pointer receiver.
type entity interface {
	Encode() []byte
}

// manifestCompression is the fixed codec every archive's manifest block is
// compressed with, independent of the writer's configured per-blob codec;
// see the comment in finalize for why this has to be pinned rather than
// configurable.
const manifestCompression = format.CompressionSnap

// metadataEntity is implemented by entities that also carry reader-visible
// light metadata alongside their blob (currently only model.Bitmap's
// width/height/mip count). Kinds without one get empty manifest metadata.
type metadataEntity interface {
	EncodeMetadata() []byte
}

// WriterConfig holds a Writer's tunable knobs, configured via WriterOption.
type WriterConfig struct {
	compression format.CompressionKind
	concurrency int
	logger      *logrus.Logger
}

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*WriterConfig]

// WithCompression sets the codec used to compress blobs; the manifest is
// always compressed with manifestCompression. Defaults to
// format.CompressionSnap.
func WithCompression(kind format.CompressionKind) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.compression = kind
	})
}

// WithConcurrency bounds how many independent bake tasks (bitmap, mesh,
// animation) Phase A runs at once. Non-positive values run sequentially.
func WithConcurrency(n int) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.concurrency = n
	})
}

// WithLogger overrides the logger the writer reports per-asset bake
// failures and progress to. Defaults to logrus.StandardLogger().
func WithLogger(logger *logrus.Logger) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.logger = logger
	})
}

// Writer bakes a resolved work list into a single archive file (spec §4.8).
// It is single-use: construct one per bake run via NewWriter.
type Writer struct {
	config WriterConfig
	log    *logrus.Entry

	tracker  *dedup.Tracker
	manifest *section.Manifest
	blobs    section.BlobTable
	payload  *pool.ByteBuffer

	blobByKey map[model.AssetKey]model.BlobID
}

// NewWriter creates a Writer. opts configure compression, concurrency, and
// logging; all have sane defaults.
func NewWriter(opts ...WriterOption) (*Writer, error) {
	config := WriterConfig{
		compression: format.CompressionSnap,
		concurrency: 4,
	}
	if err := options.Apply(&config, opts...); err != nil {
		return nil, err
	}
	if config.logger == nil {
		config.logger = logrus.StandardLogger()
	}

	return &Writer{
		config:    config,
		log:       config.logger.WithField("component", "pak.writer"),
		tracker:   dedup.NewTracker(),
		manifest:  section.NewManifest(),
		payload:   pool.GetPayloadBuffer(),
		blobByKey: make(map[model.AssetKey]model.BlobID),
	}, nil
}

// bakedIndependent is the output of Phase A: the fully baked entity for a
// work item whose bake computation needs nothing but its own source bytes
// (bitmap, mesh, animation), or a font's raw definition bytes, which Phase
// B still has to resolve page references for.
type bakedIndependent struct {
	entity         entity
	fontDefinition []byte
}

// Write bakes every item in items and writes the resulting archive to
// outputPath, via a temporary file renamed into place on success; no
// partial archive is ever left at outputPath if baking fails partway
// through (spec §7).
func (w *Writer) Write(ctx context.Context, items []resolve.WorkItem, outputPath string) error {
	prepared := make([]bakedIndependent, len(items))

	tasks := make([]workerpool.Task, 0, len(items))
	for i, item := range items {
		i, item := i, item

		switch item.Kind {
		case format.KindBitmap, format.KindMesh, format.KindAnim:
			tasks = append(tasks, workerpool.Task{
				Key: item.Key,
				Run: func(ctx context.Context) error {
					e, err := w.bakeIndependent(item)
					if err != nil {
						w.log.WithError(err).WithField("key", item.Key).Warn("bake task failed")
						return err
					}
					prepared[i].entity = e
					return nil
				},
			})

		case format.KindFont:
			tasks = append(tasks, workerpool.Task{
				Key: item.Key,
				Run: func(ctx context.Context) error {
					data, err := os.ReadFile(item.Source.Path)
					if err != nil {
						err = fmt.Errorf("%w: read font definition %q: %v", errs.ErrPath, item.Source.Path, err)
						w.log.WithError(err).WithField("key", item.Key).Warn("bake task failed")
						return err
					}
					prepared[i].fontDefinition = data
					return nil
				},
			})
		}
	}

	if err := workerpool.New(w.config.concurrency).Run(ctx, tasks); err != nil {
		return err
	}

	for i, item := range items {
		if err := w.commit(item, prepared[i]); err != nil {
			return err
		}
	}

	w.log.WithFields(logrus.Fields{
		"assets": len(items),
		"blobs":  w.tracker.Count(),
	}).Info("bake complete, writing archive")

	return w.finalize(outputPath)
}

// bakeIndependent runs the Phase A bake for a kind whose computation needs
// no other work item's output: decode the source binary, then bake it.
func (w *Writer) bakeIndependent(item resolve.WorkItem) (entity, error) {
	f, err := os.Open(item.Source.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: open source %q: %v", errs.ErrPath, item.Source.Path, err)
	}
	defer f.Close()

	switch item.Kind {
	case format.KindBitmap:
		img, err := bake.DecodeImage(f)
		if err != nil {
			return nil, err
		}
		return bake.Bitmap(img, bitmapDocFor(item))

	case format.KindMesh:
		data, err := os.ReadFile(item.Source.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: read mesh source %q: %v", errs.ErrPath, item.Source.Path, err)
		}
		doc, err := bake.ParseGLTF(data)
		if err != nil {
			return nil, err
		}
		return bake.Mesh(doc, meshDocFor(item), nil, nil)

	case format.KindAnim:
		data, err := os.ReadFile(item.Source.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: read animation source %q: %v", errs.ErrPath, item.Source.Path, err)
		}
		doc, err := bake.ParseGLTF(data)
		if err != nil {
			return nil, err
		}
		src, ok := doc.(bake.AnimationSource)
		if !ok {
			return nil, fmt.Errorf("%w: glTF document %q has no animation clips", errs.ErrSourceDecode, item.Source.Path)
		}
		return bake.Animation(src, animationDocFor(item))

	default:
		return nil, fmt.Errorf("%w: %v is not an independent bake kind", errs.ErrPipeline, item.Kind)
	}
}

// commit runs Phase B for one work item: baking referencing kinds against
// already-committed BlobIds, then encoding, deduping, compressing, and
// recording the result in the manifest. It must run strictly in the work
// list's order, since a referencing item's lookup depends on every item
// before it in the list already being present in blobByKey.
func (w *Writer) commit(item resolve.WorkItem, p bakedIndependent) error {
	var e entity

	switch item.Kind {
	case format.KindBitmap, format.KindMesh, format.KindAnim:
		e = p.entity

	case format.KindFont:
		font, err := bake.BitmapFont(p.fontDefinition, w.lookupFor(item))
		if err != nil {
			return err
		}
		e = font

	case format.KindMaterial:
		mat, err := bake.Material(materialDocFor(item), w.lookupFor(item))
		if err != nil {
			return err
		}
		e = mat

	case format.KindModel:
		mdl, err := bake.Model(modelDocFor(item), w.lookupFor(item))
		if err != nil {
			return err
		}
		e = mdl

	case format.KindScene:
		scn, err := bake.Scene(sceneDocFor(item), w.lookupFor(item))
		if err != nil {
			return err
		}
		e = scn

	default:
		return fmt.Errorf("%w: unknown asset kind %v", errs.ErrPipeline, item.Kind)
	}

	return w.writeEntity(item.Key, item.Kind, e)
}

// lookupFor builds the bake.BlobLookup closure for item, answering a Ref
// slot from the already-committed blobByKey table.
func (w *Writer) lookupFor(item resolve.WorkItem) bake.BlobLookup {
	return func(slot string) (model.BlobID, bool) {
		for _, ref := range item.Refs {
			if ref.Slot != slot {
				continue
			}
			id, ok := w.blobByKey[ref.Key]
			return id, ok
		}
		return 0, false
	}
}

// writeEntity encodes e, dedupes it against every blob already written in
// this run, compresses it if new, appends it to the payload, and records a
// manifest entry under kind/key.
func (w *Writer) writeEntity(key model.AssetKey, kind format.AssetKind, e entity) error {
	data := e.Encode()
	contentHash := hash.Content(data)

	blobID, reused := w.tracker.Lookup(contentHash, len(data))
	if !reused {
		c, err := codec.GetCodec(w.config.compression)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrCodec, err)
		}
		compressed, err := c.Compress(data)
		if err != nil {
			return fmt.Errorf("%w: compress blob for %q: %v", errs.ErrCodec, key, err)
		}

		offset := uint64(w.payload.Len())
		w.payload.MustWrite(compressed)
		w.blobs = append(w.blobs, section.BlobTableEntry{
			Offset: offset,
			Length: uint32(len(compressed)),
			Codec:  w.config.compression,
		})

		blobID = w.tracker.Assign(contentHash, len(data))
	}

	w.blobByKey[key] = model.BlobID(blobID)

	var metadata []byte
	if me, ok := e.(metadataEntity); ok {
		metadata = me.EncodeMetadata()
	}

	w.manifest.Put(kind, string(key), section.ManifestEntry{
		BlobID:   uint32(blobID),
		Metadata: metadata,
	})

	return nil
}

// finalize serializes the header, manifest, blob table, and payload and
// writes them to outputPath atomically.
func (w *Writer) finalize(outputPath string) error {
	defer pool.PutPayloadBuffer(w.payload)

	w.manifest.Sort()
	manifestBytes := w.manifest.Bytes()

	// The manifest is always compressed with manifestCompression, regardless
	// of the per-blob codec WithCompression selects: the on-disk header has
	// no field to record which codec the manifest used, so it must be a
	// fixed, format-version-pinned choice the reader can assume without
	// reading anything extra (spec §9's open question on manifest
	// compression).
	manifestCodec, err := codec.GetCodec(manifestCompression)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrCodec, err)
	}
	compressedManifest, err := manifestCodec.Compress(manifestBytes)
	if err != nil {
		return fmt.Errorf("%w: compress manifest: %v", errs.ErrCodec, err)
	}

	header := section.NewHeader()
	header.ManifestCompressedLen = uint32(len(compressedManifest))
	header.ManifestUncompressedLen = uint32(len(manifestBytes))

	var out bytes.Buffer
	out.Write(header.Bytes())
	out.Write(compressedManifest)
	out.Write(w.blobs.Bytes())
	out.Write(w.payload.Bytes())

	return writeFileAtomically(outputPath, out.Bytes())
}

// writeFileAtomically writes data to a temporary file alongside path, then
// renames it into place. No partial or corrupt file is ever left at path:
// on any failure, the temp file is removed and path is untouched.
func writeFileAtomically(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".forge-pak-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp archive file: %v", errs.ErrWrite, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write archive: %v", errs.ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close archive: %v", errs.ErrWrite, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename archive into place: %v", errs.ErrWrite, err)
	}
	return nil
}

// Package codec provides the blob compression codecs used by the archive
// format's blob table.
//
// # Overview
//
// Every blob in a forge archive is compressed with exactly one of three
// kinds (format.CompressionKind), recorded alongside its offset and length
// in the blob table so a reader can decompress it independently of every
// other blob:
//
//   - None: no compression, zero decode cost
//   - Snap: Snappy, optimized for decompression speed
//   - Brotli: best compression ratio, higher decode cost
//
// # Choosing a kind
//
// The content document's top-level `compression` field selects the codec
// for every blob of a bake run; there is no per-kind override. The manifest
// block is always compressed with Snap, whatever the blob codec.
//
// # Usage
//
//	c, err := codec.GetCodec(format.CompressionSnap)
//	compressed, err := c.Compress(serialized)
//	...
//	original, err := c.Decompress(compressed)
//
// Codec implementations are stateless and safe for concurrent use; GetCodec
// hands out one shared instance per kind.
package codec

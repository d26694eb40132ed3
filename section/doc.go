// Package section implements the archive container envelope: the fixed
// header, the manifest block, and the blob table. Together they describe the
// on-disk layout
//
//	[ magic: 4 bytes ][ version: u16 ]
//	[ manifest_compressed_len: u32 ][ manifest_uncompressed_len: u32 ]
//	[ manifest bytes: manifest_compressed_len ]
//	[ blob_count: u32 ]
//	[ blob_table: blob_count x (offset: u64, length: u32, codec: u8) ]
//	[ payload bytes ]
//
// All multi-byte integers are little-endian. Every field in this package has
// a fixed width except the manifest and blob-table bodies, whose lengths are
// themselves recorded in fixed-width fields, so a reader can locate and read
// each section without scanning the one before it.
package section

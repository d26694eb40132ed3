// Package errs defines the sentinel error taxonomy shared across forge's packages.
//
// Callers use errors.Is against these sentinels; call sites wrap them with
// fmt.Errorf("...: %w", errs.ErrX) to attach context without losing the sentinel
// identity.
package errs

import "errors"

var (
	// ErrConfig signals malformed declarative input: an unknown field, a bad enum
	// value, or a content document that fails to parse.
	ErrConfig = errors.New("forge: config error")

	// ErrPath signals a path resolution failure: an unresolved relative path, a
	// glob pattern that matched nothing when a match was required, or a src field
	// that escapes the content root.
	ErrPath = errors.New("forge: path error")

	// ErrCyclic signals a cyclic reference among assets discovered during
	// dependency expansion.
	ErrCyclic = errors.New("forge: cyclic reference")

	// ErrSourceDecode signals that a source file (image, glTF, font) could not be
	// decoded by its external-collaborator decoder.
	ErrSourceDecode = errors.New("forge: source decode error")

	// ErrPipeline signals an invariant violation discovered during baking, such
	// as a non-monotone animation timeline or an empty vertex buffer.
	ErrPipeline = errors.New("forge: pipeline error")

	// ErrCodec signals a compression or decompression failure, including
	// corrupt compressed input.
	ErrCodec = errors.New("forge: codec error")

	// ErrWrite signals a failure while serializing or flushing the archive.
	ErrWrite = errors.New("forge: write error")

	// ErrRead signals a failure while parsing archive bytes that isn't better
	// described by ErrVersionMismatch or ErrUnknownKey.
	ErrRead = errors.New("forge: read error")

	// ErrCorrupt signals that archive bytes are truncated or structurally
	// invalid (a more specific ErrRead).
	ErrCorrupt = errors.New("forge: corrupt archive")

	// ErrVersionMismatch signals that an archive's magic/version bytes are
	// incompatible with this build's reader.
	ErrVersionMismatch = errors.New("forge: version mismatch")

	// ErrUnknownKey signals a runtime lookup miss: the requested AssetKey isn't
	// present in the manifest table for the requested kind.
	ErrUnknownKey = errors.New("forge: unknown key")
)

// Package model defines the canonical, baked forms of every asset kind
// (Bitmap, BitmapFont, Mesh, Animation, Material, Model, Scene) along with
// the stable key types (AssetKey, BlobID, ContentHash) that address them.
//
// Values in this package are the output of the bake pipeline (bake/) and the
// input to the archive writer (pak/); they never carry source-description
// fields (resize factors, glob patterns) — those live in sourcecfg.
//
// Each entity has a matching *_codec.go file implementing the canonical
// deterministic binary encoding the writer persists into the archive's
// payload region: fixed field order, little-endian integers, length-prefixed
// variable-size fields.
package model

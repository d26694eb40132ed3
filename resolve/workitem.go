package resolve

import (
	"github.com/forgekit/forge/format"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/sourcecfg"
)

// Source describes where a work item's bake inputs come from.
type Source struct {
	// Path is the resolved source binary path the bake stage reads (the
	// image/glTF/font file itself). Empty for kinds with no single backing
	// binary (material, model, scene).
	Path string

	// DocPath is the declarative document's own path. Empty for a bare
	// source binary matched directly by extension (spec §4.3) and for an
	// inline document synthesized from an embedded reference.
	DocPath string

	// Doc is the parsed per-asset document, nil for a bare source binary
	// with no declarative document at all.
	Doc *sourcecfg.AssetDoc
}

// Ref is one embedded reference a work item's document makes to another
// asset (material -> bitmap, scene -> mesh/material, model ->
// mesh/materials), resolved to the referent's key during dependency
// expansion so the bake stage doesn't have to re-derive path resolution.
type Ref struct {
	// Slot names which field the reference came from: a material slot name
	// ("color", "normal", ...), a model's "mesh" or "materials[N]", a scene's
	// "ref[N].mesh" or "ref[N].materials[M]", or a font's "page[N]".
	Slot string
	Key  model.AssetKey
}

// WorkItem is one entry of a resolved, topologically ordered bake work list
// (spec §4.4): an asset's identity, its kind, where its bake inputs live,
// and the resolved keys of anything it references.
type WorkItem struct {
	Key    model.AssetKey
	Kind   format.AssetKind
	Source Source
	Refs   []Ref
}

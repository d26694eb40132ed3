package pak

import (
	"github.com/forgekit/forge/resolve"
	"github.com/forgekit/forge/sourcecfg"
)

// bitmapDocFor returns item's BitmapDoc, or a zero-value one for a bare
// source binary with no declarative document.
func bitmapDocFor(item resolve.WorkItem) *sourcecfg.BitmapDoc {
	if item.Source.Doc != nil && item.Source.Doc.Bitmap != nil {
		return item.Source.Doc.Bitmap
	}
	return &sourcecfg.BitmapDoc{}
}

func meshDocFor(item resolve.WorkItem) *sourcecfg.MeshDoc {
	if item.Source.Doc != nil && item.Source.Doc.Mesh != nil {
		return item.Source.Doc.Mesh
	}
	return &sourcecfg.MeshDoc{}
}

func animationDocFor(item resolve.WorkItem) *sourcecfg.AnimationDoc {
	if item.Source.Doc != nil && item.Source.Doc.Animation != nil {
		return item.Source.Doc.Animation
	}
	return &sourcecfg.AnimationDoc{}
}

// materialDocFor, modelDocFor, and sceneDocFor never need a zero-value
// fallback: a material/model/scene work item is only ever created from a
// parsed document (resolve.Resolve has no bare-binary path for these
// kinds), so Doc and its kind field are always non-nil.

func materialDocFor(item resolve.WorkItem) *sourcecfg.MaterialDoc {
	return item.Source.Doc.Material
}

func modelDocFor(item resolve.WorkItem) *sourcecfg.ModelDoc {
	return item.Source.Doc.Model
}

func sceneDocFor(item resolve.WorkItem) *sourcecfg.SceneDoc {
	return item.Source.Doc.Scene
}

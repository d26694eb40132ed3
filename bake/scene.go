package bake

import (
	"fmt"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/sourcecfg"
)

// Scene bakes a scene document into its canonical form per spec §4.7: each
// asset ref's mesh/materials resolve to BlobIDs via lookup, keyed by the
// resolver's "ref[i].mesh"/"ref[i].materials[j]" slot names; anchors and
// inline geometry are copied through unchanged beyond the rigid transform.
func Scene(doc *sourcecfg.SceneDoc, lookup BlobLookup) (*model.Scene, error) {
	refs := make([]model.SceneRef, len(doc.Refs))
	for i, r := range doc.Refs {
		ref, err := bakeSceneRef(i, r, lookup)
		if err != nil {
			return nil, err
		}
		refs[i] = ref
	}

	geometry := make([]model.SceneGeometry, len(doc.Geometry))
	for i, g := range doc.Geometry {
		geo, err := bakeSceneGeometry(g)
		if err != nil {
			return nil, fmt.Errorf("%w: scene geometry %d: %v", errs.ErrPipeline, i, err)
		}
		geometry[i] = geo
	}

	return &model.Scene{Refs: refs, Geometry: geometry}, nil
}

func bakeSceneRef(i int, r sourcecfg.SceneRefDoc, lookup BlobLookup) (model.SceneRef, error) {
	transform, err := bakeRigidTransform(r.Translation, r.Rotation)
	if err != nil {
		return model.SceneRef{}, fmt.Errorf("%w: scene ref %d: %v", errs.ErrPipeline, i, err)
	}

	if r.IsAnchor() {
		return model.SceneRef{
			Kind:      model.RefAnchor,
			Transform: transform,
			Name:      r.Name,
			Tags:      r.Tags,
			Data:      r.Data,
		}, nil
	}

	mesh, ok := lookup(fmt.Sprintf("ref[%d].mesh", i))
	if !ok {
		return model.SceneRef{}, fmt.Errorf("%w: scene ref %d has no resolved mesh reference", errs.ErrPipeline, i)
	}

	materials := make([]model.BlobID, len(r.Materials))
	for j := range r.Materials {
		slot := fmt.Sprintf("ref[%d].materials[%d]", i, j)
		blob, ok := lookup(slot)
		if !ok {
			return model.SceneRef{}, fmt.Errorf("%w: scene ref %d material %d has no resolved reference", errs.ErrPipeline, i, j)
		}
		materials[j] = blob
	}

	return model.SceneRef{
		Kind:      model.RefAsset,
		Transform: transform,
		Mesh:      mesh,
		Materials: materials,
	}, nil
}

func bakeSceneGeometry(g sourcecfg.SceneGeometryDoc) (model.SceneGeometry, error) {
	transform, err := bakeRigidTransform(g.Translation, g.Rotation)
	if err != nil {
		return model.SceneGeometry{}, err
	}

	if len(g.Vertices)%3 != 0 {
		return model.SceneGeometry{}, fmt.Errorf("%w: geometry vertices must be a multiple of 3", errs.ErrConfig)
	}

	vertices := toFloat32s(g.Vertices)
	indices := make([]uint32, len(g.Indices))
	for i, idx := range g.Indices {
		indices[i] = uint32(idx)
	}

	return model.SceneGeometry{
		Vertices:  vertices,
		Indices:   indices,
		Transform: transform,
		Tags:      g.Tags,
	}, nil
}

// bakeRigidTransform validates and converts a translation/rotation pair
// (spec §3.2's rigid, no-scale scene transform). Translation defaults to
// zero and rotation to identity when omitted.
func bakeRigidTransform(translation, rotation []float64) (model.Transform, error) {
	t := model.Transform{Rotation: [4]float32{0, 0, 0, 1}}

	if len(translation) == 3 {
		t.Translation = [3]float32{float32(translation[0]), float32(translation[1]), float32(translation[2])}
	} else if len(translation) != 0 {
		return model.Transform{}, fmt.Errorf("%w: translation must have 3 components", errs.ErrConfig)
	}

	if len(rotation) == 4 {
		t.Rotation = [4]float32{float32(rotation[0]), float32(rotation[1]), float32(rotation[2]), float32(rotation[3])}
	} else if len(rotation) != 0 {
		return model.Transform{}, fmt.Errorf("%w: rotation must be a 4-component quaternion", errs.ErrConfig)
	}

	return t, nil
}

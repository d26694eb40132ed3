package bake

import (
	"fmt"
	"strconv"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/sourcecfg"
)

// Mesh bakes a parsed glTF document into its canonical form per spec §4.6:
// mesh selection, transform application, tangent synthesis, vertex
// optimization, LOD generation, shadow geometry, and skeleton extraction, in
// that order. The mesh is the one named by desc.Name, or the document's
// first mesh; no scene is selected, and desc.SceneName is not read.
// tangentGen and optimizer default to the package's pure-Go
// implementations when nil.
func Mesh(doc GLTFDocument, desc *sourcecfg.MeshDoc, tangentGen TangentGenerator, optimizer MeshOptimizer) (*model.Mesh, error) {
	if tangentGen == nil {
		tangentGen = defaultTangentGenerator{}
	}
	if optimizer == nil {
		optimizer = defaultMeshOptimizer{}
	}

	meshName := desc.Name
	if meshName == "" {
		if names := doc.MeshNames(); len(names) > 0 {
			meshName = names[0]
		}
	}

	primitives, err := doc.Primitives(meshName)
	if err != nil {
		return nil, err
	}
	if len(primitives) == 0 {
		return nil, fmt.Errorf("%w: mesh %q has no primitives", errs.ErrPipeline, meshName)
	}

	transform, err := compileTransform(desc.Transform)
	if err != nil {
		return nil, err
	}

	remap, err := parseMaterialRemap(desc.MaterialRemap)
	if err != nil {
		return nil, err
	}

	parts := make([]model.MeshPart, len(primitives))
	for i, prim := range primitives {
		part, err := bakePart(prim, desc, transform, tangentGen, optimizer)
		if err != nil {
			return nil, fmt.Errorf("%w: primitive %d: %v", errs.ErrPipeline, i, err)
		}
		if slot, ok := remap[prim.MaterialIndex]; ok {
			part.MaterialSlot = slot
		}
		parts[i] = part
	}

	mesh := &model.Mesh{Parts: parts}

	if !desc.IgnoreSkin {
		if skin, ok := doc.Skin(meshName); ok {
			mesh.Skeleton = bakeSkeleton(skin)
		}
	}

	return mesh, nil
}

// parseMaterialRemap converts the document's string-keyed remap table
// (TOML table keys are strings) to an int-keyed map, since the source
// primitive material index it keys on is itself numeric (spec §4.6 ADDED).
func parseMaterialRemap(raw map[string]int) (map[int]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	out := make(map[int]int, len(raw))
	for k, v := range raw {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: material-remap key %q must be a source material index", errs.ErrConfig, k)
		}
		out[idx] = v
	}

	return out, nil
}

// bakePart applies the transform, synthesizes tangents if requested but
// missing, optimizes vertex order, generates the LOD chain, and derives
// shadow geometry for one primitive (spec §4.6 steps 4-8).
func bakePart(prim Primitive, desc *sourcecfg.MeshDoc, transform compiledTransform, tangentGen TangentGenerator, optimizer MeshOptimizer) (model.MeshPart, error) {
	if len(prim.Positions) == 0 {
		return model.MeshPart{}, fmt.Errorf("%w: primitive has no POSITION attribute", errs.ErrPipeline)
	}
	if len(prim.Indices) == 0 {
		return model.MeshPart{}, fmt.Errorf("%w: primitive has no index buffer", errs.ErrPipeline)
	}

	vertexCount := prim.VertexCount()

	positions := make([]float32, len(prim.Positions))
	for i := 0; i < vertexCount; i++ {
		p := transform.applyPosition(vec3At(prim.Positions, uint32(i)))
		positions[i*3], positions[i*3+1], positions[i*3+2] = p[0], p[1], p[2]
	}

	var normals []float32
	if desc.Normals && prim.Normals != nil {
		normals = make([]float32, len(prim.Normals))
		for i := 0; i < vertexCount; i++ {
			n := normalize3(transform.applyDirection(vec3At(prim.Normals, uint32(i))))
			normals[i*3], normals[i*3+1], normals[i*3+2] = n[0], n[1], n[2]
		}
	}

	indices := append([]uint32(nil), prim.Indices...)
	if transform.windingFlips() {
		flipWinding(indices)
	}

	tangents := prim.Tangents
	if desc.Tangents && tangents == nil {
		if normals == nil || prim.UVs == nil {
			return model.MeshPart{}, fmt.Errorf("%w: tangent generation requires normals and UVs", errs.ErrPipeline)
		}
		generated, err := tangentGen.Generate(positions, normals, prim.UVs, indices)
		if err != nil {
			return model.MeshPart{}, err
		}
		tangents = generated
	} else if tangents != nil {
		rotated := make([]float32, len(tangents))
		for i := 0; i < vertexCount; i++ {
			t := transform.applyDirection([3]float32{tangents[i*4], tangents[i*4+1], tangents[i*4+2]})
			t = normalize3(t)
			rotated[i*4], rotated[i*4+1], rotated[i*4+2] = t[0], t[1], t[2]
			rotated[i*4+3] = tangents[i*4+3]
		}
		tangents = rotated
	}

	vb := model.VertexBuffer{
		VertexCount:  vertexCount,
		Positions:    positions,
		Normals:      normals,
		Tangents:     tangents,
		UVs:          prim.UVs,
		JointIndices: prim.JointIndices,
		JointWeights: prim.JointWeights,
	}

	if desc.OptimizeOrDefault() {
		newIndices, oldIndex := optimizer.Optimize(vertexCount, indices, desc.OverdrawThresholdOrDefault())
		indices = newIndices
		vb = reorderVertexBuffer(vb, oldIndex)
	}

	part := model.MeshPart{
		MaterialSlot: prim.MaterialIndex,
		Vertices:     vb,
		Indices:      indices,
	}

	if desc.LOD {
		part.LODs = buildLODChain(vb.Positions, indices, desc.MinLODTrianglesOrDefault(), desc.LODTargetError, desc.LODLockBorder)
	}

	if desc.Shadow {
		part.Shadow = buildShadowPart(vb.Positions, indices)
	}

	return part, nil
}

func flipWinding(indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		indices[i+1], indices[i+2] = indices[i+2], indices[i+1]
	}
}

// reorderVertexBuffer remaps every present attribute array through oldIndex,
// the permutation MeshOptimizer.Optimize returns.
func reorderVertexBuffer(vb model.VertexBuffer, oldIndex []uint32) model.VertexBuffer {
	out := model.VertexBuffer{VertexCount: len(oldIndex)}

	out.Positions = gatherF32(vb.Positions, oldIndex, 3)
	if vb.Normals != nil {
		out.Normals = gatherF32(vb.Normals, oldIndex, 3)
	}
	if vb.Tangents != nil {
		out.Tangents = gatherF32(vb.Tangents, oldIndex, 4)
	}
	if vb.UVs != nil {
		out.UVs = gatherF32(vb.UVs, oldIndex, 2)
	}
	if vb.JointIndices != nil {
		out.JointIndices = gatherU16(vb.JointIndices, oldIndex, 4)
	}
	if vb.JointWeights != nil {
		out.JointWeights = gatherF32(vb.JointWeights, oldIndex, 4)
	}

	return out
}

func gatherF32(src []float32, oldIndex []uint32, stride int) []float32 {
	out := make([]float32, len(oldIndex)*stride)
	for i, old := range oldIndex {
		copy(out[i*stride:(i+1)*stride], src[int(old)*stride:(int(old)+1)*stride])
	}
	return out
}

func gatherU16(src []uint16, oldIndex []uint32, stride int) []uint16 {
	out := make([]uint16, len(oldIndex)*stride)
	for i, old := range oldIndex {
		copy(out[i*stride:(i+1)*stride], src[int(old)*stride:(int(old)+1)*stride])
	}
	return out
}

// buildLODChain generates successively coarser index buffers, halving the
// triangle-count target each step, until minTriangles is reached (spec §4.6
// step 7).
func buildLODChain(positions []float32, baseIndices []uint32, minTriangles int, targetError float64, lockBorder bool) [][]uint32 {
	var lods [][]uint32
	current := baseIndices
	target := len(current) / 3

	for {
		target /= 2
		if target < minTriangles {
			break
		}
		next := generateLOD(positions, current, target, targetError, lockBorder)
		if len(next) >= len(current) {
			break
		}
		lods = append(lods, next)
		current = next
	}

	return lods
}

// buildShadowPart derives a position-only, deduplicated-by-position index
// buffer from the final geometry (spec §4.6 step 8).
func buildShadowPart(positions []float32, indices []uint32) *model.ShadowPart {
	type key [3]float32
	seen := make(map[key]uint32)

	shadowPositions := make([]float32, 0, len(positions))
	shadowIndices := make([]uint32, len(indices))

	for i, idx := range indices {
		p := vec3At(positions, idx)
		k := key(p)
		newIdx, ok := seen[k]
		if !ok {
			newIdx = uint32(len(shadowPositions) / 3)
			shadowPositions = append(shadowPositions, p[0], p[1], p[2])
			seen[k] = newIdx
		}
		shadowIndices[i] = newIdx
	}

	return &model.ShadowPart{Positions: shadowPositions, Indices: shadowIndices}
}

// bakeSkeleton copies a skin's joints into depth-first order (spec §4.6
// step 9). The default glTF reader exposes joints as a flat root list
// (see gltf.go), so this is already depth-first for that case; a richer
// reader populating ParentIndex would still produce a valid, if unordered,
// list here.
func bakeSkeleton(skin *SkinSource) *model.Skeleton {
	joints := make([]model.Joint, len(skin.Joints))
	for i, j := range skin.Joints {
		joints[i] = model.Joint{Name: j.Name, ParentIndex: j.ParentIndex, InverseBind: j.InverseBind}
	}
	return &model.Skeleton{Joints: joints}
}

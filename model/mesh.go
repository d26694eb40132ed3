package model

// VertexBuffer is an interleaved-by-attribute (not by vertex) vertex stream.
// Optional attributes are nil when absent; VertexCount is authoritative for
// how many vertices every present attribute slice encodes.
type VertexBuffer struct {
	VertexCount int

	Positions []float32 // len == VertexCount*3
	Normals   []float32 // len == VertexCount*3, or nil
	Tangents  []float32 // len == VertexCount*4 (xyz + handedness sign), or nil
	UVs       []float32 // len == VertexCount*2, or nil

	JointIndices []uint16 // len == VertexCount*4, or nil
	JointWeights []float32 // len == VertexCount*4, or nil
}

// HasNormals reports whether the normal attribute is present.
func (v VertexBuffer) HasNormals() bool { return v.Normals != nil }

// HasTangents reports whether the tangent attribute is present.
func (v VertexBuffer) HasTangents() bool { return v.Tangents != nil }

// HasUVs reports whether the UV attribute is present.
func (v VertexBuffer) HasUVs() bool { return v.UVs != nil }

// HasSkin reports whether joint indices/weights are present.
func (v VertexBuffer) HasSkin() bool { return v.JointIndices != nil }

// ShadowPart is a position-only index/vertex buffer derived from a mesh
// part's final LOD 0 geometry, deduplicated by position (spec §4.6 step 8).
type ShadowPart struct {
	Positions []float32 // len == VertexCount*3
	Indices   []uint32
}

// MeshPart is one drawable piece of a Mesh, bound to a material slot.
type MeshPart struct {
	MaterialSlot int
	Vertices     VertexBuffer
	Indices      []uint32

	// LODs holds progressively simplified index buffers, strictly
	// decreasing in triangle count, sharing MeshPart.Vertices (spec §4.6
	// step 7). LODs[0] is the finest level beyond the base Indices, if any.
	LODs [][]uint32

	Shadow *ShadowPart
}

// Joint is one bone in a Mesh's skeleton.
type Joint struct {
	Name string
	// ParentIndex is the index of this joint's parent in Skeleton.Joints,
	// or -1 for a root joint.
	ParentIndex int
	// InverseBind is the 4x4 inverse-bind matrix, row-major, 16 floats.
	InverseBind [16]float32
}

// Skeleton is a depth-first ordered list of joints (spec §4.6 step 9).
type Skeleton struct {
	Joints []Joint
}

// Mesh is the canonical baked form of a 3D mesh: one or more parts, plus an
// optional shared skeleton (spec §3.2).
type Mesh struct {
	Parts    []MeshPart
	Skeleton *Skeleton
}

package model

const (
	meshFlagNormals = 1 << iota
	meshFlagTangents
	meshFlagUVs
	meshFlagSkin
	meshFlagShadow
)

// Encode serializes a Mesh to its canonical byte form: part count, then each
// part's material slot, vertex buffer (flags byte gating optional
// attributes), index buffer, LOD index buffers, optional shadow part;
// finally an optional skeleton.
func (m *Mesh) Encode() []byte {
	e := newEncoder()

	e.u32(uint32(len(m.Parts)))
	for _, p := range m.Parts {
		encodeMeshPart(e, &p)
	}

	if m.Skeleton != nil {
		e.u8(1)
		encodeSkeleton(e, m.Skeleton)
	} else {
		e.u8(0)
	}

	return e.Bytes()
}

func encodeMeshPart(e *encoder, p *MeshPart) {
	e.i32(int32(p.MaterialSlot))

	var flags uint8
	if p.Vertices.HasNormals() {
		flags |= meshFlagNormals
	}
	if p.Vertices.HasTangents() {
		flags |= meshFlagTangents
	}
	if p.Vertices.HasUVs() {
		flags |= meshFlagUVs
	}
	if p.Vertices.HasSkin() {
		flags |= meshFlagSkin
	}
	if p.Shadow != nil {
		flags |= meshFlagShadow
	}
	e.u8(flags)

	e.u32(uint32(p.Vertices.VertexCount))
	e.f32s(p.Vertices.Positions)
	if flags&meshFlagNormals != 0 {
		e.f32s(p.Vertices.Normals)
	}
	if flags&meshFlagTangents != 0 {
		e.f32s(p.Vertices.Tangents)
	}
	if flags&meshFlagUVs != 0 {
		e.f32s(p.Vertices.UVs)
	}
	if flags&meshFlagSkin != 0 {
		e.u16s(p.Vertices.JointIndices)
		e.f32s(p.Vertices.JointWeights)
	}

	e.u32s(p.Indices)

	e.u32(uint32(len(p.LODs)))
	for _, lod := range p.LODs {
		e.u32s(lod)
	}

	if flags&meshFlagShadow != 0 {
		e.f32s(p.Shadow.Positions)
		e.u32s(p.Shadow.Indices)
	}
}

func encodeSkeleton(e *encoder, s *Skeleton) {
	e.u32(uint32(len(s.Joints)))
	for _, j := range s.Joints {
		e.str(j.Name)
		e.i32(int32(j.ParentIndex))
		for _, f := range j.InverseBind {
			e.f32(f)
		}
	}
}

// DecodeMesh parses a Mesh from bytes produced by Encode.
func DecodeMesh(data []byte) (*Mesh, error) {
	d := newDecoder(data)

	partCount, err := d.u32()
	if err != nil {
		return nil, err
	}

	parts := make([]MeshPart, partCount)
	for i := range parts {
		p, err := decodeMeshPart(d)
		if err != nil {
			return nil, err
		}
		parts[i] = p
	}

	hasSkeleton, err := d.u8()
	if err != nil {
		return nil, err
	}

	mesh := &Mesh{Parts: parts}
	if hasSkeleton == 1 {
		skel, err := decodeSkeleton(d)
		if err != nil {
			return nil, err
		}
		mesh.Skeleton = skel
	}

	return mesh, nil
}

func decodeMeshPart(d *decoder) (MeshPart, error) {
	var p MeshPart

	slot, err := d.i32()
	if err != nil {
		return p, err
	}
	p.MaterialSlot = int(slot)

	flags, err := d.u8()
	if err != nil {
		return p, err
	}

	vertexCount, err := d.u32()
	if err != nil {
		return p, err
	}
	p.Vertices.VertexCount = int(vertexCount)

	if p.Vertices.Positions, err = d.f32s(); err != nil {
		return p, err
	}
	if flags&meshFlagNormals != 0 {
		if p.Vertices.Normals, err = d.f32s(); err != nil {
			return p, err
		}
	}
	if flags&meshFlagTangents != 0 {
		if p.Vertices.Tangents, err = d.f32s(); err != nil {
			return p, err
		}
	}
	if flags&meshFlagUVs != 0 {
		if p.Vertices.UVs, err = d.f32s(); err != nil {
			return p, err
		}
	}
	if flags&meshFlagSkin != 0 {
		if p.Vertices.JointIndices, err = d.u16s(); err != nil {
			return p, err
		}
		if p.Vertices.JointWeights, err = d.f32s(); err != nil {
			return p, err
		}
	}

	if p.Indices, err = d.u32s(); err != nil {
		return p, err
	}

	lodCount, err := d.u32()
	if err != nil {
		return p, err
	}
	p.LODs = make([][]uint32, lodCount)
	for i := range p.LODs {
		if p.LODs[i], err = d.u32s(); err != nil {
			return p, err
		}
	}

	if flags&meshFlagShadow != 0 {
		shadow := &ShadowPart{}
		if shadow.Positions, err = d.f32s(); err != nil {
			return p, err
		}
		if shadow.Indices, err = d.u32s(); err != nil {
			return p, err
		}
		p.Shadow = shadow
	}

	return p, nil
}

func decodeSkeleton(d *decoder) (*Skeleton, error) {
	count, err := d.u32()
	if err != nil {
		return nil, err
	}

	joints := make([]Joint, count)
	for i := range joints {
		name, err := d.str()
		if err != nil {
			return nil, err
		}
		parent, err := d.i32()
		if err != nil {
			return nil, err
		}

		var inv [16]float32
		for j := range inv {
			inv[j], err = d.f32()
			if err != nil {
				return nil, err
			}
		}

		joints[i] = Joint{Name: name, ParentIndex: int(parent), InverseBind: inv}
	}

	return &Skeleton{Joints: joints}, nil
}

package model

import "sort"

func encodeTransform(e *encoder, t Transform) {
	for _, f := range t.Translation {
		e.f32(f)
	}
	for _, f := range t.Rotation {
		e.f32(f)
	}
}

func decodeTransform(d *decoder) (Transform, error) {
	var t Transform
	for i := range t.Translation {
		f, err := d.f32()
		if err != nil {
			return t, err
		}
		t.Translation[i] = f
	}
	for i := range t.Rotation {
		f, err := d.f32()
		if err != nil {
			return t, err
		}
		t.Rotation[i] = f
	}

	return t, nil
}

// Encode serializes a Scene to its canonical byte form.
func (s *Scene) Encode() []byte {
	e := newEncoder()

	e.u32(uint32(len(s.Refs)))
	for _, r := range s.Refs {
		e.u8(uint8(r.Kind))
		encodeTransform(e, r.Transform)

		switch r.Kind {
		case RefAsset:
			e.u32(uint32(r.Mesh))
			ids := make([]uint32, len(r.Materials))
			for i, id := range r.Materials {
				ids[i] = uint32(id)
			}
			e.u32s(ids)
		case RefAnchor:
			e.str(r.Name)
			e.u32(uint32(len(r.Tags)))
			for _, tag := range r.Tags {
				e.str(tag)
			}

			keys := make([]string, 0, len(r.Data))
			for k := range r.Data {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			e.u32(uint32(len(keys)))
			for _, k := range keys {
				e.str(k)
				e.str(r.Data[k])
			}
		}
	}

	e.u32(uint32(len(s.Geometry)))
	for _, g := range s.Geometry {
		e.f32s(g.Vertices)
		e.u32s(g.Indices)
		encodeTransform(e, g.Transform)
		e.u32(uint32(len(g.Tags)))
		for _, tag := range g.Tags {
			e.str(tag)
		}
	}

	return e.Bytes()
}

// DecodeScene parses a Scene from bytes produced by Encode.
func DecodeScene(data []byte) (*Scene, error) {
	d := newDecoder(data)

	refCount, err := d.u32()
	if err != nil {
		return nil, err
	}

	refs := make([]SceneRef, refCount)
	for i := range refs {
		kind, err := d.u8()
		if err != nil {
			return nil, err
		}
		transform, err := decodeTransform(d)
		if err != nil {
			return nil, err
		}

		r := SceneRef{Kind: SceneRefKind(kind), Transform: transform}

		switch r.Kind {
		case RefAsset:
			meshID, err := d.u32()
			if err != nil {
				return nil, err
			}
			matIDs, err := d.u32s()
			if err != nil {
				return nil, err
			}
			materials := make([]BlobID, len(matIDs))
			for j, id := range matIDs {
				materials[j] = BlobID(id)
			}
			r.Mesh = BlobID(meshID)
			r.Materials = materials
		case RefAnchor:
			name, err := d.str()
			if err != nil {
				return nil, err
			}
			tagCount, err := d.u32()
			if err != nil {
				return nil, err
			}
			tags := make([]string, tagCount)
			for j := range tags {
				tags[j], err = d.str()
				if err != nil {
					return nil, err
				}
			}
			dataCount, err := d.u32()
			if err != nil {
				return nil, err
			}
			data := make(map[string]string, dataCount)
			for j := uint32(0); j < dataCount; j++ {
				k, err := d.str()
				if err != nil {
					return nil, err
				}
				v, err := d.str()
				if err != nil {
					return nil, err
				}
				data[k] = v
			}
			r.Name = name
			r.Tags = tags
			r.Data = data
		}

		refs[i] = r
	}

	geomCount, err := d.u32()
	if err != nil {
		return nil, err
	}

	geometry := make([]SceneGeometry, geomCount)
	for i := range geometry {
		vertices, err := d.f32s()
		if err != nil {
			return nil, err
		}
		indices, err := d.u32s()
		if err != nil {
			return nil, err
		}
		transform, err := decodeTransform(d)
		if err != nil {
			return nil, err
		}
		tagCount, err := d.u32()
		if err != nil {
			return nil, err
		}
		tags := make([]string, tagCount)
		for j := range tags {
			tags[j], err = d.str()
			if err != nil {
				return nil, err
			}
		}

		geometry[i] = SceneGeometry{
			Vertices:  vertices,
			Indices:   indices,
			Transform: transform,
			Tags:      tags,
		}
	}

	return &Scene{Refs: refs, Geometry: geometry}, nil
}

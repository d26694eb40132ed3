package bake

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
)

// Primitive is one glTF mesh primitive's extracted attribute data, already
// flattened to float32/uint32 slices ready for VertexBuffer construction
// (spec §4.6 step 3).
type Primitive struct {
	MaterialIndex int

	Positions    []float32 // len = vertexCount*3
	Normals      []float32 // len = vertexCount*3, or nil
	Tangents     []float32 // len = vertexCount*4 (xyz + source handedness), or nil
	UVs          []float32 // len = vertexCount*2, or nil
	JointIndices []uint16  // len = vertexCount*4, or nil
	JointWeights []float32 // len = vertexCount*4, or nil

	Indices []uint32
}

// VertexCount returns the primitive's vertex count, derived from Positions.
func (p Primitive) VertexCount() int { return len(p.Positions) / 3 }

// JointSource is one joint of a skin, in the order the source declares it.
type JointSource struct {
	Name        string
	ParentIndex int // -1 for a root joint
	InverseBind [16]float32
}

// SkinSource is a mesh's skin, if it has one.
type SkinSource struct {
	Joints []JointSource
}

// GLTFDocument is the mesh bake stage's external-collaborator contract for
// glTF access (spec §4.6): selecting a scene/mesh by name and extracting its
// primitives and skin is everything the bake pipeline needs from a glTF
// parser, so it is expressed as an interface with a default pure-Go
// implementation rather than a concrete dependency.
type GLTFDocument interface {
	// DefaultSceneName returns the document's default scene name, or false
	// if the document declares none.
	DefaultSceneName() (string, bool)
	// MeshNames lists every mesh name the document declares, in document
	// order (the first is the default per spec §4.6 step 2).
	MeshNames() []string
	// Primitives returns the primitives of the named mesh.
	Primitives(meshName string) ([]Primitive, error)
	// Skin returns the named mesh's skin, if it has one.
	Skin(meshName string) (*SkinSource, bool)
}

// ParseGLTF parses a minimal JSON-form glTF document (embedded or data-URI
// buffers only; no external .bin or .glb binary chunk resolution) — the
// subset spec §4.6's contract documents as sufficient for the bake stage.
// The returned value also implements AnimationSource, for callers baking
// an [animation] document against the same glTF file (spec §4.7).
func ParseGLTF(data []byte) (GLTFDocument, error) {
	var raw rawGLTF
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse glTF document: %v", errs.ErrSourceDecode, err)
	}

	buffers := make([][]byte, len(raw.Buffers))
	for i, b := range raw.Buffers {
		decoded, err := decodeDataURI(b.URI)
		if err != nil {
			return nil, fmt.Errorf("%w: glTF buffer %d: %v", errs.ErrSourceDecode, i, err)
		}
		buffers[i] = decoded
	}

	return &gltfDoc{raw: raw, buffers: buffers}, nil
}

type rawGLTF struct {
	Scene  *int `json:"scene"`
	Scenes []struct {
		Name  string `json:"name"`
		Nodes []int  `json:"nodes"`
	} `json:"scenes"`
	Nodes []struct {
		Mesh *int  `json:"mesh"`
		Skin *int  `json:"skin"`
		Name string `json:"name"`
	} `json:"nodes"`
	Meshes []struct {
		Name       string `json:"name"`
		Primitives []struct {
			Attributes map[string]int `json:"attributes"`
			Indices    *int           `json:"indices"`
			Material   *int           `json:"material"`
		} `json:"primitives"`
	} `json:"meshes"`
	Skins []struct {
		InverseBindMatrices *int     `json:"inverseBindMatrices"`
		Joints              []int    `json:"joints"`
		Names               []string `json:"names"`
	} `json:"skins"`
	Animations []struct {
		Name     string `json:"name"`
		Channels []struct {
			Sampler int `json:"sampler"`
			Target  struct {
				Node *int   `json:"node"`
				Path string `json:"path"`
			} `json:"target"`
		} `json:"channels"`
		Samplers []struct {
			Input         int    `json:"input"`
			Output        int    `json:"output"`
			Interpolation string `json:"interpolation"`
		} `json:"samplers"`
	} `json:"animations"`
	Accessors []struct {
		BufferView    *int   `json:"bufferView"`
		ByteOffset    int    `json:"byteOffset"`
		ComponentType int    `json:"componentType"`
		Count         int    `json:"count"`
		Type          string `json:"type"`
	} `json:"accessors"`
	BufferViews []struct {
		Buffer     int `json:"buffer"`
		ByteOffset int `json:"byteOffset"`
		ByteLength int `json:"byteLength"`
	} `json:"bufferViews"`
	Buffers []struct {
		URI string `json:"uri"`
	} `json:"buffers"`
}

type gltfDoc struct {
	raw     rawGLTF
	buffers [][]byte
}

func (d *gltfDoc) DefaultSceneName() (string, bool) {
	idx := 0
	if d.raw.Scene != nil {
		idx = *d.raw.Scene
	}
	if idx < 0 || idx >= len(d.raw.Scenes) {
		return "", false
	}
	return d.raw.Scenes[idx].Name, true
}

func (d *gltfDoc) MeshNames() []string {
	names := make([]string, len(d.raw.Meshes))
	for i, m := range d.raw.Meshes {
		names[i] = m.Name
	}
	return names
}

func (d *gltfDoc) findMesh(name string) (int, bool) {
	if name == "" {
		if len(d.raw.Meshes) == 0 {
			return 0, false
		}
		return 0, true
	}
	for i, m := range d.raw.Meshes {
		if m.Name == name {
			return i, true
		}
	}
	return 0, false
}

func (d *gltfDoc) Primitives(meshName string) ([]Primitive, error) {
	idx, ok := d.findMesh(meshName)
	if !ok {
		return nil, fmt.Errorf("%w: mesh %q not found", errs.ErrSourceDecode, meshName)
	}

	mesh := d.raw.Meshes[idx]
	out := make([]Primitive, len(mesh.Primitives))
	for i, p := range mesh.Primitives {
		prim := Primitive{MaterialIndex: -1}
		if p.Material != nil {
			prim.MaterialIndex = *p.Material
		}

		var err error
		if accIdx, ok := p.Attributes["POSITION"]; ok {
			if prim.Positions, err = d.readFloats(accIdx, 3); err != nil {
				return nil, err
			}
		}
		if accIdx, ok := p.Attributes["NORMAL"]; ok {
			if prim.Normals, err = d.readFloats(accIdx, 3); err != nil {
				return nil, err
			}
		}
		if accIdx, ok := p.Attributes["TANGENT"]; ok {
			if prim.Tangents, err = d.readFloats(accIdx, 4); err != nil {
				return nil, err
			}
		}
		if accIdx, ok := p.Attributes["TEXCOORD_0"]; ok {
			if prim.UVs, err = d.readFloats(accIdx, 2); err != nil {
				return nil, err
			}
		}
		if accIdx, ok := p.Attributes["JOINTS_0"]; ok {
			if prim.JointIndices, err = d.readJoints(accIdx); err != nil {
				return nil, err
			}
		}
		if accIdx, ok := p.Attributes["WEIGHTS_0"]; ok {
			if prim.JointWeights, err = d.readFloats(accIdx, 4); err != nil {
				return nil, err
			}
		}
		if p.Indices != nil {
			if prim.Indices, err = d.readIndices(*p.Indices); err != nil {
				return nil, err
			}
		}

		out[i] = prim
	}

	return out, nil
}

func (d *gltfDoc) Skin(meshName string) (*SkinSource, bool) {
	meshIdx, ok := d.findMesh(meshName)
	if !ok {
		return nil, false
	}

	skinIdx := -1
	for _, n := range d.raw.Nodes {
		if n.Mesh != nil && *n.Mesh == meshIdx && n.Skin != nil {
			skinIdx = *n.Skin
			break
		}
	}
	if skinIdx < 0 || skinIdx >= len(d.raw.Skins) {
		return nil, false
	}

	skin := d.raw.Skins[skinIdx]
	mats, err := d.readFloats(*skin.InverseBindMatrices, 16)
	if err != nil {
		return nil, false
	}

	// Parent relationships aren't in the minimal node schema above beyond
	// mesh/skin bindings, so joints are treated as a flat root list; a
	// richer reader would walk node.children to build ParentIndex.
	joints := make([]JointSource, len(skin.Joints))
	for i := range joints {
		name := ""
		if i < len(skin.Names) {
			name = skin.Names[i]
		}

		var mat [16]float32
		copy(mat[:], mats[i*16:(i+1)*16])
		joints[i] = JointSource{Name: name, ParentIndex: -1, InverseBind: mat}
	}

	return &SkinSource{Joints: joints}, true
}

// ClipNames implements AnimationSource, listing every animation clip in
// document order.
func (d *gltfDoc) ClipNames() []string {
	names := make([]string, len(d.raw.Animations))
	for i, a := range d.raw.Animations {
		names[i] = a.Name
	}
	return names
}

// Channels implements AnimationSource, translating glTF's
// sampler-indirected channel/target shape into flat AnimationChannel
// tracks keyed by node name.
func (d *gltfDoc) Channels(clipName string) ([]AnimationChannel, error) {
	idx := -1
	for i, a := range d.raw.Animations {
		if a.Name == clipName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: animation clip %q not found", errs.ErrSourceDecode, clipName)
	}

	clip := d.raw.Animations[idx]
	out := make([]AnimationChannel, 0, len(clip.Channels))

	for _, ch := range clip.Channels {
		if ch.Target.Node == nil {
			continue
		}
		kind, components, ok := keyframeKindForPath(ch.Target.Path)
		if !ok {
			continue
		}

		sampler := clip.Samplers[ch.Sampler]
		rawTimes, err := d.readFloats(sampler.Input, 1)
		if err != nil {
			return nil, err
		}
		times := make([]float64, len(rawTimes))
		for i, t := range rawTimes {
			times[i] = float64(t)
		}
		values, err := d.readFloats(sampler.Output, components)
		if err != nil {
			return nil, err
		}

		nodeIdx := *ch.Target.Node
		name := ""
		if nodeIdx >= 0 && nodeIdx < len(d.raw.Nodes) {
			name = d.raw.Nodes[nodeIdx].Name
		}

		out = append(out, AnimationChannel{
			JointName:  name,
			Kind:       kind,
			Times:      times,
			Values:     values,
			Components: components,
		})
	}

	return out, nil
}

func keyframeKindForPath(path string) (kind format.KeyframeKind, components int, ok bool) {
	switch path {
	case "translation":
		return format.KeyframeTranslation, 3, true
	case "rotation":
		return format.KeyframeRotation, 4, true
	case "scale":
		return format.KeyframeScale, 3, true
	case "weights":
		return format.KeyframeWeights, 1, true
	default:
		return 0, 0, false
	}
}

func (d *gltfDoc) readFloats(accessorIdx, components int) ([]float32, error) {
	acc := d.raw.Accessors[accessorIdx]
	view := d.raw.BufferViews[*acc.BufferView]
	buf := d.buffers[view.Buffer]
	base := view.ByteOffset + acc.ByteOffset

	out := make([]float32, acc.Count*components)
	stride := componentSize(acc.ComponentType) * components
	for i := 0; i < acc.Count; i++ {
		off := base + i*stride
		for c := 0; c < components; c++ {
			v, err := readComponent(buf, off+c*componentSize(acc.ComponentType), acc.ComponentType)
			if err != nil {
				return nil, err
			}
			out[i*components+c] = v
		}
	}

	return out, nil
}

func (d *gltfDoc) readJoints(accessorIdx int) ([]uint16, error) {
	acc := d.raw.Accessors[accessorIdx]
	view := d.raw.BufferViews[*acc.BufferView]
	buf := d.buffers[view.Buffer]
	base := view.ByteOffset + acc.ByteOffset

	out := make([]uint16, acc.Count*4)
	size := componentSize(acc.ComponentType)
	for i := 0; i < acc.Count*4; i++ {
		v, err := readComponent(buf, base+i*size, acc.ComponentType)
		if err != nil {
			return nil, err
		}
		out[i] = uint16(v)
	}

	return out, nil
}

func (d *gltfDoc) readIndices(accessorIdx int) ([]uint32, error) {
	acc := d.raw.Accessors[accessorIdx]
	view := d.raw.BufferViews[*acc.BufferView]
	buf := d.buffers[view.Buffer]
	base := view.ByteOffset + acc.ByteOffset
	size := componentSize(acc.ComponentType)

	out := make([]uint32, acc.Count)
	for i := 0; i < acc.Count; i++ {
		v, err := readComponent(buf, base+i*size, acc.ComponentType)
		if err != nil {
			return nil, err
		}
		out[i] = uint32(v)
	}

	return out, nil
}

const (
	componentByte          = 5120
	componentUnsignedByte  = 5121
	componentShort         = 5122
	componentUnsignedShort = 5123
	componentUnsignedInt   = 5125
	componentFloat         = 5126
)

func componentSize(componentType int) int {
	switch componentType {
	case componentByte, componentUnsignedByte:
		return 1
	case componentShort, componentUnsignedShort:
		return 2
	case componentUnsignedInt, componentFloat:
		return 4
	default:
		return 4
	}
}

func readComponent(buf []byte, offset, componentType int) (float32, error) {
	if offset < 0 || offset+componentSize(componentType) > len(buf) {
		return 0, fmt.Errorf("%w: glTF accessor reads past buffer bounds", errs.ErrSourceDecode)
	}

	switch componentType {
	case componentUnsignedByte:
		return float32(buf[offset]), nil
	case componentUnsignedShort:
		return float32(binary.LittleEndian.Uint16(buf[offset:])), nil
	case componentUnsignedInt:
		return float32(binary.LittleEndian.Uint32(buf[offset:])), nil
	case componentFloat:
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:])), nil
	default:
		return 0, fmt.Errorf("%w: unsupported glTF component type %d", errs.ErrSourceDecode, componentType)
	}
}

// decodeDataURI decodes a glTF buffer's "data:...;base64,..." URI. Only
// data URIs are supported; external .bin file resolution is out of scope
// for the minimal reader (see DESIGN.md).
func decodeDataURI(uri string) ([]byte, error) {
	const marker = ";base64,"
	idx := strings.Index(uri, marker)
	if idx < 0 {
		return nil, fmt.Errorf("%w: only embedded base64 data-URI buffers are supported, got %q", errs.ErrSourceDecode, uri)
	}

	return base64.StdEncoding.DecodeString(uri[idx+len(marker):])
}

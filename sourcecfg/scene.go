package sourcecfg

// SceneRefDoc is one `[[scene.ref]]` entry: either a mesh+materials
// reference or a named anchor (spec §3.2, §4.7).
type SceneRefDoc struct {
	Mesh      string            `toml:"mesh"`
	Materials []string          `toml:"materials"`
	Name      string            `toml:"name"`
	Tags      []string          `toml:"tags"`
	Data      map[string]string `toml:"data"`

	Translation []float64 `toml:"translation"`
	Rotation    []float64 `toml:"rotation"`
}

// IsAnchor reports whether this ref is a named anchor rather than an asset
// reference (an anchor has no mesh path).
func (r SceneRefDoc) IsAnchor() bool {
	return r.Mesh == ""
}

// SceneGeometryDoc is one `[[scene.geometry]]` inline navmesh/collision
// block (spec §3.2).
type SceneGeometryDoc struct {
	Vertices []float64 `toml:"vertices"`
	Indices  []int     `toml:"indices"`
	Tags     []string  `toml:"tags"`

	Translation []float64 `toml:"translation"`
	Rotation    []float64 `toml:"rotation"`
}

// SceneDoc is the `[scene]` root table (spec §4.7).
type SceneDoc struct {
	Refs     []SceneRefDoc      `toml:"ref"`
	Geometry []SceneGeometryDoc `toml:"geometry"`
}

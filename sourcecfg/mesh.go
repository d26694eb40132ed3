package sourcecfg

// TransformDoc is the `[mesh.transform]` table (spec §4.6 step 4).
type TransformDoc struct {
	Translation []float64 `toml:"translation"`
	// Rotation is either a 4-element quaternion or, when Euler is set, a
	// 3-element Euler angle triple.
	Rotation []float64 `toml:"rotation"`
	Euler    string    `toml:"euler"`
	Scale    []float64 `toml:"scale"`
	FlipX    bool      `toml:"flip-x"`
	FlipY    bool      `toml:"flip-y"`
	FlipZ    bool      `toml:"flip-z"`
	Offset   []float64 `toml:"offset"`
}

// MeshDoc is the `[mesh]` root table of a per-asset document (spec §4.6).
type MeshDoc struct {
	Src        string `toml:"src"`
	SceneName  string `toml:"scene-name"`
	Name       string `toml:"name"`
	Normals    bool   `toml:"normals"`
	Tangents   bool   `toml:"tangents"`
	IgnoreSkin bool   `toml:"ignore-skin"`

	Transform TransformDoc `toml:"transform"`

	// Optimize is a pointer so an absent field is distinguishable from an
	// explicit false; the bake stage defaults it to true (spec §4.6 step 6).
	Optimize          *bool   `toml:"optimize"`
	OverdrawThreshold float64 `toml:"overdraw-threshold"`

	LOD            bool    `toml:"lod"`
	MinLODTriangles int    `toml:"min-lod-triangles"`
	LODTargetError  float64 `toml:"lod-target-error"`
	LODLockBorder   bool    `toml:"lod-lock-border"`

	Shadow bool `toml:"shadow"`

	// MaterialRemap is the added feature recovered from original_source/:
	// maps a source glTF primitive material index (as a string key, since
	// TOML table keys are strings) to a different material slot index.
	MaterialRemap map[string]int `toml:"material-remap"`
}

// OptimizeOrDefault returns the effective optimize flag, defaulting to true
// when the field was absent from the document.
func (m MeshDoc) OptimizeOrDefault() bool {
	if m.Optimize == nil {
		return true
	}

	return *m.Optimize
}

const (
	// DefaultOverdrawThreshold is used when the document omits the field
	// (spec §4.6 step 6).
	DefaultOverdrawThreshold = 1.05
	// DefaultMinLODTriangles is the modest fixed floor spec §4.6 step 7
	// refers to without pinning a number.
	DefaultMinLODTriangles = 64
)

// OverdrawThresholdOrDefault returns the effective overdraw threshold.
func (m MeshDoc) OverdrawThresholdOrDefault() float64 {
	if m.OverdrawThreshold == 0 {
		return DefaultOverdrawThreshold
	}

	return m.OverdrawThreshold
}

// MinLODTrianglesOrDefault returns the effective LOD triangle floor.
func (m MeshDoc) MinLODTrianglesOrDefault() int {
	if m.MinLODTriangles == 0 {
		return DefaultMinLODTriangles
	}

	return m.MinLODTriangles
}

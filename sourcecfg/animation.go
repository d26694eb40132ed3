package sourcecfg

// ExcludeDoc identifies one (joint, path) channel to drop from a baked
// animation (spec §4.7).
type ExcludeDoc struct {
	Joint string `toml:"joint"`
	Path  string `toml:"path"`
}

// AnimationDoc is the `[animation]` root table (spec §4.7).
type AnimationDoc struct {
	Src     string       `toml:"src"`
	Name    string       `toml:"name"`
	Exclude []ExcludeDoc `toml:"exclude"`
}

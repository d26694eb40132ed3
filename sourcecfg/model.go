package sourcecfg

// ModelDoc is the `[model]` root table (spec §4.7).
type ModelDoc struct {
	Mesh      string   `toml:"mesh"`
	Materials []string `toml:"materials"`
}

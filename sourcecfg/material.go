package sourcecfg

// MaterialDoc is the `[material]` root table: one polymorphic Value per PBR
// slot (spec §3.2, §4.3, §4.7).
type MaterialDoc struct {
	Color        Value `toml:"color"`
	Normal       Value `toml:"normal"`
	Metal        Value `toml:"metal"`
	Rough        Value `toml:"rough"`
	Displacement Value `toml:"displacement"`
	Emissive     Value `toml:"emissive"`
	DoubleSided  bool  `toml:"double-sided"`
}

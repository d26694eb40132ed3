package sourcecfg

// BitmapDoc is the `[bitmap]` root table of a per-asset document, or the
// shape of an inline bitmap table nested in a material field (spec §4.3,
// §4.5).
type BitmapDoc struct {
	Src        string    `toml:"src"`
	Resize     int       `toml:"resize"`
	Swizzle    string    `toml:"swizzle"`
	ColorSpace string    `toml:"color-space"`
	MipLevels  MipLevels `toml:"mip-levels"`
}

// BitmapFontDoc is the `[bitmap-font]` root table.
type BitmapFontDoc struct {
	Src string `toml:"src"`
}

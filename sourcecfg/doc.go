// Package sourcecfg holds the declarative, human-authored form of a content
// description: the top-level content document and the one struct per asset
// kind that a per-asset document's root table decodes into (spec §4.3,
// §6.2).
//
// Documents are TOML, parsed with github.com/BurntSushi/toml. Polymorphic
// material fields decode into Value, which implements toml.Unmarshaler to
// dispatch on the TOML value's shape.
package sourcecfg

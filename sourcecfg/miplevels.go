package sourcecfg

import "fmt"

// MipLevelsKind tags whether a bitmap's mip-levels field was a bool or an
// explicit count (spec §4.5 step 4).
type MipLevelsKind uint8

const (
	// MipLevelsNone covers both an absent field and an explicit false.
	MipLevelsNone MipLevelsKind = iota
	// MipLevelsFull requests a full chain down to 1x1 (explicit true).
	MipLevelsFull
	// MipLevelsCount requests min(Count, full_chain_len) mips.
	MipLevelsCount
)

// MipLevels is the polymorphic `mip-levels` field: false/absent (single
// mip), true (full chain), or an integer n (min(n, full_chain_len) mips).
type MipLevels struct {
	Kind  MipLevelsKind
	Count int
}

// UnmarshalTOML implements github.com/BurntSushi/toml's Unmarshaler.
func (m *MipLevels) UnmarshalTOML(data any) error {
	switch t := data.(type) {
	case bool:
		if t {
			m.Kind = MipLevelsFull
		} else {
			m.Kind = MipLevelsNone
		}
	case int64:
		m.Kind = MipLevelsCount
		m.Count = int(t)
	default:
		return fmt.Errorf("mip-levels: unsupported value shape %T", data)
	}

	return nil
}

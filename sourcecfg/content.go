package sourcecfg

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
)

// FormatVersion is the bake tool's current content-document version. A
// Content document that declares a newer Version fails fast at bake start
// rather than risk silently producing a wrong archive (recovered feature,
// see DESIGN.md).
const FormatVersion = "1"

// Document is the top-level parse target of a content file: a single
// [content] table.
type Document struct {
	Content Content `toml:"content"`
}

// Content is the `[content]` table: an optional default codec and one or
// more asset groups (spec §4.3, §6.2).
type Content struct {
	// Version is optional; when set it must not exceed FormatVersion.
	Version     string  `toml:"version"`
	Compression string  `toml:"compression"`
	Groups      []Group `toml:"group"`
}

// Group is one `[[content.group]]` table: a list of glob patterns resolved
// relative to the content file's directory.
type Group struct {
	Assets []string `toml:"assets"`
}

// ParseContentFile parses a content document from path.
func ParseContentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read content file %q: %v", errs.ErrConfig, path, err)
	}

	return ParseContent(data)
}

// ParseContent parses a content document from raw TOML bytes.
func ParseContent(data []byte) (*Document, error) {
	var doc Document
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("%w: decode content document: %v", errs.ErrConfig, err)
	}

	if err := doc.Content.checkVersion(); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (c Content) checkVersion() error {
	if c.Version == "" {
		return nil
	}

	declared, err := strconv.Atoi(c.Version)
	if err != nil {
		return fmt.Errorf("%w: content document version %q is not an integer", errs.ErrConfig, c.Version)
	}
	supported, _ := strconv.Atoi(FormatVersion)
	if declared <= supported {
		return nil
	}

	return fmt.Errorf("%w: content document version %q is newer than supported version %q", errs.ErrConfig, c.Version, FormatVersion)
}

// CompressionKind resolves the document's default codec, defaulting to None
// when unset.
func (c Content) CompressionKind() (format.CompressionKind, error) {
	kind, ok := format.ParseCompressionKind(c.Compression)
	if !ok {
		return 0, fmt.Errorf("%w: unknown compression kind %q", errs.ErrConfig, c.Compression)
	}

	return kind, nil
}

package bake

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/model"
)

// BitmapFont bakes a raw AngelCode font definition into its canonical form
// per spec §3.2: the definition bytes pass through verbatim, and the page
// declarations it names are resolved to BlobIds in page-id order via
// lookup, which answers the "page[N]" slots the resolver recorded against
// the font's own work item.
func BitmapFont(definition []byte, lookup BlobLookup) (*model.BitmapFont, error) {
	ids, err := parseFontPageIDs(definition)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrSourceDecode, err)
	}

	pages := make([]model.BlobID, len(ids))
	for i, id := range ids {
		slot := fmt.Sprintf("page[%d]", id)
		blob, ok := lookup(slot)
		if !ok {
			return nil, fmt.Errorf("%w: bitmap font page %d has no resolved bitmap", errs.ErrConfig, id)
		}
		pages[i] = blob
	}

	return &model.BitmapFont{Definition: definition, Pages: pages}, nil
}

// parseFontPageIDs scans an AngelCode .fnt text definition's "page" lines
// and returns their ids in ascending order. Mirrors the resolver's own page
// scan (resolve/resolve.go); the two stay independent because the resolver
// only needs page file paths to enlist bitmaps, while the bake stage only
// needs page ids to order resolved BlobIds.
func parseFontPageIDs(data []byte) ([]int, error) {
	var ids []int

	for _, line := range strings.Split(string(data), "\n") {
		fields := parseAngelCodeFields(line)
		if fields == nil || !strings.HasPrefix(strings.TrimSpace(line), "page ") {
			continue
		}
		raw, ok := fields["id"]
		if !ok {
			return nil, fmt.Errorf("page line %q missing id", line)
		}
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("page line %q: bad id: %w", line, err)
		}
		ids = append(ids, id)
	}

	sortInts(ids)
	return ids, nil
}

func sortInts(ids []int) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

// parseAngelCodeFields splits one AngelCode definition line into its
// key=value pairs (the leading tag word, "page"/"char"/"common"/..., is
// left in the map under key "" so callers can also confirm the tag).
// Returns nil for blank or unparseable lines.
func parseAngelCodeFields(line string) map[string]string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	fields := strings.Fields(line)
	out := map[string]string{"": fields[0]}
	for _, f := range fields[1:] {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			continue
		}
		out[k] = strings.Trim(v, `"`)
	}
	return out
}

// glyphMetric is one AngelCode "char" line's placement within a page and
// advance width, the minimal shape golang.org/x/image/font.Face needs to
// answer per-glyph queries.
type glyphMetric struct {
	x, y, width, height        int
	xoffset, yoffset, xadvance int
	page                       int
}

// Face adapts a baked BitmapFont's glyph metrics onto
// golang.org/x/image/font.Face, so a runtime holding the decoded page
// images can hand this straight to a font.Drawer instead of re-deriving
// glyph placement from the raw definition bytes itself. forge's bake stage
// never decodes page pixels at bake time (entities are handed to the
// writer and dropped, spec §3.4); Face is therefore the reader-side
// counterpart, built from pages the caller has already decoded.
type Face struct {
	metrics    map[rune]glyphMetric
	pages      []image.Image
	lineHeight int
	ascent     int
}

// NewFace parses an AngelCode definition's "common" and "char" lines and
// pairs them with already-decoded page images (one per page id, in page-id
// order — the same order BitmapFont.Pages resolves to).
func NewFace(definition []byte, pages []image.Image) (*Face, error) {
	f := &Face{metrics: make(map[rune]glyphMetric), pages: pages}

	for _, line := range strings.Split(string(definition), "\n") {
		fields := parseAngelCodeFields(line)
		if fields == nil {
			continue
		}

		switch fields[""] {
		case "common":
			f.lineHeight = atoiOr(fields["lineHeight"], 0)
			f.ascent = atoiOr(fields["base"], 0)

		case "char":
			idRaw, ok := fields["id"]
			if !ok {
				continue
			}
			id, err := strconv.Atoi(idRaw)
			if err != nil {
				return nil, fmt.Errorf("%w: char line %q: bad id: %v", errs.ErrSourceDecode, line, err)
			}
			f.metrics[rune(id)] = glyphMetric{
				x:        atoiOr(fields["x"], 0),
				y:        atoiOr(fields["y"], 0),
				width:    atoiOr(fields["width"], 0),
				height:   atoiOr(fields["height"], 0),
				xoffset:  atoiOr(fields["xoffset"], 0),
				yoffset:  atoiOr(fields["yoffset"], 0),
				xadvance: atoiOr(fields["xadvance"], 0),
				page:     atoiOr(fields["page"], 0),
			}
		}
	}

	return f, nil
}

func atoiOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

var _ font.Face = (*Face)(nil)

// Close implements font.Face. Face holds no resources of its own beyond
// the caller-owned page images.
func (f *Face) Close() error { return nil }

// Glyph implements font.Face, cropping the glyph's rectangle out of its
// page image at the requested dot.
func (f *Face) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	m, found := f.metrics[r]
	if !found || m.page >= len(f.pages) {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}

	x0 := (dot.X.Round()) + m.xoffset
	y0 := (dot.Y.Round()) + m.yoffset
	dr = image.Rect(x0, y0, x0+m.width, y0+m.height)
	mask = f.pages[m.page]
	maskp = image.Pt(m.x, m.y)
	advance = fixed.I(m.xadvance)
	return dr, mask, maskp, advance, true
}

// GlyphBounds implements font.Face.
func (f *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	m, found := f.metrics[r]
	if !found {
		return fixed.Rectangle26_6{}, 0, false
	}
	bounds = fixed.Rectangle26_6{
		Min: fixed.P(m.xoffset, m.yoffset),
		Max: fixed.P(m.xoffset+m.width, m.yoffset+m.height),
	}
	return bounds, fixed.I(m.xadvance), true
}

// GlyphAdvance implements font.Face.
func (f *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	m, found := f.metrics[r]
	if !found {
		return 0, false
	}
	return fixed.I(m.xadvance), true
}

// Kern implements font.Face. AngelCode kerning pairs are not modeled; every
// pair reports zero adjustment.
func (f *Face) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

// Metrics implements font.Face.
func (f *Face) Metrics() font.Metrics {
	return font.Metrics{
		Height:  fixed.I(f.lineHeight),
		Ascent:  fixed.I(f.ascent),
		Descent: fixed.I(f.lineHeight - f.ascent),
	}
}

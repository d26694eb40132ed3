package resolve

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/sourcecfg"
)

// docExt is the extension convention this resolver uses for per-asset
// declarative documents. Bare source binaries are matched by their own
// media extension instead (spec §4.3).
const docExt = ".toml"

var (
	bitmapExts = []string{".png", ".jpg", ".jpeg", ".bmp"}
	meshExts   = []string{".gltf", ".glb"}
	fontExts   = []string{".fnt"}
)

func kindForExt(ext string) (format.AssetKind, bool) {
	ext = strings.ToLower(ext)
	for _, e := range bitmapExts {
		if e == ext {
			return format.KindBitmap, true
		}
	}
	for _, e := range meshExts {
		if e == ext {
			return format.KindMesh, true
		}
	}
	for _, e := range fontExts {
		if e == ext {
			return format.KindFont, true
		}
	}
	return 0, false
}

// extsForKind lists the extensions tried, in order, when a document omits
// its own src field and the stem must be extension-probed (spec §4.4).
// Only the kinds with a single backing binary ever probe.
func extsForKind(kind format.AssetKind) []string {
	switch kind {
	case format.KindBitmap:
		return bitmapExts
	case format.KindFont:
		return fontExts
	case format.KindMesh, format.KindAnim:
		return meshExts
	default:
		return nil
	}
}

// resolver accumulates the discovered work items and their dependency graph
// over the course of one Resolve call.
type resolver struct {
	baseDir string
	items   map[model.AssetKey]*WorkItem
	order   []model.AssetKey
	graph   *graph
}

// Resolve expands content's groups into a topologically ordered bake work
// list: globbing each group's patterns against baseDir, inferring each
// file's asset kind, resolving src fields, and following embedded
// references until no new asset is discovered (spec §4.4).
func Resolve(content *sourcecfg.Content, baseDir string) ([]WorkItem, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("%w: canonicalize content base dir %q: %v", errs.ErrPath, baseDir, err)
	}

	r := &resolver{
		baseDir: absBase,
		items:   make(map[model.AssetKey]*WorkItem),
		graph:   newGraph(),
	}

	matches, err := r.expandGroups(content.Groups)
	if err != nil {
		return nil, err
	}

	for _, path := range matches {
		if _, err := r.enlistPath(path, ""); err != nil {
			return nil, err
		}
	}

	sorted, ok := r.graph.sort(r.order)
	if !ok {
		return nil, fmt.Errorf("%w: asset dependency graph contains a cycle", errs.ErrCyclic)
	}

	items := make([]WorkItem, 0, len(sorted))
	for _, key := range sorted {
		items = append(items, *r.items[key])
	}

	return items, nil
}

// expandGroups globs every group's asset patterns against baseDir,
// canonicalizes each match, and deduplicates (spec §4.4 step 1). Matches
// are returned in lexical order so repeated resolution of the same content
// is stable.
func (r *resolver) expandGroups(groups []sourcecfg.Group) ([]string, error) {
	seen := make(map[string]struct{})
	var matches []string

	for _, group := range groups {
		for _, pattern := range group.Assets {
			hits, err := filepath.Glob(filepath.Join(r.baseDir, pattern))
			if err != nil {
				return nil, fmt.Errorf("%w: glob pattern %q: %v", errs.ErrPath, pattern, err)
			}

			for _, hit := range hits {
				abs, err := filepath.Abs(hit)
				if err != nil {
					return nil, fmt.Errorf("%w: canonicalize %q: %v", errs.ErrPath, hit, err)
				}
				if _, dup := seen[abs]; dup {
					continue
				}
				seen[abs] = struct{}{}
				matches = append(matches, abs)
			}
		}
	}

	sort.Strings(matches)
	return matches, nil
}

// resolveRef resolves one src-like field against the rules of spec §4.4: a
// relative value is resolved against the referencing document's directory;
// a rooted value (leading path separator) is resolved against the content
// file's own base directory rather than the OS filesystem root.
func (r *resolver) resolveRef(raw, docDir string) string {
	if filepath.IsAbs(raw) {
		return filepath.Join(r.baseDir, strings.TrimPrefix(raw, string(filepath.Separator)))
	}
	return filepath.Join(docDir, raw)
}

// probeStem tries each kind-appropriate extension in turn against an
// absent src field's default (the document's own filename stem), per spec
// §4.4.
func (r *resolver) probeStem(docDir, stem string, kind format.AssetKind) (string, error) {
	for _, ext := range extsForKind(kind) {
		candidate := filepath.Join(docDir, stem+ext)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no source file found for stem %q (%s) in %s", errs.ErrPath, stem, kind, docDir)
}

// resolveOwnSrc resolves the src field of a document whose kind carries a
// single backing binary (bitmap, font, mesh, animation); other kinds have
// no own src and return "".
func (r *resolver) resolveOwnSrc(doc *sourcecfg.AssetDoc, kind format.AssetKind, docPath, docDir string) (string, error) {
	var raw string
	switch kind {
	case format.KindBitmap:
		raw = doc.Bitmap.Src
	case format.KindFont:
		raw = doc.BitmapFont.Src
	case format.KindMesh:
		raw = doc.Mesh.Src
	case format.KindAnim:
		raw = doc.Animation.Src
	default:
		return "", nil
	}

	if raw == "" {
		stem := strings.TrimSuffix(filepath.Base(docPath), docExt)
		return r.probeStem(docDir, stem, kind)
	}

	return r.resolveRef(raw, docDir), nil
}

// enlistPath registers the asset at absPath (a declarative document or a
// bare source binary) if it hasn't been seen yet, recording a dependency
// edge from referencer if one is given ("" means a top-level group match
// with no referencer).
func (r *resolver) enlistPath(absPath string, referencer model.AssetKey) (model.AssetKey, error) {
	absPath = filepath.Clean(absPath)
	key, err := model.NewAssetKey(absPath)
	if err != nil {
		return "", err
	}

	if _, ok := r.items[key]; ok {
		if referencer != "" {
			r.graph.addDependency(referencer, key)
		}
		return key, nil
	}

	ext := filepath.Ext(absPath)

	var item WorkItem
	var doc *sourcecfg.AssetDoc
	var docDir string

	if ext == docExt {
		parsed, err := sourcecfg.ParseAssetFile(absPath)
		if err != nil {
			return "", err
		}

		kind, ok := parsed.Kind()
		if !ok {
			return "", fmt.Errorf("%w: %q declares no asset root table", errs.ErrConfig, absPath)
		}

		docDir = filepath.Dir(absPath)
		srcPath, err := r.resolveOwnSrc(parsed, kind, absPath, docDir)
		if err != nil {
			return "", err
		}

		item = WorkItem{Key: key, Kind: kind, Source: Source{Path: srcPath, DocPath: absPath, Doc: parsed}}
		doc = parsed
	} else {
		kind, ok := kindForExt(ext)
		if !ok {
			return "", fmt.Errorf("%w: %q has no recognized asset extension", errs.ErrConfig, absPath)
		}

		item = WorkItem{Key: key, Kind: kind, Source: Source{Path: absPath}}
	}

	r.items[key] = &item
	r.order = append(r.order, key)
	r.graph.addNode(key)
	if referencer != "" {
		r.graph.addDependency(referencer, key)
	}

	if item.Kind == format.KindFont && item.Source.Path != "" {
		if err := r.expandFontPages(key, item.Source.Path); err != nil {
			return "", err
		}
	}

	if doc != nil {
		if err := r.expandRefs(key, doc, docDir); err != nil {
			return "", err
		}
	}

	return key, nil
}

// expandFontPages reads an AngelCode .fnt definition's page declarations
// and enlists each page file as a bitmap work item, recording a Ref under
// slot "page[id]" on the font's own WorkItem (spec §3.2: BitmapFont carries
// an ordered list of BlobIds referring to page Bitmaps; the resolver
// discovers them the same way it follows any other embedded reference,
// it just has to read the font's own source bytes to find them).
func (r *resolver) expandFontPages(fontKey model.AssetKey, fntPath string) error {
	data, err := os.ReadFile(fntPath)
	if err != nil {
		return fmt.Errorf("%w: read font definition %q: %v", errs.ErrPath, fntPath, err)
	}

	pages, err := parseFontPages(data)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", errs.ErrSourceDecode, fntPath, err)
	}

	docDir := filepath.Dir(fntPath)
	for _, p := range pages {
		slot := fmt.Sprintf("page[%d]", p.id)
		if _, err := r.enlistRef(p.file, docDir, fontKey, slot); err != nil {
			return err
		}
	}

	return nil
}

type fontPage struct {
	id   int
	file string
}

// parseFontPages scans an AngelCode .fnt file's text-format "page" lines
// (`page id=0 file="font_0.png"`) for page declarations. The binary .fnt
// variant is out of scope; every pack-shipped AngelCode font is text.
func parseFontPages(data []byte) ([]fontPage, error) {
	var pages []fontPage

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "page ") {
			continue
		}

		var id int
		var file string
		hasID, hasFile := false, false

		for _, field := range strings.Fields(line)[1:] {
			k, v, ok := strings.Cut(field, "=")
			if !ok {
				continue
			}
			switch k {
			case "id":
				if _, err := fmt.Sscanf(v, "%d", &id); err != nil {
					return nil, fmt.Errorf("page line %q: bad id: %w", line, err)
				}
				hasID = true
			case "file":
				file = strings.Trim(v, `"`)
				hasFile = true
			}
		}

		if !hasID || !hasFile {
			return nil, fmt.Errorf("page line %q missing id or file", line)
		}
		pages = append(pages, fontPage{id: id, file: file})
	}

	return pages, nil
}

// enlistRef resolves a raw reference string against docDir, enlists it,
// records a dependency edge from referencer, and tags the referencer's
// WorkItem with a Ref under slot naming the referent's key.
func (r *resolver) enlistRef(raw, docDir string, referencer model.AssetKey, slot string) (model.AssetKey, error) {
	key, err := r.enlistPath(r.resolveRef(raw, docDir), referencer)
	if err != nil {
		return "", err
	}
	r.addRef(referencer, slot, key)
	return key, nil
}

func (r *resolver) addRef(referencer model.AssetKey, slot string, key model.AssetKey) {
	item := r.items[referencer]
	item.Refs = append(item.Refs, Ref{Slot: slot, Key: key})
}

// expandRefs follows a document's embedded references per spec §4.4:
// material -> bitmap, scene -> mesh/material, model -> mesh/materials.
func (r *resolver) expandRefs(key model.AssetKey, doc *sourcecfg.AssetDoc, docDir string) error {
	switch {
	case doc.Material != nil:
		for _, nv := range namedMaterialValues(doc.Material) {
			if err := r.expandValue(key, nv.slot, nv.value, docDir); err != nil {
				return err
			}
		}

	case doc.Scene != nil:
		for i, ref := range doc.Scene.Refs {
			if ref.IsAnchor() {
				continue
			}
			if _, err := r.enlistRef(ref.Mesh, docDir, key, fmt.Sprintf("ref[%d].mesh", i)); err != nil {
				return err
			}
			for j, mat := range ref.Materials {
				slot := fmt.Sprintf("ref[%d].materials[%d]", i, j)
				if _, err := r.enlistRef(mat, docDir, key, slot); err != nil {
					return err
				}
			}
		}

	case doc.Model != nil:
		if _, err := r.enlistRef(doc.Model.Mesh, docDir, key, "mesh"); err != nil {
			return err
		}
		for i, mat := range doc.Model.Materials {
			slot := fmt.Sprintf("materials[%d]", i)
			if _, err := r.enlistRef(mat, docDir, key, slot); err != nil {
				return err
			}
		}
	}

	return nil
}

type namedValue struct {
	slot  string
	value sourcecfg.Value
}

func namedMaterialValues(m *sourcecfg.MaterialDoc) []namedValue {
	return []namedValue{
		{"color", m.Color},
		{"normal", m.Normal},
		{"metal", m.Metal},
		{"rough", m.Rough},
		{"displacement", m.Displacement},
		{"emissive", m.Emissive},
	}
}

func (r *resolver) expandValue(referencer model.AssetKey, slot string, v sourcecfg.Value, docDir string) error {
	switch v.Kind {
	case sourcecfg.ValuePath:
		_, err := r.enlistRef(v.Path, docDir, referencer, slot)
		return err
	case sourcecfg.ValueInline:
		return r.enlistInlineBitmap(referencer, slot, v.Inline, docDir)
	default:
		return nil
	}
}

// enlistInlineBitmap synthesizes a key for a material's inline bitmap table
// (spec §3.1 inline assets) and enlists it as its own bitmap work item.
func (r *resolver) enlistInlineBitmap(referencer model.AssetKey, slot string, doc *sourcecfg.BitmapDoc, docDir string) error {
	if doc.Src == "" {
		return fmt.Errorf("%w: inline bitmap table has no src", errs.ErrConfig)
	}

	resolvedSrc := r.resolveRef(doc.Src, docDir)
	seed := fmt.Sprintf("%s|%s|%s", referencer, slot, resolvedSrc)
	key := model.SyntheticKey(format.KindBitmap, seed)

	item := WorkItem{
		Key:  key,
		Kind: format.KindBitmap,
		Source: Source{
			Path: resolvedSrc,
			Doc:  &sourcecfg.AssetDoc{Bitmap: doc},
		},
	}

	r.items[key] = &item
	r.order = append(r.order, key)
	r.graph.addNode(key)
	r.graph.addDependency(referencer, key)
	r.addRef(referencer, slot, key)

	return nil
}

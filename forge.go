// Package forge bakes declarative game-asset content documents into a
// single compact archive file, and reads baked entities back out of one.
//
// # Basic usage
//
// Baking a content directory to an archive:
//
//	ctx := context.Background()
//	if err := forge.Bake(ctx, "content/game.toml", "game.fpak"); err != nil {
//	    log.Fatal(err)
//	}
//
// Reading entities back out of it:
//
//	reader, err := forge.Open("game.fpak")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	key, _ := model.NewAssetKey("content/hero.png")
//	bitmap, err := reader.ReadBitmap(key)
//
// # Package structure
//
// This file provides the two top-level entry points spec'd for external
// callers; resolve, bake, pak, and model implement the pipeline stages
// (content parsing, source graph resolution, per-asset baking, and archive
// serialization) for callers that need finer control than Bake/Open offer.
package forge

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/forgekit/forge/pak"
	"github.com/forgekit/forge/resolve"
	"github.com/forgekit/forge/sourcecfg"
)

// Bake parses the content document at contentPath, resolves its asset
// graph, bakes every asset, and writes the resulting archive to
// outputPath. Assets are resolved relative to contentPath's directory
// (spec §4.1, §4.4).
func Bake(ctx context.Context, contentPath, outputPath string, opts ...pak.WriterOption) error {
	doc, err := sourcecfg.ParseContentFile(contentPath)
	if err != nil {
		return err
	}

	compression, err := doc.Content.CompressionKind()
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(contentPath)
	items, err := resolve.Resolve(&doc.Content, baseDir)
	if err != nil {
		return err
	}

	writerOpts := append([]pak.WriterOption{pak.WithCompression(compression)}, opts...)
	w, err := pak.NewWriter(writerOpts...)
	if err != nil {
		return err
	}

	if err := w.Write(ctx, items, outputPath); err != nil {
		return fmt.Errorf("bake %q: %w", contentPath, err)
	}
	return nil
}

// Open opens a baked archive for reading (spec §4.9, §6.3).
func Open(path string) (*pak.Reader, error) {
	return pak.Open(path)
}

package game

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestDecodeAssets_MissingFileIsAssetLoadError(t *testing.T) {
	dir := t.TempDir()
	_, err := DecodeAssets(dir, nil)
	var ae *AssetLoadError
	if !errors.As(err, &ae) {
		t.Fatalf("want AssetLoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("should unwrap to ErrNotExist: %v", err)
	}
	if filepath.Dir(ae.Path) != filepath.Join(dir, "tanks") {
		t.Fatalf("path: got %s", ae.Path)
	}
}

func TestDecodeAssets_UnknownTile(t *testing.T) {
	tm := NewTileMap(1, 1)
	tm.IDs[0] = "lava_9"
	_, err := DecodeAssets(t.TempDir(), tm)
	if !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("want ErrUnknownTile, got %v", err)
	}
}

func TestDecodeAssets_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{playerSpriteFile, playerWreckSpriteFile, agentSpriteFile, agentWreckSpriteFile, bulletSpriteFile} {
		writePNG(t, filepath.Join(dir, f))
	}
	if err := os.WriteFile(filepath.Join(dir, bulletSpriteFile), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := DecodeAssets(dir, nil)
	var ae *AssetLoadError
	if !errors.As(err, &ae) || filepath.Base(ae.Path) != "bullet_green.png" {
		t.Fatalf("want AssetLoadError for the bullet, got %v", err)
	}
}

func TestDecodeAssets_FullCatalogue(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{playerSpriteFile, playerWreckSpriteFile, agentSpriteFile, agentWreckSpriteFile, bulletSpriteFile} {
		writePNG(t, filepath.Join(dir, f))
	}
	tm := DefaultTileMap()
	for _, id := range tm.IDs {
		name, err := TileAsset(id)
		if err != nil {
			t.Fatal(err)
		}
		writePNG(t, filepath.Join(dir, tileDir, name))
	}
	got, err := DecodeAssets(dir, tm)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := got["player"]; !ok {
		t.Fatalf("player sprite missing")
	}
	if _, ok := got["tile:"+tm.At(0, 0)]; !ok {
		t.Fatalf("tile %s missing", tm.At(0, 0))
	}
}

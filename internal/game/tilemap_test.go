package game

import (
	"errors"
	"testing"
)

func TestNewTileMap_DefaultGrass(t *testing.T) {
	tm := NewTileMap(10, 8)
	if tm.Cols != 10 || tm.Rows != 8 {
		t.Fatalf("expected 10x8, got %dx%d", tm.Cols, tm.Rows)
	}
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			if g := tm.Ground(col, row); g != GroundGrass {
				t.Fatalf("tile (%d,%d) ground=%s, want grass", col, row, g)
			}
			if tm.IsRoad(col, row) {
				t.Fatalf("tile (%d,%d) should not be a road", col, row)
			}
		}
	}
	if err := tm.Validate(); err != nil {
		t.Fatalf("grass map should validate: %v", err)
	}
}

func TestDefaultTileMap_CoversArena(t *testing.T) {
	tm := DefaultTileMap()
	if tm.Cols != 15 || tm.Rows != 10 {
		t.Fatalf("expected 15x10, got %dx%d", tm.Cols, tm.Rows)
	}
	w, h := tm.PixelSize()
	cfg := DefaultConfig()
	if w != cfg.ArenaWidth || h != cfg.ArenaHeight {
		t.Fatalf("map is %dx%d px, arena is %dx%d", w, h, cfg.ArenaWidth, cfg.ArenaHeight)
	}
}

func TestDefaultTileMap_GrassWestSandEast(t *testing.T) {
	tm := DefaultTileMap()
	if tm.Ground(0, 0) != GroundGrass {
		t.Fatalf("top-left should be grass, got %s", tm.Ground(0, 0))
	}
	if tm.Ground(14, 9) != GroundSand {
		t.Fatalf("bottom-right should be sand, got %s", tm.Ground(14, 9))
	}
	if !tm.IsRoad(2, 4) {
		t.Fatalf("expected crossing at (2,4), got %q", tm.At(2, 4))
	}
}

func TestTileMap_OutOfBounds(t *testing.T) {
	tm := NewTileMap(3, 3)
	if tm.At(-1, 0) != "" || tm.At(3, 0) != "" {
		t.Fatal("out-of-bounds At should return empty id")
	}
	tm.Set(5, 5, "sand_1") // must not panic
}

func TestTileMap_UnknownTileFailsValidation(t *testing.T) {
	tm := NewTileMap(4, 4)
	tm.Set(2, 1, "lava_1")
	err := tm.Validate()
	if !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("expected ErrUnknownTile, got %v", err)
	}
}

func TestTileMapFromRows_RaggedRows(t *testing.T) {
	_, err := TileMapFromRows([][]string{{"grass_1", "grass_2"}, {"grass_1"}})
	if err == nil {
		t.Fatal("ragged rows should be rejected")
	}
}

func TestTileMapFromRows_UnknownTile(t *testing.T) {
	_, err := TileMapFromRows([][]string{{"grass_1", "bogus"}})
	if !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("expected ErrUnknownTile, got %v", err)
	}
}

func TestTileAsset(t *testing.T) {
	f, err := TileAsset("sand_road_East")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f != "tile_sand_road_East.png" {
		t.Fatalf("got %q", f)
	}
	if _, err := TileAsset("nope"); !errors.Is(err, ErrUnknownTile) {
		t.Fatalf("expected ErrUnknownTile, got %v", err)
	}
}

func TestTileIDs_Sorted(t *testing.T) {
	ids := TileIDs()
	if len(ids) != 40 {
		t.Fatalf("expected 40 catalogued tiles, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Fatalf("ids not sorted at %d: %q > %q", i, ids[i-1], ids[i])
		}
	}
}

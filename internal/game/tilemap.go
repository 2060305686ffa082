package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TileSize is the edge length of one map cell in pixels.
const TileSize = 64

// ErrUnknownTile is returned when a map references a tile id missing from the
// catalogue. It indicates a corrupt map definition.
var ErrUnknownTile = errors.New("unknown tile id")

// GroundType is the base surface of a tile, used for placeholder colouring.
type GroundType uint8

const (
	GroundGrass GroundType = iota
	GroundSand
)

func (g GroundType) String() string {
	switch g {
	case GroundGrass:
		return "grass"
	case GroundSand:
		return "sand"
	default:
		return "unknown"
	}
}

// tileCatalogue maps every known tile id to its image file.
var tileCatalogue = func() map[string]string {
	ids := []string{
		"grass_1", "grass_2",
		"grass_road_CornerLL", "grass_road_CornerLR", "grass_road_CornerUL", "grass_road_CornerUR",
		"grass_road_Crossing", "grass_road_CrossingRound", "grass_road_East", "grass_road_North",
		"grass_road_SplitE", "grass_road_SplitN", "grass_road_SplitS", "grass_road_SplitW",
		"grass_road_TransitionE", "grass_road_TransitionE_dirt", "grass_road_TransitionN",
		"grass_road_TransitionN_dirt", "grass_road_TransitionS", "grass_road_TransitionS_dirt",
		"grass_road_TransitionW", "grass_road_TransitionW_dirt",
		"grass_transitionE", "grass_transitionN", "grass_transitionS", "grass_transitionW",
		"sand_1", "sand_2",
		"sand_road_CornerLL", "sand_road_CornerLR", "sand_road_CornerUL", "sand_road_CornerUR",
		"sand_road_Crossing", "sand_road_CrossingRound", "sand_road_East", "sand_road_North",
		"sand_road_SplitE", "sand_road_SplitN", "sand_road_SplitS", "sand_road_SplitW",
	}
	m := make(map[string]string, len(ids))
	for _, id := range ids {
		m[id] = "tile_" + id + ".png"
	}
	return m
}()

// TileIDs returns every catalogued tile id in sorted order.
func TileIDs() []string {
	out := make([]string, 0, len(tileCatalogue))
	for id := range tileCatalogue {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// TileAsset returns the image file name for a tile id.
func TileAsset(id string) (string, error) {
	f, ok := tileCatalogue[id]
	if !ok {
		return "", fmt.Errorf("tile %q: %w", id, ErrUnknownTile)
	}
	return f, nil
}

// TileMap is a static grid of tile ids. It only feeds the renderer; nothing
// in the simulation consults it.
type TileMap struct {
	Cols int
	Rows int
	IDs  []string // row-major: index = row*Cols + col
}

// NewTileMap creates a tile map filled with plain grass.
func NewTileMap(cols, rows int) *TileMap {
	ids := make([]string, cols*rows)
	for i := range ids {
		ids[i] = "grass_1"
	}
	return &TileMap{Cols: cols, Rows: rows, IDs: ids}
}

// TileMapFromRows builds a map from row-major id rows. Every row must have the
// same length and every id must be catalogued.
func TileMapFromRows(rows [][]string) (*TileMap, error) {
	if len(rows) == 0 {
		return &TileMap{}, nil
	}
	tm := &TileMap{Cols: len(rows[0]), Rows: len(rows)}
	for r, row := range rows {
		if len(row) != tm.Cols {
			return nil, fmt.Errorf("tile map row %d has %d columns, want %d", r, len(row), tm.Cols)
		}
		tm.IDs = append(tm.IDs, row...)
	}
	if err := tm.Validate(); err != nil {
		return nil, err
	}
	return tm, nil
}

// DefaultTileMap is the 15x10 grass and sand battlefield crossed by roads.
func DefaultTileMap() *TileMap {
	tm, err := TileMapFromRows(defaultLayout)
	if err != nil {
		panic(err) // compiled-in layout
	}
	return tm
}

var defaultLayout = [][]string{
	{"grass_1", "grass_2", "grass_road_SplitE", "grass_road_East", "grass_road_East", "grass_road_East", "grass_road_TransitionE",
		"sand_road_CornerLL", "sand_1", "sand_2", "sand_1", "sand_2", "sand_road_North", "sand_2", "sand_1"},
	{"grass_1", "grass_2", "grass_road_North", "grass_2", "grass_1", "grass_2", "grass_transitionE", "sand_road_CornerUR",
		"sand_road_CornerLL", "sand_2", "sand_1", "sand_2", "sand_road_SplitE", "sand_road_East", "sand_road_East"},
	{"grass_1", "grass_2", "grass_road_North", "grass_2", "grass_1", "grass_2", "grass_transitionE",
		"sand_2", "sand_road_North", "sand_2", "sand_1", "sand_2", "sand_road_North", "sand_2", "sand_1"},
	{"grass_1", "grass_2", "grass_road_North", "grass_2", "grass_1", "grass_2", "grass_transitionE",
		"sand_2", "sand_road_North", "sand_2", "sand_1", "sand_2", "sand_road_North", "sand_2", "sand_1"},
	{"grass_road_East", "grass_road_East", "grass_road_Crossing", "grass_road_East", "grass_road_CornerLL", "grass_2",
		"grass_transitionE", "sand_2", "sand_road_North", "sand_2", "sand_1", "sand_2", "sand_road_North", "sand_2", "sand_1"},
	{"grass_1", "grass_2", "grass_road_North", "grass_2", "grass_road_North", "grass_2", "grass_transitionE", "sand_2",
		"sand_road_CornerUR", "sand_road_East", "sand_road_East", "sand_road_East", "sand_road_CornerUL", "sand_2", "sand_1"},
	{"grass_1", "grass_2", "grass_road_North", "grass_2", "grass_road_North", "grass_2",
		"grass_transitionE", "sand_2", "sand_1", "sand_2", "sand_1", "sand_2", "sand_1", "sand_2", "sand_1"},
	{"grass_1", "grass_2", "grass_road_North", "grass_2", "grass_road_North", "grass_2", "grass_transitionE", "sand_2",
		"sand_1", "sand_2", "sand_road_CornerLR", "sand_road_East", "sand_road_East", "sand_road_East", "sand_road_East"},
	{"grass_1", "grass_2", "grass_road_CornerUR", "grass_road_East", "grass_road_SplitN", "grass_road_East", "grass_road_TransitionE",
		"sand_road_East", "sand_road_East", "sand_road_East", "sand_road_CornerUL", "sand_2", "sand_1", "sand_2", "sand_1"},
	{"grass_1", "grass_2", "grass_1", "grass_2", "grass_1", "grass_2", "grass_transitionE",
		"sand_2", "sand_1", "sand_2", "sand_1", "sand_2", "sand_1", "sand_2", "sand_1"},
}

// inBounds returns true if (col, row) is within the tile map.
func (tm *TileMap) inBounds(col, row int) bool {
	return col >= 0 && col < tm.Cols && row >= 0 && row < tm.Rows
}

// At returns the tile id at (col, row), or "" if out of bounds.
func (tm *TileMap) At(col, row int) string {
	if !tm.inBounds(col, row) {
		return ""
	}
	return tm.IDs[row*tm.Cols+col]
}

// Set replaces the tile id at (col, row). Out-of-bounds writes are ignored.
func (tm *TileMap) Set(col, row int, id string) {
	if !tm.inBounds(col, row) {
		return
	}
	tm.IDs[row*tm.Cols+col] = id
}

// Ground returns the base surface at (col, row).
func (tm *TileMap) Ground(col, row int) GroundType {
	return groundOf(tm.At(col, row))
}

// IsRoad reports whether the tile at (col, row) carries a road.
func (tm *TileMap) IsRoad(col, row int) bool {
	return isRoadID(tm.At(col, row))
}

func isRoadID(id string) bool { return strings.Contains(id, "_road_") }

// Validate checks every cell against the catalogue and reports the first
// unknown id with its position.
func (tm *TileMap) Validate() error {
	for i, id := range tm.IDs {
		if _, ok := tileCatalogue[id]; !ok {
			return fmt.Errorf("tile (%d,%d) %q: %w", i%tm.Cols, i/tm.Cols, id, ErrUnknownTile)
		}
	}
	return nil
}

// PixelSize returns the map extent in pixels.
func (tm *TileMap) PixelSize() (int, int) {
	return tm.Cols * TileSize, tm.Rows * TileSize
}

func groundOf(id string) GroundType {
	if strings.HasPrefix(id, "sand") {
		return GroundSand
	}
	return GroundGrass
}

// groundBaseColour returns the placeholder RGB colour for a tile.
func groundBaseColour(g GroundType, road bool) (r, gr, b uint8) {
	if road {
		return 92, 86, 74
	}
	switch g {
	case GroundGrass:
		return 58, 110, 52
	case GroundSand:
		return 196, 176, 120
	default:
		return 30, 45, 30
	}
}

package game

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Sprite files relative to the asset root.
const (
	playerSpriteFile      = "tanks/tank_green.png"
	playerWreckSpriteFile = "tanks/tank_green_body.png"
	agentSpriteFile       = "tanks/tank_red.png"
	agentWreckSpriteFile  = "tanks/tank_red_body.png"
	bulletSpriteFile      = "tanks/bullet_green.png"
	tileDir               = "tiles"
)

// AssetLoadError reports a sprite or tile that could not be read or decoded.
// It is fatal at startup.
type AssetLoadError struct {
	Path string
	Err  error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load asset %s: %v", e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }

// Sprites is the image catalogue the renderer draws from. Tank and bullet
// sprites face down at rotation 0.
type Sprites struct {
	Player      *ebiten.Image
	PlayerWreck *ebiten.Image
	Agent       *ebiten.Image
	AgentWreck  *ebiten.Image
	Bullet      *ebiten.Image
	Tiles       map[string]*ebiten.Image
}

// Tile returns the image for a tile id, or nil.
func (s *Sprites) Tile(id string) *ebiten.Image {
	return s.Tiles[id]
}

// spriteSources lists the files a tile map needs, keyed by catalogue slot.
// Tile slots are "tile:<id>".
func spriteSources(dir string, tm *TileMap) (map[string]string, error) {
	src := map[string]string{
		"player":       filepath.Join(dir, playerSpriteFile),
		"player_wreck": filepath.Join(dir, playerWreckSpriteFile),
		"agent":        filepath.Join(dir, agentSpriteFile),
		"agent_wreck":  filepath.Join(dir, agentWreckSpriteFile),
		"bullet":       filepath.Join(dir, bulletSpriteFile),
	}
	if tm == nil {
		return src, nil
	}
	for _, id := range tm.IDs {
		if _, seen := src["tile:"+id]; seen {
			continue
		}
		name, err := TileAsset(id)
		if err != nil {
			return nil, err
		}
		src["tile:"+id] = filepath.Join(dir, tileDir, name)
	}
	return src, nil
}

// DecodeAssets reads and decodes every file the tile map needs. Nothing is
// handed to the GPU here, so a missing file fails before any image exists.
func DecodeAssets(dir string, tm *TileMap) (map[string]image.Image, error) {
	src, err := spriteSources(dir, tm)
	if err != nil {
		return nil, err
	}
	out := make(map[string]image.Image, len(src))
	for slot, path := range src {
		img, err := decodeFile(path)
		if err != nil {
			return nil, err
		}
		out[slot] = img
	}
	return out, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &AssetLoadError{Path: path, Err: err}
	}
	return img, nil
}

// LoadSprites builds the catalogue from dir, or generated placeholder art when
// dir is empty.
func LoadSprites(dir string, tm *TileMap, cfg Config) (*Sprites, error) {
	if dir == "" {
		return placeholderSprites(tm, cfg), nil
	}
	decoded, err := DecodeAssets(dir, tm)
	if err != nil {
		return nil, err
	}
	s := &Sprites{
		Player:      ebiten.NewImageFromImage(decoded["player"]),
		PlayerWreck: ebiten.NewImageFromImage(decoded["player_wreck"]),
		Agent:       ebiten.NewImageFromImage(decoded["agent"]),
		AgentWreck:  ebiten.NewImageFromImage(decoded["agent_wreck"]),
		Bullet:      ebiten.NewImageFromImage(decoded["bullet"]),
		Tiles:       make(map[string]*ebiten.Image),
	}
	for slot, img := range decoded {
		if id, ok := strings.CutPrefix(slot, "tile:"); ok {
			s.Tiles[id] = ebiten.NewImageFromImage(img)
		}
	}
	return s, nil
}

var (
	playerHull = color.RGBA{R: 70, G: 130, B: 60, A: 255}
	agentHull  = color.RGBA{R: 170, G: 50, B: 45, A: 255}
	wreckHull  = color.RGBA{R: 45, G: 42, B: 40, A: 255}
	trackCol   = color.RGBA{R: 30, G: 30, B: 28, A: 255}
	shellCol   = color.RGBA{R: 180, G: 240, B: 120, A: 255}
)

func placeholderSprites(tm *TileMap, cfg Config) *Sprites {
	s := &Sprites{
		Player:      drawTankPlaceholder(int(cfg.Player.Width), int(cfg.Player.Height), playerHull, true),
		PlayerWreck: drawTankPlaceholder(int(cfg.Player.Width), int(cfg.Player.Height), wreckHull, false),
		Agent:       drawTankPlaceholder(int(cfg.Agent.Width), int(cfg.Agent.Height), agentHull, true),
		AgentWreck:  drawTankPlaceholder(int(cfg.Agent.Width), int(cfg.Agent.Height), wreckHull, false),
		Tiles:       make(map[string]*ebiten.Image),
	}
	bw, bh := max(int(cfg.Projectile.Width), 1), max(int(cfg.Projectile.Height), 1)
	s.Bullet = ebiten.NewImage(bw, bh)
	vector.DrawFilledRect(s.Bullet, 0, 0, float32(bw), float32(bh), shellCol, false)

	if tm != nil {
		for _, id := range tm.IDs {
			if _, ok := s.Tiles[id]; ok {
				continue
			}
			s.Tiles[id] = drawTilePlaceholder(id)
		}
	}
	return s
}

// drawTankPlaceholder draws a hull with side tracks and, for live tanks, a
// turret and a barrel pointing down.
func drawTankPlaceholder(w, h int, hull color.RGBA, turret bool) *ebiten.Image {
	w, h = max(w, 4), max(h, 4)
	img := ebiten.NewImage(w, h)
	fw, fh := float32(w), float32(h)
	track := fw * 0.18
	vector.DrawFilledRect(img, 0, 0, track, fh, trackCol, false)
	vector.DrawFilledRect(img, fw-track, 0, track, fh, trackCol, false)
	vector.DrawFilledRect(img, track, fh*0.08, fw-2*track, fh*0.84, hull, false)
	if !turret {
		vector.StrokeLine(img, track, fh*0.2, fw-track, fh*0.8, 2, trackCol, false)
		return img
	}
	darker := color.RGBA{R: hull.R / 2, G: hull.G / 2, B: hull.B / 2, A: 255}
	vector.DrawFilledCircle(img, fw/2, fh*0.45, fw*0.2, darker, false)
	vector.DrawFilledRect(img, fw/2-fw*0.05, fh*0.45, fw*0.1, fh*0.55, darker, false)
	return img
}

func drawTilePlaceholder(id string) *ebiten.Image {
	img := ebiten.NewImage(TileSize, TileSize)
	r, g, b := groundBaseColour(groundOf(id), false)
	img.Fill(color.RGBA{R: r, G: g, B: b, A: 255})
	if isRoadID(id) {
		rr, rg, rb := groundBaseColour(groundOf(id), true)
		road := color.RGBA{R: rr, G: rg, B: rb, A: 255}
		// Roads run through the middle of the tile.
		vector.DrawFilledRect(img, TileSize*0.3, 0, TileSize*0.4, TileSize, road, false)
	}
	vector.StrokeRect(img, 0, 0, TileSize, TileSize, 1, color.RGBA{A: 30}, false)
	return img
}

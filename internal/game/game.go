package game

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"
)

// hudScale is the integer upscale factor applied to HUD text.
const hudScale = 2

// Health bar geometry: one box per remaining health point.
const (
	healthBoxSize    = 8
	healthBoxSpacing = 2
	healthBarLift    = 20
)

var (
	healthFill    = color.RGBA{R: 239, G: 68, B: 68, A: 255}
	healthOutline = color.RGBA{R: 15, G: 23, B: 42, A: 255}
	endTextCol    = color.RGBA{R: 0, G: 0, B: 128, A: 255}
	rowTextCol    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	rowOutlineCol = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

// keyBindings maps logical keys onto physical ones.
var keyBindings = map[Key][]ebiten.Key{
	KeyUp:      {ebiten.KeyArrowUp},
	KeyDown:    {ebiten.KeyArrowDown},
	KeyLeft:    {ebiten.KeyArrowLeft},
	KeyRight:   {ebiten.KeyArrowRight},
	KeyW:       {ebiten.KeyW},
	KeyA:       {ebiten.KeyA},
	KeyS:       {ebiten.KeyS},
	KeyD:       {ebiten.KeyD},
	KeyFire:    {ebiten.KeySpace},
	KeyRestart: {ebiten.KeyR},
	KeyCopy:    {ebiten.KeyC},
	KeyQuit:    {ebiten.KeyEscape},
}

// Game is the ebiten front end around a Round. It samples the keyboard,
// ticks the round on a monotonic millisecond clock and renders the result.
type Game struct {
	cfg       Config
	roundOpts []RoundOption
	log       zerolog.Logger

	keys     KeySet
	prevKeys map[Key]bool
	rng      *rand.Rand

	round   *Round
	tiles   *TileMap
	sprites *Sprites
	effects *Effects
	face    *text.GoXFace
	hudBuf  *ebiten.Image

	origin time.Time
	status string
}

// New builds the game and starts the first round. opts are applied to every
// round, including restarts.
func New(cfg Config, tiles *TileMap, sprites *Sprites, log zerolog.Logger, opts ...RoundOption) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:       cfg,
		roundOpts: append([]RoundOption{WithLogger(log)}, opts...),
		log:       log,
		keys:      KeySet{},
		prevKeys:  make(map[Key]bool),
		rng:       rand.New(rand.NewSource(seed)),
		tiles:     tiles,
		sprites:   sprites,
		effects:   NewEffects(),
		face:      text.NewGoXFace(basicfont.Face7x13),
		hudBuf:    ebiten.NewImage(cfg.ArenaWidth/hudScale, cfg.ArenaHeight/hudScale),
		origin:    time.Now(),
	}
	g.round = SetupRound(cfg, g.keys, g.rng, g.now(), g.roundOpts...)
	return g
}

// Round returns the round in play.
func (g *Game) Round() *Round { return g.round }

func (g *Game) now() int64 {
	return time.Since(g.origin).Milliseconds()
}

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	g.round.Tick(g.now())
	g.effects.Capture(g.round)
	g.effects.Update()
	return nil
}

// handleInput samples held keys into the player's key set and handles the
// edge-triggered commands.
func (g *Game) handleInput() error {
	current := make(map[Key]bool, len(keyBindings))
	pressed := make([]Key, 0, 4)
	for k, phys := range keyBindings {
		for _, p := range phys {
			if ebiten.IsKeyPressed(p) {
				current[k] = true
				pressed = append(pressed, k)
				break
			}
		}
	}
	g.keys.Press(pressed...)
	defer func() { g.prevKeys = current }()

	if current[KeyQuit] && !g.prevKeys[KeyQuit] {
		return ebiten.Termination
	}
	if !g.round.Over() {
		return nil
	}
	if current[KeyRestart] && !g.prevKeys[KeyRestart] {
		g.restart()
	}
	if current[KeyCopy] && !g.prevKeys[KeyCopy] {
		if err := CopyReport(g.round, g.now()); err != nil {
			g.log.Warn().Err(err).Msg("could not copy round report")
			g.status = "clipboard unavailable"
		} else {
			g.status = "report copied"
		}
	}
	return nil
}

func (g *Game) restart() {
	g.round = SetupRound(g.cfg, g.keys, g.rng, g.now(), g.roundOpts...)
	g.effects.Clear()
	g.status = ""
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawTiles(screen)

	// Wrecks stay on the floor after leaving the roster.
	for _, a := range g.round.Agents() {
		if !a.Alive() {
			g.drawVehicle(screen, g.sprites.AgentWreck, a)
		}
	}
	if p := g.round.Player(); p != nil && !p.Alive() {
		g.drawVehicle(screen, g.sprites.PlayerWreck, p)
	}

	for _, v := range g.round.Roster().Snapshot() {
		img := g.sprites.Agent
		if v.Team() == TeamPlayer {
			img = g.sprites.Player
		}
		g.drawVehicle(screen, img, v)
		drawHealthBar(screen, v)
	}
	for _, v := range g.round.Roster().Snapshot() {
		for _, p := range v.Projectiles() {
			g.drawProjectile(screen, p)
		}
	}

	g.effects.Draw(screen)
	g.drawHUD(screen)
	g.round.Feed().Draw(screen, g.cfg.ArenaWidth)

	if g.round.Over() {
		g.drawEndScreen(screen)
	}
}

func (g *Game) drawTiles(screen *ebiten.Image) {
	if g.tiles == nil {
		screen.Fill(color.RGBA{R: 30, G: 45, B: 30, A: 255})
		return
	}
	for row := 0; row < g.tiles.Rows; row++ {
		for col := 0; col < g.tiles.Cols; col++ {
			img := g.sprites.Tile(g.tiles.At(col, row))
			if img == nil {
				continue
			}
			b := img.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(float64(TileSize)/float64(b.Dx()), float64(TileSize)/float64(b.Dy()))
			op.GeoM.Translate(float64(col*TileSize), float64(row*TileSize))
			screen.DrawImage(img, op)
		}
	}
}

func (g *Game) drawVehicle(screen *ebiten.Image, img *ebiten.Image, v *Vehicle) {
	w, h := v.Size()
	cx, cy := v.Rect().Center()
	drawRotated(screen, img, w, h, cx, cy, v.Facing())
}

func (g *Game) drawProjectile(screen *ebiten.Image, p *Projectile) {
	cx, cy := p.Rect().Center()
	drawRotated(screen, g.sprites.Bullet, g.cfg.Projectile.Width, g.cfg.Projectile.Height, cx, cy, p.Direction())
}

// drawRotated scales img to w x h, rotates it to face d and centres it on
// (cx, cy). Sprites face down at rotation 0 and angles run counter-clockwise.
func drawRotated(screen, img *ebiten.Image, w, h, cx, cy float64, d Direction) {
	if img == nil {
		return
	}
	b := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(-d.Angle() * math.Pi / 180)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func drawHealthBar(screen *ebiten.Image, v *Vehicle) {
	n := v.Health()
	if n <= 0 {
		return
	}
	x, y := v.Position()
	w, _ := v.Size()
	total := float32(n*healthBoxSize + (n-1)*healthBoxSpacing)
	bx := float32(x+w/2) - total/2
	by := float32(y - healthBarLift)
	for i := 0; i < n; i++ {
		ox := bx + float32(i*(healthBoxSize+healthBoxSpacing))
		vector.DrawFilledRect(screen, ox, by, healthBoxSize, healthBoxSize, healthFill, false)
		vector.StrokeRect(screen, ox, by, healthBoxSize, healthBoxSize, 2, healthOutline, false)
	}
}

// drawHUD renders the round counters in the top-left corner. Text is drawn
// into hudBuf at 1x then composited onto the screen at hudScale.
func (g *Game) drawHUD(screen *ebiten.Image) {
	now := g.now()
	best := "--"
	if len(g.round.Leaderboard()) > 0 {
		best = fmt.Sprintf("%.2fs", g.round.BestScore())
	}
	lines := []string{
		fmt.Sprintf("Agents: %d", g.round.AgentsAlive()),
		fmt.Sprintf("Time:   %.1fs", g.round.Elapsed(now)),
		fmt.Sprintf("Best:   %s", best),
	}
	if p := g.round.Player(); p != nil {
		lines = append(lines, fmt.Sprintf("Health: %d/%d", p.Health(), p.MaxHealth()))
	}

	const lineH = 12 // debug font line height at 1x
	const charW = 6  // debug font char width at 1x
	const padX = 5
	const padY = 4

	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*lineH + padY*2)
	bx, by := float32(4), float32(4)

	g.hudBuf.Clear()
	vector.DrawFilledRect(g.hudBuf, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 190}, false)
	vector.StrokeRect(g.hudBuf, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(g.hudBuf, line, int(bx)+padX, int(by)+padY+i*lineH)
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(hudScale, hudScale)
	screen.DrawImage(g.hudBuf, opts)
}

func (g *Game) drawEndScreen(screen *ebiten.Image) {
	w, h := float64(g.cfg.ArenaWidth), float64(g.cfg.ArenaHeight)
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), color.RGBA{A: 90}, false)

	headline := "You Won!"
	if g.round.Phase() == PhaseLost {
		headline = "Destroyed!"
	}
	g.drawText(screen, headline, w/2, h/2-100, 3, true, endTextCol)
	if g.round.Phase() == PhaseWon {
		g.drawText(screen, fmt.Sprintf("Your score: %.2f seconds", g.round.Elapsed(g.now())), w/2, h/2-40, 2, true, endTextCol)
	}

	for i, rec := range g.round.Leaderboard() {
		g.drawOutlinedText(screen, FormatLeaderboardRow(i+1, rec), w/4, h/2+40+float64(i)*30, 2)
	}

	hint := "R restart   C copy report   Esc quit"
	if g.status != "" {
		hint += "   (" + g.status + ")"
	}
	g.drawText(screen, hint, w/2, h-30, 1, true, rowTextCol)
}

// drawText renders s with its top edge at y. centred aligns (x, y) to the
// middle of the line.
func (g *Game) drawText(screen *ebiten.Image, s string, x, y, scale float64, centred bool, clr color.Color) {
	op := &text.DrawOptions{}
	if centred {
		op.PrimaryAlign = text.AlignCenter
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, g.face, op)
}

// drawOutlinedText draws white text over a dark copy offset on each diagonal.
func (g *Game) drawOutlinedText(screen *ebiten.Image, s string, x, y, scale float64) {
	for _, off := range [4][2]float64{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		g.drawText(screen, s, x+off[0], y+off[1], scale, false, rowOutlineCol)
	}
	g.drawText(screen, s, x, y, scale, false, rowTextCol)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.ArenaWidth, g.cfg.ArenaHeight
}

// IsTermination reports whether err is the clean-exit signal from Update.
func IsTermination(err error) bool {
	return errors.Is(err, ebiten.Termination)
}

package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedMaxEntries = 8
	feedLineHeight = 14
	feedPanelWidth = 220
)

// FeedEntry is a single line in the kill feed.
type FeedEntry struct {
	Tick    int
	Label   string // shooter, e.g. "P", "A12"
	Team    Team
	Message string
}

// KillFeed is a ring buffer of recent kills rendered in the corner of the arena.
type KillFeed struct {
	entries []FeedEntry
	head    int
	count   int
}

func NewKillFeed() *KillFeed {
	return &KillFeed{
		entries: make([]FeedEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (kf *KillFeed) Add(tick int, label string, team Team, msg string) {
	kf.entries[kf.head] = FeedEntry{
		Tick:    tick,
		Label:   label,
		Team:    team,
		Message: msg,
	}
	kf.head = (kf.head + 1) % feedMaxEntries
	if kf.count < feedMaxEntries {
		kf.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (kf *KillFeed) Recent() []FeedEntry {
	result := make([]FeedEntry, kf.count)
	for i := 0; i < kf.count; i++ {
		idx := (kf.head - kf.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = kf.entries[idx]
	}
	return result
}

// Len returns the number of buffered entries.
func (kf *KillFeed) Len() int { return kf.count }

// Draw renders the feed as a translucent panel anchored at the top-right
// corner of a screen of width screenW.
func (kf *KillFeed) Draw(screen *ebiten.Image, screenW int) {
	entries := kf.Recent()
	if len(entries) == 0 {
		return
	}
	x := screenW - feedPanelWidth - 8
	h := len(entries)*feedLineHeight + 6
	vector.DrawFilledRect(screen, float32(x), 8, feedPanelWidth, float32(h), color.RGBA{R: 10, G: 12, B: 10, A: 170}, false)

	y := 11
	for i, e := range entries {
		// Team colour dot; the newest line gets a highlight row.
		dotCol := color.RGBA{R: 70, G: 190, B: 90, A: 255}
		if e.Team == TeamAgent {
			dotCol = color.RGBA{R: 210, G: 70, B: 70, A: 255}
		}
		if i == len(entries)-1 {
			vector.DrawFilledRect(screen, float32(x+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.DrawFilledRect(screen, float32(x+5), float32(y+4), 3, 5, dotCol, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d [%s] %s", e.Tick, e.Label, e.Message), x+12, y-1)
		y += feedLineHeight
	}
}

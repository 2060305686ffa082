package game

// Config is the immutable set of tuning values for one arena. It is built once
// at startup and passed by value to every component that needs it.
type Config struct {
	ArenaWidth  int
	ArenaHeight int
	TPS         int // ticks per second (frame cap)
	Seed        int64

	Player     VehicleSpec
	PlayerX    float64
	PlayerY    float64
	Agent      VehicleSpec
	AgentCount int
	// AgentIntervalsMs is the set each agent draws its wander re-roll interval from.
	AgentIntervalsMs []int64
	// AgentFireMs is how often a wandering agent asks to fire. 0 disables agent fire.
	AgentFireMs int64

	Projectile ProjectileSpec

	// AssetDir is the sprite/tile root. Empty means generated placeholder art.
	AssetDir     string
	AudioEnabled bool
}

// VehicleSpec describes one vehicle class.
type VehicleSpec struct {
	Width    float64
	Height   float64
	Speed    float64 // pixels per tick
	Health   int
	ReloadMs int64
}

// ProjectileSpec describes the shell every vehicle fires.
type ProjectileSpec struct {
	Speed  float64 // pixels per tick
	Width  float64 // footprint when travelling vertically
	Height float64
	// MuzzleShiftX/Y position a fresh shell at the turret mouth.
	MuzzleShiftX float64
	MuzzleShiftY float64
}

// DefaultConfig returns the compiled-in tuning: a 960x640 arena (15x10 tiles
// of 64px), a green player tank and a pack of one-hit red agents.
func DefaultConfig() Config {
	return Config{
		ArenaWidth:  64 * 15,
		ArenaHeight: 64 * 10,
		TPS:         60,
		Seed:        0,
		Player: VehicleSpec{
			Width:    42,
			Height:   46,
			Speed:    2,
			Health:   6,
			ReloadMs: 300,
		},
		PlayerX: 480,
		PlayerY: 320,
		Agent: VehicleSpec{
			Width:    31,
			Height:   33,
			Speed:    2,
			Health:   1,
			ReloadMs: 1000,
		},
		AgentCount:       40,
		AgentIntervalsMs: []int64{1000, 1200, 500, 800, 1500},
		AgentFireMs:      0,
		Projectile: ProjectileSpec{
			Speed:        6,
			Width:        8,
			Height:       20,
			MuzzleShiftX: 17,
			MuzzleShiftY: 13,
		},
		AudioEnabled: true,
	}
}

// Arena returns the collision space bounds for this config.
func (c Config) Arena() Arena {
	return Arena{Width: float64(c.ArenaWidth), Height: float64(c.ArenaHeight)}
}

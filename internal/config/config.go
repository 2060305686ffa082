// Package config loads game settings from defaults, an optional JSON file,
// an optional .env file and TANKARENA_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tankarena/tank-arena/internal/game"
	"github.com/tankarena/tank-arena/internal/scores"
)

// FileName is the config file looked up in the config directory.
const FileName = "tank_arena.cfg.json"

// EnvPrefix prefixes every environment override, e.g. TANKARENA_AGENT_COUNT.
const EnvPrefix = "TANKARENA"

// Score ledger backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Log output formats.
const (
	LogConsole = "console"
	LogJSON    = "json"
)

// Settings is everything the binaries need at startup.
type Settings struct {
	Game game.Config

	ScoresBackend string
	ScoresPath    string
	ScoresMax     int

	LogLevel  string
	LogFormat string
}

func setDefaults() {
	d := game.DefaultConfig()

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFormat", LogConsole)
	viper.SetDefault("seed", d.Seed)
	viper.SetDefault("tps", d.TPS)

	viper.SetDefault("arena.width", d.ArenaWidth)
	viper.SetDefault("arena.height", d.ArenaHeight)

	viper.SetDefault("player.x", d.PlayerX)
	viper.SetDefault("player.y", d.PlayerY)
	viper.SetDefault("player.width", d.Player.Width)
	viper.SetDefault("player.height", d.Player.Height)
	viper.SetDefault("player.speed", d.Player.Speed)
	viper.SetDefault("player.health", d.Player.Health)
	viper.SetDefault("player.reloadMs", d.Player.ReloadMs)

	viper.SetDefault("agent.count", d.AgentCount)
	viper.SetDefault("agent.width", d.Agent.Width)
	viper.SetDefault("agent.height", d.Agent.Height)
	viper.SetDefault("agent.speed", d.Agent.Speed)
	viper.SetDefault("agent.health", d.Agent.Health)
	viper.SetDefault("agent.reloadMs", d.Agent.ReloadMs)
	viper.SetDefault("agent.intervalsMs", d.AgentIntervalsMs)
	viper.SetDefault("agent.fireMs", d.AgentFireMs)

	viper.SetDefault("projectile.speed", d.Projectile.Speed)
	viper.SetDefault("projectile.width", d.Projectile.Width)
	viper.SetDefault("projectile.height", d.Projectile.Height)
	viper.SetDefault("projectile.muzzleShiftX", d.Projectile.MuzzleShiftX)
	viper.SetDefault("projectile.muzzleShiftY", d.Projectile.MuzzleShiftY)

	viper.SetDefault("scores.backend", BackendJSON)
	viper.SetDefault("scores.path", "")
	viper.SetDefault("scores.max", scores.MaxRecords)

	viper.SetDefault("assets.dir", "")
	viper.SetDefault("audio.enabled", d.AudioEnabled)
}

// Load reads settings. configDir holds the optional config file and .env.
// A missing file leaves the defaults in place; a malformed one is an error.
func Load(configDir string) (Settings, error) {
	if err := godotenv.Load(filepath.Join(configDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("error reading .env file: %v", err)
	}

	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("error reading config file: %v", err)
		}
	}

	s := current()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// current snapshots the viper state into Settings.
func current() Settings {
	var g game.Config
	g.ArenaWidth = viper.GetInt("arena.width")
	g.ArenaHeight = viper.GetInt("arena.height")
	g.TPS = viper.GetInt("tps")
	g.Seed = viper.GetInt64("seed")

	g.PlayerX = viper.GetFloat64("player.x")
	g.PlayerY = viper.GetFloat64("player.y")
	g.Player = game.VehicleSpec{
		Width:    viper.GetFloat64("player.width"),
		Height:   viper.GetFloat64("player.height"),
		Speed:    viper.GetFloat64("player.speed"),
		Health:   viper.GetInt("player.health"),
		ReloadMs: viper.GetInt64("player.reloadMs"),
	}

	g.AgentCount = viper.GetInt("agent.count")
	g.Agent = game.VehicleSpec{
		Width:    viper.GetFloat64("agent.width"),
		Height:   viper.GetFloat64("agent.height"),
		Speed:    viper.GetFloat64("agent.speed"),
		Health:   viper.GetInt("agent.health"),
		ReloadMs: viper.GetInt64("agent.reloadMs"),
	}
	for _, ms := range viper.GetIntSlice("agent.intervalsMs") {
		g.AgentIntervalsMs = append(g.AgentIntervalsMs, int64(ms))
	}
	g.AgentFireMs = viper.GetInt64("agent.fireMs")

	g.Projectile = game.ProjectileSpec{
		Speed:        viper.GetFloat64("projectile.speed"),
		Width:        viper.GetFloat64("projectile.width"),
		Height:       viper.GetFloat64("projectile.height"),
		MuzzleShiftX: viper.GetFloat64("projectile.muzzleShiftX"),
		MuzzleShiftY: viper.GetFloat64("projectile.muzzleShiftY"),
	}

	g.AssetDir = viper.GetString("assets.dir")
	g.AudioEnabled = viper.GetBool("audio.enabled")

	s := Settings{
		Game:          g,
		ScoresBackend: strings.ToLower(viper.GetString("scores.backend")),
		ScoresPath:    viper.GetString("scores.path"),
		ScoresMax:     viper.GetInt("scores.max"),
		LogLevel:      viper.GetString("logLevel"),
		LogFormat:     strings.ToLower(viper.GetString("logFormat")),
	}
	if s.ScoresPath == "" {
		s.ScoresPath = scores.DefaultFile
		if s.ScoresBackend == BackendSQLite {
			s.ScoresPath = scores.DefaultDBFile
		}
	}
	return s
}

// Validate rejects settings the simulation cannot run with.
func (s Settings) Validate() error {
	g := s.Game
	switch {
	case g.ArenaWidth <= 0 || g.ArenaHeight <= 0:
		return fmt.Errorf("arena size must be positive, got %dx%d", g.ArenaWidth, g.ArenaHeight)
	case g.TPS <= 0:
		return fmt.Errorf("tps must be positive, got %d", g.TPS)
	case g.Player.Health <= 0:
		return fmt.Errorf("player.health must be positive, got %d", g.Player.Health)
	case g.Agent.Health <= 0:
		return fmt.Errorf("agent.health must be positive, got %d", g.Agent.Health)
	case g.AgentCount < 0:
		return fmt.Errorf("agent.count must not be negative, got %d", g.AgentCount)
	case g.Player.ReloadMs < 0 || g.Agent.ReloadMs < 0 || g.AgentFireMs < 0:
		return errors.New("reload and fire intervals must not be negative")
	case len(g.AgentIntervalsMs) == 0:
		return errors.New("agent.intervalsMs must list at least one interval")
	}
	for _, ms := range g.AgentIntervalsMs {
		if ms <= 0 {
			return fmt.Errorf("agent.intervalsMs entries must be positive, got %d", ms)
		}
	}
	if s.ScoresBackend != BackendJSON && s.ScoresBackend != BackendSQLite {
		return fmt.Errorf("unknown scores.backend %q", s.ScoresBackend)
	}
	if s.LogFormat != LogConsole && s.LogFormat != LogJSON {
		return fmt.Errorf("unknown logFormat %q", s.LogFormat)
	}
	return nil
}

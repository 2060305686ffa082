package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/tankarena/tank-arena/internal/audio"
	"github.com/tankarena/tank-arena/internal/config"
	"github.com/tankarena/tank-arena/internal/game"
	"github.com/tankarena/tank-arena/internal/logging"
	"github.com/tankarena/tank-arena/internal/scores"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tank-arena: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(".")
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, settings.LogLevel)
	if settings.LogFormat == config.LogJSON {
		log = logging.NewJSON(os.Stderr, settings.LogLevel)
	}
	cfg := settings.Game

	ledger, closeLedger, err := openLedger(settings, log)
	if err != nil {
		return err
	}
	defer closeLedger()

	tiles := game.DefaultTileMap()
	sprites, err := game.LoadSprites(cfg.AssetDir, tiles, cfg)
	if err != nil {
		var ae *game.AssetLoadError
		switch {
		case errors.As(err, &ae):
			return fmt.Errorf("cannot start without asset %s: %w", ae.Path, ae.Err)
		case errors.Is(err, game.ErrUnknownTile):
			return fmt.Errorf("tile map references an unknown tile: %w", err)
		}
		return err
	}

	opts := []game.RoundOption{game.WithLedger(ledger)}
	if cfg.AudioEnabled {
		sm := audio.NewSoundManager(time.Now().UnixNano())
		if err := sm.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing silently")
		} else {
			defer sm.Cleanup()
			opts = append(opts, game.WithSound(sm))
		}
	}

	log.Info().
		Int("agents", cfg.AgentCount).
		Str("scores", settings.ScoresBackend).
		Str("assets", assetLabel(cfg.AssetDir)).
		Msg("starting tank arena")

	ebiten.SetWindowTitle("Tank Arena")
	ebiten.SetWindowSize(cfg.ArenaWidth, cfg.ArenaHeight)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(game.New(cfg, tiles, sprites, log, opts...)); err != nil && !game.IsTermination(err) {
		return err
	}
	log.Info().Msg("bye")
	return nil
}

// openLedger returns the configured score store and its closer.
func openLedger(s config.Settings, log zerolog.Logger) (game.ScoreLedger, func(), error) {
	opts := []scores.Option{scores.WithMaxRecords(s.ScoresMax), scores.WithLogger(log)}
	switch s.ScoresBackend {
	case config.BackendSQLite:
		l, err := scores.OpenSQLite(s.ScoresPath, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("open score database: %w", err)
		}
		return l, func() {
			if err := l.Close(); err != nil {
				log.Warn().Err(err).Msg("closing score database")
			}
		}, nil
	default:
		return scores.NewFileLedger(s.ScoresPath, opts...), func() {}, nil
	}
}

func assetLabel(dir string) string {
	if dir == "" {
		return "placeholder"
	}
	return dir
}

// Package injector wires the game's collaborators together with google/wire.
package injector

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/events"
	"github.com/plus3/spacecourier/game"
	"github.com/plus3/spacecourier/highscore"
	"github.com/plus3/spacecourier/internal/logging"
	"github.com/plus3/spacecourier/sfx"
)

// App is a fully wired game with its collaborators.
type App struct {
	Config  config.Config
	Session uuid.UUID
	Logger  *zap.Logger
	Bus     *events.Bus
	Game    *game.Game
	Scores  *highscore.Tracker
	Cues    *sfx.Cues
}

func ProvideSession() uuid.UUID {
	return uuid.New()
}

func ProvideLogger(cfg config.Config, session uuid.UUID) (*zap.Logger, func(), error) {
	logger, err := logging.New(cfg.Log, session)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideBus(logger *zap.Logger) *events.Bus {
	return events.NewBus(events.WithLogger(logger.Named("events")))
}

// ProvideBackend opens highscore storage. Without storage the game still
// runs and keeps scores in memory.
func ProvideBackend(cfg config.Config, logger *zap.Logger) highscore.Backend {
	backend, err := highscore.Open(cfg.Storage.AppName)
	if err != nil {
		logger.Warn("highscores will not persist", zap.Error(err))
		return nil
	}
	return backend
}

// ProvideTracker attaches the highscore tracker to bus. Its cleanup saves a
// best score reached in a run that was quit before the player died.
func ProvideTracker(backend highscore.Backend, session uuid.UUID, logger *zap.Logger, bus *events.Bus) (*highscore.Tracker, func()) {
	logger = logger.Named("highscore")
	tracker := highscore.NewTracker(backend, session, logger)
	tracker.Attach(bus)
	return tracker, func() {
		if err := tracker.Save(); err != nil {
			logger.Warn("highscore not saved", zap.Error(err))
		}
	}
}

func ProvideCues(player sfx.Player, logger *zap.Logger, bus *events.Bus) *sfx.Cues {
	cues := sfx.NewCues(player, logger.Named("sfx"))
	cues.Attach(bus)
	return cues
}

func ProvideGame(cfg config.Config, bus *events.Bus, logger *zap.Logger, tracker *highscore.Tracker) *game.Game {
	g := game.New(cfg, bus, logger.Named("game"))
	g.SeedBestScore(tracker.Best())
	return g
}

func NewApp(cfg config.Config, session uuid.UUID, logger *zap.Logger, bus *events.Bus, g *game.Game, scores *highscore.Tracker, cues *sfx.Cues) *App {
	return &App{
		Config:  cfg,
		Session: session,
		Logger:  logger,
		Bus:     bus,
		Game:    g,
		Scores:  scores,
		Cues:    cues,
	}
}

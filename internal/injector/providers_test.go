package injector

import (
	"testing"

	"github.com/google/uuid"
	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/events"
	"github.com/plus3/spacecourier/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProviders(t *testing.T) {
	cfg := config.Default()
	logger := zap.NewNop()
	bus := ProvideBus(logger)
	session := uuid.New()

	tracker, saveScores := ProvideTracker(nil, session, logger, bus)
	tracker.Submit(77)

	g := ProvideGame(cfg, bus, logger, tracker)
	assert.Equal(t, 77, g.BestScore())
	assert.Equal(t, game.StateLoading, g.State())

	// the tracker listens on the same bus as the game
	bus.Dispatch(events.HighscoreChangedEvent{NewHighscore: 90})
	assert.Equal(t, 90, tracker.Best())

	cues := ProvideCues(nil, logger, bus)
	assert.NotPanics(t, func() { bus.Dispatch(events.PlayerDeathEvent{Score: 1}) })

	assert.NotPanics(t, saveScores)

	app := NewApp(cfg, session, logger, bus, g, tracker, cues)
	assert.Same(t, g, app.Game)
	assert.Equal(t, session, app.Session)
}

func TestProvideLogger(t *testing.T) {
	cfg := config.Default()
	logger, cleanup, err := ProvideLogger(cfg, uuid.New())
	require.NoError(t, err)
	require.NotNil(t, logger)
	cleanup()

	cfg.Log.Level = "nope"
	_, _, err = ProvideLogger(cfg, uuid.New())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

// Package game assembles the ECS world, the systems and the event bus into
// a runnable game and drives its loading and running states.
package game

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/plus3/spacecourier/components"
	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/ecs"
	"github.com/plus3/spacecourier/events"
	"github.com/plus3/spacecourier/systems"
)

// State is the phase the game is in.
type State int

const (
	StateLoading State = iota
	StateRunning
	StateOver
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateRunning:
		return "running"
	case StateOver:
		return "over"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// System priorities. Lower runs first.
const (
	priorityHazards   = -10
	priorityMovement  = 0
	priorityCollision = 10
	priorityShield    = 20
	priorityScore     = 30
	priorityRemove    = 40
)

const (
	playerRadius = 20.0
	playerRank   = 1
	steerSpeed   = 240.0
)

// Game owns one world. Every method except SignalAssetsReady must be called
// from the frame goroutine.
type Game struct {
	cfg    config.Config
	logger *zap.Logger

	registry  *ecs.ComponentRegistry
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	bus       *events.Bus
	types     components.Types

	shields *systems.ShieldSystem
	hazards *hazardSystem
	best    ecs.Singleton[components.BestScore]

	assetsReady atomic.Bool
	state       State
	player      ecs.EntityId
	loadingTime float64
	lastReport  *ecs.FrameReport
}

// New builds the world and registers every system. The game starts in the
// loading state.
func New(cfg config.Config, bus *events.Bus, logger *zap.Logger) *Game {
	registry := ecs.NewComponentRegistry()
	storage := ecs.NewStorage(registry)

	g := &Game{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		storage:  storage,
		bus:      bus,
		types:    components.Register(registry),
		scheduler: ecs.NewScheduler(storage,
			ecs.WithLogger(logger.Named("scheduler")),
			ecs.WithHaltOnFault(cfg.Frame.HaltOnFault)),
	}

	g.shields = systems.NewShieldSystem(g.types, bus, systems.ShieldSettings{
		Cooldown:   cfg.Shield.Cooldown,
		ActiveTime: cfg.Shield.ActiveTime,
		AutoRearm:  cfg.Shield.AutoRearm,
	})
	g.hazards = newHazardSystem(g.types, cfg.Window)

	g.scheduler.Register(g.hazards, priorityHazards)
	g.scheduler.Register(systems.NewMovementSystem(g.types), priorityMovement)
	g.scheduler.Register(systems.NewCollisionSystem(g.types, systems.CollisionSettings{
		ShieldBonus: cfg.Shield.RankBonus,
		DeathDelay:  cfg.Removal.DeathDelay,
	}), priorityCollision)
	g.scheduler.Register(g.shields, priorityShield)
	g.scheduler.Register(systems.NewScoreSystem(storage, g.types, bus, cfg.Score.PointsPerSecond), priorityScore)
	g.scheduler.Register(systems.NewRemoveSystem(g.types, bus, logger.Named("remove")), priorityRemove)

	g.best.Init(storage)

	events.On(bus, func(e events.PlayerDeathEvent) error {
		g.state = StateOver
		g.player = 0
		g.logger.Info("game over", zap.Int("score", e.Score), zap.Int("best", g.BestScore()))
		return nil
	})

	return g
}

// SignalAssetsReady may be called from any goroutine. The signal is
// consumed at the start of the next Update.
func (g *Game) SignalAssetsReady() {
	g.assetsReady.Store(true)
}

// Update advances the game by dt seconds. While loading, only the loading
// clock advances. The returned error is non-nil when the frame faulted and
// the game is configured to halt on faults.
func (g *Game) Update(dt float64) (*ecs.FrameReport, error) {
	if g.state == StateLoading {
		if !g.assetsReady.CompareAndSwap(true, false) {
			g.loadingTime += dt
			return nil, nil
		}
		g.start()
	}

	report := g.scheduler.Once(dt)
	g.lastReport = report

	if report.Faulted {
		if g.cfg.Frame.HaltOnFault {
			return report, fmt.Errorf("%w: %w", ecs.ErrFrameFaulted, report.Err())
		}
		g.logger.Warn("frame faulted", zap.Uint64("frame", report.Frame), zap.Int("faults", len(report.Faults)))
	}
	return report, nil
}

func (g *Game) start() {
	g.logger.Info("assets ready", zap.Float64("loadingSeconds", g.loadingTime))
	g.state = StateRunning
	g.bus.Dispatch(events.AssetsReadyEvent{})
	g.spawnPlayer()
}

func (g *Game) spawnPlayer() {
	w := g.cfg.Window
	g.player = g.storage.Spawn(
		components.PlayerComponent{},
		components.Position{X: float64(w.Width) / 2, Y: float64(w.Height) * 0.8},
		components.Velocity{},
		components.Collider{Radius: playerRadius, Rank: playerRank},
		g.shields.NewShield(),
	)
}

// Restart spawns a new player after a game over.
func (g *Game) Restart() bool {
	if g.state != StateOver {
		return false
	}
	g.state = StateRunning
	g.spawnPlayer()
	return true
}

// SeedBestScore sets the best score known from earlier runs.
func (g *Game) SeedBestScore(best int) {
	ecs.NewSingleton[components.BestScore](g.storage).Get().Value = best
}

// BestScore returns the best truncated score including the current run.
func (g *Game) BestScore() int {
	if best := g.best.Get(); best != nil {
		return best.Value
	}
	return 0
}

// Steer sets the player's horizontal direction: -1 left, 0 stop, 1 right.
func (g *Game) Steer(direction float64) {
	if vel := ecs.ReadComponent[components.Velocity](g.storage, g.player); vel != nil {
		vel.DX = direction * steerSpeed
	}
}

// ActivateShield re-arms the player's shield if it is ready.
func (g *Game) ActivateShield() bool {
	return g.shields.Activate(g.storage, g.player)
}

func (g *Game) State() State { return g.state }
func (g *Game) Bus() *events.Bus { return g.bus }
func (g *Game) Storage() *ecs.Storage { return g.storage }
func (g *Game) Scheduler() *ecs.Scheduler { return g.scheduler }
func (g *Game) Types() components.Types { return g.types }
func (g *Game) LastReport() *ecs.FrameReport { return g.lastReport }
func (g *Game) Player() (ecs.EntityId, bool) { return g.player, g.storage.Alive(g.player) }
func (g *Game) Config() config.Config { return g.cfg }

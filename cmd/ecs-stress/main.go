// Command ecs-stress runs the game systems headless against a large
// population of hazards and prints a timing report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/spacecourier/components"
	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/ecs"
	"github.com/plus3/spacecourier/events"
	"github.com/plus3/spacecourier/systems"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 2000, "The number of hazards kept alive.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a cpu, mem or trace profile to the current directory.")
	flag.Parse()

	if p := startProfile(*profileMode); p != nil {
		defer p.Stop()
	}

	log.Println("Starting ECS stress test...")

	cfg := config.Default()
	registry := ecs.NewComponentRegistry()
	types := components.Register(registry)
	storage := ecs.NewStorage(registry)
	bus := events.NewBus()
	scheduler := ecs.NewScheduler(storage, ecs.WithLogger(zap.NewNop()))

	scheduler.Register(systems.NewMovementSystem(types), 0)
	scheduler.Register(systems.NewCollisionSystem(types, systems.CollisionSettings{
		ShieldBonus: cfg.Shield.RankBonus,
		DeathDelay:  cfg.Removal.DeathDelay,
	}), 10)
	scheduler.Register(systems.NewShieldSystem(types, bus, systems.ShieldSettings{
		Cooldown:   cfg.Shield.Cooldown,
		ActiveTime: cfg.Shield.ActiveTime,
		AutoRearm:  cfg.Shield.AutoRearm,
	}), 20)
	scheduler.Register(systems.NewScoreSystem(storage, types, bus, cfg.Score.PointsPerSecond), 30)
	scheduler.Register(systems.NewRemoveSystem(types, bus, zap.NewNop()), 40)

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Systems:        len(scheduler.Order()),
		GCPauseMetrics: *gcPauseMetrics,
	}
	events.On(bus, func(events.ShieldActivatedEvent) error {
		report.ShieldActivations++
		return nil
	})

	rng := rand.New(rand.NewPCG(1, 2))
	log.Printf("Populating storage with %d entities...\n", *entityCount)
	report.Spawned += populate(storage, rng, cfg.Window, *entityCount)
	log.Println("Population complete.")

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			frame := scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
			if frame.Faulted {
				report.FaultedFrames++
			}

			report.Spawned += populate(storage, rng, cfg.Window, *entityCount-storage.Len())
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.SystemStats = scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

func startProfile(mode string) interface{ Stop() } {
	opts := []func(*profile.Profile){profile.ProfilePath("."), profile.NoShutdownHook}
	switch mode {
	case "":
		return nil
	case "cpu":
		return profile.Start(append(opts, profile.CPUProfile)...)
	case "mem":
		return profile.Start(append(opts, profile.MemProfileAllocs)...)
	case "trace":
		return profile.Start(append(opts, profile.TraceProfile)...)
	default:
		log.Fatalf("Unknown profile mode %q", mode)
		return nil
	}
}

// populate spawns n hazards at random positions drifting in random
// directions. Every tenth hazard carries a shield.
func populate(storage *ecs.Storage, rng *rand.Rand, area config.Window, n int) int {
	for i := 0; i < n; i++ {
		parts := []any{
			components.Position{X: rng.Float64() * float64(area.Width), Y: rng.Float64() * float64(area.Height)},
			components.Velocity{DX: rng.Float64()*80 - 40, DY: rng.Float64()*80 - 40},
			components.Collider{Radius: 4, Rank: rng.IntN(3)},
		}
		if i%10 == 0 {
			parts = append(parts, components.NewShieldComponent())
		}
		storage.Spawn(parts...)
	}
	return max(n, 0)
}

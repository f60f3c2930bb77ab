// Command spacecourier runs the game in an ebiten window.
package main

import (
	"flag"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/ecs"
	"github.com/plus3/spacecourier/ecs/debugui"
	debugui_ebiten "github.com/plus3/spacecourier/ecs/debugui/ebiten"
	"github.com/plus3/spacecourier/internal/injector"
	"github.com/plus3/spacecourier/sfx"
)

const priorityDebugUI = 1000

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	debug := flag.Bool("debug", false, "Show the ECS inspection panels.")
	mute := flag.Bool("mute", false, "Disable sound effects.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var player sfx.Player
	if !*mute {
		if player, err = sfx.OpenSpeaker(); err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			defer sfx.CloseSpeaker()
		}
	}

	app, cleanup, err := injector.InitializeApp(cfg, player)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer cleanup()

	h := &host{app: app}

	if *debug {
		backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title+" (debug)", cfg.Window.Width*2, cfg.Window.Height)
		storage := app.Game.Storage()
		h.imgui = ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage, backend)
		_, imguiSystem := debugui.SpawnDebugUI(storage, app.Game.Scheduler(), app.Bus)
		app.Game.Scheduler().Register(imguiSystem, priorityDebugUI)
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetTPS(cfg.Frame.TickRate)

	go func() {
		h.stars = makeStars(rand.New(rand.NewPCG(uint64(app.Session.ID()), 7)), cfg.Window, starCount)
		app.Game.SignalAssetsReady()
	}()

	app.Logger.Info("starting", zap.Bool("debug", *debug), zap.Bool("sound", player != nil))
	if err := ebiten.RunGame(h); err != nil {
		app.Logger.Error("game stopped", zap.Error(err))
	}
}

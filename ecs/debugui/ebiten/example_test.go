package ebiten_test

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/ecs"
	"github.com/plus3/spacecourier/ecs/debugui"
	debugui_ebiten "github.com/plus3/spacecourier/ecs/debugui/ebiten"
	"github.com/plus3/spacecourier/events"
	"github.com/plus3/spacecourier/game"
)

// Host implements ebiten.Game and draws the debug panels over a game.
type Host struct {
	game         *game.Game
	imguiBackend *ecs.Singleton[debugui_ebiten.ImguiBackend]
}

func (h *Host) Update() error {
	// Begin ImGui frame before executing systems
	h.imguiBackend.Get().BeginFrame()

	// Execute all ECS systems (including ImguiSystem)
	_, err := h.game.Update(1.0 / 60.0)

	// End ImGui frame after systems complete
	h.imguiBackend.Get().EndFrame()

	return err
}

func (h *Host) Draw(screen *ebiten.Image) {
	// Draw game content to screen
	// ...

	// Draw ImGui overlay on top
	h.imguiBackend.Get().Draw(screen)
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.imguiBackend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	cfg := config.Default()
	backend := debugui_ebiten.NewImguiBackend("Space Courier Debug", 1280, 720)

	g := game.New(cfg, events.NewBus(), zap.NewNop())
	storage := g.Storage()

	// Register ImGui backend as a singleton
	ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage, backend)

	// Spawn the inspection panels and the system that renders them
	_, imguiSystem := debugui.SpawnDebugUI(storage, g.Scheduler(), g.Bus())
	g.Scheduler().Register(imguiSystem, 1000)
	g.SignalAssetsReady()

	host := &Host{
		game:         g,
		imguiBackend: ecs.NewSingleton[debugui_ebiten.ImguiBackend](storage),
	}

	// Run the game
	if err := ebiten.RunGame(host); err != nil {
		panic(err)
	}
}

package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/ecs"
	debugui_ebiten "github.com/plus3/spacecourier/ecs/debugui/ebiten"
	"github.com/plus3/spacecourier/game"
	"github.com/plus3/spacecourier/internal/injector"
)

const starCount = 120

var (
	backgroundColor = color.RGBA{8, 8, 24, 255}
	starColor       = color.RGBA{90, 90, 130, 255}
	playerColor     = color.RGBA{120, 220, 255, 255}
	hazardColor     = color.RGBA{255, 150, 80, 255}
	dyingColor      = color.RGBA{110, 110, 110, 255}
	shieldColor     = color.RGBA{180, 255, 200, 255}
)

type star struct {
	X, Y, Size float32
}

func makeStars(rng *rand.Rand, w config.Window, n int) []star {
	stars := make([]star, n)
	for i := range stars {
		stars[i] = star{
			X:    rng.Float32() * float32(w.Width),
			Y:    rng.Float32() * float32(w.Height),
			Size: 1 + rng.Float32(),
		}
	}
	return stars
}

// host adapts the game to ebiten.Game.
type host struct {
	app   *injector.App
	stars []star
	imgui *ecs.Singleton[debugui_ebiten.ImguiBackend]
	muted bool
}

func (h *host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g := h.app.Game
	steer := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		steer--
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		steer++
	}
	g.Steer(steer)
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ActivateShield()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		h.muted = !h.muted
		h.app.Cues.SetMuted(h.muted)
	}

	if h.imgui != nil {
		h.imgui.Get().BeginFrame()
	}
	_, err := g.Update(1.0 / float64(ebiten.TPS()))
	if h.imgui != nil {
		h.imgui.Get().EndFrame()
	}
	return err
}

func (h *host) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := h.app.Game.Snapshot()

	if snap.State == game.StateLoading {
		ebitenutil.DebugPrintAt(screen, "Loading...", 10, 10)
		h.drawOverlay(screen)
		return
	}

	for _, s := range h.stars {
		vector.DrawFilledRect(screen, s.X, s.Y, s.Size, s.Size, starColor, false)
	}

	for _, e := range snap.Entities {
		x, y, r := float32(e.X), float32(e.Y), float32(e.Radius)
		c := hazardColor
		switch {
		case e.Dying:
			c = dyingColor
		case e.Player:
			c = playerColor
		}
		vector.DrawFilledCircle(screen, x, y, r, c, true)
		if e.ShieldActive {
			vector.StrokeCircle(screen, x, y, r+4, 2, shieldColor, true)
		}
	}

	hud := fmt.Sprintf("Score: %d\nBest:  %d", snap.Score, snap.Best)
	if snap.Shield > 0 {
		hud += fmt.Sprintf("\nShield in %.1fs", snap.Shield)
	} else if snap.State == game.StateRunning {
		hud += "\nShield ready [space]"
	}
	if snap.State == game.StateOver {
		hud += "\n\nGAME OVER - press R"
	}
	ebitenutil.DebugPrintAt(screen, hud, 10, 10)
	h.drawOverlay(screen)
}

func (h *host) drawOverlay(screen *ebiten.Image) {
	if h.imgui != nil {
		h.imgui.Get().Draw(screen)
	}
}

func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.imgui != nil {
		h.imgui.Get().Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	w := h.app.Config.Window
	return w.Width, w.Height
}

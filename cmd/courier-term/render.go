package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/game"
)

var (
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	shieldStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Reverse(true)
	hazardStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	dyingStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

const (
	playerRune = '^'
	hazardRune = 'o'
	dyingRune  = '*'
)

// view draws snapshots scaled from world units to terminal cells. Row 0
// holds the score line.
type view struct {
	screen tcell.Screen
	world  config.Window
}

// cell maps a world position into the play area below the score line.
func (v *view) cell(x, y float64) (int, int, bool) {
	cols, rows := v.screen.Size()
	if cols <= 0 || rows <= 1 || x < 0 || y < 0 {
		return 0, 0, false
	}
	cx := int(x / float64(v.world.Width) * float64(cols))
	cy := 1 + int(y/float64(v.world.Height)*float64(rows-1))
	if cx >= cols || cy >= rows {
		return 0, 0, false
	}
	return cx, cy, true
}

func (v *view) draw(snap game.Snapshot) {
	v.screen.Clear()

	switch snap.State {
	case game.StateLoading:
		v.text(0, 0, "Loading...", hudStyle)
		v.screen.Show()
		return
	case game.StateOver:
		v.text(0, 0, fmt.Sprintf("GAME OVER  score %d  best %d  [r] restart [esc] quit", snap.Score, snap.Best), hudStyle)
	default:
		status := "shield ready [space]"
		if snap.Shield > 0 {
			status = fmt.Sprintf("shield in %.1fs", snap.Shield)
		}
		v.text(0, 0, fmt.Sprintf("score %d  best %d  %s", snap.Score, snap.Best, status), hudStyle)
	}

	for _, e := range snap.Entities {
		x, y, ok := v.cell(e.X, e.Y)
		if !ok {
			continue
		}
		r, style := hazardRune, hazardStyle
		switch {
		case e.Dying:
			r, style = dyingRune, dyingStyle
		case e.Player && e.ShieldActive:
			r, style = playerRune, shieldStyle
		case e.Player:
			r, style = playerRune, playerStyle
		}
		v.screen.SetContent(x, y, r, nil, style)
	}

	v.screen.Show()
}

func (v *view) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

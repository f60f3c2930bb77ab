// Command courier-term runs the game in a terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/plus3/spacecourier/config"
	"github.com/plus3/spacecourier/internal/injector"
	"github.com/plus3/spacecourier/sfx"
)

// Terminals report key presses but not releases, so a steering key keeps
// the courier moving for steerHold after its last repeat.
const steerHold = 150 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file.")
	mute := flag.Bool("mute", false, "Disable sound effects.")
	flag.Parse()

	if err := run(*configPath, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "courier-term: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, mute bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	// stderr shares the terminal with the game
	cfg.Log.Level = "error"

	var player sfx.Player
	if !mute {
		if p, err := sfx.OpenSpeaker(); err == nil {
			player = p
			defer sfx.CloseSpeaker()
		}
	}

	app, cleanup, err := injector.InitializeApp(cfg, player)
	if err != nil {
		return err
	}
	defer cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	v := &view{screen: screen, world: cfg.Window}
	app.Game.SignalAssetsReady()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	dt := time.Second / time.Duration(cfg.Frame.TickRate)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	var steer float64
	var steerUntil time.Time

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyLeft:
					steer, steerUntil = -1, time.Now().Add(steerHold)
				case tcell.KeyRight:
					steer, steerUntil = 1, time.Now().Add(steerHold)
				case tcell.KeyRune:
					switch ev.Rune() {
					case ' ':
						app.Game.ActivateShield()
					case 'r':
						app.Game.Restart()
					case 'q':
						return nil
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			if now.After(steerUntil) {
				steer = 0
			}
			app.Game.Steer(steer)
			if _, err := app.Game.Update(dt.Seconds()); err != nil {
				app.Logger.Error("stopping after faulted frame", zap.Error(err))
				return err
			}
			v.draw(app.Game.Snapshot())
		}
	}
}

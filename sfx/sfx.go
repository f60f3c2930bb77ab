// Package sfx plays synthesized sound cues for game events.
package sfx

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/plus3/spacecourier/events"
)

// SampleRate is the rate every cue is generated at.
const SampleRate = beep.SampleRate(44100)

// Player plays a finite stream without blocking.
type Player interface {
	Play(s ...beep.Streamer)
}

type speakerPlayer struct{}

func (speakerPlayer) Play(s ...beep.Streamer) {
	speaker.Play(s...)
}

// OpenSpeaker initialises the audio device and returns a Player backed by it.
func OpenSpeaker() (Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return speakerPlayer{}, nil
}

// CloseSpeaker releases the audio device.
func CloseSpeaker() {
	speaker.Close()
}

// Cue describes a frequency sweep with a linear fade out.
type Cue struct {
	From, To float64
	Duration time.Duration
	Volume   float64
}

var (
	DeathCue  = Cue{From: 660, To: 110, Duration: 600 * time.Millisecond, Volume: 0.6}
	ShieldCue = Cue{From: 440, To: 880, Duration: 120 * time.Millisecond, Volume: 0.3}
	RecordCue = Cue{From: 880, To: 1320, Duration: 80 * time.Millisecond, Volume: 0.25}
)

// Streamer renders the cue at SampleRate.
func (c Cue) Streamer() beep.Streamer {
	return beep.Take(SampleRate.N(c.Duration), &sweep{
		cue:   c,
		total: SampleRate.N(c.Duration),
	})
}

type sweep struct {
	cue   Cue
	total int
	pos   int
	phase float64
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		progress := float64(s.pos) / float64(s.total)
		freq := s.cue.From + (s.cue.To-s.cue.From)*progress

		// triangle wave keeps the cue soft without a lookup table
		v := 4*abs(s.phase-0.5) - 1
		v *= s.cue.Volume * (1 - progress)

		samples[i][0] = v
		samples[i][1] = v

		s.phase += freq / float64(SampleRate)
		s.phase -= float64(int(s.phase))
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Cues plays sound effects in reaction to game events.
type Cues struct {
	player Player
	logger *zap.Logger
	muted  bool
}

func NewCues(player Player, logger *zap.Logger) *Cues {
	return &Cues{player: player, logger: logger}
}

// SetMuted silences or re-enables every cue.
func (c *Cues) SetMuted(muted bool) {
	c.muted = muted
}

func (c *Cues) play(name string, cue Cue) {
	if c.muted || c.player == nil {
		return
	}
	c.logger.Debug("playing cue", zap.String("cue", name))
	c.player.Play(cue.Streamer())
}

// Attach subscribes the cues to bus and returns the subscriptions.
func (c *Cues) Attach(bus *events.Bus) []events.Subscription {
	return []events.Subscription{
		events.On(bus, func(events.PlayerDeathEvent) error {
			c.play("death", DeathCue)
			return nil
		}),
		events.On(bus, func(events.ShieldActivatedEvent) error {
			c.play("shield", ShieldCue)
			return nil
		}),
		events.On(bus, func(events.HighscoreChangedEvent) error {
			c.play("record", RecordCue)
			return nil
		}),
	}
}

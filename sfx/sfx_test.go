package sfx_test

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/plus3/spacecourier/events"
	"github.com/plus3/spacecourier/sfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPlayer struct {
	played []beep.Streamer
}

func (p *recordingPlayer) Play(s ...beep.Streamer) {
	p.played = append(p.played, s...)
}

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			require.LessOrEqual(t, buf[i][0], 1.0)
			require.GreaterOrEqual(t, buf[i][0], -1.0)
		}
		total += n
		if !ok {
			return total
		}
	}
}

func TestCueStreamer(t *testing.T) {
	cue := sfx.Cue{From: 440, To: 220, Duration: 50 * time.Millisecond, Volume: 1}

	assert.Equal(t, sfx.SampleRate.N(cue.Duration), drain(t, cue.Streamer()))
}

func TestCues(t *testing.T) {
	player := &recordingPlayer{}
	cues := sfx.NewCues(player, zap.NewNop())
	bus := events.NewBus()
	subs := cues.Attach(bus)

	bus.Dispatch(events.PlayerDeathEvent{Score: 10})
	bus.Dispatch(events.ShieldExpiredEvent{})
	require.Len(t, player.played, 1)
	assert.Equal(t, sfx.SampleRate.N(sfx.DeathCue.Duration), drain(t, player.played[0]))

	cues.SetMuted(true)
	bus.Dispatch(events.ShieldActivatedEvent{})
	assert.Len(t, player.played, 1)

	cues.SetMuted(false)
	bus.Dispatch(events.HighscoreChangedEvent{NewHighscore: 1})
	assert.Len(t, player.played, 2)

	for _, sub := range subs {
		sub.Cancel()
	}
	bus.Dispatch(events.PlayerDeathEvent{})
	assert.Len(t, player.played, 2)
}

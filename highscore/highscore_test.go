package highscore

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/plus3/spacecourier/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryBackend struct {
	props   map[string][]byte
	saveErr error
	saves   int
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{props: make(map[string][]byte)}
}

func (m *memoryBackend) ObjectPropExists(objectKey, propKey string) bool {
	_, ok := m.props[objectKey+"/"+propKey]
	return ok
}

func (m *memoryBackend) LoadObjectProp(objectKey, propKey string) ([]byte, error) {
	data, ok := m.props[objectKey+"/"+propKey]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (m *memoryBackend) SaveObjectProp(objectKey, propKey string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.props[objectKey+"/"+propKey] = data
	return nil
}

func TestTracker(t *testing.T) {
	session := uuid.New()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("round trip", func(t *testing.T) {
		backend := newMemoryBackend()
		tracker := NewTracker(backend, session, zap.NewNop())
		tracker.now = func() time.Time { return fixed }
		assert.Zero(t, tracker.Best())

		assert.True(t, tracker.Submit(1200))
		require.NoError(t, tracker.Save())

		reloaded := NewTracker(backend, uuid.New(), zap.NewNop())
		assert.Equal(t, Record{Best: 1200, Session: session.String(), UpdatedAt: fixed}, reloaded.Record())
	})

	t.Run("lower scores are ignored", func(t *testing.T) {
		backend := newMemoryBackend()
		tracker := NewTracker(backend, session, zap.NewNop())

		assert.True(t, tracker.Submit(500))
		assert.False(t, tracker.Submit(500))
		assert.False(t, tracker.Submit(10))
		assert.Equal(t, 500, tracker.Best())
	})

	t.Run("save writes only pending changes", func(t *testing.T) {
		backend := newMemoryBackend()
		tracker := NewTracker(backend, session, zap.NewNop())

		require.NoError(t, tracker.Save())
		assert.Zero(t, backend.saves)

		for score := 1; score <= 50; score++ {
			tracker.Submit(score)
		}
		assert.Zero(t, backend.saves, "submitting never writes")

		require.NoError(t, tracker.Save())
		require.NoError(t, tracker.Save())
		assert.Equal(t, 1, backend.saves)
	})

	t.Run("failed save stays pending", func(t *testing.T) {
		backend := newMemoryBackend()
		backend.saveErr = errors.New("disk full")
		tracker := NewTracker(backend, session, zap.NewNop())

		tracker.Submit(7)
		assert.ErrorIs(t, tracker.Save(), backend.saveErr)

		backend.saveErr = nil
		require.NoError(t, tracker.Save())
		assert.Equal(t, 1, backend.saves)
	})

	t.Run("memory only without backend", func(t *testing.T) {
		tracker := NewTracker(nil, session, zap.NewNop())
		assert.True(t, tracker.Submit(3))
		assert.NoError(t, tracker.Save())
		assert.Equal(t, 3, tracker.Best())
	})

	t.Run("corrupt record starts from zero", func(t *testing.T) {
		backend := newMemoryBackend()
		backend.props[recordObject+"/"+recordProperty] = []byte("best: [unterminated")

		tracker := NewTracker(backend, session, zap.NewNop())
		assert.Zero(t, tracker.Best())
	})

	t.Run("attached to the bus", func(t *testing.T) {
		backend := newMemoryBackend()
		tracker := NewTracker(backend, session, zap.NewNop())

		var failures []*events.ListenerError
		bus := events.NewBus(events.WithErrorHandler(func(err *events.ListenerError) {
			failures = append(failures, err)
		}))
		subs := tracker.Attach(bus)

		for score := 40; score <= 42; score++ {
			bus.Dispatch(events.HighscoreChangedEvent{NewHighscore: score})
		}
		assert.Equal(t, 42, tracker.Best())
		assert.Zero(t, backend.saves, "new bests mid-run stay in memory")

		bus.Dispatch(events.PlayerDeathEvent{Score: 42})
		assert.Equal(t, 1, backend.saves)

		backend.saveErr = errors.New("disk full")
		bus.Dispatch(events.HighscoreChangedEvent{NewHighscore: 43})
		bus.Dispatch(events.PlayerDeathEvent{Score: 43})
		require.Len(t, failures, 1)
		assert.ErrorIs(t, failures[0], backend.saveErr)

		for _, sub := range subs {
			sub.Cancel()
		}
		bus.Dispatch(events.HighscoreChangedEvent{NewHighscore: 99})
		assert.Equal(t, 43, tracker.Best())
	})
}

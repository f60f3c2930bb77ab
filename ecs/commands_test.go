package ecs_test

import (
	"testing"

	"github.com/plus3/spacecourier/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	registry, types := newTestRegistry()

	t.Run("spawns are applied at the end of the frame", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		scheduler := ecs.NewScheduler(storage)
		trigger := storage.Spawn(Tag("spawner"))

		seen := 0
		scheduler.Register(&recordingSystem{
			label:  "spawner",
			filter: ecs.AllOf(types.tag),
			fn: func(frame *ecs.UpdateFrame, _ ecs.EntityId) error {
				frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
				frame.Commands.Spawn(Position{X: 3, Y: 4})
				return nil
			},
		}, 0)
		scheduler.Register(&recordingSystem{
			label:  "observer",
			filter: ecs.AllOf(types.position),
			fn: func(*ecs.UpdateFrame, ecs.EntityId) error {
				seen++
				return nil
			},
		}, 1)

		scheduler.Once(1.0)
		assert.Zero(t, seen, "spawned entities must not be visible in the frame that queued them")
		assert.Equal(t, 2, storage.Count(ecs.AllOf(types.position)))

		storage.RemoveEntity(trigger)
		scheduler.Once(1.0)
		assert.Equal(t, 2, seen)
	})

	t.Run("add and remove", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		commands := commandsFor(storage)

		grows := storage.Spawn(Position{})
		shrinks := storage.Spawn(Position{}, Velocity{})

		commands.AddComponent(grows, Velocity{DX: 5, DY: 10})
		commands.RemoveComponent(shrinks, types.velocity)
		assert.Equal(t, 2, commands.Pending())

		assert.NoError(t, commands.Flush(storage))

		assert.Equal(t, Velocity{DX: 5, DY: 10}, *ecs.ReadComponent[Velocity](storage, grows))
		assert.False(t, storage.HasComponent(shrinks, types.velocity))
		assert.Zero(t, commands.Pending())
	})

	t.Run("changes to entities removed before the flush are dropped", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		commands := commandsFor(storage)
		id := storage.Spawn(Position{})

		commands.AddComponent(id, Velocity{DX: 1})
		storage.RemoveEntity(id)
		commands.Spawn(Health{Current: 100, Max: 100})
		assert.NoError(t, commands.Flush(storage))

		assert.False(t, storage.Alive(id))
		assert.Equal(t, 1, storage.Count(ecs.AllOf(types.health)))
		assert.Zero(t, storage.Count(ecs.AllOf(types.velocity)))
	})

	t.Run("panicking defer is reported and the rest still run", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		commands := commandsFor(storage)

		after := false
		commands.Defer(func() { panic("bad render") })
		commands.Defer(func() { after = true })

		err := commands.Flush(storage)
		var panicErr *ecs.PanicError
		require.ErrorAs(t, err, &panicErr)
		assert.Equal(t, "bad render", panicErr.Value)
		assert.True(t, after)
	})

	t.Run("defers run after structural changes", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		commands := commandsFor(storage)

		var countAtDefer int
		commands.Spawn(Position{})
		commands.Defer(func() {
			countAtDefer = storage.Count(ecs.AllOf(types.position))
		})
		commands.Flush(storage)

		assert.Equal(t, 1, countAtDefer)
	})

	t.Run("commands queued while flushing wait for the next flush", func(t *testing.T) {
		storage := ecs.NewStorage(registry)
		commands := commandsFor(storage)

		commands.Defer(func() {
			commands.Spawn(Position{X: 9})
		})
		commands.Flush(storage)

		assert.Zero(t, storage.Count(ecs.AllOf(types.position)))
		assert.Equal(t, 1, commands.Pending())

		commands.Flush(storage)
		assert.Equal(t, 1, storage.Count(ecs.AllOf(types.position)))
		assert.Zero(t, commands.Pending())
	})
}

func commandsFor(storage *ecs.Storage) *ecs.Commands {
	return ecs.NewScheduler(storage).Commands()
}

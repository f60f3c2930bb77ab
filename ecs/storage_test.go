package ecs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/plus3/spacecourier/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	generation := uint32(12345)
	index := uint32(67890)

	entityId := ecs.NewEntityId(generation, index)

	assert.Equal(t, generation, entityId.Generation())
	assert.Equal(t, index, entityId.Index())
}

func TestEntityIdEdgeCases(t *testing.T) {
	tests := []struct {
		generation uint32
		index      uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("generation=%d,index=%d", tt.generation, tt.index), func(t *testing.T) {
			entityId := ecs.NewEntityId(tt.generation, tt.index)
			assert.Equal(t, tt.generation, entityId.Generation())
			assert.Equal(t, tt.index, entityId.Index())
		})
	}
}

func TestCreateEntity(t *testing.T) {
	registry, types := newTestRegistry()
	storage := ecs.NewStorage(registry)

	a := storage.CreateEntity()
	b := storage.CreateEntity()

	assert.NotEqual(t, a, b)
	assert.NotZero(t, a)
	assert.True(t, storage.Alive(a))
	assert.Equal(t, 2, storage.Len())

	mask, ok := storage.Mask(a)
	require.True(t, ok)
	assert.True(t, mask.IsZero())
	assert.False(t, storage.HasComponent(a, types.position))
	assert.Nil(t, storage.GetComponent(a, types.position))
}

func TestAddAndReadComponent(t *testing.T) {
	registry, types := newTestRegistry()
	storage := ecs.NewStorage(registry)

	t.Run("value and pointer components", func(t *testing.T) {
		id := storage.CreateEntity()
		storage.AddComponent(id, Position{X: 1, Y: 2})
		storage.AddComponent(id, &Velocity{DX: 3, DY: 4})

		pos := ecs.ReadComponent[Position](storage, id)
		require.NotNil(t, pos)
		assert.Equal(t, Position{X: 1, Y: 2}, *pos)

		vel := ecs.ReadComponent[Velocity](storage, id)
		require.NotNil(t, vel)
		assert.Equal(t, Velocity{DX: 3, DY: 4}, *vel)

		assert.True(t, storage.HasComponent(id, types.position))
		assert.True(t, storage.HasComponent(id, types.velocity))
	})

	t.Run("replace keeps a single component", func(t *testing.T) {
		id := storage.Spawn(Health{Current: 10, Max: 100})
		storage.AddComponent(id, Health{Current: 90, Max: 100})

		assert.Equal(t, 90, ecs.ReadComponent[Health](storage, id).Current)
		mask, _ := storage.Mask(id)
		assert.Equal(t, 1, mask.Count())
	})

	t.Run("mutation through pointer is visible", func(t *testing.T) {
		id := storage.Spawn(Position{X: 0, Y: 0})
		ecs.ReadComponent[Position](storage, id).X = 42

		assert.Equal(t, float32(42), ecs.ReadComponent[Position](storage, id).X)
	})

	t.Run("primitive components", func(t *testing.T) {
		id := storage.Spawn(Score(7), Tag("courier"))

		assert.Equal(t, Score(7), *ecs.ReadComponent[Score](storage, id))
		assert.Equal(t, Tag("courier"), *ecs.ReadComponent[Tag](storage, id))
	})

	t.Run("unregistered type panics", func(t *testing.T) {
		id := storage.CreateEntity()
		assert.Panics(t, func() {
			storage.AddComponent(id, struct{ Unknown int }{})
		})
	})
}

func TestComponentPointersSurviveGrowth(t *testing.T) {
	registry, _ := newTestRegistry()
	storage := ecs.NewStorage(registry)

	first := storage.Spawn(Position{X: 1})
	ptr := ecs.ReadComponent[Position](storage, first)

	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	ptr.X = 99
	assert.Equal(t, float32(99), ecs.ReadComponent[Position](storage, first).X)
}

func TestRequireComponent(t *testing.T) {
	registry, _ := newTestRegistry()
	storage := ecs.NewStorage(registry)

	id := storage.Spawn(Position{X: 5})

	pos, err := ecs.RequireComponent[Position](storage, id)
	require.NoError(t, err)
	assert.Equal(t, float32(5), pos.X)

	_, err = ecs.RequireComponent[Velocity](storage, id)
	var missing *ecs.MissingComponentError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, id, missing.Entity)
	assert.Contains(t, missing.Component, "Velocity")
}

func TestRemoveComponent(t *testing.T) {
	registry, types := newTestRegistry()
	storage := ecs.NewStorage(registry)

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.RemoveComponent(id, types.velocity)

	assert.False(t, storage.HasComponent(id, types.velocity))
	assert.True(t, storage.HasComponent(id, types.position))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))

	// removing again is a no-op
	storage.RemoveComponent(id, types.velocity)
	assert.True(t, storage.Alive(id))
}

func TestRemoveEntity(t *testing.T) {
	registry, types := newTestRegistry()
	storage := ecs.NewStorage(registry)

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	other := storage.Spawn(Position{X: 2})

	storage.RemoveEntity(id)

	assert.False(t, storage.Alive(id))
	assert.Equal(t, 1, storage.Len())
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))
	assert.False(t, storage.HasComponent(id, types.position))
	assert.Equal(t, []ecs.EntityId{other}, collect(storage, ecs.AllOf(types.position)))

	t.Run("idempotent", func(t *testing.T) {
		storage.RemoveEntity(id)
		storage.RemoveEntity(ecs.EntityId(0))
		storage.RemoveEntity(ecs.NewEntityId(1, 9999))
		assert.Equal(t, 1, storage.Len())
	})

	t.Run("operations on removed ids are no-ops", func(t *testing.T) {
		storage.AddComponent(id, Health{Current: 1})
		storage.RemoveComponent(id, types.position)
		assert.Nil(t, storage.GetComponent(id, types.health))
		_, ok := storage.Mask(id)
		assert.False(t, ok)
	})
}

func TestSlotReuse(t *testing.T) {
	registry, types := newTestRegistry()
	storage := ecs.NewStorage(registry)

	old := storage.Spawn(Position{X: 1})
	storage.RemoveEntity(old)

	// not recycled until the frame boundary
	fresh := storage.Spawn(Position{X: 2})
	assert.NotEqual(t, old.Index(), fresh.Index())

	storage.Recycle()
	reused := storage.Spawn(Position{X: 3})
	assert.Equal(t, old.Index(), reused.Index())
	assert.NotEqual(t, old.Generation(), reused.Generation())

	assert.False(t, storage.Alive(old))
	assert.Nil(t, ecs.ReadComponent[Position](storage, old))
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, reused).X)
	assert.ElementsMatch(t, []ecs.EntityId{fresh, reused}, collect(storage, ecs.AllOf(types.position)))
}

func TestStorageStats(t *testing.T) {
	registry, _ := newTestRegistry()
	storage := ecs.NewStorage(registry)

	stats := storage.CollectStats()
	assert.Equal(t, 0, stats.EntityCount)
	assert.Equal(t, 0, stats.SingletonCount)
	assert.Empty(t, stats.Components)

	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{})
	removed := storage.Spawn(Health{})
	storage.RemoveEntity(removed)

	ecs.NewSingleton[Name](storage, Name{Value: "courier"})

	stats = storage.CollectStats()
	assert.Equal(t, 2, stats.EntityCount)
	assert.Equal(t, 3, stats.SlotCount)
	assert.Equal(t, 1, stats.FreeSlotCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Name"}, stats.SingletonTypes)

	counts := make(map[string]int)
	for _, c := range stats.Components {
		counts[c.Name] = c.Count
	}
	assert.Equal(t, map[string]int{
		"ecs_test.Position": 2,
		"ecs_test.Velocity": 1,
	}, counts)
}

func TestComponentRegistry(t *testing.T) {
	registry := ecs.NewComponentRegistry()

	a := ecs.RegisterComponent[Position](registry)
	b := ecs.RegisterComponent[Velocity](registry)
	again := ecs.RegisterComponent[Position](registry)

	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, registry.Len())
	assert.Equal(t, b, ecs.ComponentTypeOf[Velocity](registry))
	assert.Equal(t, "ecs_test.Position", registry.Name(a))
	assert.Panics(t, func() { ecs.ComponentTypeOf[Health](registry) })
}

package ecs_test

import (
	"testing"

	"github.com/plus3/spacecourier/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	registry, _ := newTestRegistry()
	storage := ecs.NewStorage(registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkSpawnWithMultipleComponents(b *testing.B) {
	registry, _ := newTestRegistry()
	storage := ecs.NewStorage(registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(
			Position{X: 1.0, Y: 2.0},
			Velocity{DX: 0.5, DY: 0.5},
			Health{Current: 100, Max: 100},
			Name{Value: "Entity"},
		)
	}
}

func BenchmarkRemoveEntity(b *testing.B) {
	registry, _ := newTestRegistry()
	storage := ecs.NewStorage(registry)

	ids := make([]ecs.EntityId, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.RemoveEntity(ids[i])
	}
}

func BenchmarkReadComponent(b *testing.B) {
	registry, _ := newTestRegistry()
	storage := ecs.NewStorage(registry)
	id := storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.ReadComponent[Position](storage, id)
	}
}

func BenchmarkAddRemoveComponent(b *testing.B) {
	registry, types := newTestRegistry()
	storage := ecs.NewStorage(registry)
	id := storage.Spawn(Position{X: 1.0, Y: 2.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.AddComponent(id, Velocity{DX: 0.5, DY: 0.5})
		storage.RemoveComponent(id, types.velocity)
	}
}

func BenchmarkMixedOperations(b *testing.B) {
	registry, types := newTestRegistry()
	storage := ecs.NewStorage(registry)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := storage.Spawn(Position{X: 1.0, Y: 2.0})
		storage.AddComponent(id, Velocity{DX: 0.5, DY: 0.5})
		_ = ecs.ReadComponent[Position](storage, id)
		storage.RemoveComponent(id, types.velocity)
		storage.RemoveEntity(id)
		storage.Recycle()
	}
}

func benchQuery(b *testing.B, entities int) {
	registry, types := newTestRegistry()
	storage := ecs.NewStorage(registry)

	for i := 0; i < entities; i++ {
		if i%3 == 0 {
			storage.Spawn(Position{X: float32(i)})
			continue
		}
		storage.Spawn(Position{X: float32(i)}, Velocity{DX: 1})
	}

	filter := ecs.AllOf(types.position, types.velocity)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for id := range storage.Query(filter) {
			_ = id
		}
	}
}

func BenchmarkQueryIter(b *testing.B)      { benchQuery(b, 1000) }
func BenchmarkQueryIterLarge(b *testing.B) { benchQuery(b, 100000) }

func BenchmarkSchedulerOnce(b *testing.B) {
	registry, types := newTestRegistry()
	storage := ecs.NewStorage(registry)

	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{Types: types}, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Once(0.016)
	}
}

func BenchmarkSchedulerMultipleSystems(b *testing.B) {
	registry, types := newTestRegistry()
	storage := ecs.NewStorage(registry)

	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5}, Health{Current: 50, Max: 100})
	}

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{Types: types}, 0)
	scheduler.Register(&recordingSystem{
		label:  "regen",
		filter: ecs.AllOf(types.health),
		fn: func(frame *ecs.UpdateFrame, id ecs.EntityId) error {
			hp := ecs.ReadComponent[Health](frame.Storage, id)
			if hp.Current < hp.Max {
				hp.Current++
			}
			return nil
		},
	}, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Once(0.016)
	}
}

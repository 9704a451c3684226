package main

import (
	"fmt"
	"math/rand"

	"github.com/plus3/tagecs/ecs"
)

const (
	componentCount = 64
	systemCount    = 16
)

// Typed components occupy the lowest tags; every other tag carries a raw payload.
const (
	TransformType ecs.ComponentType = iota + 1
	CounterType
	LifetimeType
	firstRawType
)

type Transform struct {
	X, Y, Z float32
}

type Counter struct {
	Value uint64
}

type Lifetime struct {
	Remaining float64
}

func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry, TransformType)
	ecs.RegisterComponent[Counter](registry, CounterType)
	ecs.RegisterComponent[Lifetime](registry, LifetimeType)
}

// Workload populates a World and keeps a steady churn of entities expiring and respawning.
type Workload struct {
	rng       *rand.Rand
	world     *ecs.World
	Spawned   int64
	Expired   int64
	SpawnErrs int64
}

func NewWorkload(world *ecs.World, seed int64) *Workload {
	return &Workload{
		rng:   rand.New(rand.NewSource(seed)),
		world: world,
	}
}

// randomTag returns a tag in [1, componentCount].
func (wl *Workload) randomTag() ecs.ComponentType {
	return ecs.ComponentType(wl.rng.Intn(componentCount) + 1)
}

// randomRawTag returns a tag in [firstRawType, componentCount].
func (wl *Workload) randomRawTag() ecs.ComponentType {
	return ecs.ComponentType(wl.rng.Intn(componentCount-int(firstRawType)+1)) + firstRawType
}

func rawPayload(tag ecs.ComponentType) []byte {
	return make([]byte, int(tag%4+1)*8)
}

// SpawnRandomEntity creates an entity with numComponents random components.
func (wl *Workload) SpawnRandomEntity(numComponents int) (ecs.EntityId, error) {
	id, err := wl.world.CreateEntity()
	if err != nil {
		return 0, err
	}
	wl.Spawned++

	for i := 0; i < numComponents; i++ {
		if err := wl.addRandomComponent(id); err != nil {
			return id, err
		}
	}
	return id, nil
}

func (wl *Workload) addRandomComponent(id ecs.EntityId) error {
	var err error
	switch tag := wl.randomTag(); tag {
	case TransformType:
		_, err = ecs.Add(wl.world, id, tag, Transform{X: wl.rng.Float32(), Y: wl.rng.Float32()})
	case CounterType:
		_, err = ecs.Add(wl.world, id, tag, Counter{})
	case LifetimeType:
		_, err = ecs.Add(wl.world, id, tag, Lifetime{Remaining: wl.rng.Float64() * 2})
	default:
		_, err = wl.world.AddComponent(id, tag, rawPayload(tag))
	}
	return err
}

// replacement queues a new entity built from raw components, with a fresh Lifetime
// attached once it exists.
func (wl *Workload) replacement(cmds *ecs.Commands) {
	components := make([]ecs.ComponentData, 0, 3)
	for i := wl.rng.Intn(3); i >= 0; i-- {
		tag := wl.randomRawTag()
		components = append(components, ecs.ComponentData{Type: tag, Data: rawPayload(tag)})
	}

	lifetime := Lifetime{Remaining: wl.rng.Float64() * 2}
	cmds.CreateEntity(func(id ecs.EntityId) {
		wl.Spawned++
		if _, err := ecs.Add(wl.world, id, LifetimeType, lifetime); err != nil {
			wl.SpawnErrs++
		}
	}, components...)
}

// RegisterSystems registers the fixed systems followed by generated ones whose filters
// pick one or two random raw tags.
func (wl *Workload) RegisterSystems(scheduler *ecs.Scheduler, count int) {
	scheduler.Register("lifetime", ecs.NewFilter(LifetimeType), func(frame *ecs.UpdateFrame, id ecs.EntityId) {
		lt := ecs.Get[Lifetime](frame.World, id, LifetimeType)
		lt.Remaining -= frame.DeltaTime
		if lt.Remaining <= 0 {
			frame.Commands.DestroyEntity(id)
			wl.Expired++
			wl.replacement(frame.Commands)
		}
	})

	scheduler.Register("counter", ecs.NewFilter(CounterType), func(frame *ecs.UpdateFrame, id ecs.EntityId) {
		ecs.Get[Counter](frame.World, id, CounterType).Value++
	})

	scheduler.Register("transform", ecs.NewFilter(TransformType), func(frame *ecs.UpdateFrame, id ecs.EntityId) {
		t := ecs.Get[Transform](frame.World, id, TransformType)
		t.X += float32(frame.DeltaTime)
		t.Z = t.X * t.Y
	})

	for i := 0; i < count; i++ {
		tags := []ecs.ComponentType{wl.randomRawTag()}
		if wl.rng.Intn(2) == 0 {
			tags = append(tags, wl.randomRawTag())
		}
		scheduler.Register(fmt.Sprintf("generated-%02d", i), ecs.NewFilter(tags...), func(frame *ecs.UpdateFrame, id ecs.EntityId) {
			if payload, ok := frame.World.GetComponent(id, tags[0]); ok && len(payload) > 0 {
				payload[0] ^= 0xff
			}
		})
	}
}

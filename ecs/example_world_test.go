package ecs_test

import (
	"fmt"
	"io"
	"log"

	"github.com/plus3/tagecs/ecs"
)

// ExampleWorld demonstrates the basic API for managing entities and components.
// The World owns every component payload; callers address components by entity and tag.
func ExampleWorld() {
	cfg := ecs.DefaultConfig()
	cfg.Logger = log.New(io.Discard, "", 0)
	world, err := ecs.NewWorld(cfg, nil)
	if err != nil {
		panic(err)
	}

	const scoreTag ecs.ComponentType = 7

	player, _ := world.CreateEntity()
	world.AddComponent(player, scoreTag, []byte{10, 20})

	score, ok := world.GetComponent(player, scoreTag)
	fmt.Println("score bytes:", score, ok)

	score[0] = 11
	score, _ = world.GetComponent(player, scoreTag)
	fmt.Println("after update:", score)

	world.DestroyEntity(player)
	fmt.Println("alive:", world.IsAlive(player), "has score:", world.HasComponent(player, scoreTag))

	// Output:
	// score bytes: [10 20] true
	// after update: [11 20]
	// alive: false has score: false
}

// ExampleWorld_filtered shows filter evaluation. Snapshots list matching entities in
// ascending order and are not updated afterwards.
func ExampleWorld_filtered() {
	world, _ := ecs.NewWorld(ecs.Config{Logger: log.New(io.Discard, "", 0)}, newTestRegistry())

	e1, _ := world.CreateEntity()
	e2, _ := world.CreateEntity()
	ecs.Add(world, e1, PositionType, Position{X: 0, Y: 0})
	ecs.Add(world, e1, VelocityType, Velocity{X: 1, Y: 0.5, Speed: 1})
	ecs.Add(world, e2, VelocityType, Velocity{X: 1, Y: 1.5, Speed: 3.3})

	fmt.Println("velocity:", len(world.Filtered(ecs.NewFilter(VelocityType))))
	fmt.Println("position+velocity:", len(world.Filtered(ecs.NewFilter(PositionType, VelocityType))))
	fmt.Println("rotation:", len(world.Filtered(ecs.NewFilter(RotationType))))

	world.DestroyEntity(e1)
	fmt.Println("velocity after destroy:", len(world.Filtered(ecs.NewFilter(VelocityType))))

	// Output:
	// velocity: 2
	// position+velocity: 1
	// rotation: 0
	// velocity after destroy: 1
}

// ExampleWorld_addRemoveComponents shows that removing a component moves the last
// component of the entity into its place.
func ExampleWorld_addRemoveComponents() {
	world, _ := ecs.NewWorld(ecs.Config{Logger: log.New(io.Discard, "", 0)}, newTestRegistry())

	entity, _ := world.CreateEntity()
	ecs.Add(world, entity, PositionType, Position{})
	ecs.Add(world, entity, RotationType, Rotation{Angle: 90})
	ecs.Add(world, entity, HealthType, Health{Current: 50, Max: 50})

	fmt.Println(world.Components(entity))

	world.RemoveComponent(entity, PositionType)
	fmt.Println(world.Components(entity))

	health := ecs.Get[Health](world, entity, HealthType)
	fmt.Printf("health: %d/%d\n", health.Current, health.Max)

	// Output:
	// [1 2 4]
	// [4 2]
	// health: 50/50
}

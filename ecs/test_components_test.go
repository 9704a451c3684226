package ecs_test

import (
	"io"
	"log"
	"testing"

	"github.com/plus3/tagecs/ecs"
	"github.com/stretchr/testify/require"
)

// Common test component tags and types
const (
	PositionType ecs.ComponentType = 1
	RotationType ecs.ComponentType = 2
	VelocityType ecs.ComponentType = 3
	HealthType   ecs.ComponentType = 4
	MarkerType   ecs.ComponentType = 5
)

type Position struct {
	X, Y float32
}

type Rotation struct {
	Angle float32
}

type Velocity struct {
	X, Y, Speed float32
}

type Health struct {
	Current int32
	Max     int32
}

type Marker struct{}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry, PositionType)
	ecs.RegisterComponent[Rotation](registry, RotationType)
	ecs.RegisterComponent[Velocity](registry, VelocityType)
	ecs.RegisterComponent[Health](registry, HealthType)
	ecs.RegisterComponent[Marker](registry, MarkerType)
	return registry
}

var quietLogger = log.New(io.Discard, "", 0)

// newTestWorld builds a world with the default limits and a silent logger.
func newTestWorld(t testing.TB, mutate ...func(*ecs.Config)) *ecs.World {
	t.Helper()

	cfg := ecs.DefaultConfig()
	cfg.Logger = quietLogger
	for _, fn := range mutate {
		fn(&cfg)
	}

	world, err := ecs.NewWorld(cfg, newTestRegistry())
	require.NoError(t, err)
	return world
}

func mustCreate(t testing.TB, world *ecs.World) ecs.EntityId {
	t.Helper()
	id, err := world.CreateEntity()
	require.NoError(t, err)
	return id
}

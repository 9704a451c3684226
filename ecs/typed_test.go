package ecs_test

import (
	"testing"

	"github.com/plus3/tagecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedAddGet(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)

	pos, err := ecs.Add(world, id, PositionType, Position{X: 3, Y: 4})
	require.NoError(t, err)
	require.NotNil(t, pos)

	got := ecs.Get[Position](world, id, PositionType)
	require.NotNil(t, got)
	assert.Equal(t, Position{X: 3, Y: 4}, *got)

	// handle and lookup point at the same payload
	pos.X = 10
	assert.Equal(t, float32(10), ecs.Get[Position](world, id, PositionType).X)
}

func TestTypedMutationInPlace(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)

	_, err := ecs.Add(world, id, PositionType, Position{X: 0, Y: 0})
	require.NoError(t, err)
	_, err = ecs.Add(world, id, VelocityType, Velocity{X: 1, Y: 0.5, Speed: 2})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		pos := ecs.Get[Position](world, id, PositionType)
		vel := ecs.Get[Velocity](world, id, VelocityType)
		pos.X += vel.Speed * vel.X
		pos.Y += vel.Speed * vel.Y
	}

	assert.Equal(t, Position{X: 6, Y: 3}, *ecs.Get[Position](world, id, PositionType))
}

func TestTypedMismatch(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)

	_, err := ecs.Add(world, id, PositionType, Velocity{})
	assert.ErrorIs(t, err, ecs.ErrTypeMismatch)
	assert.False(t, world.HasComponent(id, PositionType))

	_, err = ecs.Add(world, id, PositionType, Position{X: 1})
	require.NoError(t, err)
	assert.Nil(t, ecs.Get[Velocity](world, id, PositionType))
}

func TestTypedUnregisteredTag(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)

	_, err := ecs.Add(world, id, 77, int64(-5))
	require.NoError(t, err)

	got := ecs.Get[int64](world, id, 77)
	require.NotNil(t, got)
	assert.Equal(t, int64(-5), *got)

	// a payload smaller than the requested type is not viewable
	_, err = world.AddComponent(id, 78, []byte{1, 2})
	require.NoError(t, err)
	assert.Nil(t, ecs.Get[int64](world, id, 78))
}

func TestTypedRejectsPointerTypes(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)

	_, err := ecs.Add(world, id, 90, "not a value type")
	assert.ErrorIs(t, err, ecs.ErrTypeMismatch)

	_, err = ecs.Add(world, id, 91, struct{ P *Position }{})
	assert.ErrorIs(t, err, ecs.ErrTypeMismatch)
	assert.Equal(t, 0, world.ComponentCount(id))
}

func TestTypedReadRefusesPointerTypes(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)

	_, err := world.AddComponent(id, 92, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16})
	require.NoError(t, err)

	assert.Nil(t, ecs.Get[*Position](world, id, 92))
	assert.Nil(t, ecs.Get[string](world, id, 92))
	assert.Nil(t, ecs.ReadComponent[*Position](world, id, 92))
	assert.Nil(t, ecs.ReadComponent[struct{ Name string }](world, id, 92))
	assert.NotNil(t, ecs.ReadComponent[[2]uint64](world, id, 92))
}

func TestTypedZeroSize(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)

	marker, err := ecs.Add(world, id, MarkerType, Marker{})
	require.NoError(t, err)
	assert.NotNil(t, marker)
	assert.NotNil(t, ecs.Get[Marker](world, id, MarkerType))
	assert.True(t, world.HasComponent(id, MarkerType))
}

func TestReadComponent(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)

	_, err := ecs.Add(world, id, HealthType, Health{Current: 80, Max: 100})
	require.NoError(t, err)

	var reader ecs.ComponentReader = world
	health := ecs.ReadComponent[Health](reader, id, HealthType)
	require.NotNil(t, health)
	assert.Equal(t, int32(80), health.Current)

	assert.Nil(t, ecs.ReadComponent[Health](reader, id, VelocityType))
}

func TestTypedOnDeadEntity(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)
	world.DestroyEntity(id)

	_, err := ecs.Add(world, id, PositionType, Position{})
	assert.ErrorIs(t, err, ecs.ErrInvalidEntity)
	assert.Nil(t, ecs.Get[Position](world, id, PositionType))
}

package ecs_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/plus3/tagecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var queryStrategies = []struct {
	name    string
	indexed bool
}{
	{"scan", false},
	{"indexed", true},
}

func TestFilterScenario(t *testing.T) {
	for _, strategy := range queryStrategies {
		t.Run(strategy.name, func(t *testing.T) {
			world := newTestWorld(t, func(c *ecs.Config) { c.IndexQueries = strategy.indexed })

			e1 := mustCreate(t, world)
			_, err := ecs.Add(world, e1, PositionType, Position{X: 0, Y: 0})
			require.NoError(t, err)
			_, err = ecs.Add(world, e1, VelocityType, Velocity{X: 1, Y: 0.5, Speed: 1.0})
			require.NoError(t, err)

			assert.Equal(t, ecs.FilteredEntities{e1}, world.Filtered(ecs.NewFilter(VelocityType)))
			assert.Equal(t, ecs.FilteredEntities{e1}, world.Filtered(ecs.NewFilter(PositionType, VelocityType)))
			assert.Empty(t, world.Filtered(ecs.NewFilter(RotationType)))
		})
	}
}

func TestFilterAfterDestroy(t *testing.T) {
	for _, strategy := range queryStrategies {
		t.Run(strategy.name, func(t *testing.T) {
			world := newTestWorld(t, func(c *ecs.Config) { c.IndexQueries = strategy.indexed })

			e1 := mustCreate(t, world)
			e2 := mustCreate(t, world)
			_, err := world.AddComponent(e1, VelocityType, []byte{1})
			require.NoError(t, err)
			_, err = world.AddComponent(e2, VelocityType, []byte{2})
			require.NoError(t, err)

			world.DestroyEntity(e1)

			assert.Equal(t, ecs.FilteredEntities{e2}, world.Filtered(ecs.NewFilter(VelocityType)))
		})
	}
}

func TestFilterAscendingOrder(t *testing.T) {
	for _, strategy := range queryStrategies {
		t.Run(strategy.name, func(t *testing.T) {
			world := newTestWorld(t, func(c *ecs.Config) { c.IndexQueries = strategy.indexed })

			var want ecs.FilteredEntities
			for i := 0; i < 50; i++ {
				id := mustCreate(t, world)
				if i%3 == 0 {
					_, err := world.AddComponent(id, HealthType, nil)
					require.NoError(t, err)
					want = append(want, id)
				}
			}

			got := world.Filtered(ecs.NewFilter(HealthType))
			assert.Equal(t, want, got)
		})
	}
}

func TestFilterAscendingAfterRecycling(t *testing.T) {
	for _, strategy := range queryStrategies {
		t.Run(strategy.name, func(t *testing.T) {
			world := newTestWorld(t, func(c *ecs.Config) { c.IndexQueries = strategy.indexed })

			a := mustCreate(t, world)
			b := mustCreate(t, world)
			_, err := world.AddComponent(b, HealthType, nil)
			require.NoError(t, err)

			world.DestroyEntity(a)
			c := mustCreate(t, world)
			require.Equal(t, a.Index(), c.Index())
			_, err = world.AddComponent(c, HealthType, nil)
			require.NoError(t, err)

			got := world.Filtered(ecs.NewFilter(HealthType))
			assert.Equal(t, ecs.FilteredEntities{c, b}, got)
			assert.True(t, slices.IsSorted(got))
		})
	}
}

func TestEmptyFilterMatchesAllLive(t *testing.T) {
	for _, strategy := range queryStrategies {
		t.Run(strategy.name, func(t *testing.T) {
			world := newTestWorld(t, func(c *ecs.Config) { c.IndexQueries = strategy.indexed })

			a := mustCreate(t, world)
			b := mustCreate(t, world)
			c := mustCreate(t, world)
			world.DestroyEntity(b)

			assert.Equal(t, ecs.FilteredEntities{a, c}, world.Filtered(ecs.NewFilter()))
		})
	}
}

func TestMatchesFilter(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)
	_, err := world.AddComponent(id, PositionType, nil)
	require.NoError(t, err)

	assert.True(t, world.MatchesFilter(id, ecs.NewFilter(PositionType)))
	assert.False(t, world.MatchesFilter(id, ecs.NewFilter(PositionType, VelocityType)))
	assert.True(t, world.MatchesFilter(id, ecs.NewFilter()))

	world.DestroyEntity(id)
	assert.False(t, world.MatchesFilter(id, ecs.NewFilter()))
}

func TestFilterSnapshotIsNotLive(t *testing.T) {
	world := newTestWorld(t)
	id := mustCreate(t, world)
	_, err := world.AddComponent(id, PositionType, nil)
	require.NoError(t, err)

	snapshot := world.Filtered(ecs.NewFilter(PositionType))
	world.RemoveComponent(id, PositionType)

	assert.Equal(t, ecs.FilteredEntities{id}, snapshot)
	assert.Empty(t, world.Filtered(ecs.NewFilter(PositionType)))
}

func TestNewFilterCopiesTags(t *testing.T) {
	tags := []ecs.ComponentType{PositionType, VelocityType}
	filter := ecs.NewFilter(tags...)
	tags[0] = HealthType

	assert.Equal(t, []ecs.ComponentType{PositionType, VelocityType}, filter.Required)
}

// TestQueryStrategiesAgree drives both strategies with the same random mutations
// and checks every filter returns identical snapshots.
func TestQueryStrategiesAgree(t *testing.T) {
	scan := newTestWorld(t)
	indexed := newTestWorld(t, func(c *ecs.Config) { c.IndexQueries = true })

	rng := rand.New(rand.NewSource(7))
	tags := []ecs.ComponentType{PositionType, RotationType, VelocityType, HealthType}

	var live []ecs.EntityId
	for step := 0; step < 2000; step++ {
		switch op := rng.Intn(10); {
		case op < 3 || len(live) == 0:
			a := mustCreate(t, scan)
			b := mustCreate(t, indexed)
			require.Equal(t, a, b)
			live = append(live, a)
		case op < 4:
			i := rng.Intn(len(live))
			scan.DestroyEntity(live[i])
			indexed.DestroyEntity(live[i])
			live = append(live[:i], live[i+1:]...)
		case op < 8:
			id := live[rng.Intn(len(live))]
			tag := tags[rng.Intn(len(tags))]
			_, errA := scan.AddComponent(id, tag, []byte{byte(step)})
			_, errB := indexed.AddComponent(id, tag, []byte{byte(step)})
			require.Equal(t, errA == nil, errB == nil)
		default:
			id := live[rng.Intn(len(live))]
			tag := tags[rng.Intn(len(tags))]
			scan.RemoveComponent(id, tag)
			indexed.RemoveComponent(id, tag)
		}
	}

	filters := []ecs.Filter{
		ecs.NewFilter(PositionType),
		ecs.NewFilter(VelocityType, PositionType),
		ecs.NewFilter(RotationType, HealthType, PositionType),
		ecs.NewFilter(tags...),
		ecs.NewFilter(MarkerType),
	}
	for _, f := range filters {
		got := scan.Filtered(f)
		assert.Equal(t, got, indexed.Filtered(f), "filter %v", f.Required)
		assert.True(t, slices.IsSorted(got), "filter %v", f.Required)
	}
}

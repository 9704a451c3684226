package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/tagecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)

	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
}

func TestReportGenerate(t *testing.T) {
	report := &Report{
		Duration:   time.Second,
		Entities:   10,
		Components: componentCount,
		Systems:    1,
		World: ecs.WorldStats{
			LiveEntities: 10,
			EntitySlots:  12,
			FreeSlots:    2,
			TagBreakdown: []ecs.TagStats{{Type: 1}},
		},
		Scheduler: ecs.SchedulerStats{
			Systems: []ecs.SystemStats{{Name: "lifetime", ExecutionCount: 4}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "**Max Entities:** unbounded")
	assert.Contains(t, out, "10 (12 slots, 2 free)")
	assert.Contains(t, out, "| lifetime | 4 |")
	assert.Contains(t, out, "**Distinct Tags:** 1")
}

func TestWorkload(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	world, err := ecs.NewWorld(ecs.Config{MaxEntities: 100}, registry)
	require.NoError(t, err)

	wl := NewWorkload(world, 1)
	for i := 0; i < 50; i++ {
		_, err := wl.SpawnRandomEntity(3)
		require.NoError(t, err)
	}
	assert.Equal(t, 50, world.Len())

	scheduler := ecs.NewScheduler(world)
	wl.RegisterSystems(scheduler, 4)
	assert.Len(t, scheduler.GetStats().Systems, 7)

	// Every Lifetime is below two seconds, so one long frame expires all of them.
	require.NoError(t, scheduler.Once(5))
	assert.Equal(t, 50, world.Len())
	assert.Equal(t, wl.Spawned, int64(50)+wl.Expired)
	assert.Zero(t, wl.SpawnErrs)

	for id := range world.Entities() {
		assert.LessOrEqual(t, world.ComponentCount(id), 4)
	}
}

func TestRunReturnsSetupErrors(t *testing.T) {
	dir := t.TempDir()

	err := run(options{configPath: filepath.Join(dir, "missing.yaml"), entityCount: 1})
	assert.ErrorContains(t, err, "load config")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("maxComponents: -1\n"), 0o644))
	err = run(options{configPath: bad, entityCount: 1})
	assert.ErrorContains(t, err, "maxComponents")
}

func TestRunShort(t *testing.T) {
	require.NoError(t, run(options{duration: 20 * time.Millisecond, entityCount: 200, seed: 1}))
}

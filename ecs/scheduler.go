package ecs

import (
	"context"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name              string
	ExecutionCount    int64
	EntitiesProcessed int64
	LastEntityCount   int
	MinDuration       time.Duration
	MaxDuration       time.Duration
	AvgDuration       time.Duration
	LastDuration      time.Duration
	TotalDuration     time.Duration
}

type systemStatsInternal struct {
	executionCount    int64
	entitiesProcessed int64
	lastEntityCount   int
	minDuration       time.Duration
	maxDuration       time.Duration
	totalDuration     time.Duration
	lastDuration      time.Duration
}

// SystemFunc is the per-entity callback of a scheduled system.
type SystemFunc func(frame *UpdateFrame, id EntityId)

type scheduledSystem struct {
	name   string
	filter Filter
	fn     SystemFunc
	stats  systemStatsInternal
}

// Scheduler runs registered systems in registration order.
// Each system's filter is re-evaluated at the start of its run, and structural changes
// queued on the frame's Commands are applied after every system has run.
type Scheduler struct {
	world   *World
	systems []*scheduledSystem
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:   world,
		systems: make([]*scheduledSystem, 0),
	}
}

// Register adds a named system that runs fn for every entity matching filter.
func (s *Scheduler) Register(name string, filter Filter, fn SystemFunc) {
	s.systems = append(s.systems, &scheduledSystem{
		name:   name,
		filter: filter,
		fn:     fn,
		stats: systemStatsInternal{
			minDuration: time.Duration(1<<63 - 1),
		},
	})
}

// Once executes all registered systems once with the given delta time and returns the
// error from flushing the frame's commands.
func (s *Scheduler) Once(dt float64) error {
	frame := newUpdateFrame(dt, s.world)

	for _, sys := range s.systems {
		start := time.Now()

		entities := s.world.Filtered(sys.filter)
		NewSystem(func(id EntityId) { sys.fn(frame, id) }, entities).Run()

		duration := time.Since(start)

		stats := &sys.stats
		stats.executionCount++
		stats.entitiesProcessed += int64(len(entities))
		stats.lastEntityCount = len(entities)
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	return frame.Commands.Flush(s.world)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
// Flush errors are logged through the world's logger and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := s.Once(dt); err != nil {
				s.world.logger.Printf("[ecs] scheduler flush: %v", err)
			}
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, sys := range s.systems {
		internal := &sys.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:              sys.name,
			ExecutionCount:    internal.executionCount,
			EntitiesProcessed: internal.entitiesProcessed,
			LastEntityCount:   internal.lastEntityCount,
			MinDuration:       internal.minDuration,
			MaxDuration:       internal.maxDuration,
			AvgDuration:       avgDuration,
			LastDuration:      internal.lastDuration,
			TotalDuration:     internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/tagecs/ecs"
)

type options struct {
	duration       time.Duration
	entityCount    int
	configPath     string
	indexQueries   bool
	indexSet       bool
	seed           int64
	gcPauseMetrics bool
}

func main() {
	var opts options
	flag.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flag.IntVar(&opts.entityCount, "entities", 10000, "The initial number of entities to create.")
	flag.StringVar(&opts.configPath, "config", "", "Optional YAML world configuration.")
	flag.BoolVar(&opts.indexQueries, "index", false, "Use the per-tag index to evaluate filters.")
	flag.Int64Var(&opts.seed, "seed", time.Now().UnixNano(), "Random seed for the workload.")
	profileMode := flag.String("profile", "", "Write a pprof profile to the current directory: cpu or mem.")
	flag.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "index" {
			opts.indexSet = true
		}
	})

	var mode func(*profile.Profile)
	switch *profileMode {
	case "":
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	default:
		log.Fatalf("Unknown profile mode %q (want cpu or mem)", *profileMode)
	}

	// The profile is stopped before any exit so it is always flushed to disk.
	var profiler interface{ Stop() }
	if mode != nil {
		profiler = profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook)
	}

	err := run(opts)

	if profiler != nil {
		profiler.Stop()
	}
	if err != nil {
		log.Fatalf("Stress test failed: %v", err)
	}
}

func run(opts options) error {
	log.Println("Starting ECS stress test...")

	// 1. Setup Config, Registry, World, and Scheduler
	config := ecs.DefaultConfig()
	if opts.configPath != "" {
		var err error
		config, err = ecs.LoadConfig(opts.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if opts.indexSet {
		config.IndexQueries = opts.indexQueries
	}
	if config.MaxEntities != 0 && config.MaxEntities < opts.entityCount {
		config.MaxEntities = opts.entityCount
	}
	config.InitialCapacity = opts.entityCount

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	world, err := ecs.NewWorld(config, registry)
	if err != nil {
		return fmt.Errorf("create world: %w", err)
	}

	workload := NewWorkload(world, opts.seed)
	scheduler := ecs.NewScheduler(world)
	workload.RegisterSystems(scheduler, systemCount)

	// 2. Populate World with initial entities
	log.Printf("Populating world with %d entities...\n", opts.entityCount)
	for i := 0; i < opts.entityCount; i++ {
		// Spawn an entity with 1 to 5 random components
		if _, err := workload.SpawnRandomEntity(workload.rng.Intn(5) + 1); err != nil {
			return fmt.Errorf("populate world: %w", err)
		}
	}
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       opts.duration,
		Entities:       opts.entityCount,
		Components:     componentCount,
		Systems:        len(scheduler.GetStats().Systems),
		IndexQueries:   world.Config().IndexQueries,
		MaxEntities:    world.Config().MaxEntities,
		Seed:           opts.seed,
		GCPauseMetrics: opts.gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", opts.duration)
	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			if err := scheduler.Once(float64(deltaTime) / float64(time.Second)); err != nil {
				report.FlushErrors++
				log.Printf("Flush failed: %v", err)
			}
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.World = world.CollectStats()
	report.Scheduler = *scheduler.GetStats()
	report.Spawned = workload.Spawned
	report.Expired = workload.Expired
	report.SpawnErrors = workload.SpawnErrs

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
	return nil
}

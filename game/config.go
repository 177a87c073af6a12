package game

import (
	"github.com/pthm-cable/racetrack/car"
	"github.com/pthm-cable/racetrack/config"
	"github.com/pthm-cable/racetrack/neural"
	"github.com/pthm-cable/racetrack/obstacles"
	"github.com/pthm-cable/racetrack/sim"
	"github.com/pthm-cable/racetrack/telemetry"
	"github.com/pthm-cable/racetrack/track"
)

// trackParams maps the track section onto generator parameters.
func trackParams(cfg *config.Config) track.Params {
	return track.Params{
		WorldWidth:    cfg.Derived.WorldW,
		WorldHeight:   cfg.Derived.WorldH,
		ControlPoints: cfg.Track.ControlPoints,
		RadiusFactor:  cfg.Track.RadiusFactor,
		Jitter:        cfg.Track.Jitter,
		Width:         cfg.Track.Width,
	}
}

// simSettings maps population, mutation and obstacle sections onto sim settings.
func simSettings(cfg *config.Config) sim.Settings {
	return sim.Settings{
		PopulationSize:   cfg.Population.Size,
		Lifespan:         cfg.Population.Lifespan,
		MutationAmount:   cfg.Mutation.Amount,
		ObstacleCount:    cfg.Obstacles.Count,
		DynamicObstacles: cfg.Obstacles.Dynamic,
		Obstacles: obstacles.Params{
			Width:  cfg.Obstacles.Width,
			Height: cfg.Obstacles.Height,
			Drift:  cfg.Obstacles.Drift,
		},
	}
}

// carParams maps agent, sensor and network sections onto car params.
func carParams(cfg *config.Config) car.Params {
	hidden := make([]int, len(cfg.Neural.HiddenLayers))
	copy(hidden, cfg.Neural.HiddenLayers)
	return car.Params{
		Width:        cfg.Agent.Width,
		Height:       cfg.Agent.Height,
		Acceleration: cfg.Agent.Acceleration,
		MaxSpeed:     cfg.Agent.MaxSpeed,
		Friction:     cfg.Agent.Friction,
		TurnRate:     cfg.Agent.TurnRate,
		RayCount:     cfg.Sensors.RayCount,
		RayLength:    cfg.Sensors.RayLength,
		RaySpread:    cfg.Derived.RaySpread,
		HiddenLayers: hidden,
	}
}

// brainCodec accepts only documents that fit the configured cars.
func brainCodec(p car.Params) neural.Codec {
	return neural.Codec{Inputs: p.RayCount, Outputs: neural.DefaultOutputs}
}

// outputFiles maps the telemetry section onto output file names.
func outputFiles(cfg *config.Config) telemetry.OutputFiles {
	files := telemetry.DefaultOutputFiles()
	if cfg.Telemetry.GenerationsFile != "" {
		files.Generations = cfg.Telemetry.GenerationsFile
	}
	if cfg.Telemetry.PerfFile != "" {
		files.Perf = cfg.Telemetry.PerfFile
	}
	return files
}

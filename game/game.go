// Package game wires the simulation to the window, input, telemetry and
// brain files.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/racetrack/camera"
	"github.com/pthm-cable/racetrack/car"
	"github.com/pthm-cable/racetrack/config"
	"github.com/pthm-cable/racetrack/neural"
	"github.com/pthm-cable/racetrack/sim"
	"github.com/pthm-cable/racetrack/telemetry"
	"github.com/pthm-cable/racetrack/track"
	"github.com/pthm-cable/racetrack/ui"
)

// Options configures a new game.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string // empty disables CSV and brain output
	Headless       bool
	StepsPerUpdate int    // ticks per UpdateHeadless call
	BrainPath      string // brain document loaded into generation 1 (optional)
	HallOfFamePath string // hall of fame whose best entry seeds generation 1 (optional)

	Config        *config.Config                  // nil uses config.Cfg()
	StatsCallback func(telemetry.GenerationStats) // called for every finished generation
}

// Game holds the complete game state.
type Game struct {
	rng     *rand.Rand
	rngSeed int64
	sim     *sim.Simulation
	codec   neural.Codec

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	hallOfFame    *telemetry.HallOfFame
	logStats      bool
	statsCallback func(telemetry.GenerationStats)

	// Rendering and UI, nil when headless
	camera   *camera.Camera
	hud      *ui.HUD
	controls *ui.ControlsPanel
	netView  *ui.NetworkView
	overlays *ui.Overlays

	// State
	paused         bool
	speed          int // ticks per frame in windowed mode
	maxSpeed       int
	obstacleLimit  int // obstacle slider upper bound
	stepsPerUpdate int
	brainPath      string
	status         string // last save/load result shown in the HUD

	screenWidth, screenHeight float32
	panelWidth                float32
}

// NewGameWithOptions creates a new game from opts.Config, or the global
// config when it is nil.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		rng:            rand.New(rand.NewSource(opts.Seed)),
		rngSeed:        opts.Seed,
		collector:      telemetry.NewCollector(),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		maxSpeed:       max(1, cfg.Simulation.MaxSpeed),
		obstacleLimit:  cfg.Obstacles.Max,
		stepsPerUpdate: max(1, opts.StepsPerUpdate),
		brainPath:      cfg.Simulation.BrainFile,
		screenWidth:    float32(cfg.Screen.Width + cfg.Screen.PanelW),
		screenHeight:   float32(cfg.Screen.Height),
		panelWidth:     float32(cfg.Screen.PanelW),
	}
	g.SetSpeed(cfg.Simulation.StepsPerFrame)

	p := carParams(cfg)
	g.codec = brainCodec(p)

	tr := track.Generate(g.rng, trackParams(cfg))
	g.sim = sim.New(g.rng, tr, simSettings(cfg), car.NewFactory(g.rng, p))

	g.setupTelemetry(cfg, opts)
	g.seedBrains(opts)

	if !opts.Headless {
		g.setupUI(cfg)
	}

	slog.Info("game created",
		"seed", opts.Seed,
		"population", cfg.Population.Size,
		"checkpoints", len(tr.Checkpoints),
		"obstacles", cfg.Obstacles.Count,
	)

	return g
}

// setupTelemetry opens the output directory and creates the hall of fame.
func (g *Game) setupTelemetry(cfg *config.Config, opts Options) {
	om, err := telemetry.NewOutputManager(opts.OutputDir, outputFiles(cfg))
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	if !cfg.HallOfFame.Enabled {
		return
	}
	if opts.HallOfFamePath != "" {
		hof, err := telemetry.LoadHallOfFameFromFile(opts.HallOfFamePath, cfg.HallOfFame.Size, g.rng)
		if err == nil {
			g.hallOfFame = hof
			slog.Info("hall of fame loaded", "path", opts.HallOfFamePath, "entries", hof.Size(), "top_fitness", hof.TopFitness())
			return
		}
		slog.Error("failed to load hall of fame", "path", opts.HallOfFamePath, "error", err)
	}
	g.hallOfFame = telemetry.NewHallOfFame(cfg.HallOfFame.Size, cfg.HallOfFame.MinFitness, g.rng)
}

// seedBrains loads a starting brain into generation 1. An explicit brain file
// wins over the hall of fame.
func (g *Game) seedBrains(opts Options) {
	if opts.BrainPath != "" {
		if err := g.LoadBrainFrom(opts.BrainPath); err != nil {
			slog.Error("failed to load brain", "path", opts.BrainPath, "error", err)
		}
		return
	}
	if opts.HallOfFamePath == "" || g.hallOfFame == nil {
		return
	}
	if best, ok := g.hallOfFame.Best(); ok {
		if err := g.sim.LoadBrain(g.codec, best.Brain); err != nil {
			slog.Error("failed to seed from hall of fame", "error", err)
			return
		}
		slog.Info("seeded from hall of fame", "generation", best.Generation, "fitness", best.Fitness)
	}
}

// setupUI creates the camera and panels for windowed mode.
func (g *Game) setupUI(cfg *config.Config) {
	g.camera = camera.New(float64(g.viewportWidth()), float64(g.screenHeight))
	g.camera.Smoothing = 0.15
	g.camera.Frame(g.sim.Track().Centerline(), cfg.Track.Width)
	g.hud = ui.NewHUD()
	g.controls = ui.NewControlsPanel(int32(g.viewportWidth()), 0, int32(g.panelWidth))
	g.netView = ui.NewNetworkView()
	g.overlays = ui.NewOverlays()
}

// viewportWidth is the screen width left for the track view.
func (g *Game) viewportWidth() float32 {
	return max(1, g.screenWidth-g.panelWidth)
}

// Update runs one frame in windowed mode: input, then Speed ticks.
func (g *Game) Update() {
	g.handleInput()

	if !g.paused {
		for i := 0; i < g.speed; i++ {
			g.step()
		}
	}

	if g.camera != nil {
		if best, _, ok := g.sim.BestAgent(); ok {
			g.camera.Follow(best.Position())
		}
	}
}

// UpdateHeadless runs StepsPerUpdate ticks without input or rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step advances the simulation one tick and flushes telemetry on rollover.
func (g *Game) step() {
	g.perfCollector.StartTick(g.sim.ActiveCount())

	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
	g.sim.Update()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// SetSpeed sets the ticks run per frame, clamped to [1, max speed].
func (g *Game) SetSpeed(speed int) {
	g.speed = min(max(speed, 1), g.maxSpeed)
}

// Speed returns the ticks run per frame.
func (g *Game) Speed() int { return g.speed }

// TogglePause pauses or resumes the simulation.
func (g *Game) TogglePause() { g.paused = !g.paused }

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool { return g.paused }

// Sim returns the underlying simulation.
func (g *Game) Sim() *sim.Simulation { return g.sim }

// HallOfFame returns the hall of fame, or nil when disabled.
func (g *Game) HallOfFame() *telemetry.HallOfFame { return g.hallOfFame }

// Tick returns the number of ticks simulated so far.
func (g *Game) Tick() int64 { return g.sim.Tick() }

// Generation returns the current generation number.
func (g *Game) Generation() int { return g.sim.Generation() }

// Unload flushes and closes output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

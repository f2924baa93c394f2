// Package evolution implements the population-based genetic optimizer for
// agent genomes: fitness objectives, tournament selection, uniform
// crossover, per-gene mutation, elitism, diversity measurement and the
// engine facade that owns the population across generations.
package evolution

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/ktorvald/evoagent/pkg/genome"
	"github.com/ktorvald/evoagent/pkg/logging"
)

// GenerationStats is the per-generation snapshot returned by a step and
// by Statistics.
type GenerationStats struct {
	Generation       int       `json:"generation"`
	PopulationSize   int       `json:"population_size"`
	AverageFitness   float64   `json:"average_fitness"`
	BestFitness      float64   `json:"best_fitness"`
	GeneticDiversity float64   `json:"genetic_diversity"`
	Timestamp        time.Time `json:"timestamp"`
}

// Recorder receives the statistics of each completed generation, for
// archival or reporting. Recording is best effort: a recorder failure is
// logged and does not fail the step.
type Recorder interface {
	RecordGeneration(ctx context.Context, stats GenerationStats) error
}

// Engine owns the population and generation counter. All operations are
// serialized behind one mutex, so host feedback events may arrive
// concurrently with generational stepping.
type Engine struct {
	mu         sync.Mutex
	config     Config
	population []*genome.Genome
	generation int
	rng        *rand.Rand
	recorder   Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for all stochastic choices,
// allowing reproducible runs from a seeded generator.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithRecorder attaches a generation-statistics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// New creates an engine with the given configuration. The configuration
// is validated up front; the population stays empty until
// InitializePopulation or the first StepGeneration call.
func New(config Config, opts ...Option) (*Engine, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		config: config,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// InitializePopulation resets the engine to generation 0 with freshly
// seeded random genomes. An explicit size overrides the configured one
// for this population; otherwise the configured size is used.
func (e *Engine) InitializePopulation(size ...int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := e.config.PopulationSize
	if len(size) > 0 && size[0] > 0 {
		n = size[0]
	}
	e.initializeLocked(n)
}

func (e *Engine) initializeLocked(n int) {
	e.generation = 0
	e.population = make([]*genome.Genome, n)
	for i := range e.population {
		e.population[i] = genome.NewRandom(0, e.rng)
	}

	logging.GetLogger().Info(context.Background(),
		"population initialized: size=%d, objective=%s", n, e.config.FitnessFunction)
}

// SeedPopulation resets the engine to generation 0 with the given
// genomes, for hosts that want to start from known agents instead of
// random seeding. The configured population size still governs the size
// after the next step.
func (e *Engine) SeedPopulation(genomes []*genome.Genome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.generation = 0
	e.population = make([]*genome.Genome, len(genomes))
	copy(e.population, genomes)
}

// StepGeneration runs one full generational transition: fitness
// evaluation, elitism, breeding through selection, crossover and
// mutation, then the population swap. An empty engine auto-initializes
// with the configured population size first.
//
// The returned statistics are computed from the just-built population,
// where every non-elite member still carries zero fitness; average and
// best fitness therefore reflect the elite subset until the next step
// re-evaluates everyone. Host reporting relies on this ordering, so it is
// kept as is.
func (e *Engine) StepGeneration(ctx context.Context) GenerationStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	logger := logging.GetLogger()

	if len(e.population) == 0 {
		e.initializeLocked(e.config.PopulationSize)
	}

	e.evaluateLocked(ctx)

	// Stable sort keeps elitism deterministic when fitness values tie.
	ranked := make([]*genome.Genome, len(e.population))
	copy(ranked, e.population)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})

	next := make([]*genome.Genome, 0, e.config.PopulationSize)

	eliteCount := e.config.ElitismCount
	if eliteCount > len(ranked) {
		eliteCount = len(ranked)
	}
	for _, elite := range ranked[:eliteCount] {
		// Carried over unchanged: same id, genes and history; only age moves.
		elite.Age++
		next = append(next, elite)
	}

	targetGeneration := e.generation + 1
	for len(next) < e.config.PopulationSize {
		parent1 := TournamentSelect(e.population, e.rng)
		parent2 := TournamentSelect(e.population, e.rng)

		child := Crossover(parent1, parent2, e.config.CrossoverRate, targetGeneration, e.rng)
		child = Mutate(child, e.config.MutationRate, e.rng)
		next = append(next, child)
	}

	e.population = next
	e.generation++

	stats := e.statisticsLocked()

	logger.Info(ctx, "generation complete: generation=%d, size=%d, best_fitness=%.3f, avg_fitness=%.3f, diversity=%.3f",
		stats.Generation,
		stats.PopulationSize,
		stats.BestFitness,
		stats.AverageFitness,
		stats.GeneticDiversity)

	if e.recorder != nil {
		if err := e.recorder.RecordGeneration(ctx, stats); err != nil {
			logger.Warn(ctx, "failed to record generation stats: %v", err)
		}
	}

	return stats
}

// evaluateLocked recomputes fitness for every genome under the configured
// objective. Evaluation is pure per genome, so it fans out across a
// bounded worker pool; each worker writes only its own genome.
func (e *Engine) evaluateLocked(ctx context.Context) {
	p := pool.New().WithMaxGoroutines(e.config.Concurrency)
	for _, g := range e.population {
		g := g
		p.Go(func() {
			g.Fitness = Evaluate(g, e.config.FitnessFunction)
		})
	}
	p.Wait()
}

// RecordPerformance folds one host-observed outcome into the matching
// agent's performance history. Unknown agent ids are silently ignored:
// agents are routinely replaced across generations, so feedback is best
// effort by design of the host contract.
func (e *Engine) RecordPerformance(agentID string, outcome genome.Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, g := range e.population {
		if g.ID == agentID {
			g.Performance.Record(outcome)

			logging.GetLogger().Debug(context.Background(),
				"performance recorded: agent=%s, campaigns=%d, success_rate=%.3f",
				agentID, g.Performance.CampaignsAssisted, g.Performance.SuccessRate)
			return
		}
	}

	logging.GetLogger().Debug(context.Background(),
		"performance feedback for unknown agent dropped: agent=%s", agentID)
}

// BestAgent returns a copy of the genome with the highest fitness, or nil
// for an empty population.
func (e *Engine) BestAgent() *genome.Genome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.population) == 0 {
		return nil
	}

	best := e.population[0]
	for _, g := range e.population[1:] {
		if g.Fitness > best.Fitness {
			best = g
		}
	}
	return best.Clone()
}

// TopAgents returns copies of the top n genomes by fitness in descending
// order. When n exceeds the population size the whole population is
// returned.
func (e *Engine) TopAgents(n int) []*genome.Genome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if n > len(e.population) {
		n = len(e.population)
	}

	ranked := make([]*genome.Genome, len(e.population))
	copy(ranked, e.population)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})

	top := make([]*genome.Genome, n)
	for i := 0; i < n; i++ {
		top[i] = ranked[i].Clone()
	}
	return top
}

// Statistics returns a snapshot of the current population. All figures
// are zero for an empty engine.
func (e *Engine) Statistics() GenerationStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statisticsLocked()
}

func (e *Engine) statisticsLocked() GenerationStats {
	stats := GenerationStats{
		Generation: e.generation,
		Timestamp:  time.Now(),
	}
	if len(e.population) == 0 {
		return stats
	}

	stats.PopulationSize = len(e.population)
	for _, g := range e.population {
		stats.AverageFitness += g.Fitness
		if g.Fitness > stats.BestFitness {
			stats.BestFitness = g.Fitness
		}
	}
	stats.AverageFitness /= float64(len(e.population))
	stats.GeneticDiversity = Diversity(e.population)
	return stats
}

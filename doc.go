// Package evoagent is a population-based genetic optimizer for scored
// agent genomes: fixed vectors of weighted behavioral traits evolved
// across discrete generations toward a configurable fitness objective.
//
// The engine keeps a population of genomes, steps it one generation at a
// time through selection, crossover, mutation and elitism, measures the
// population's genetic diversity, and folds host-reported campaign
// outcomes back into each agent's running performance record.
//
// Key Components:
//
//   - Genome: the agent model in pkg/genome - a closed set of eight
//     named traits with values in [0,1], plus the performance history
//     (campaign count, running success rate, activists supported and an
//     exponentially weighted innovation score).
//
//   - Evolution: the engine in pkg/evolution - fitness objectives
//     (balanced, success-focused, innovation-focused), tournament
//     selection, uniform crossover, per-gene mutation, elitism, the
//     generation stepper and a thread-safe facade that serializes
//     stepping against asynchronous performance feedback.
//
//   - History: pkg/history archives per-generation statistics to SQLite
//     for later inspection of a run.
//
//   - Export: pkg/export renders a population as an Arrow trait matrix
//     and writes Parquet snapshots for offline analysis.
//
//   - Config: pkg/config loads YAML configuration and rejects invalid
//     evolutionary parameters up front.
//
// The evoctl command drives the engine from the command line.
package evoagent

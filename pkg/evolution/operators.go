package evolution

import (
	"math/rand"

	"github.com/ktorvald/evoagent/pkg/genome"
)

// tournamentSize is the fixed number of genomes drawn per tournament.
const tournamentSize = 5

// mutationSpan bounds the uniform perturbation applied to a mutated gene.
const mutationSpan = 0.15

// TournamentSelect draws five genomes uniformly at random with
// replacement and returns the one with the strictly highest fitness,
// keeping the first encountered on ties. The population is not mutated
// and the operator may be called any number of times per generation.
func TournamentSelect(population []*genome.Genome, rng *rand.Rand) *genome.Genome {
	if len(population) == 0 {
		return nil
	}

	best := population[rng.Intn(len(population))]
	for i := 1; i < tournamentSize; i++ {
		contender := population[rng.Intn(len(population))]
		if contender.Fitness > best.Fitness {
			best = contender
		}
	}
	return best
}

// Crossover breeds one offspring for the target generation.
//
// With probability 1-rate the offspring is an asexual clone of parent1:
// same gene values, fresh id, empty parent list. Otherwise each gene is
// taken verbatim from parent1 or parent2 with equal probability; values
// are never blended. Either way the offspring starts with zero fitness,
// zero age and an empty performance history.
func Crossover(parent1, parent2 *genome.Genome, rate float64, targetGeneration int, rng *rand.Rand) *genome.Genome {
	child := &genome.Genome{
		ID:         genome.NewID(),
		Generation: targetGeneration,
	}

	if rng.Float64() > rate {
		child.Genes = parent1.Genes
		return child
	}

	for t := range child.Genes {
		if rng.Float64() < 0.5 {
			child.Genes[t] = parent1.Genes[t]
		} else {
			child.Genes[t] = parent2.Genes[t]
		}
	}
	child.ParentIDs = []string{parent1.ID, parent2.ID}
	return child
}

// Mutate returns a copy of g where each gene is independently perturbed
// with probability rate by a delta drawn uniformly from
// [-mutationSpan, +mutationSpan], clamped back into [0,1]. The input
// genome is left untouched and all non-gene fields are preserved.
func Mutate(g *genome.Genome, rate float64, rng *rand.Rand) *genome.Genome {
	mutated := g.Clone()
	for t := range mutated.Genes {
		if rng.Float64() < rate {
			delta := (rng.Float64()*2 - 1) * mutationSpan
			mutated.Genes[t] = genome.Clamp01(mutated.Genes[t] + delta)
		}
	}
	return mutated
}

package evolution

import (
	"github.com/ktorvald/evoagent/pkg/genome"
)

// Diversity measures population-wide genetic heterogeneity as the mean of
// the per-trait population variances, capped at 1.0. Populations with
// fewer than two members have no measurable spread and score 0.
func Diversity(population []*genome.Genome) float64 {
	if len(population) < 2 {
		return 0
	}

	n := float64(len(population))
	total := 0.0
	for t := 0; t < genome.NumTraits; t++ {
		mean := 0.0
		for _, g := range population {
			mean += g.Genes[t]
		}
		mean /= n

		variance := 0.0
		for _, g := range population {
			d := g.Genes[t] - mean
			variance += d * d
		}
		total += variance / n
	}

	diversity := total / float64(genome.NumTraits)
	if diversity > 1 {
		return 1
	}
	return diversity
}

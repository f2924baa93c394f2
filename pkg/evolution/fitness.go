package evolution

import (
	"github.com/ktorvald/evoagent/pkg/genome"
)

// Fixed weight tables, indexed by trait. Each table sums to 1.0; traits
// absent from an objective carry weight zero.
var (
	successWeights = weightTable(map[genome.Trait]float64{
		genome.StrategicThinking: 0.30,
		genome.RiskAssessment:    0.25,
		genome.Persistence:       0.20,
		genome.Collaboration:     0.15,
		genome.Communication:     0.10,
	})

	innovationWeights = weightTable(map[genome.Trait]float64{
		genome.Creativity:        0.35,
		genome.Adaptability:      0.25,
		genome.StrategicThinking: 0.20,
		genome.Empathy:           0.10,
		genome.Communication:     0.10,
	})

	balancedWeights = weightTable(map[genome.Trait]float64{
		genome.StrategicThinking: 0.15,
		genome.Empathy:           0.15,
		genome.RiskAssessment:    0.125,
		genome.Creativity:        0.125,
		genome.Persistence:       0.10,
		genome.Collaboration:     0.15,
		genome.Communication:     0.10,
		genome.Adaptability:      0.10,
	})
)

func weightTable(weights map[genome.Trait]float64) [genome.NumTraits]float64 {
	var table [genome.NumTraits]float64
	for t, w := range weights {
		table[t] = w
	}
	return table
}

// Evaluate scores a genome under the given objective. It is a pure
// function of the gene values and performance history: no side effects,
// deterministic for identical inputs. The result is an exact weighted
// linear combination and is not clamped; the balanced objective can
// slightly exceed 1.0 through its success-rate multiplier.
func Evaluate(g *genome.Genome, fn FitnessFunction) float64 {
	switch fn {
	case FitnessSuccessFocused:
		return weightedSum(g, successWeights)
	case FitnessInnovationFocused:
		return weightedSum(g, innovationWeights)
	default:
		// balanced is the only objective that folds in performance history
		return weightedSum(g, balancedWeights) * (1 + g.Performance.SuccessRate*0.2)
	}
}

func weightedSum(g *genome.Genome, weights [genome.NumTraits]float64) float64 {
	sum := 0.0
	for t, w := range weights {
		sum += g.Genes[t] * w
	}
	return sum
}

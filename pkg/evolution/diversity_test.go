package evolution

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ktorvald/evoagent/pkg/genome"
)

func TestDiversitySmallPopulations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Zero(t, Diversity(nil))
	assert.Zero(t, Diversity([]*genome.Genome{genome.NewRandom(0, rng)}))
}

func TestDiversityUniformPopulationIsZero(t *testing.T) {
	g := &genome.Genome{}
	for i := range g.Genes {
		g.Genes[i] = 0.42
	}
	pop := []*genome.Genome{g.Clone(), g.Clone(), g.Clone()}

	assert.Zero(t, Diversity(pop))
}

func TestDiversityKnownVariance(t *testing.T) {
	low := &genome.Genome{}
	high := &genome.Genome{}
	for i := range high.Genes {
		high.Genes[i] = 1.0
	}

	// Two members at 0 and 1 per trait: population variance 0.25 per
	// trait, so the mean across traits is 0.25 as well.
	assert.InDelta(t, 0.25, Diversity([]*genome.Genome{low, high}), 1e-9)
}

func TestDiversityBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	pop := make([]*genome.Genome, 30)
	for i := range pop {
		pop[i] = genome.NewRandom(0, rng)
	}

	d := Diversity(pop)
	assert.GreaterOrEqual(t, d, 0.0)
	assert.LessOrEqual(t, d, 1.0)
}

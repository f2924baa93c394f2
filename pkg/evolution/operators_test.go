package evolution

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktorvald/evoagent/pkg/genome"
)

func testPopulation(n int, rng *rand.Rand) []*genome.Genome {
	pop := make([]*genome.Genome, n)
	for i := range pop {
		pop[i] = genome.NewRandom(0, rng)
		pop[i].Fitness = rng.Float64()
	}
	return pop
}

func TestTournamentSelectSingleMember(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pop := testPopulation(1, rng)

	for i := 0; i < 10; i++ {
		assert.Same(t, pop[0], TournamentSelect(pop, rng))
	}
}

func TestTournamentSelectFavorsFitness(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pop := testPopulation(2, rng)
	pop[0].Fitness = 0.1
	pop[1].Fitness = 0.9

	// A five-draw tournament over two members picks the stronger one
	// unless all draws land on the weaker, so wins skew heavily.
	wins := 0
	for i := 0; i < 200; i++ {
		if TournamentSelect(pop, rng) == pop[1] {
			wins++
		}
	}
	assert.Greater(t, wins, 150)
}

func TestTournamentSelectDoesNotMutate(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pop := testPopulation(10, rng)

	before := make([]genome.Genes, len(pop))
	for i, g := range pop {
		before[i] = g.Genes
	}

	for i := 0; i < 100; i++ {
		require.NotNil(t, TournamentSelect(pop, rng))
	}

	for i, g := range pop {
		assert.Equal(t, before[i], g.Genes)
	}
	assert.Len(t, pop, 10)
}

func TestTournamentSelectEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	assert.Nil(t, TournamentSelect(nil, rng))
}

func TestCrossoverUniformNeverBlends(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p1 := genome.NewRandom(0, rng)
	p2 := genome.NewRandom(0, rng)

	for i := 0; i < 50; i++ {
		child := Crossover(p1, p2, 1.0, 1, rng)

		require.Equal(t, 1, child.Generation)
		require.Equal(t, []string{p1.ID, p2.ID}, child.ParentIDs)
		assert.Zero(t, child.Fitness)
		assert.Zero(t, child.Age)
		assert.Zero(t, child.Performance)
		assert.NotEqual(t, p1.ID, child.ID)
		assert.NotEqual(t, p2.ID, child.ID)

		for tr := range child.Genes {
			v := child.Genes[tr]
			assert.True(t, v == p1.Genes[tr] || v == p2.Genes[tr],
				"gene %d must come verbatim from a parent", tr)
		}
	}
}

func TestCrossoverMixesBothParents(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	p1 := &genome.Genome{ID: genome.NewID()}
	p2 := &genome.Genome{ID: genome.NewID()}
	for i := range p2.Genes {
		p2.Genes[i] = 1.0
	}

	sawP1, sawP2 := false, false
	for i := 0; i < 20; i++ {
		child := Crossover(p1, p2, 1.0, 1, rng)
		for _, v := range child.Genes {
			if v == 0.0 {
				sawP1 = true
			} else {
				sawP2 = true
			}
		}
	}
	assert.True(t, sawP1, "expected at least one gene from parent1")
	assert.True(t, sawP2, "expected at least one gene from parent2")
}

func TestCrossoverClonePath(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	p1 := genome.NewRandom(0, rng)
	p2 := genome.NewRandom(0, rng)

	for i := 0; i < 20; i++ {
		child := Crossover(p1, p2, 0.0, 4, rng)

		assert.Equal(t, p1.Genes, child.Genes)
		assert.Empty(t, child.ParentIDs)
		assert.Equal(t, 4, child.Generation)
		assert.NotEqual(t, p1.ID, child.ID)
	}
}

func TestMutateZeroRateIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	g := genome.NewRandom(2, rng)
	g.ParentIDs = []string{"a", "b"}
	g.Fitness = 0.75

	mutated := Mutate(g, 0.0, rng)

	assert.Equal(t, g.Genes, mutated.Genes)
	assert.Equal(t, g.ID, mutated.ID)
	assert.Equal(t, g.Generation, mutated.Generation)
	assert.Equal(t, g.ParentIDs, mutated.ParentIDs)
	assert.Equal(t, g.Fitness, mutated.Fitness)
}

func TestMutateDoesNotTouchInput(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	g := genome.NewRandom(0, rng)
	before := g.Genes

	Mutate(g, 1.0, rng)

	assert.Equal(t, before, g.Genes)
}

func TestMutateBoundsAndSpan(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	g := genome.NewRandom(0, rng)

	for i := 0; i < 200; i++ {
		mutated := Mutate(g, 1.0, rng)
		for tr := range mutated.Genes {
			v := mutated.Genes[tr]
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
			// Unclamped deltas stay inside the mutation span.
			assert.LessOrEqual(t, v, g.Genes[tr]+mutationSpan+1e-9)
			assert.GreaterOrEqual(t, v, g.Genes[tr]-mutationSpan-1e-9)
		}
	}
}

func TestMutateClampsAtEdges(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	g := &genome.Genome{ID: genome.NewID()}
	for i := range g.Genes {
		g.Genes[i] = 1.0
	}

	for i := 0; i < 100; i++ {
		mutated := Mutate(g, 1.0, rng)
		for _, v := range mutated.Genes {
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

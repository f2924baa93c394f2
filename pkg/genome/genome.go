// Package genome defines the evolvable agent genome: a fixed vector of
// named behavioral trait values in [0,1], plus the running performance
// record fed back from host-observed campaign outcomes.
package genome

import (
	"math/rand"

	"github.com/google/uuid"
)

// PerformanceHistory accumulates host-reported outcomes for one agent.
// SuccessRate is a running mean and InnovationScore an exponentially
// weighted average; both stay in [0,1].
type PerformanceHistory struct {
	CampaignsAssisted  int     `json:"campaigns_assisted"`
	SuccessRate        float64 `json:"success_rate"`
	ActivistsSupported int     `json:"activists_supported"`
	InnovationScore    float64 `json:"innovation_score"`
}

// Outcome is one host-observed performance event for an agent.
type Outcome struct {
	CampaignSuccess bool    `json:"campaign_success"`
	InnovationLevel float64 `json:"innovation_level"`
	ActivistsHelped int     `json:"activists_helped"`
}

// Record folds one outcome into the history. The success rate update is an
// incremental mean over the post-increment campaign count; the innovation
// score decays with factor 0.9 toward the reported level.
func (h *PerformanceHistory) Record(outcome Outcome) {
	h.CampaignsAssisted++
	h.ActivistsSupported += outcome.ActivistsHelped

	n := float64(h.CampaignsAssisted)
	success := 0.0
	if outcome.CampaignSuccess {
		success = 1.0
	}
	h.SuccessRate = (h.SuccessRate*(n-1) + success) / n
	h.InnovationScore = h.InnovationScore*0.9 + Clamp01(outcome.InnovationLevel)*0.1
}

// Genome is one evolvable agent. ID is assigned at creation and never
// changes; Fitness is transient and only meaningful right after an
// evaluation pass; Age counts generations survived through elitism.
type Genome struct {
	ID          string             `json:"id"`
	Generation  int                `json:"generation"`
	Genes       Genes              `json:"genes"`
	Fitness     float64            `json:"fitness"`
	Age         int                `json:"age"`
	ParentIDs   []string           `json:"parent_ids"`
	Performance PerformanceHistory `json:"performance"`
}

// NewID returns a fresh opaque genome identifier.
func NewID() string {
	return uuid.NewString()
}

// NewRandom creates a randomly seeded genome for the given generation.
func NewRandom(generation int, rng *rand.Rand) *Genome {
	g := &Genome{
		ID:         NewID(),
		Generation: generation,
	}
	for t := range g.Genes {
		g.Genes[t] = rng.Float64()
	}
	return g
}

// Clone returns a deep copy sharing no mutable state with the original.
func (g *Genome) Clone() *Genome {
	dup := *g
	if g.ParentIDs != nil {
		dup.ParentIDs = make([]string, len(g.ParentIDs))
		copy(dup.ParentIDs, g.ParentIDs)
	}
	return &dup
}

// Gene returns the value for one trait.
func (g *Genome) Gene(t Trait) float64 {
	return g.Genes[t]
}

// SetGene stores a trait value, clamped to [0,1].
func (g *Genome) SetGene(t Trait, v float64) {
	g.Genes[t] = Clamp01(v)
}

package genome

// Trait identifies one of the fixed behavioral traits every agent genome
// carries. The set is closed: operators that need to touch "all genes"
// iterate the trait indices rather than ranging over dynamic keys.
type Trait int

const (
	StrategicThinking Trait = iota
	Empathy
	RiskAssessment
	Creativity
	Persistence
	Collaboration
	Communication
	Adaptability

	numTraits
)

// NumTraits is the size of the gene vector.
const NumTraits = int(numTraits)

var traitNames = [...]string{
	"strategic-thinking",
	"empathy",
	"risk-assessment",
	"creativity",
	"persistence",
	"collaboration",
	"communication",
	"adaptability",
}

// String returns the canonical kebab-case trait name.
func (t Trait) String() string {
	if t < 0 || t >= numTraits {
		return "unknown"
	}
	return traitNames[t]
}

// AllTraits returns the traits in canonical order.
func AllTraits() []Trait {
	traits := make([]Trait, NumTraits)
	for i := range traits {
		traits[i] = Trait(i)
	}
	return traits
}

// ParseTrait resolves a canonical trait name. The second return value is
// false for names outside the fixed set.
func ParseTrait(name string) (Trait, bool) {
	for i, n := range traitNames {
		if n == name {
			return Trait(i), true
		}
	}
	return 0, false
}

// Genes is the fixed-size gene vector, indexed by Trait. Every value is
// kept in the closed interval [0,1].
type Genes [NumTraits]float64

// Clamp01 restricts v to the closed interval [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

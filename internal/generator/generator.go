// Package generator selects the next question from a difficulty profile and
// the learner's mastery state: it enumerates the candidate fact domain,
// filters retired facts, and biases selection toward the weakest facts.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/flashmath/internal/difficulty"
	"github.com/abhisek/flashmath/internal/facts"
	"github.com/abhisek/flashmath/internal/mastery"
)

// ErrNoCandidateFacts is returned by Next when the profile's operand range
// and operator set produce an empty fact domain. The caller should widen the
// profile or fall back to a fixed level.
type ErrNoCandidateFacts struct {
	Profile difficulty.Profile
}

func (e *ErrNoCandidateFacts) Error() string {
	return fmt.Sprintf("no candidate facts for %s profile (operands %d..%d, operators %v)",
		e.Profile.Level, e.Profile.OperandMin, e.Profile.OperandMax, e.Profile.Operators)
}

// Config holds the selection policy.
type Config struct {
	// WeakBias is the probability of drawing from the weakest-facts pool
	// instead of uniformly from all candidates.
	WeakBias float64
	// WeakPoolSize is how many weakest facts the biased draw considers.
	WeakPoolSize int
	// MinViablePool is the smallest candidate pool the retirement filter may
	// leave behind. If filtering retired facts would shrink the pool below
	// it, retired facts stay in play.
	MinViablePool int
}

// DefaultConfig returns the standard selection policy.
func DefaultConfig() Config {
	return Config{
		WeakBias:      0.7,
		WeakPoolSize:  5,
		MinViablePool: 4,
	}
}

// Question is a single presented problem. Left and Right carry the
// presentation order, which may differ from the fact's canonical operand
// order for commutative operators.
type Question struct {
	Fact        facts.Fact
	Answer      int
	Left, Right int
}

// Prompt renders the question in presentation order, e.g. "4 × 3".
func (q Question) Prompt() string {
	return fmt.Sprintf("%d %s %d", q.Left, q.Fact.Op.Symbol(), q.Right)
}

// Check reports whether the given answer is correct.
func (q Question) Check(answer int) bool {
	return answer == q.Answer
}

// Generator produces questions. It is not safe for concurrent use; each
// session owns one.
type Generator struct {
	cfg     Config
	rng     *rand.Rand
	last    facts.Fact
	hasLast bool
}

// New creates a generator with the given policy and random source.
func New(cfg Config, rng *rand.Rand) *Generator {
	if cfg.WeakPoolSize <= 0 {
		cfg.WeakPoolSize = 1
	}
	return &Generator{cfg: cfg, rng: rng}
}

// Next selects the next question. The fact domain is enumerated from the
// profile, retired facts are filtered out unless that would leave too few
// candidates, and the immediately preceding fact is never repeated unless it
// is the only candidate.
func (g *Generator) Next(p difficulty.Profile, tr *mastery.Tracker) (Question, error) {
	domain := Domain(p)
	if len(domain) == 0 {
		return Question{}, &ErrNoCandidateFacts{Profile: p}
	}

	pool := make([]facts.Fact, 0, len(domain))
	for _, f := range domain {
		if !tr.ReadyForRetirement(f) {
			pool = append(pool, f)
		}
	}
	if len(pool) < g.cfg.MinViablePool {
		pool = domain
	}

	if g.hasLast && len(pool) > 1 {
		trimmed := pool[:0:0]
		for _, f := range pool {
			if f != g.last {
				trimmed = append(trimmed, f)
			}
		}
		pool = trimmed
	}

	var f facts.Fact
	if g.rng.Float64() < g.cfg.WeakBias {
		weak := tr.WeakestFacts(pool, g.cfg.WeakPoolSize)
		f = weak[g.rng.Intn(len(weak))]
	} else {
		f = pool[g.rng.Intn(len(pool))]
	}

	g.last, g.hasLast = f, true
	return g.present(f), nil
}

// present builds the Question value, flipping commutative operands half the
// time so 3+4 and 4+3 both appear even though they share one fact.
func (g *Generator) present(f facts.Fact) Question {
	q := Question{Fact: f, Answer: f.Answer(), Left: f.A, Right: f.B}
	if f.Op.Commutative() && f.A != f.B && g.rng.Intn(2) == 1 {
		q.Left, q.Right = f.B, f.A
	}
	return q
}

// Domain enumerates the canonical fact domain implied by a profile, in a
// deterministic order: operators in tier order, operands ascending.
// Commutative facts appear once. Division facts are enumerated by divisor
// and quotient so every candidate divides exactly.
func Domain(p difficulty.Profile) []facts.Fact {
	var out []facts.Fact
	for _, op := range facts.AllOperators() {
		if !p.HasOperator(op) {
			continue
		}
		switch op {
		case facts.Add:
			for a := p.OperandMin; a <= p.OperandMax; a++ {
				for b := a; b <= p.OperandMax; b++ {
					out = append(out, facts.MustNew(facts.Add, a, b))
				}
			}
		case facts.Sub:
			for a := p.OperandMin; a <= p.OperandMax; a++ {
				for b := p.OperandMin; b <= p.OperandMax; b++ {
					if !p.AllowNegativeResults && b > a {
						continue
					}
					out = append(out, facts.MustNew(facts.Sub, a, b))
				}
			}
		case facts.Mul:
			maxFactor := minInt(p.OperandMax, p.Mul.MaxFactor)
			for a := p.OperandMin; a <= maxFactor; a++ {
				for b := a; b <= maxFactor; b++ {
					if a*b > p.Mul.MaxProduct {
						break
					}
					out = append(out, facts.MustNew(facts.Mul, a, b))
				}
			}
		case facts.Div:
			maxDivisor := minInt(p.OperandMax, p.Div.MaxDivisor)
			maxQuotient := minInt(p.OperandMax, p.Div.MaxQuotient)
			for d := p.OperandMin; d <= maxDivisor; d++ {
				if d == 0 {
					continue
				}
				for q := p.OperandMin; q <= maxQuotient; q++ {
					if d*q > p.Div.MaxDividend {
						break
					}
					out = append(out, facts.MustNew(facts.Div, d*q, d))
				}
			}
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

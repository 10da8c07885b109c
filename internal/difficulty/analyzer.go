package difficulty

import (
	"github.com/abhisek/flashmath/internal/analytics"
	"github.com/abhisek/flashmath/internal/facts"
	"github.com/abhisek/flashmath/internal/mastery"
)

// Config holds the tunable hill-climbing policy. The precise values are not
// load-bearing for correctness; what matters is monotonic responsiveness.
type Config struct {
	// Window is the number of recent outcomes the analyzer judges by.
	Window int
	// MinSample is the minimum recent outcomes before any adjustment.
	MinSample int
	// UpperThreshold and LowerThreshold bound the hold band.
	UpperThreshold float64
	LowerThreshold float64
	// StreakThreshold gates widening alongside the upper threshold.
	StreakThreshold int
	// RangeStep is the operand_max delta per adjustment.
	RangeStep int
	// FloorOperandMax and CeilingOperandMax clamp all adjustments. The floor
	// matches the Intro level so a struggling learner never regresses below it.
	FloorOperandMax   int
	CeilingOperandMax int
	// ViableAttempts and ViableAccuracy qualify an operator from historical
	// performance when bootstrapping a profile.
	ViableAttempts int
	ViableAccuracy float64
}

// DefaultConfig returns the standard hill-climbing policy.
func DefaultConfig() Config {
	return Config{
		Window:            analytics.DefaultWindowSize,
		MinSample:         10,
		UpperThreshold:    0.85,
		LowerThreshold:    0.50,
		StreakThreshold:   5,
		RangeStep:         5,
		FloorOperandMax:   ForLevel(LevelIntro).OperandMax,
		CeilingOperandMax: 100,
		ViableAttempts:    10,
		ViableAccuracy:    0.7,
	}
}

// Analyzer turns accumulated tracker state and recent session analytics into
// a personalized difficulty profile. It is a discrete hill-climbing control
// loop, not a statistical model: widen on sustained success, narrow on
// sustained struggle, hold otherwise.
type Analyzer struct {
	cfg     Config
	profile Profile
}

// NewAnalyzer creates an analyzer starting from the default custom profile.
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.RangeStep <= 0 {
		cfg.RangeStep = 1
	}
	return &Analyzer{cfg: cfg, profile: ForLevel(LevelCustom)}
}

// Profile returns the analyzer's current profile.
func (a *Analyzer) Profile() Profile {
	return a.profile
}

// Bootstrap derives the starting profile from the tracker's historical
// aggregate: operators the learner has already proven viable are enabled,
// and the operand ceiling opens up with overall accuracy.
func (a *Analyzer) Bootstrap(tr *mastery.Tracker) Profile {
	totals := tr.OperatorTotals()

	ops := []facts.Operator{facts.Add}
	for _, op := range facts.AllOperators() {
		if op == facts.Add {
			continue
		}
		agg := totals[op]
		if agg.Attempts >= a.cfg.ViableAttempts && agg.Accuracy() >= a.cfg.ViableAccuracy {
			ops = append(ops, op)
		}
	}

	attempts, correct := 0, 0
	for _, agg := range totals {
		attempts += agg.Attempts
		correct += agg.Correct
	}

	max := a.cfg.FloorOperandMax + 3
	allowNegative := false
	if attempts >= a.cfg.ViableAttempts*2 {
		overall := float64(correct) / float64(attempts)
		if overall >= a.cfg.UpperThreshold {
			max += a.cfg.RangeStep
		}
		allowNegative = overall >= 0.8 && containsOp(ops, facts.Sub)
	}
	max = clampInt(max, a.cfg.FloorOperandMax, a.cfg.CeilingOperandMax)

	a.profile = customProfile(1, max, ops, allowNegative)
	return a.profile
}

// Recompute performs at most one hill-climbing adjustment from recent
// session performance and returns the resulting profile. The returned
// profile always satisfies Validate.
func (a *Analyzer) Recompute(snap analytics.Snapshot) Profile {
	if snap.RecentSample < a.cfg.MinSample {
		return a.profile
	}

	switch {
	case snap.RecentAccuracy >= a.cfg.UpperThreshold && snap.CurrentStreak >= a.cfg.StreakThreshold:
		a.widen()
	case snap.RecentAccuracy <= a.cfg.LowerThreshold:
		a.narrow()
	}
	return a.profile
}

// widen raises operand_max by exactly one step and unlocks the next operator
// tier, clamped to the ceiling.
func (a *Analyzer) widen() {
	max := clampInt(a.profile.OperandMax+a.cfg.RangeStep, a.cfg.FloorOperandMax, a.cfg.CeilingOperandMax)

	ops := a.profile.Operators
	if next, ok := nextOperatorTier(ops); ok {
		ops = append(append([]facts.Operator{}, ops...), next)
	}

	allowNegative := a.profile.AllowNegativeResults || containsOp(ops, facts.Sub) && max > 2*a.cfg.FloorOperandMax

	a.profile = customProfile(a.profile.OperandMin, max, ops, allowNegative)
}

// narrow lowers operand_max by one step (never below the floor) and retires
// the most recently unlocked operator. The operator set never empties: add
// always survives.
func (a *Analyzer) narrow() {
	max := clampInt(a.profile.OperandMax-a.cfg.RangeStep, a.cfg.FloorOperandMax, a.cfg.CeilingOperandMax)

	ops := a.profile.Operators
	if len(ops) > 1 {
		ops = append([]facts.Operator{}, ops[:len(ops)-1]...)
	}
	if len(ops) == 0 {
		ops = []facts.Operator{facts.Add}
	}

	a.profile = customProfile(a.profile.OperandMin, max, ops, a.profile.AllowNegativeResults)
}

// nextOperatorTier returns the first operator, in tier order, missing from
// the enabled set.
func nextOperatorTier(enabled []facts.Operator) (facts.Operator, bool) {
	for _, op := range facts.AllOperators() {
		if !containsOp(enabled, op) {
			return op, true
		}
	}
	return 0, false
}

func containsOp(ops []facts.Operator, op facts.Operator) bool {
	for _, o := range ops {
		if o == op {
			return true
		}
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

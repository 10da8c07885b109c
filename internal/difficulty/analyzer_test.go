package difficulty

import (
	"testing"

	"github.com/abhisek/flashmath/internal/analytics"
	"github.com/abhisek/flashmath/internal/facts"
	"github.com/abhisek/flashmath/internal/mastery"
)

func snapshotFor(recentAccuracy float64, sample, streak int) analytics.Snapshot {
	return analytics.Snapshot{
		RecentAccuracy: recentAccuracy,
		RecentSample:   sample,
		CurrentStreak:  streak,
	}
}

func TestRecompute_WidensByExactlyOneStep(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	before := a.Profile()

	// 18/20 correct with a long streak: one widening step, not more.
	after := a.Recompute(snapshotFor(0.9, 20, 6))
	if after.OperandMax != before.OperandMax+DefaultConfig().RangeStep {
		t.Errorf("OperandMax = %d, want %d (exactly one step from %d)",
			after.OperandMax, before.OperandMax+DefaultConfig().RangeStep, before.OperandMax)
	}
}

func TestRecompute_WideningUnlocksNextOperatorTier(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	wantTiers := [][]facts.Operator{
		{facts.Add, facts.Sub},
		{facts.Add, facts.Sub, facts.Mul},
		{facts.Add, facts.Sub, facts.Mul, facts.Div},
		{facts.Add, facts.Sub, facts.Mul, facts.Div}, // no further tier
	}
	for i, want := range wantTiers {
		p := a.Recompute(snapshotFor(0.95, 20, 10))
		if len(p.Operators) != len(want) {
			t.Fatalf("step %d: operators = %v, want %v", i, p.Operators, want)
		}
		for j := range want {
			if p.Operators[j] != want[j] {
				t.Fatalf("step %d: operators = %v, want %v", i, p.Operators, want)
			}
		}
	}
}

func TestRecompute_HoldsInsideBand(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	before := a.Profile()

	after := a.Recompute(snapshotFor(0.7, 20, 3))
	if after.OperandMax != before.OperandMax || len(after.Operators) != len(before.Operators) {
		t.Errorf("profile changed inside the hold band: %+v -> %+v", before, after)
	}
}

func TestRecompute_HoldsWithoutStreak(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	before := a.Profile()

	// High accuracy but the streak gate is not met.
	after := a.Recompute(snapshotFor(0.9, 20, 2))
	if after.OperandMax != before.OperandMax {
		t.Errorf("widened without meeting the streak gate: %d -> %d", before.OperandMax, after.OperandMax)
	}
}

func TestRecompute_HoldsOnSmallSample(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	before := a.Profile()

	after := a.Recompute(snapshotFor(0.0, 3, 0))
	if after.OperandMax != before.OperandMax {
		t.Errorf("adjusted on %d samples, want hold below MinSample", 3)
	}
}

func TestRecompute_NarrowsOnStruggle(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	// Climb twice, then struggle.
	a.Recompute(snapshotFor(0.95, 20, 10))
	mid := a.Recompute(snapshotFor(0.95, 20, 10))
	after := a.Recompute(snapshotFor(0.4, 20, 0))

	if after.OperandMax != mid.OperandMax-DefaultConfig().RangeStep {
		t.Errorf("OperandMax = %d, want one step below %d", after.OperandMax, mid.OperandMax)
	}
	if len(after.Operators) != len(mid.Operators)-1 {
		t.Errorf("operators = %v, want newest tier dropped from %v", after.Operators, mid.Operators)
	}
}

func TestRecompute_NeverBreaksInvariants(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	// Adversarial alternation plus long runs in both directions.
	snaps := []analytics.Snapshot{
		snapshotFor(0.0, 20, 0), snapshotFor(0.0, 20, 0), snapshotFor(0.0, 20, 0),
		snapshotFor(0.0, 20, 0), snapshotFor(0.0, 20, 0), snapshotFor(0.0, 20, 0),
		snapshotFor(1.0, 20, 20), snapshotFor(0.0, 20, 0), snapshotFor(1.0, 20, 20),
	}
	for i := 0; i < 40; i++ {
		p := a.Recompute(snaps[i%len(snaps)])
		if err := p.Validate(); err != nil {
			t.Fatalf("iteration %d: %v", i, err)
		}
		if p.OperandMax < DefaultConfig().FloorOperandMax {
			t.Fatalf("iteration %d: OperandMax %d below floor", i, p.OperandMax)
		}
		if !p.HasOperator(facts.Add) {
			t.Fatalf("iteration %d: add missing from %v", i, p.Operators)
		}
	}
}

func TestRecompute_ClampsAtCeiling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CeilingOperandMax = 20
	a := NewAnalyzer(cfg)

	for i := 0; i < 10; i++ {
		a.Recompute(snapshotFor(1.0, 20, 20))
	}
	if got := a.Profile().OperandMax; got != 20 {
		t.Errorf("OperandMax = %d, want ceiling 20", got)
	}
}

func TestBootstrap_NewLearnerGetsDefault(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	p := a.Bootstrap(mastery.NewTracker(mastery.DefaultConfig()))

	if len(p.Operators) != 1 || p.Operators[0] != facts.Add {
		t.Errorf("operators = %v, want addition only for a new learner", p.Operators)
	}
	if p.AllowNegativeResults {
		t.Error("negative results should stay locked for a new learner")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("bootstrap profile invalid: %v", err)
	}
}

func TestBootstrap_ViableOperatorsUnlock(t *testing.T) {
	tr := mastery.NewTracker(mastery.DefaultConfig())
	// Sub: plenty of accurate history. Mul: too few attempts.
	for i := 0; i < 12; i++ {
		tr.RecordOutcome(facts.MustNew(facts.Sub, 9, i%5), true, 2.0)
	}
	tr.RecordOutcome(facts.MustNew(facts.Mul, 3, 4), true, 2.0)

	a := NewAnalyzer(DefaultConfig())
	p := a.Bootstrap(tr)

	if !p.HasOperator(facts.Sub) {
		t.Errorf("sub should be viable: %v", p.Operators)
	}
	if p.HasOperator(facts.Mul) {
		t.Errorf("mul should not be viable with 1 attempt: %v", p.Operators)
	}
}

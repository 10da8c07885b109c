package generator

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/abhisek/flashmath/internal/difficulty"
	"github.com/abhisek/flashmath/internal/facts"
	"github.com/abhisek/flashmath/internal/mastery"
)

func mulProfile(min, max int) difficulty.Profile {
	return difficulty.Profile{
		Level:      difficulty.LevelCustom,
		OperandMin: min, OperandMax: max,
		Operators: []facts.Operator{facts.Mul},
		Mul:       difficulty.MulRules{MaxFactor: max, MaxProduct: max * max},
	}
}

func TestDomain_SmallMultiplication(t *testing.T) {
	got := Domain(mulProfile(1, 3))

	want := map[facts.Fact]bool{
		facts.MustNew(facts.Mul, 1, 1): true,
		facts.MustNew(facts.Mul, 1, 2): true,
		facts.MustNew(facts.Mul, 1, 3): true,
		facts.MustNew(facts.Mul, 2, 2): true,
		facts.MustNew(facts.Mul, 2, 3): true,
		facts.MustNew(facts.Mul, 3, 3): true,
	}
	if len(got) != len(want) {
		t.Fatalf("domain has %d facts, want %d: %v", len(got), len(want), got)
	}
	for _, f := range got {
		if !want[f] {
			t.Errorf("unexpected fact %s in domain", f)
		}
	}
}

func TestDomain_SubtractionRespectsNegativeFlag(t *testing.T) {
	p := difficulty.Profile{
		OperandMin: 1, OperandMax: 3,
		Operators: []facts.Operator{facts.Sub},
	}
	for _, f := range Domain(p) {
		if f.Answer() < 0 {
			t.Errorf("negative result %s = %d with negatives disabled", f, f.Answer())
		}
	}

	p.AllowNegativeResults = true
	sawNegative := false
	for _, f := range Domain(p) {
		if f.Answer() < 0 {
			sawNegative = true
		}
	}
	if !sawNegative {
		t.Error("no negative-result facts with negatives enabled")
	}
}

func TestDomain_DivisionSkipsZeroDivisor(t *testing.T) {
	p := difficulty.Profile{
		Level:      difficulty.LevelCustom,
		OperandMin: 0, OperandMax: 5,
		Operators: []facts.Operator{facts.Div},
		Div:       difficulty.DivRules{MaxDivisor: 5, MaxQuotient: 5, MaxDividend: 25},
	}

	got := Domain(p)
	if len(got) == 0 {
		t.Fatal("empty division domain")
	}
	for _, f := range got {
		if f.B == 0 {
			t.Fatalf("zero divisor in fact %s", f)
		}
	}
}

func TestDomain_DivisionIsExact(t *testing.T) {
	p := difficulty.ForLevel(difficulty.LevelHard)
	for _, f := range Domain(p) {
		if f.Op != facts.Div {
			continue
		}
		if f.B == 0 || f.A%f.B != 0 {
			t.Fatalf("inexact division fact %s", f)
		}
		if f.A > p.Div.MaxDividend || f.B > p.Div.MaxDivisor {
			t.Errorf("fact %s exceeds division caps", f)
		}
	}
}

func TestDomain_MulCapsBindBeforeOperandRange(t *testing.T) {
	p := mulProfile(1, 10)
	p.Mul.MaxProduct = 20
	for _, f := range Domain(p) {
		if f.Op == facts.Mul && f.A*f.B > 20 {
			t.Errorf("fact %s exceeds product cap", f)
		}
	}
}

func TestNext_SelectsOnlyFromDomain(t *testing.T) {
	g := New(DefaultConfig(), rand.New(rand.NewSource(1)))
	tr := mastery.NewTracker(mastery.DefaultConfig())
	p := mulProfile(1, 3)

	allowed := make(map[facts.Fact]bool)
	for _, f := range Domain(p) {
		allowed[f] = true
	}
	for i := 0; i < 200; i++ {
		q, err := g.Next(p, tr)
		if err != nil {
			t.Fatal(err)
		}
		if !allowed[q.Fact] {
			t.Fatalf("selected %s outside the profile domain", q.Fact)
		}
		if q.Answer != q.Fact.Answer() {
			t.Fatalf("question answer %d, fact answer %d", q.Answer, q.Fact.Answer())
		}
	}
}

func TestNext_NoImmediateRepeat(t *testing.T) {
	g := New(DefaultConfig(), rand.New(rand.NewSource(7)))
	tr := mastery.NewTracker(mastery.DefaultConfig())
	p := mulProfile(1, 3)

	prev, err := g.Next(p, tr)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 500; i++ {
		q, err := g.Next(p, tr)
		if err != nil {
			t.Fatal(err)
		}
		if q.Fact == prev.Fact {
			t.Fatalf("draw %d repeated %s immediately", i, q.Fact)
		}
		prev = q
	}
}

func TestNext_SingletonPoolMayRepeat(t *testing.T) {
	g := New(DefaultConfig(), rand.New(rand.NewSource(1)))
	tr := mastery.NewTracker(mastery.DefaultConfig())
	p := difficulty.Profile{
		OperandMin: 1, OperandMax: 1,
		Operators: []facts.Operator{facts.Add},
	}

	only := facts.MustNew(facts.Add, 1, 1)
	for i := 0; i < 3; i++ {
		q, err := g.Next(p, tr)
		if err != nil {
			t.Fatal(err)
		}
		if q.Fact != only {
			t.Fatalf("got %s, want %s", q.Fact, only)
		}
	}
}

func TestNext_EmptyDomain(t *testing.T) {
	g := New(DefaultConfig(), rand.New(rand.NewSource(1)))
	tr := mastery.NewTracker(mastery.DefaultConfig())
	p := mulProfile(1, 3)
	p.Mul.MaxProduct = 0

	_, err := g.Next(p, tr)
	var noCand *ErrNoCandidateFacts
	if !errors.As(err, &noCand) {
		t.Fatalf("err = %v, want ErrNoCandidateFacts", err)
	}
	if noCand.Profile.OperandMax != 3 {
		t.Errorf("error does not carry the offending profile: %+v", noCand.Profile)
	}
}

func TestNext_BiasesTowardWeakestFact(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeakBias = 1.0
	cfg.WeakPoolSize = 1
	g := New(cfg, rand.New(rand.NewSource(1)))

	tr := mastery.NewTracker(mastery.DefaultConfig())
	p := mulProfile(1, 3)
	weakest := facts.MustNew(facts.Mul, 2, 3)
	for _, f := range Domain(p) {
		correct := f != weakest
		tr.RecordOutcome(f, correct, 2.0)
		tr.RecordOutcome(f, correct, 2.0)
	}

	q, err := g.Next(p, tr)
	if err != nil {
		t.Fatal(err)
	}
	if q.Fact != weakest {
		t.Errorf("first draw = %s, want weakest fact %s", q.Fact, weakest)
	}
}

func TestNext_FiltersRetiredFacts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinViablePool = 1
	g := New(cfg, rand.New(rand.NewSource(3)))

	tr := mastery.NewTracker(mastery.DefaultConfig())
	p := mulProfile(1, 3)
	fresh := facts.MustNew(facts.Mul, 1, 2)
	for _, f := range Domain(p) {
		if f == fresh {
			continue
		}
		for i := 0; i < 6; i++ {
			tr.RecordOutcome(f, true, 1.0)
		}
	}

	for i := 0; i < 20; i++ {
		q, err := g.Next(p, tr)
		if err != nil {
			t.Fatal(err)
		}
		if q.Fact != fresh {
			t.Fatalf("selected retired fact %s", q.Fact)
		}
	}
}

func TestNext_RetirementFilterKeepsPoolViable(t *testing.T) {
	g := New(DefaultConfig(), rand.New(rand.NewSource(3)))

	tr := mastery.NewTracker(mastery.DefaultConfig())
	p := mulProfile(1, 3)
	// Retire everything: filtering would empty the pool, so the guard must
	// keep retired facts selectable.
	for _, f := range Domain(p) {
		for i := 0; i < 6; i++ {
			tr.RecordOutcome(f, true, 1.0)
		}
	}

	if _, err := g.Next(p, tr); err != nil {
		t.Fatalf("uniformly mastered domain should still produce questions: %v", err)
	}
}

func TestQuestion_PresentationFlipsCommutativeOperands(t *testing.T) {
	g := New(DefaultConfig(), rand.New(rand.NewSource(11)))
	tr := mastery.NewTracker(mastery.DefaultConfig())
	p := difficulty.Profile{
		OperandMin: 1, OperandMax: 2,
		Operators: []facts.Operator{facts.Add},
	}

	orders := make(map[[2]int]bool)
	for i := 0; i < 100; i++ {
		q, err := g.Next(p, tr)
		if err != nil {
			t.Fatal(err)
		}
		if q.Fact == facts.MustNew(facts.Add, 1, 2) {
			orders[[2]int{q.Left, q.Right}] = true
		}
		if !q.Check(q.Answer) || q.Check(q.Answer+1) {
			t.Fatal("answer checking broken")
		}
	}
	if !orders[[2]int{1, 2}] || !orders[[2]int{2, 1}] {
		t.Errorf("presentation orders seen: %v, want both 1+2 and 2+1", orders)
	}
}

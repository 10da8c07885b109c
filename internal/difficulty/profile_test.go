package difficulty

import (
	"testing"

	"github.com/abhisek/flashmath/internal/facts"
)

func TestForLevel_Tables(t *testing.T) {
	cases := []struct {
		level    Level
		min, max int
		ops      []facts.Operator
		negative bool
	}{
		{LevelIntro, 1, 7, []facts.Operator{facts.Add}, false},
		{LevelBasic, 1, 12, []facts.Operator{facts.Add, facts.Sub}, false},
		{LevelMedium, 1, 20, []facts.Operator{facts.Add, facts.Sub, facts.Mul}, true},
		{LevelHard, 1, 50, []facts.Operator{facts.Add, facts.Sub, facts.Mul, facts.Div}, true},
	}
	for _, tc := range cases {
		p := ForLevel(tc.level)
		if p.OperandMin != tc.min || p.OperandMax != tc.max {
			t.Errorf("%s: range [%d,%d], want [%d,%d]", tc.level, p.OperandMin, p.OperandMax, tc.min, tc.max)
		}
		if len(p.Operators) != len(tc.ops) {
			t.Errorf("%s: operators %v, want %v", tc.level, p.Operators, tc.ops)
			continue
		}
		for i := range tc.ops {
			if p.Operators[i] != tc.ops[i] {
				t.Errorf("%s: operators %v, want %v", tc.level, p.Operators, tc.ops)
			}
		}
		if p.AllowNegativeResults != tc.negative {
			t.Errorf("%s: AllowNegativeResults = %v, want %v", tc.level, p.AllowNegativeResults, tc.negative)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", tc.level, err)
		}
	}
}

func TestForLevel_MulDivRulesScale(t *testing.T) {
	basic := ForLevel(LevelBasic)
	if basic.Mul.MaxFactor != 12 || basic.Mul.MaxProduct != 144 {
		t.Errorf("basic mul rules = %+v", basic.Mul)
	}
	hard := ForLevel(LevelHard)
	if hard.Div.MaxDividend != 2500 || hard.Div.MaxDivisor != 50 {
		t.Errorf("hard div rules = %+v", hard.Div)
	}
}

func TestValidate_RejectsBadProfiles(t *testing.T) {
	p := ForLevel(LevelBasic)
	p.Operators = nil
	if err := p.Validate(); err == nil {
		t.Error("empty operator set should not validate")
	}

	p = ForLevel(LevelBasic)
	p.OperandMin, p.OperandMax = 10, 10
	if err := p.Validate(); err == nil {
		t.Error("degenerate operand range should not validate")
	}
}

func TestHasOperator(t *testing.T) {
	p := ForLevel(LevelIntro)
	if !p.HasOperator(facts.Add) {
		t.Error("intro should include addition")
	}
	if p.HasOperator(facts.Div) {
		t.Error("intro should not include division")
	}
}

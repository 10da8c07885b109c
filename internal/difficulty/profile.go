// Package difficulty defines difficulty profiles, the operand range and
// operator set that bound question generation, and the analyzer that derives
// a personalized profile from observed performance.
package difficulty

import (
	"fmt"

	"github.com/abhisek/flashmath/internal/facts"
)

// Level identifies a difficulty band.
type Level string

const (
	LevelIntro  Level = "intro"
	LevelBasic  Level = "basic"
	LevelMedium Level = "medium"
	LevelHard   Level = "hard"
	LevelCustom Level = "custom"
)

// FixedLevels returns the selectable fixed levels in ascending order.
func FixedLevels() []Level {
	return []Level{LevelIntro, LevelBasic, LevelMedium, LevelHard}
}

// DisplayName returns a human-readable name for the level.
func (l Level) DisplayName() string {
	switch l {
	case LevelIntro:
		return "Intro"
	case LevelBasic:
		return "Basic"
	case LevelMedium:
		return "Medium"
	case LevelHard:
		return "Hard"
	case LevelCustom:
		return "Custom"
	default:
		return string(l)
	}
}

// MulRules caps the multiplication fact domain so wide operand ranges stay
// age-appropriate.
type MulRules struct {
	MaxFactor  int
	MaxProduct int
}

// DivRules caps the division fact domain.
type DivRules struct {
	MaxDividend int
	MaxDivisor  int
	MaxQuotient int
}

// Profile bounds candidate question generation. Profiles are immutable
// configuration values: fixed levels are constructed once, custom profiles
// are produced fresh by the Analyzer.
type Profile struct {
	Level                Level
	OperandMin           int
	OperandMax           int
	Operators            []facts.Operator
	AllowNegativeResults bool
	Mul                  MulRules
	Div                  DivRules
}

// HasOperator reports whether the operator is enabled.
func (p Profile) HasOperator(op facts.Operator) bool {
	for _, o := range p.Operators {
		if o == op {
			return true
		}
	}
	return false
}

// Validate checks the profile invariants: a non-empty operator set and a
// non-degenerate operand range.
func (p Profile) Validate() error {
	if len(p.Operators) == 0 {
		return fmt.Errorf("profile %s: empty operator set", p.Level)
	}
	if p.OperandMin >= p.OperandMax {
		return fmt.Errorf("profile %s: operand range [%d, %d] is degenerate",
			p.Level, p.OperandMin, p.OperandMax)
	}
	return nil
}

// ForLevel returns the fixed profile for a level. Custom has no fixed
// profile; it returns the analyzer's starting point.
func ForLevel(l Level) Profile {
	switch l {
	case LevelBasic:
		return Profile{
			Level:      LevelBasic,
			OperandMin: 1, OperandMax: 12,
			Operators: []facts.Operator{facts.Add, facts.Sub},
			Mul:       MulRules{MaxFactor: 12, MaxProduct: 144},
			Div:       DivRules{MaxDividend: 144, MaxDivisor: 12, MaxQuotient: 12},
		}
	case LevelMedium:
		return Profile{
			Level:      LevelMedium,
			OperandMin: 1, OperandMax: 20,
			Operators:            []facts.Operator{facts.Add, facts.Sub, facts.Mul},
			AllowNegativeResults: true,
			Mul:                  MulRules{MaxFactor: 20, MaxProduct: 400},
			Div:                  DivRules{MaxDividend: 400, MaxDivisor: 20, MaxQuotient: 20},
		}
	case LevelHard:
		return Profile{
			Level:      LevelHard,
			OperandMin: 1, OperandMax: 50,
			Operators:            []facts.Operator{facts.Add, facts.Sub, facts.Mul, facts.Div},
			AllowNegativeResults: true,
			Mul:                  MulRules{MaxFactor: 50, MaxProduct: 2500},
			Div:                  DivRules{MaxDividend: 2500, MaxDivisor: 50, MaxQuotient: 50},
		}
	case LevelCustom:
		p := customProfile(1, 10, []facts.Operator{facts.Add}, false)
		return p
	default: // LevelIntro
		return Profile{
			Level:      LevelIntro,
			OperandMin: 1, OperandMax: 7,
			Operators: []facts.Operator{facts.Add},
			Mul:       MulRules{MaxFactor: 7, MaxProduct: 49},
			Div:       DivRules{MaxDividend: 49, MaxDivisor: 7, MaxQuotient: 7},
		}
	}
}

// customProfile builds a custom-level profile with mul/div caps derived from
// the operand range.
func customProfile(min, max int, ops []facts.Operator, allowNegative bool) Profile {
	return Profile{
		Level:      LevelCustom,
		OperandMin: min, OperandMax: max,
		Operators:            ops,
		AllowNegativeResults: allowNegative,
		Mul:                  MulRules{MaxFactor: max, MaxProduct: max * max},
		Div:                  DivRules{MaxDividend: max * max, MaxDivisor: max, MaxQuotient: max},
	}
}

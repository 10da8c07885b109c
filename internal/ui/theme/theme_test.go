package theme

import (
	"testing"

	"github.com/abhisek/flashmath/internal/difficulty"
)

func TestLevelStyle_CoversAllLevels(t *testing.T) {
	levels := append(difficulty.FixedLevels(), difficulty.LevelCustom)
	for _, level := range levels {
		s := LevelStyle(level)
		if s.GetForeground() == nil {
			t.Errorf("%s: no foreground color", level)
		}
	}
}

func TestLevelStyle_UnknownLevelFallsBack(t *testing.T) {
	s := LevelStyle(difficulty.Level("nope"))
	if s.GetForeground() != Primary {
		t.Errorf("unknown level foreground = %v, want Primary", s.GetForeground())
	}
}

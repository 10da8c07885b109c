package facts

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidOperands is returned by New when the operands fall outside the
// operator's domain: division by zero, or a dividend/divisor pair that does
// not produce an integer quotient.
type ErrInvalidOperands struct {
	Op   Operator
	A, B int
}

func (e *ErrInvalidOperands) Error() string {
	return fmt.Sprintf("invalid operands %d %s %d", e.A, e.Op.Symbol(), e.B)
}

// Fact is a single arithmetic fact: an operator and two operands, stored in
// canonical form so commutative equivalents (3+4 and 4+3) compare equal and
// map to the same tracked record.
type Fact struct {
	Op   Operator
	A, B int
}

// New constructs a canonical Fact. Commutative operators store operands
// sorted ascending. Division facts are integer-only.
func New(op Operator, a, b int) (Fact, error) {
	if op == Div {
		if b == 0 || a%b != 0 {
			return Fact{}, &ErrInvalidOperands{Op: op, A: a, B: b}
		}
	}
	if op.Commutative() && a > b {
		a, b = b, a
	}
	return Fact{Op: op, A: a, B: b}, nil
}

// MustNew is New for operands known to be valid, such as fixed test data and
// candidates already filtered by the generator. It panics on invalid operands.
func MustNew(op Operator, a, b int) Fact {
	f, err := New(op, a, b)
	if err != nil {
		panic(err)
	}
	return f
}

// Answer evaluates the fact. The result is always exact: division facts are
// integer-only by construction.
func (f Fact) Answer() int {
	switch f.Op {
	case Add:
		return f.A + f.B
	case Sub:
		return f.A - f.B
	case Mul:
		return f.A * f.B
	case Div:
		return f.A / f.B
	default:
		return 0
	}
}

// Key returns the stable persistence key, e.g. "add:3:4".
func (f Fact) Key() string {
	return f.Op.String() + ":" + strconv.Itoa(f.A) + ":" + strconv.Itoa(f.B)
}

// ParseKey reconstructs a Fact from its persistence key.
func ParseKey(key string) (Fact, error) {
	parts := strings.Split(key, ":")
	if len(parts) != 3 {
		return Fact{}, fmt.Errorf("malformed fact key %q", key)
	}
	op, err := ParseOperator(parts[0])
	if err != nil {
		return Fact{}, fmt.Errorf("fact key %q: %w", key, err)
	}
	a, err := strconv.Atoi(parts[1])
	if err != nil {
		return Fact{}, fmt.Errorf("fact key %q: %w", key, err)
	}
	b, err := strconv.Atoi(parts[2])
	if err != nil {
		return Fact{}, fmt.Errorf("fact key %q: %w", key, err)
	}
	return New(op, a, b)
}

// String renders the fact for display, e.g. "3 + 4".
func (f Fact) String() string {
	return fmt.Sprintf("%d %s %d", f.A, f.Op.Symbol(), f.B)
}

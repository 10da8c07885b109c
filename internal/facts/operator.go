package facts

import "fmt"

// Operator is a closed enumeration of the four arithmetic operations.
type Operator int

const (
	Add Operator = iota
	Sub
	Mul
	Div
)

// AllOperators returns the operators in tier order: the order in which the
// custom difficulty analyzer unlocks them.
func AllOperators() []Operator {
	return []Operator{Add, Sub, Mul, Div}
}

// Symbol returns the display symbol for the operator.
func (op Operator) Symbol() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "−"
	case Mul:
		return "×"
	case Div:
		return "÷"
	default:
		return "?"
	}
}

// String returns the stable identifier used in persistence keys.
func (op Operator) String() string {
	switch op {
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	default:
		return fmt.Sprintf("operator(%d)", int(op))
	}
}

// ParseOperator converts a persisted identifier back to an Operator.
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "add":
		return Add, nil
	case "sub":
		return Sub, nil
	case "mul":
		return Mul, nil
	case "div":
		return Div, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}

// Commutative reports whether operand order is interchangeable.
func (op Operator) Commutative() bool {
	return op == Add || op == Mul
}

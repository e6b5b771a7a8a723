package symbols

import (
	"errors"
	"math"
	"unicode/utf8"

	"github.com/pontaoski/minipl/types"
)

var (
	ErrDivideByZero = errors.New("Attempted to divide by zero")
	ErrOverflow     = errors.New("Integer overflow")
)

func checked(v int64) (Value, error) {
	if v > math.MaxInt32 || v < math.MinInt32 {
		return nil, ErrOverflow
	}
	return Int(v), nil
}

// IntOp applies a binary operator to two ints with 32-bit overflow checks.
// Operators other than + - * = < divide.
func IntOp(op types.TokenKind, a, b Int) (Value, error) {
	x, y := int64(a), int64(b)
	switch op {
	case types.PLUS:
		return checked(x + y)
	case types.MINUS:
		return checked(x - y)
	case types.MUL:
		return checked(x * y)
	case types.EQUAL:
		return Bool(x == y), nil
	case types.LESS_THAN:
		return Bool(x < y), nil
	}
	if y == 0 {
		return nil, ErrDivideByZero
	}
	return checked(x / y)
}

// Negate is unary minus with the same overflow rule as IntOp.
func Negate(a Int) (Value, error) {
	return checked(-int64(a))
}

// BoolOp combines two booleans. Both operands are always evaluated by the
// caller; there is no short circuit. Operators other than = and & are the
// "less than" ordering false < true.
func BoolOp(op types.TokenKind, a, b Bool) Value {
	switch op {
	case types.EQUAL:
		return Bool(a == b)
	case types.LOGICAL_AND:
		return Bool(a && b)
	}
	return Bool(!a && b)
}

// StringOp compares strings with = (equality) and < (length). Every other
// operator concatenates.
func StringOp(op types.TokenKind, a, b Str) Value {
	switch op {
	case types.EQUAL:
		return Bool(a == b)
	case types.LESS_THAN:
		return Bool(utf8.RuneCountInString(string(a)) < utf8.RuneCountInString(string(b)))
	}
	return a + b
}

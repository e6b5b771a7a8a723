package semantic

import (
	"github.com/pontaoski/minipl/ast"
	"github.com/pontaoski/minipl/symbols"
	"github.com/pontaoski/minipl/types"
)

// expression folds e to a value, or nil if it cannot be resolved. A nil
// operand never produces a second diagnostic.
func (c *Checker) expression(e ast.Expression) symbols.Value {
	switch v := e.(type) {
	case *ast.Numeric:
		return symbols.Int(v.Value)
	case *ast.StringLit:
		return symbols.Str(v.Value)
	case *ast.BooleanLit:
		return symbols.Bool(v.Value)
	case *ast.Variable:
		return c.variable(v)
	case *ast.BinaryOp:
		return c.binary(v)
	case *ast.UnaryOp:
		return c.unary(v)
	}
	panic("unhandled expression")
}

func (c *Checker) binary(v *ast.BinaryOp) symbols.Value {
	left := c.expression(v.Left)
	right := c.expression(v.Right)
	op := v.Operator.Kind
	at := v.Operator.Location

	switch l := left.(type) {
	case symbols.Str:
		if r, ok := right.(symbols.Str); ok {
			switch op {
			case types.PLUS, types.EQUAL, types.LESS_THAN:
				return symbols.StringOp(op, l, r)
			}
			c.unsupported(at, symbols.TypeString)
			return nil
		}
	case symbols.Int:
		if r, ok := right.(symbols.Int); ok {
			switch op {
			case types.PLUS, types.MINUS, types.MUL, types.DIV, types.EQUAL, types.LESS_THAN:
				result, err := symbols.IntOp(op, l, r)
				if err != nil {
					// Division by zero and overflow are runtime errors.
					return symbols.Int(0)
				}
				return result
			}
			c.unsupported(at, symbols.TypeInt)
			return nil
		}
	case symbols.Bool:
		if r, ok := right.(symbols.Bool); ok {
			switch op {
			case types.EQUAL, types.LOGICAL_AND, types.LESS_THAN:
				return symbols.BoolOp(op, l, r)
			}
			c.unsupported(at, symbols.TypeBool)
			return nil
		}
	}

	if left != nil && right != nil {
		c.fail(at, "Type mismatch")
	}
	return nil
}

func (c *Checker) unary(v *ast.UnaryOp) symbols.Value {
	operand := c.expression(v.Operand)
	op := v.Operator.Kind
	at := v.Operator.Location

	switch value := operand.(type) {
	case symbols.Bool:
		if op == types.LOGICAL_NOT {
			return !value
		}
		c.unsupported(at, symbols.TypeBool)
	case symbols.Int:
		switch op {
		case types.MINUS:
			negated, err := symbols.Negate(value)
			if err != nil {
				return symbols.Int(0)
			}
			return negated
		case types.PLUS:
			return value
		}
		c.unsupported(at, symbols.TypeInt)
	case symbols.Str:
		c.unsupported(at, symbols.TypeString)
	}
	return nil
}

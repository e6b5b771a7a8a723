package interpreter

import (
	"github.com/pontaoski/minipl/ast"
	"github.com/pontaoski/minipl/symbols"
	"github.com/pontaoski/minipl/types"
)

func (i *Interpreter) expression(e ast.Expression) (symbols.Value, error) {
	switch v := e.(type) {
	case *ast.Numeric:
		return symbols.Int(v.Value), nil
	case *ast.StringLit:
		return symbols.Str(v.Value), nil
	case *ast.BooleanLit:
		return symbols.Bool(v.Value), nil
	case *ast.Variable:
		sym, ok := i.table.Lookup(v.Name)
		if !ok || sym.Value == nil {
			return nil, i.fail(v.Token.Location, "Variable not declared")
		}
		return sym.Value, nil
	case *ast.BinaryOp:
		return i.binary(v)
	case *ast.UnaryOp:
		return i.unary(v)
	}
	panic("unhandled expression")
}

// binary always evaluates both operands, then dispatches on their runtime
// types.
func (i *Interpreter) binary(v *ast.BinaryOp) (symbols.Value, error) {
	left, err := i.expression(v.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.expression(v.Right)
	if err != nil {
		return nil, err
	}
	op := v.Operator.Kind

	switch l := left.(type) {
	case symbols.Str:
		if r, ok := right.(symbols.Str); ok {
			return symbols.StringOp(op, l, r), nil
		}
	case symbols.Bool:
		if r, ok := right.(symbols.Bool); ok {
			return symbols.BoolOp(op, l, r), nil
		}
	case symbols.Int:
		if r, ok := right.(symbols.Int); ok {
			result, err := symbols.IntOp(op, l, r)
			if err != nil {
				return nil, i.fail(v.Operator.Location, err.Error())
			}
			return result, nil
		}
	}
	return nil, i.fail(v.Operator.Location, "Type mismatch")
}

func (i *Interpreter) unary(v *ast.UnaryOp) (symbols.Value, error) {
	operand, err := i.expression(v.Operand)
	if err != nil {
		return nil, err
	}

	switch value := operand.(type) {
	case symbols.Bool:
		return !value, nil
	case symbols.Int:
		if v.Operator.Kind != types.MINUS {
			return value, nil
		}
		negated, err := symbols.Negate(value)
		if err != nil {
			return nil, i.fail(v.Operator.Location, err.Error())
		}
		return negated, nil
	}
	return nil, i.fail(v.Operator.Location, "Unsupported operation for type "+symbols.TypeOf(operand))
}

// Package ast holds the MiniPL syntax tree. The node set is closed: the sum
// interfaces in nodes_gen.go are generated from nodes.adt by tool/.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/nodes.adt ../ast/nodes_gen.go ast"

import "github.com/pontaoski/minipl/types"

type Numeric struct {
	Token types.Token
	Value int32
}

type StringLit struct {
	Token types.Token
	Value string
}

type BooleanLit struct {
	Token types.Token
	Value bool
}

type Variable struct {
	Token types.Token
	Name  string
}

// Type is the type keyword of a declaration.
type Type struct {
	Token types.Token
	Name  string
}

type BinaryOp struct {
	Left     Expression
	Operator types.Token
	Right    Expression
}

type UnaryOp struct {
	Operator types.Token
	Operand  Expression
}

type Assign struct {
	Token  types.Token
	Target *Variable
	Value  Expression
}

// VariableDeclaration has a nil Value when no initializer was written.
type VariableDeclaration struct {
	Token    types.Token
	Variable *Variable
	Type     *Type
	Value    Expression
}

type Print struct {
	Token types.Token
	Value Expression
}

type Read struct {
	Token  types.Token
	Target *Variable
}

type Assert struct {
	Token types.Token
	Value Expression
}

// For iterates Control over the inclusive range [Start, End].
type For struct {
	Token   types.Token
	Control *Variable
	Start   Expression
	End     Expression
	Body    *StatementList
}

// StatementList is appended to while parsing and never mutated afterwards.
type StatementList struct {
	Statements []Statement
}

type NoOp struct{}

// Pos is the position used when reporting a diagnostic about n. Statement
// lists and no-ops have none and report the zero position.
func Pos(n Node) types.Position {
	switch v := n.(type) {
	case *Numeric:
		return v.Token.Location
	case *StringLit:
		return v.Token.Location
	case *BooleanLit:
		return v.Token.Location
	case *Variable:
		return v.Token.Location
	case *Type:
		return v.Token.Location
	case *BinaryOp:
		return v.Operator.Location
	case *UnaryOp:
		return v.Operator.Location
	case *Assign:
		return v.Token.Location
	case *VariableDeclaration:
		return v.Token.Location
	case *Print:
		return v.Token.Location
	case *Read:
		return v.Token.Location
	case *Assert:
		return v.Token.Location
	case *For:
		return v.Token.Location
	case *StatementList, *NoOp:
		return types.Position{}
	}
	panic("unhandled node")
}

package ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pontaoski/minipl/types"
)

// Format renders a program back to MiniPL source, one statement per line.
// Binary operations are fully parenthesised so the output reparses to the
// same tree regardless of the flat precedence of + - = < &.
func Format(list *StatementList) string {
	var b strings.Builder
	formatList(&b, list, 0)
	return b.String()
}

func formatList(b *strings.Builder, list *StatementList, depth int) {
	indent := strings.Repeat("\t", depth)
	for i, stmt := range list.Statements {
		if _, ok := stmt.(*NoOp); ok {
			continue
		}
		b.WriteString(indent)
		formatStatement(b, stmt, depth)
		if i < len(list.Statements)-1 || depth > 0 {
			b.WriteString(";")
		}
		b.WriteString("\n")
	}
}

func formatStatement(b *strings.Builder, s Statement, depth int) {
	switch v := s.(type) {
	case *Assign:
		fmt.Fprintf(b, "%s := %s", v.Target.Name, FormatExpression(v.Value))
	case *VariableDeclaration:
		fmt.Fprintf(b, "var %s : %s", v.Variable.Name, v.Type.Name)
		if v.Value != nil {
			fmt.Fprintf(b, " := %s", FormatExpression(v.Value))
		}
	case *Print:
		fmt.Fprintf(b, "print %s", FormatExpression(v.Value))
	case *Read:
		fmt.Fprintf(b, "read %s", v.Target.Name)
	case *Assert:
		fmt.Fprintf(b, "assert (%s)", FormatExpression(v.Value))
	case *For:
		fmt.Fprintf(b, "for %s in %s..%s do\n", v.Control.Name, FormatExpression(v.Start), FormatExpression(v.End))
		formatList(b, v.Body, depth+1)
		b.WriteString(strings.Repeat("\t", depth) + "end for")
	case *NoOp:
	default:
		panic("unhandled statement")
	}
}

func FormatExpression(e Expression) string {
	switch v := e.(type) {
	case *Numeric:
		return strconv.FormatInt(int64(v.Value), 10)
	case *StringLit:
		return types.Quote(v.Value)
	case *BooleanLit:
		return strconv.FormatBool(v.Value)
	case *Variable:
		return v.Name
	case *BinaryOp:
		return fmt.Sprintf("(%s %s %s)", FormatExpression(v.Left), types.Punctuation[v.Operator.Kind], FormatExpression(v.Right))
	case *UnaryOp:
		return types.Punctuation[v.Operator.Kind] + FormatExpression(v.Operand)
	}
	panic("unhandled expression")
}

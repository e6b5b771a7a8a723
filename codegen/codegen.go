// Package codegen lowers a checked MiniPL program to an LLVM IR module whose
// main function behaves like the tree-walking interpreter.
//
// Every variable becomes a module global named var.<name>, so the flat
// namespace of the interpreter carries over unchanged. Integer arithmetic
// wraps; only division is guarded.
package codegen

import (
	"fmt"
	"math"
	"strconv"

	"github.com/coreos/pkg/capnslog"
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
	"github.com/pontaoski/minipl/ast"
	"github.com/pontaoski/minipl/errors"
	"github.com/pontaoski/minipl/semantic"
	"github.com/pontaoski/minipl/symbols"
	mtypes "github.com/pontaoski/minipl/types"
	"github.com/ztrue/tracerr"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minipl", "codegen")

const (
	assertionFailed = "Assertion failed\n"
	readBufferSize  = 256
)

// compileError carries a diagnostic from deep inside the generator back to
// Generate.
type compileError struct {
	errors.Diagnostic
}

type ctx struct {
	module          *ir.Module
	builtins        map[string]*ir.Func
	globals         map[string]*ir.Global
	stringConstants map[string]constant.Constant

	fn     *ir.Func
	b      *ir.Block
	labels int
}

// FromChecker generates code for the program c analyzed. Programs with
// semantic errors are refused.
func FromChecker(c *semantic.Checker) (*ir.Module, error) {
	if c.Program() == nil {
		return nil, tracerr.New("program has not been checked")
	}
	if c.HasErrors() {
		return nil, tracerr.Errorf("program has %d semantic errors", len(c.Errors()))
	}
	return Generate(c.Program())
}

// Generate lowers prog. It does not run the semantic checker; problems the
// checker would report are returned as the first diagnostic found.
func Generate(prog *ast.StatementList) (m *ir.Module, err error) {
	defer func() {
		if v := recover(); v != nil {
			if cerr, ok := v.(compileError); ok {
				m, err = nil, errors.Fatal(cerr.Diagnostic)
				return
			}
			panic(v)
		}
	}()

	c := &ctx{
		module:          ir.NewModule(),
		globals:         map[string]*ir.Global{},
		stringConstants: map[string]constant.Constant{},
	}
	c.builtins = addBuiltins(c.module)
	c.declare(prog)

	c.fn = c.module.NewFunc("main", types.I32)
	c.b = c.fn.NewBlock("entry")
	c.statementList(prog)
	c.b.NewRet(constant.NewInt(types.I32, 0))

	plog.Debugf("generated %d globals and %d blocks", len(c.globals), len(c.fn.Blocks))
	return c.module, nil
}

func (c *ctx) fail(d errors.Diagnostic) {
	panic(compileError{d})
}

func (c *ctx) label(name string) string {
	c.labels++
	return name + "." + strconv.Itoa(c.labels)
}

// str returns an i8* to a NUL-terminated constant holding s. Constants are
// numbered in order of first use and shared between equal strings.
func (c *ctx) str(s string) constant.Constant {
	if v, ok := c.stringConstants[s]; ok {
		return v
	}
	g := c.module.NewGlobalDef("str."+strconv.Itoa(len(c.stringConstants)), constant.NewCharArrayFromString(s+"\x00"))
	g.Immutable = true

	v := constant.NewBitCast(g, String)
	c.stringConstants[s] = v
	return v
}

func (c *ctx) zero(t types.Type) constant.Constant {
	switch {
	case t.Equal(Int):
		return constant.NewInt(Int, 0)
	case t.Equal(String):
		return c.str("")
	}
	return constant.False
}

func (c *ctx) call(name string, args ...value.Value) value.Value {
	return c.b.NewCall(c.builtins[name], args...)
}

// declare creates a global for every declaration in prog, including those
// inside loop bodies. The first declaration of a name wins.
func (c *ctx) declare(prog *ast.StatementList) {
	for _, stmt := range prog.Statements {
		switch v := stmt.(type) {
		case *ast.VariableDeclaration:
			if _, ok := c.globals[v.Variable.Name]; ok {
				continue
			}
			c.globals[v.Variable.Name] = c.module.NewGlobalDef("var."+v.Variable.Name, c.zero(llvmType(v.Type.Name)))
		case *ast.For:
			c.declare(v.Body)
		}
	}
}

func (c *ctx) lookup(v *ast.Variable) *ir.Global {
	g, ok := c.globals[v.Name]
	if !ok {
		c.fail(errors.SemanticError{Location: v.Token.Location, Message: "Variable not declared"})
	}
	return g
}

func elemType(g *ir.Global) types.Type {
	return g.Type().(*types.PointerType).ElemType
}

func (c *ctx) store(v *ast.Variable, val value.Value, at mtypes.Position) {
	g := c.lookup(v)
	if !elemType(g).Equal(val.Type()) {
		c.fail(errors.SemanticError{Location: at, Message: "Type mismatch"})
	}
	c.b.NewStore(val, g)
}

// guard branches to a runtime failure with msg when failed is true and
// continues in a fresh block otherwise.
func (c *ctx) guard(failed value.Value, at mtypes.Position, msg string) {
	bad := c.fn.NewBlock(c.label("fail"))
	ok := c.fn.NewBlock(c.label("ok"))
	c.b.NewCondBr(failed, bad, ok)

	rendered := errors.RuntimeError{Location: at, Message: msg}.Error()
	bad.NewCall(c.builtins["minipl.fail"], c.str("\n"+rendered+"\n"))
	bad.NewUnreachable()

	c.b = ok
}

func (c *ctx) statementList(list *ast.StatementList) {
	for _, stmt := range list.Statements {
		c.statement(stmt)
	}
}

func (c *ctx) statement(s ast.Statement) {
	switch v := s.(type) {
	case *ast.Assign:
		c.store(v.Target, c.expression(v.Value), ast.Pos(v.Value))
	case *ast.VariableDeclaration:
		if v.Value == nil {
			c.store(v.Variable, c.zero(llvmType(v.Type.Name)), v.Token.Location)
			return
		}
		c.store(v.Variable, c.expression(v.Value), ast.Pos(v.Value))
	case *ast.Print:
		c.print(c.expression(v.Value))
	case *ast.Read:
		c.read(v)
	case *ast.Assert:
		c.assert(v)
	case *ast.For:
		c.loop(v)
	case *ast.NoOp:
	default:
		panic("unhandled statement")
	}
}

func (c *ctx) print(val value.Value) {
	switch {
	case val.Type().Equal(Int):
		c.call("printf", c.str("%d"), val)
	case val.Type().Equal(String):
		c.call("printf", c.str("%s"), val)
	default:
		c.call("printf", c.str("%s"), c.b.NewSelect(val, c.str("true"), c.str("false")))
	}
}

func (c *ctx) read(v *ast.Read) {
	g := c.lookup(v.Target)
	at := v.Target.Token.Location

	switch {
	case elemType(g).Equal(Int):
		n := c.call("scanf", c.str(" %d"), g)
		c.guard(c.b.NewICmp(enum.IPredNE, n, constant.NewInt(types.I32, 1)), at, "Tried to assign non-integer value to integer")
	case elemType(g).Equal(String):
		buf := c.call("malloc", constant.NewInt(Size, readBufferSize))
		c.b.NewStore(constant.NewInt(Byte, 0), buf)
		c.call("scanf", c.str(fmt.Sprintf("%%%ds", readBufferSize-1)), buf)
		c.b.NewStore(buf, g)
	default:
		c.fail(errors.SemanticError{Location: at, Message: "Type mismatch"})
	}
}

func (c *ctx) assert(v *ast.Assert) {
	cond := c.expression(v.Value)
	if !cond.Type().Equal(Bool) {
		c.fail(errors.SemanticError{Location: v.Token.Location, Message: "Assert requires an expression that evaluates to boolean"})
	}

	failed := c.fn.NewBlock(c.label("assert.fail"))
	cont := c.fn.NewBlock(c.label("assert.end"))
	c.b.NewCondBr(cond, cont, failed)

	c.b = failed
	c.call("printf", c.str("%s"), c.str(assertionFailed))
	failed.NewBr(cont)

	c.b = cont
}

func (c *ctx) bound(e ast.Expression) value.Value {
	val := c.expression(e)
	if !val.Type().Equal(Int) {
		c.fail(errors.SemanticError{Location: ast.Pos(e), Message: "Invalid type for expression in for loop, integer required"})
	}
	return c.b.NewSExt(val, Size)
}

// loop counts in 64 bits so an upper bound of MaxInt32 still terminates. The
// control variable is stored on every iteration and keeps its last value.
func (c *ctx) loop(v *ast.For) {
	g := c.lookup(v.Control)
	if !elemType(g).Equal(Int) {
		c.fail(errors.SemanticError{Location: v.Control.Token.Location, Message: "Invalid variable type for for loop, integer required"})
	}
	start := c.bound(v.Start)
	end := c.bound(v.End)

	pre := c.b
	cond := c.fn.NewBlock(c.label("for.cond"))
	body := c.fn.NewBlock(c.label("for.body"))
	exit := c.fn.NewBlock(c.label("for.end"))
	pre.NewBr(cond)

	i := cond.NewPhi(ir.NewIncoming(start, pre))
	cond.NewCondBr(cond.NewICmp(enum.IPredSLE, i, end), body, exit)

	c.b = body
	c.b.NewStore(c.b.NewTrunc(i, Int), g)
	c.statementList(v.Body)
	next := c.b.NewAdd(i, constant.NewInt(Size, 1))
	i.Incs = append(i.Incs, ir.NewIncoming(next, c.b))
	c.b.NewBr(cond)

	c.b = exit
}

func (c *ctx) expression(e ast.Expression) value.Value {
	switch v := e.(type) {
	case *ast.Numeric:
		return constant.NewInt(Int, int64(v.Value))
	case *ast.StringLit:
		return c.str(v.Value)
	case *ast.BooleanLit:
		return constant.NewBool(v.Value)
	case *ast.Variable:
		g := c.lookup(v)
		return c.b.NewLoad(elemType(g), g)
	case *ast.BinaryOp:
		return c.binary(v)
	case *ast.UnaryOp:
		return c.unary(v)
	}
	panic("unhandled expression")
}

func (c *ctx) binary(v *ast.BinaryOp) value.Value {
	l := c.expression(v.Left)
	r := c.expression(v.Right)
	at := v.Operator.Location

	if !l.Type().Equal(r.Type()) {
		c.fail(errors.SemanticError{Location: at, Message: "Type mismatch"})
	}

	switch {
	case l.Type().Equal(String):
		return c.stringOp(v.Operator.Kind, l, r)
	case l.Type().Equal(Bool):
		return c.boolOp(v.Operator.Kind, l, r)
	}
	return c.intOp(v.Operator.Kind, l, r, at)
}

func (c *ctx) intOp(op mtypes.TokenKind, l, r value.Value, at mtypes.Position) value.Value {
	switch op {
	case mtypes.PLUS:
		return c.b.NewAdd(l, r)
	case mtypes.MINUS:
		return c.b.NewSub(l, r)
	case mtypes.MUL:
		return c.b.NewMul(l, r)
	case mtypes.EQUAL:
		return c.b.NewICmp(enum.IPredEQ, l, r)
	case mtypes.LESS_THAN:
		return c.b.NewICmp(enum.IPredSLT, l, r)
	}

	c.guard(c.b.NewICmp(enum.IPredEQ, r, constant.NewInt(Int, 0)), at, symbols.ErrDivideByZero.Error())
	overflows := c.b.NewAnd(
		c.b.NewICmp(enum.IPredEQ, l, constant.NewInt(Int, math.MinInt32)),
		c.b.NewICmp(enum.IPredEQ, r, constant.NewInt(Int, -1)),
	)
	c.guard(overflows, at, symbols.ErrOverflow.Error())
	return c.b.NewSDiv(l, r)
}

func (c *ctx) boolOp(op mtypes.TokenKind, l, r value.Value) value.Value {
	switch op {
	case mtypes.LOGICAL_AND:
		return c.b.NewAnd(l, r)
	case mtypes.EQUAL:
		return c.b.NewICmp(enum.IPredEQ, l, r)
	}
	return c.b.NewAnd(c.b.NewXor(l, constant.True), r)
}

func (c *ctx) stringOp(op mtypes.TokenKind, l, r value.Value) value.Value {
	switch op {
	case mtypes.EQUAL:
		return c.b.NewICmp(enum.IPredEQ, c.call("strcmp", l, r), constant.NewInt(types.I32, 0))
	case mtypes.LESS_THAN:
		return c.b.NewICmp(enum.IPredSLT, c.call("strlen", l), c.call("strlen", r))
	}

	n := c.b.NewAdd(c.b.NewAdd(c.call("strlen", l), c.call("strlen", r)), constant.NewInt(Size, 1))
	buf := c.call("malloc", n)
	c.call("strcpy", buf, l)
	c.call("strcat", buf, r)
	return buf
}

func (c *ctx) unary(v *ast.UnaryOp) value.Value {
	x := c.expression(v.Operand)

	switch {
	case x.Type().Equal(Bool):
		return c.b.NewXor(x, constant.True)
	case x.Type().Equal(Int):
		if v.Operator.Kind == mtypes.MINUS {
			return c.b.NewSub(constant.NewInt(Int, 0), x)
		}
		return x
	}
	c.fail(errors.UnsupportedOperation{Location: v.Operator.Location, Type: typeName(x.Type())})
	return nil
}

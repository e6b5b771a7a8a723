package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
)

// addBuiltins declares the C library functions the generated code calls and
// defines the helpers built on top of them.
func addBuiltins(m *ir.Module) (ret map[string]*ir.Func) {
	ret = make(map[string]*ir.Func)

	funcs := []func(*ir.Module) (string, *ir.Func){
		external("printf", types.I32, true, String),
		external("scanf", types.I32, true, String),
		external("strlen", Size, false, String),
		external("strcmp", types.I32, false, String, String),
		external("strcpy", String, false, String, String),
		external("strcat", String, false, String, String),
		external("malloc", String, false, Size),
		external("exit", types.Void, false, types.I32),
	}
	for _, fn := range funcs {
		k, v := fn(m)
		ret[k] = v
	}

	k, v := addFail(m, ret)
	ret[k] = v

	return
}

func external(name string, ret types.Type, variadic bool, params ...types.Type) func(*ir.Module) (string, *ir.Func) {
	return func(m *ir.Module) (string, *ir.Func) {
		var ps []*ir.Param
		for _, p := range params {
			ps = append(ps, ir.NewParam("", p))
		}
		fn := m.NewFunc(name, ret, ps...)
		fn.Sig.Variadic = variadic
		return name, fn
	}
}

// addFail defines minipl.fail, which prints a runtime error and exits with
// status 1.
func addFail(m *ir.Module, builtins map[string]*ir.Func) (string, *ir.Func) {
	fn := m.NewFunc("minipl.fail", types.Void, ir.NewParam("message", String))
	entry := fn.NewBlock("entry")

	format := m.NewGlobalDef("minipl.fail.format", constant.NewCharArrayFromString("%s\x00"))
	format.Immutable = true

	entry.NewCall(builtins["printf"], constant.NewBitCast(format, String), fn.Params[0])
	entry.NewCall(builtins["exit"], constant.NewInt(types.I32, 1))
	entry.NewUnreachable()

	return "minipl.fail", fn
}

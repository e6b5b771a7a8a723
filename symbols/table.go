package symbols

type Symbol struct {
	Value Value
	Type  string
}

// Table is the single flat namespace of a program run. There are no nested
// scopes: loop control variables live beside top-level variables and keep
// their last value after the loop.
type Table struct {
	symbols map[string]Symbol
}

// NewTable returns a table pre-seeded with the type names, each mapped to an
// absent value. This makes "int", "string" and "bool" unusable as variable
// names: declaring one reports a redeclaration.
func NewTable() *Table {
	t := &Table{symbols: make(map[string]Symbol)}
	t.Define(TypeInt, TypeInt, nil)
	t.Define(TypeString, TypeString, nil)
	t.Define(TypeBool, TypeBool, nil)
	return t
}

// Define inserts or overwrites name.
func (t *Table) Define(name, typeName string, v Value) {
	t.symbols[name] = Symbol{Value: v, Type: typeName}
}

func (t *Table) Lookup(name string) (Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

// Names lists every defined name, including the reserved type names.
func (t *Table) Names() []string {
	ret := make([]string, 0, len(t.symbols))
	for name := range t.symbols {
		ret = append(ret, name)
	}
	return ret
}

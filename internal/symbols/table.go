// Package symbols holds the name-resolution state for one compilation:
// the module-wide function table and the per-function variable scope.
package symbols

import "fmt"

// FuncKind distinguishes extern declarations from defined functions.
type FuncKind int

const (
	FuncExtern FuncKind = iota
	FuncDefined
)

// String returns the kind's source-level spelling.
func (k FuncKind) String() string {
	if k == FuncExtern {
		return "extern"
	}
	return "defined"
}

// Signature records what a call site needs to know about a function.
type Signature struct {
	Name  string
	Arity int
	Kind  FuncKind
}

// Table maps function names to signatures for one compilation. It must be
// fully populated before any function body is translated so that calls to
// functions declared later in the source resolve correctly.
type Table struct {
	funcs map[string]*Signature
	order []string
}

// NewTable creates an empty function table.
func NewTable() *Table {
	return &Table{funcs: make(map[string]*Signature)}
}

// Declare records a function signature. Declaring the same name twice is
// an error; the backend would reject the duplicate symbol anyway, and
// failing here yields a named diagnostic instead of an opaque one.
func (t *Table) Declare(name string, arity int, kind FuncKind) (*Signature, error) {
	if _, ok := t.funcs[name]; ok {
		return nil, fmt.Errorf("function `%s` declared more than once", name)
	}
	sig := &Signature{Name: name, Arity: arity, Kind: kind}
	t.funcs[name] = sig
	t.order = append(t.order, name)
	return sig, nil
}

// Lookup returns the signature for name, or nil if it was never declared.
func (t *Table) Lookup(name string) *Signature {
	return t.funcs[name]
}

// Names returns all declared function names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.order))
	copy(names, t.order)
	return names
}

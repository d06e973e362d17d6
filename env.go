package gofilter

import (
	"math"
	"sort"

	"src.elv.sh/pkg/persistent/hash"
	"src.elv.sh/pkg/persistent/hashmap"
)

// ============================================================
// Env — immutable variable and function scopes
// ============================================================

// FuncDef is a user function such as f(a, b) = a*b.
type FuncDef struct {
	Params []string
	Body   Node
}

// binding is an unevaluated variable definition. A nil scope means the
// node is evaluated in whatever scope looks the name up; function
// arguments carry the caller's scope instead.
type binding struct {
	node  Node
	scope *Env
}

// Env maps names to unevaluated ASTs and function definitions. WithVar and
// WithFunc return a new Env and leave the receiver untouched, so a call
// scope disappears as soon as nothing refers to it.
type Env struct {
	vars  hashmap.Map
	funcs hashmap.Map
}

func stringEqual(a, b interface{}) bool { return a.(string) == b.(string) }
func stringHash(k interface{}) uint32   { return hash.String(k.(string)) }

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{
		vars:  hashmap.New(stringEqual, stringHash),
		funcs: hashmap.New(stringEqual, stringHash),
	}
}

// DefaultEnv binds the constants pi and e.
func DefaultEnv() *Env {
	return NewEnv().
		WithVar("pi", &Real{Value: math.Pi}).
		WithVar("e", &Real{Value: math.E})
}

// EnvFromValues is DefaultEnv plus one Real leaf per entry of vals, e.g.
// the current position of UI sliders.
func EnvFromValues(vals map[string]float64) *Env {
	env := DefaultEnv()
	names := make([]string, 0, len(vals))
	for name := range vals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		env = env.WithVar(name, &Real{Value: vals[name]})
	}
	return env
}

// WithVar binds name to an unevaluated node in a new Env.
func (e *Env) WithVar(name string, node Node) *Env {
	return &Env{vars: e.vars.Assoc(name, binding{node: node}), funcs: e.funcs}
}

func (e *Env) withScopedVar(name string, node Node, scope *Env) *Env {
	return &Env{vars: e.vars.Assoc(name, binding{node: node, scope: scope}), funcs: e.funcs}
}

// WithFunc binds a user function in a new Env.
func (e *Env) WithFunc(name string, def FuncDef) *Env {
	return &Env{vars: e.vars, funcs: e.funcs.Assoc(name, def)}
}

// Var returns the unevaluated definition of name.
func (e *Env) Var(name string) (Node, bool) {
	b, ok := e.lookup(name)
	return b.node, ok
}

func (e *Env) lookup(name string) (binding, bool) {
	v, ok := e.vars.Index(name)
	if !ok {
		return binding{}, false
	}
	return v.(binding), true
}

// Func returns the definition of the user function name.
func (e *Env) Func(name string) (FuncDef, bool) {
	v, ok := e.funcs.Index(name)
	if !ok {
		return FuncDef{}, false
	}
	return v.(FuncDef), true
}

// Names returns the bound variable names in sorted order.
func (e *Env) Names() []string { return sortedKeys(e.vars) }

// FuncNames returns the user function names in sorted order.
func (e *Env) FuncNames() []string { return sortedKeys(e.funcs) }

func sortedKeys(m hashmap.Map) []string {
	out := make([]string, 0, m.Len())
	for it := m.Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		out = append(out, k.(string))
	}
	sort.Strings(out)
	return out
}

package gofilter

import (
	"math"
	"sort"
)

// ============================================================
// Real evaluation
// ============================================================

// MaxEvalDepth bounds how many variable and function lookups may nest while
// evaluating one expression. Circular definitions stop here.
const MaxEvalDepth = 512

var builtins = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"sqrt": math.Sqrt,
}

// EvalReal reduces node to a float64. Variables are looked up in env and
// evaluated every time they are referenced.
func EvalReal(node Node, env *Env) (float64, error) {
	return evalReal(node, env, 0)
}

// Evaluable reports whether node reduces to a real number in env.
func Evaluable(node Node, env *Env) bool {
	_, err := EvalReal(node, env)
	return err == nil
}

// EvalProgram binds every assignment in input and evaluates the final
// statement, e.g. "a = 2; f(t) = t^2; f(a) + 1".
func EvalProgram(input string, env *Env) (float64, error) {
	root, err := Parse(input)
	if err != nil {
		return 0, err
	}
	last := root.Nodes[len(root.Nodes)-1]
	for _, stmt := range root.Nodes[:len(root.Nodes)-1] {
		a, ok := stmt.(*Assign)
		if !ok {
			continue
		}
		if env, err = bind(env, a); err != nil {
			return 0, err
		}
	}
	return EvalReal(last, env)
}

func evalReal(node Node, env *Env, depth int) (float64, error) {
	switch n := node.(type) {
	case *Real:
		return n.Value, nil
	case *Negate:
		v, err := evalReal(n.RHS, env, depth)
		return -v, err
	case *Add:
		return evalBinary(n.LHS, n.RHS, env, depth, func(a, b float64) float64 { return a + b })
	case *Sub:
		return evalBinary(n.LHS, n.RHS, env, depth, func(a, b float64) float64 { return a - b })
	case *Mul:
		return evalBinary(n.LHS, n.RHS, env, depth, func(a, b float64) float64 { return a * b })
	case *Div:
		return evalBinary(n.LHS, n.RHS, env, depth, func(a, b float64) float64 { return a / b })
	case *Pow:
		return evalBinary(n.LHS, n.RHS, env, depth, math.Pow)
	case *Ident:
		return evalIdent(n, env, depth)
	case *Call:
		return evalCall(n, env, depth)
	}
	return 0, newError(KindUnevaluable, "cannot evaluate expression to real number")
}

func evalBinary(l, r Node, env *Env, depth int, op func(a, b float64) float64) (float64, error) {
	a, err := evalReal(l, env, depth)
	if err != nil {
		return 0, err
	}
	b, err := evalReal(r, env, depth)
	if err != nil {
		return 0, err
	}
	return op(a, b), nil
}

func evalIdent(n *Ident, env *Env, depth int) (float64, error) {
	b, ok := env.lookup(n.Name)
	if !ok {
		err := newError(KindUndefinedVariable, "cannot access undefined variable '%s'", n.Name)
		err.Suggestion = suggest(n.Name, env.Names())
		return 0, err
	}
	if depth >= MaxEvalDepth {
		return 0, newError(KindRecursionLimit, "too much recursion evaluating '%s'", n.Name)
	}
	scope := env
	if b.scope != nil {
		scope = b.scope
	}
	return evalReal(b.node, scope, depth+1)
}

func evalCall(n *Call, env *Env, depth int) (float64, error) {
	if def, ok := env.Func(n.Name); ok {
		if len(def.Params) != len(n.Args) {
			return 0, newError(KindArityMismatch, "'%s' requires %d arguments, %d arguments provided",
				n.Name, len(def.Params), len(n.Args))
		}
		if depth >= MaxEvalDepth {
			return 0, newError(KindRecursionLimit, "too much recursion calling '%s'", n.Name)
		}
		child := env
		for i, param := range def.Params {
			child = child.withScopedVar(param, n.Args[i], env)
		}
		return evalReal(def.Body, child, depth+1)
	}

	if fn, ok := builtins[n.Name]; ok {
		if len(n.Args) != 1 {
			return 0, newError(KindArityMismatch, "'%s' requires one argument, %d arguments provided",
				n.Name, len(n.Args))
		}
		v, err := evalReal(n.Args[0], env, depth)
		if err != nil {
			return 0, err
		}
		return fn(v), nil
	}

	err := newError(KindUndefinedFunction, "cannot call undefined function '%s'", n.Name)
	err.Suggestion = suggest(n.Name, callableNames(env))
	return 0, err
}

func callableNames(env *Env) []string {
	names := env.FuncNames()
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package gofilter

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ============================================================
// Term — coefficient · sample[n + offset]
// ============================================================

// MaxOffset bounds |offset| in x[n + offset]. Normalized offsets then stay
// within MaxExponent.
const MaxOffset = MaxExponent / 2

type TermKind byte

const (
	X TermKind = 'x' // input signal
	Y TermKind = 'y' // filter output
)

func (k TermKind) String() string { return string(rune(k)) }

func (k TermKind) MarshalText() ([]byte, error) { return []byte{byte(k)}, nil }

func (k *TermKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "x":
		*k = X
	case "y":
		*k = Y
	default:
		return fmt.Errorf("unknown term kind %q", b)
	}
	return nil
}

type Term struct {
	Kind        TermKind `json:"type"`
	Coefficient float64  `json:"coefficient"`
	Offset      int      `json:"offset"`
}

func (t Term) String() string {
	return fmt.Sprintf("%g·%s[n%+d]", t.Coefficient, t.Kind, t.Offset)
}

func (t Term) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"type":        t.Kind,
		"coefficient": jsonFloat(t.Coefficient),
		"offset":      t.Offset,
	})
}

func scaleTerms(terms []Term, f func(c float64) float64) []Term {
	for i := range terms {
		terms[i].Coefficient = f(terms[i].Coefficient)
	}
	return terms
}

// ============================================================
// Extraction
// ============================================================

// ParseTerms parses a program containing y[n] = … and returns its combined,
// normalized terms. vals binds extra variables next to pi and e.
func ParseTerms(input string, vals map[string]float64) ([]Term, error) {
	return ParseTermsEnv(input, EnvFromValues(vals))
}

// ParseTermsEnv is ParseTerms with a prepared environment.
func ParseTermsEnv(input string, env *Env) ([]Term, error) {
	root, err := Parse(input)
	if err != nil {
		return nil, err
	}
	terms, err := Extract(root, env)
	if err != nil {
		return nil, err
	}
	return Normalize(terms), nil
}

// Extract finds the y[n] definition in root, registers every other
// assignment as a variable or function, and returns the combined terms of
// the definition, starting with the implicit {y, 1, 0} head. The result is
// not normalized.
func Extract(root *Root, env *Env) ([]Term, error) {
	var filter *Assign
	for _, stmt := range root.Nodes {
		a, ok := stmt.(*Assign)
		if !ok {
			continue
		}
		if isFilterHead(a.LHS) {
			if filter != nil {
				return nil, newError(KindInvalidAssignmentTarget, "y[n] can only be defined once")
			}
			filter = a
			continue
		}
		var err error
		if env, err = bind(env, a); err != nil {
			return nil, err
		}
	}
	if filter == nil {
		return nil, newError(KindMissingFilterDefinition, "must include definition for y[n]")
	}

	terms, err := getTerms(filter.RHS, env)
	if err != nil {
		return nil, err
	}
	return Combine(append([]Term{{Kind: Y, Coefficient: 1, Offset: 0}}, terms...)), nil
}

// bind registers name = expr as a variable and f(a, b) = expr as a function.
func bind(env *Env, a *Assign) (*Env, error) {
	switch lhs := a.LHS.(type) {
	case *Ident:
		return env.WithVar(lhs.Name, a.RHS), nil
	case *Call:
		params, ok := paramNames(lhs.Args)
		if !ok {
			return nil, newError(KindInvalidAssignmentTarget, "function parameters of '%s' must be plain names", lhs.Name)
		}
		return env.WithFunc(lhs.Name, FuncDef{Params: params, Body: a.RHS}), nil
	}
	return nil, newError(KindInvalidAssignmentTarget, "cannot assign to '%s'", a.LHS)
}

func isFilterHead(n Node) bool {
	idx, ok := n.(*Index)
	return ok && isIdent(idx.Object, "y") && isIdent(idx.Index, "n")
}

func paramNames(args []Node) ([]string, bool) {
	names := make([]string, len(args))
	for i, a := range args {
		id, ok := a.(*Ident)
		if !ok {
			return nil, false
		}
		names[i] = id.Name
	}
	return names, true
}

func getTerms(node Node, env *Env) ([]Term, error) {
	switch n := node.(type) {
	case *Index:
		t, err := sampleTerm(n, env)
		if err != nil {
			return nil, err
		}
		return []Term{t}, nil

	case *Add:
		l, err := getTerms(n.LHS, env)
		if err != nil {
			return nil, err
		}
		r, err := getTerms(n.RHS, env)
		if err != nil {
			return nil, err
		}
		return append(l, r...), nil

	case *Sub:
		l, err := getTerms(n.LHS, env)
		if err != nil {
			return nil, err
		}
		r, err := getTerms(n.RHS, env)
		if err != nil {
			return nil, err
		}
		return append(l, scaleTerms(r, func(c float64) float64 { return -c })...), nil

	case *Mul:
		return mulTerms(n, env)

	case *Div:
		f, err := EvalReal(n.RHS, env)
		if err != nil {
			return nil, factorError(err)
		}
		terms, err := getTerms(n.LHS, env)
		if err != nil {
			return nil, factorError(err)
		}
		return scaleTerms(terms, func(c float64) float64 { return c / f }), nil

	case *Negate:
		terms, err := getTerms(n.RHS, env)
		if err != nil {
			return nil, err
		}
		return scaleTerms(terms, func(c float64) float64 { return -c }), nil
	}
	// Constants and anything else carry no sample terms.
	return nil, nil
}

// mulTerms treats the left side as the scalar first, then the right side.
// When both fail, the second failure is reported.
func mulTerms(n *Mul, env *Env) ([]Term, error) {
	try := func(scalar, other Node) ([]Term, error) {
		f, err := EvalReal(scalar, env)
		if err != nil {
			return nil, err
		}
		terms, err := getTerms(other, env)
		if err != nil {
			return nil, err
		}
		return scaleTerms(terms, func(c float64) float64 { return c * f }), nil
	}

	if terms, err := try(n.LHS, n.RHS); err == nil {
		return terms, nil
	}
	terms, err := try(n.RHS, n.LHS)
	if err != nil {
		return nil, factorError(err)
	}
	return terms, nil
}

// factorError wraps an evaluation failure; a plain "not a real number"
// cause adds nothing and is dropped from the message.
func factorError(cause error) error {
	if cause == nil || errors.Is(cause, ErrUnevaluable) {
		return newError(KindUnevaluableTermFactor, "could not evaluate term factors")
	}
	if errors.Is(cause, ErrUnevaluableTermFactor) {
		return cause
	}
	return newError(KindUnevaluableTermFactor, "could not evaluate term factors: %s", cause)
}

func sampleTerm(n *Index, env *Env) (Term, error) {
	obj, ok := n.Object.(*Ident)
	if !ok {
		return Term{}, newError(KindInvalidSampleAccess, "tried to access non-variable")
	}
	offset, err := sampleOffset(n.Index, env)
	if err != nil {
		return Term{}, err
	}
	if obj.Name != "x" && obj.Name != "y" {
		return Term{}, newError(KindInvalidSampleAccess, "only indexing of x or y is allowed")
	}
	if obj.Name == "y" && offset == 0 {
		return Term{}, newError(KindInvalidSampleAccess, "cannot recursively access y")
	}
	if math.Abs(offset) > MaxOffset || offset != math.Trunc(offset) {
		return Term{}, errBadOffset()
	}
	return Term{Kind: TermKind(obj.Name[0]), Coefficient: 1, Offset: int(offset)}, nil
}

func errBadOffset() *Error {
	return newError(KindInvalidSampleAccess, "sample can only be accessed with an integer offset of n")
}

// sampleOffset accepts n, n + E, E + n and n - E.
func sampleOffset(index Node, env *Env) (float64, error) {
	switch ix := index.(type) {
	case *Ident:
		if ix.Name == "n" {
			return 0, nil
		}
	case *Add:
		if isIdent(ix.LHS, "n") {
			return EvalReal(ix.RHS, env)
		}
		if isIdent(ix.RHS, "n") {
			return EvalReal(ix.LHS, env)
		}
	case *Sub:
		if isIdent(ix.LHS, "n") {
			v, err := EvalReal(ix.RHS, env)
			return -v, err
		}
	}
	return 0, errBadOffset()
}

// Combine merges terms with the same kind and offset by summing their
// coefficients. Order of first appearance is kept.
func Combine(terms []Term) []Term {
	out := make([]Term, 0, len(terms))
	seen := map[Term]int{}
	for _, t := range terms {
		key := Term{Kind: t.Kind, Offset: t.Offset}
		if i, ok := seen[key]; ok {
			out[i].Coefficient += t.Coefficient
			continue
		}
		seen[key] = len(out)
		out = append(out, t)
	}
	return out
}

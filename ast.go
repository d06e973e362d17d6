package gofilter

import (
	"strconv"
	"strings"
)

// ============================================================
// Node — abstract syntax tree
// ============================================================

// Node is one of Real, Ident, Negate, Add, Sub, Mul, Div, Pow, Index, Call,
// Assign or Root. Trees are built once by the parser and never mutated.
type Node interface {
	String() string
	Equal(other Node) bool
	nodeType() string
	toJSON() map[string]interface{}
}

type Real struct{ Value float64 }

type Ident struct{ Name string }

type Negate struct{ RHS Node }

type Add struct{ LHS, RHS Node }
type Sub struct{ LHS, RHS Node }
type Mul struct{ LHS, RHS Node }
type Div struct{ LHS, RHS Node }
type Pow struct{ LHS, RHS Node }

// Index is object[index], e.g. x[n-1].
type Index struct{ Object, Index Node }

type Call struct {
	Name string
	Args []Node
}

type Assign struct{ LHS, RHS Node }

// Root holds the statements of a program in source order.
type Root struct{ Nodes []Node }

// ---------- Real / Ident ----------

func (r *Real) nodeType() string       { return "real" }
func (r *Real) String() string         { return strconv.FormatFloat(r.Value, 'g', -1, 64) }
func (r *Real) Equal(other Node) bool  { o, ok := other.(*Real); return ok && o.Value == r.Value }
func (i *Ident) nodeType() string      { return "ident" }
func (i *Ident) String() string        { return i.Name }
func (i *Ident) Equal(other Node) bool { o, ok := other.(*Ident); return ok && o.Name == i.Name }

func (n *Negate) nodeType() string { return "negate" }
func (n *Negate) String() string   { return "(-" + n.RHS.String() + ")" }
func (n *Negate) Equal(other Node) bool {
	o, ok := other.(*Negate)
	return ok && n.RHS.Equal(o.RHS)
}

// ---------- binary operators ----------

func binString(op string, l, r Node) string {
	return "(" + l.String() + " " + op + " " + r.String() + ")"
}

func binEqual(l, r, ol, or Node) bool { return l.Equal(ol) && r.Equal(or) }

func (b *Add) nodeType() string { return "add" }
func (b *Add) String() string   { return binString("+", b.LHS, b.RHS) }
func (b *Add) Equal(other Node) bool {
	o, ok := other.(*Add)
	return ok && binEqual(b.LHS, b.RHS, o.LHS, o.RHS)
}

func (b *Sub) nodeType() string { return "sub" }
func (b *Sub) String() string   { return binString("-", b.LHS, b.RHS) }
func (b *Sub) Equal(other Node) bool {
	o, ok := other.(*Sub)
	return ok && binEqual(b.LHS, b.RHS, o.LHS, o.RHS)
}

func (b *Mul) nodeType() string { return "mul" }
func (b *Mul) String() string   { return binString("*", b.LHS, b.RHS) }
func (b *Mul) Equal(other Node) bool {
	o, ok := other.(*Mul)
	return ok && binEqual(b.LHS, b.RHS, o.LHS, o.RHS)
}

func (b *Div) nodeType() string { return "div" }
func (b *Div) String() string   { return binString("/", b.LHS, b.RHS) }
func (b *Div) Equal(other Node) bool {
	o, ok := other.(*Div)
	return ok && binEqual(b.LHS, b.RHS, o.LHS, o.RHS)
}

func (b *Pow) nodeType() string { return "pow" }
func (b *Pow) String() string   { return binString("^", b.LHS, b.RHS) }
func (b *Pow) Equal(other Node) bool {
	o, ok := other.(*Pow)
	return ok && binEqual(b.LHS, b.RHS, o.LHS, o.RHS)
}

// ---------- Index / Call / Assign / Root ----------

func (x *Index) nodeType() string { return "index" }
func (x *Index) String() string   { return x.Object.String() + "[" + x.Index.String() + "]" }
func (x *Index) Equal(other Node) bool {
	o, ok := other.(*Index)
	return ok && binEqual(x.Object, x.Index, o.Object, o.Index)
}

func (c *Call) nodeType() string { return "call" }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (c *Call) Equal(other Node) bool {
	o, ok := other.(*Call)
	return ok && c.Name == o.Name && nodesEqual(c.Args, o.Args)
}

func (a *Assign) nodeType() string { return "assign" }
func (a *Assign) String() string   { return a.LHS.String() + " = " + a.RHS.String() }
func (a *Assign) Equal(other Node) bool {
	o, ok := other.(*Assign)
	return ok && binEqual(a.LHS, a.RHS, o.LHS, o.RHS)
}

func (r *Root) nodeType() string { return "root" }
func (r *Root) String() string {
	parts := make([]string, len(r.Nodes))
	for i, n := range r.Nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, "\n")
}
func (r *Root) Equal(other Node) bool {
	o, ok := other.(*Root)
	return ok && nodesEqual(r.Nodes, o.Nodes)
}

func nodesEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// isIdent reports whether n is the identifier name.
func isIdent(n Node, name string) bool {
	id, ok := n.(*Ident)
	return ok && id.Name == name
}

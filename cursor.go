package gofilter

import (
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Cursor — accept / peek / require over the remaining input
// ============================================================

// MaxDepth bounds grammar nesting; deeper input fails with a syntax error
// instead of exhausting the stack.
const MaxDepth = 256

// Pattern is either a literal prefix (Lit) or an anchored regexp (Re).
type Pattern interface {
	match(s string) (string, bool)
	String() string
}

type Lit string

func (l Lit) match(s string) (string, bool) {
	if strings.HasPrefix(s, string(l)) {
		return string(l), true
	}
	return "", false
}
func (l Lit) String() string { return strconv.Quote(string(l)) }

type Re struct{ re *regexp.Regexp }

// MustRe compiles expr; the caller is responsible for anchoring it with ^.
func MustRe(expr string) Re { return Re{re: regexp.MustCompile(expr)} }

func (r Re) match(s string) (string, bool) {
	loc := r.re.FindStringIndex(s)
	if loc == nil || loc[0] != 0 || loc[1] == 0 {
		return "", false
	}
	return s[:loc[1]], true
}
func (r Re) String() string { return "/" + r.re.String() + "/" }

type cursor struct {
	rest  string
	token string
	depth int
}

func newCursor(input string) *cursor { return &cursor{rest: strings.TrimSpace(input)} }

func (c *cursor) accept(p Pattern) bool {
	m, ok := p.match(c.rest)
	if !ok {
		return false
	}
	c.token = m
	c.rest = strings.TrimLeft(c.rest[len(m):], " \t")
	return true
}

func (c *cursor) peek(p Pattern) bool {
	_, ok := p.match(c.rest)
	return ok
}

func (c *cursor) require(p Pattern) error {
	if !c.accept(p) {
		return syntaxError("expected %s", p)
	}
	return nil
}

func (c *cursor) enter() error {
	c.depth++
	if c.depth > MaxDepth {
		return syntaxError("expression nested too deeply")
	}
	return nil
}

func (c *cursor) leave() { c.depth-- }

func (c *cursor) done() bool { return c.rest == "" }

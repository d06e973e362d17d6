package gofilter

import (
	"strconv"
)

// ============================================================
// Parser — recursive descent over the cursor primitives
// ============================================================
//
// Precedence, lowest first:
//
//	assign   a = b          left-assoc
//	sum      + -            left-assoc
//	product  * /            left-assoc
//	implicit 2 x[n], a(b)   juxtaposition
//	power    ^              right-assoc
//	index    e[i]           postfix
//	atom     (e) -atom number ident ident(args)

var (
	identPattern     = MustRe(`(?i)^[a-z]+`)
	numberPattern    = MustRe(`^\d+(\.(\d+)?)?`)
	statementBreak   = MustRe(`^[\s;]+`)
	openParen        = Lit("(")
	closeParen       = Lit(")")
	openBracket      = Lit("[")
	closeBracket     = Lit("]")
	minusSign        = Lit("-")
	plusSign         = Lit("+")
	timesSign        = Lit("*")
	divideSign       = Lit("/")
	powerSign        = Lit("^")
	equalsSign       = Lit("=")
	argumentSplitter = Lit(",")
)

type parser struct{ c *cursor }

// Parse reads a program of statements separated by newlines or ';'.
// Input left over once no further statement can start is ignored; use
// ParseStrict to reject it.
func Parse(input string) (*Root, error) {
	p := &parser{c: newCursor(input)}
	return p.parseProgram()
}

// ParseStrict is Parse, but fails if any input is left unconsumed.
func ParseStrict(input string) (*Root, error) {
	p := &parser{c: newCursor(input)}
	root, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if !p.c.done() {
		return nil, syntaxError("unexpected trailing input %q", p.c.rest)
	}
	return root, nil
}

// ParseExpr parses a single expression.
func ParseExpr(input string) (Node, error) {
	p := &parser{c: newCursor(input)}
	return p.parseExpr()
}

func (p *parser) parseProgram() (*Root, error) {
	root := &Root{}
	for {
		stmt, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		root.Nodes = append(root.Nodes, stmt)
		if !p.c.accept(statementBreak) || !p.startsStatement() {
			return root, nil
		}
	}
}

func (p *parser) startsStatement() bool {
	return p.c.peek(openParen) || p.c.peek(minusSign) || p.c.peek(numberPattern) || p.c.peek(identPattern)
}

func (p *parser) parseExpr() (Node, error) {
	if err := p.c.enter(); err != nil {
		return nil, err
	}
	defer p.c.leave()
	return p.parseAssign()
}

func (p *parser) parseAssign() (Node, error) {
	lhs, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	for p.c.accept(equalsSign) {
		rhs, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		lhs = &Assign{LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *parser) parseSum() (Node, error) {
	lhs, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.c.accept(plusSign):
			rhs, err := p.parseMul()
			if err != nil {
				return nil, err
			}
			lhs = &Add{LHS: lhs, RHS: rhs}
		case p.c.accept(minusSign):
			rhs, err := p.parseMul()
			if err != nil {
				return nil, err
			}
			lhs = &Sub{LHS: lhs, RHS: rhs}
		default:
			return lhs, nil
		}
	}
}

func (p *parser) parseMul() (Node, error) {
	lhs, err := p.parseImplicitMul()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.c.accept(timesSign):
			rhs, err := p.parseImplicitMul()
			if err != nil {
				return nil, err
			}
			lhs = &Mul{LHS: lhs, RHS: rhs}
		case p.c.accept(divideSign):
			rhs, err := p.parseImplicitMul()
			if err != nil {
				return nil, err
			}
			lhs = &Div{LHS: lhs, RHS: rhs}
		default:
			return lhs, nil
		}
	}
}

func (p *parser) parseImplicitMul() (Node, error) {
	lhs, err := p.parsePow()
	if err != nil {
		return nil, err
	}
	for p.c.peek(identPattern) || p.c.peek(numberPattern) || p.c.peek(openParen) {
		rhs, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		lhs = &Mul{LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *parser) parsePow() (Node, error) {
	if err := p.c.enter(); err != nil {
		return nil, err
	}
	defer p.c.leave()
	lhs, err := p.parseIndex()
	if err != nil {
		return nil, err
	}
	for p.c.accept(powerSign) {
		rhs, err := p.parsePow()
		if err != nil {
			return nil, err
		}
		lhs = &Pow{LHS: lhs, RHS: rhs}
	}
	return lhs, nil
}

func (p *parser) parseIndex() (Node, error) {
	lhs, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.c.accept(openBracket) {
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.c.require(closeBracket); err != nil {
			return nil, err
		}
		lhs = &Index{Object: lhs, Index: idx}
	}
	return lhs, nil
}

func (p *parser) parseAtom() (Node, error) {
	if err := p.c.enter(); err != nil {
		return nil, err
	}
	defer p.c.leave()

	switch {
	case p.c.accept(openParen):
		ex, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.c.require(closeParen); err != nil {
			return nil, err
		}
		return ex, nil

	case p.c.accept(minusSign):
		rhs, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return &Negate{RHS: rhs}, nil

	case p.c.accept(numberPattern):
		v, err := strconv.ParseFloat(p.c.token, 64)
		if err != nil {
			return nil, syntaxError("invalid number %q", p.c.token)
		}
		return &Real{Value: v}, nil

	case p.c.accept(identPattern):
		name := p.c.token
		if !p.c.accept(openParen) {
			return &Ident{Name: name}, nil
		}
		call := &Call{Name: name}
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
			if !p.c.accept(argumentSplitter) {
				break
			}
		}
		if err := p.c.require(closeParen); err != nil {
			return nil, err
		}
		return call, nil
	}

	return nil, syntaxError("expected expression")
}

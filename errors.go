package gofilter

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ============================================================
// Error kinds
// ============================================================

type ErrorKind int

const (
	KindSyntax ErrorKind = iota + 1
	KindUndefinedVariable
	KindUndefinedFunction
	KindArityMismatch
	KindInvalidSampleAccess
	KindInvalidAssignmentTarget
	KindMissingFilterDefinition
	KindUnevaluableTermFactor
	KindUnsupportedExponent
	KindUnevaluable
	KindRecursionLimit
)

var kindNames = map[ErrorKind]string{
	KindSyntax:                  "SyntaxError",
	KindUndefinedVariable:       "UndefinedVariable",
	KindUndefinedFunction:       "UndefinedFunction",
	KindArityMismatch:           "ArityMismatch",
	KindInvalidSampleAccess:     "InvalidSampleAccess",
	KindInvalidAssignmentTarget: "InvalidAssignmentTarget",
	KindMissingFilterDefinition: "MissingFilterDefinition",
	KindUnevaluableTermFactor:   "UnevaluableTermFactor",
	KindUnsupportedExponent:     "UnsupportedExponent",
	KindUnevaluable:             "Unevaluable",
	KindRecursionLimit:          "RecursionLimit",
}

func (k ErrorKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned by every fallible operation in the package. Msg is the
// human-readable text shown to users verbatim.
type Error struct {
	Kind       ErrorKind
	Msg        string
	Suggestion string
}

func (e *Error) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s (did you mean '%s'?)", e.Msg, e.Suggestion)
	}
	return e.Msg
}

// Is matches sentinels by kind, so errors.Is(err, ErrSyntax) works for any
// syntax error regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == ""
}

var (
	ErrSyntax                  = &Error{Kind: KindSyntax}
	ErrUndefinedVariable       = &Error{Kind: KindUndefinedVariable}
	ErrUndefinedFunction       = &Error{Kind: KindUndefinedFunction}
	ErrArityMismatch           = &Error{Kind: KindArityMismatch}
	ErrInvalidSampleAccess     = &Error{Kind: KindInvalidSampleAccess}
	ErrInvalidAssignmentTarget = &Error{Kind: KindInvalidAssignmentTarget}
	ErrMissingFilterDefinition = &Error{Kind: KindMissingFilterDefinition}
	ErrUnevaluableTermFactor   = &Error{Kind: KindUnevaluableTermFactor}
	ErrUnsupportedExponent     = &Error{Kind: KindUnsupportedExponent}
	ErrUnevaluable             = &Error{Kind: KindUnevaluable}
	ErrRecursionLimit          = &Error{Kind: KindRecursionLimit}
)

func newError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func syntaxError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindSyntax, Msg: "syntax error: " + fmt.Sprintf(format, args...)}
}

// suggest picks the closest known name for a misspelt identifier.
func suggest(name string, candidates []string) string {
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		// Also try the other direction: "sine" is not a subsequence of
		// "sin" but "sin" is a subsequence of "sine".
		best := ""
		for _, c := range candidates {
			if fuzzy.MatchFold(c, name) && len(c) > len(best) {
				best = c
			}
		}
		return best
	}
	sort.Stable(ranks)
	return ranks[0].Target
}

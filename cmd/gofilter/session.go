package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	gofilter "github.com/njchilds90/gofilter"
)

var (
	headColor  = color.New(color.FgCyan, color.Bold)
	errorColor = color.New(color.FgRed, color.Bold)
)

// session keeps the helper definitions typed so far and the slider values.
// Each filter line is evaluated against all of them.
type session struct {
	defs    []string
	sliders map[string]float64
	terms   []gofilter.Term
	log     zerolog.Logger
}

func newSession(log zerolog.Logger) *session {
	return &session{sliders: map[string]float64{}, log: log}
}

const helpText = `Enter a filter such as  y[n] = (x[n] + x[n-1]) / 2
Helper lines (a = 0.5, f(k) = k/2) are remembered for later filters.
Commands:
  :set NAME VALUE   bind a slider variable
  :response [N]     sample |H| and phase of the last filter (default 16)
  :terms            show the last filter's terms
  :ast EXPR         show how EXPR parses
  :eval EXPR        evaluate EXPR with the current definitions
  :defs             list remembered definitions
  :reset            forget definitions and sliders
  :help             show this text
  :quit             leave`

// handle processes one input line. It returns false when the user quits.
func (s *session) handle(line string, out io.Writer) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return true, nil
	}
	if strings.HasPrefix(line, ":") {
		return s.command(line[1:], out)
	}
	return true, s.statement(line, out)
}

func (s *session) statement(line string, out io.Writer) error {
	root, err := gofilter.ParseStrict(line)
	if err != nil {
		return err
	}
	if !definesFilter(root) {
		s.defs = append(s.defs, line)
		fmt.Fprintln(out, "ok")
		return nil
	}

	start := time.Now()
	program := strings.Join(append(append([]string(nil), s.defs...), line), "\n")
	terms, err := gofilter.ParseTerms(program, s.sliders)
	if err != nil {
		return err
	}
	s.log.Debug().Int("terms", len(terms)).Dur("elapsed", time.Since(start)).Msg("filter parsed")
	s.terms = terms
	headColor.Fprintln(out, gofilter.TransferFunction(terms))
	return nil
}

func definesFilter(root *gofilter.Root) bool {
	for _, n := range root.Nodes {
		a, ok := n.(*gofilter.Assign)
		if !ok {
			continue
		}
		idx, ok := a.LHS.(*gofilter.Index)
		if !ok {
			continue
		}
		obj, okObj := idx.Object.(*gofilter.Ident)
		at, okAt := idx.Index.(*gofilter.Ident)
		if okObj && okAt && obj.Name == "y" && at.Name == "n" {
			return true
		}
	}
	return false
}

func (s *session) command(cmd string, out io.Writer) (bool, error) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return true, fmt.Errorf("empty command, try :help")
	}
	rest := strings.TrimSpace(strings.TrimPrefix(cmd, fields[0]))

	switch fields[0] {
	case "quit", "q", "exit":
		return false, nil

	case "help", "h":
		fmt.Fprintln(out, helpText)

	case "set":
		if len(fields) != 3 {
			return true, fmt.Errorf("usage: :set NAME VALUE")
		}
		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return true, fmt.Errorf("invalid value %q", fields[2])
		}
		s.sliders[fields[1]] = v
		fmt.Fprintf(out, "%s = %g\n", fields[1], v)

	case "response":
		n := 16
		if len(fields) > 1 {
			v, err := strconv.Atoi(fields[1])
			if err != nil {
				return true, fmt.Errorf("invalid sample count %q", fields[1])
			}
			n = v
		}
		if s.terms == nil {
			return true, fmt.Errorf("no filter yet")
		}
		samples, err := gofilter.Response(s.terms, n)
		if err != nil {
			return true, err
		}
		fmt.Fprintf(out, "%10s %12s %12s\n", "theta", "magnitude", "phase")
		for _, smp := range samples {
			fmt.Fprintf(out, "%10.4f %12.6f %12.6f\n", smp.Theta, smp.Magnitude, smp.Phase)
		}

	case "terms":
		if s.terms == nil {
			return true, fmt.Errorf("no filter yet")
		}
		for _, t := range s.terms {
			fmt.Fprintln(out, t)
		}

	case "ast":
		root, err := gofilter.Parse(rest)
		if err != nil {
			return true, err
		}
		fmt.Fprintln(out, root)

	case "eval":
		program := strings.Join(append(append([]string(nil), s.defs...), rest), "\n")
		v, err := gofilter.EvalProgram(program, gofilter.EnvFromValues(s.sliders))
		if err != nil {
			return true, err
		}
		fmt.Fprintf(out, "%g\n", v)

	case "defs":
		for _, d := range s.defs {
			fmt.Fprintln(out, d)
		}
		names := make([]string, 0, len(s.sliders))
		for name := range s.sliders {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "%s = %g (slider)\n", name, s.sliders[name])
		}

	case "reset":
		s.defs = nil
		s.sliders = map[string]float64{}
		s.terms = nil

	default:
		return true, fmt.Errorf("unknown command :%s, try :help", fields[0])
	}
	return true, nil
}

// complete offers command names after ':'.
func complete(line string) []string {
	if !strings.HasPrefix(line, ":") {
		return nil
	}
	var out []string
	for _, c := range []string{":set ", ":response", ":terms", ":ast ", ":eval ", ":defs", ":reset", ":help", ":quit"} {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

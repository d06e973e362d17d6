package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	gofilter "github.com/njchilds90/gofilter"
)

func run(t *testing.T, s *session, line string) string {
	t.Helper()
	var buf bytes.Buffer
	more, err := s.handle(line, &buf)
	if err != nil {
		t.Fatalf("%q: unexpected error: %v", line, err)
	}
	if !more {
		t.Fatalf("%q: session ended", line)
	}
	return buf.String()
}

func newTestSession() *session {
	color.NoColor = true
	return newSession(zerolog.Nop())
}

func TestSession_DefinitionThenFilter(t *testing.T) {
	s := newTestSession()
	if got := run(t, s, "a = 0.5"); got != "ok\n" {
		t.Errorf("want ok, got %q", got)
	}
	got := run(t, s, "y[n] = a*x[n] + (1-a)*y[n-1]")
	if want := "H(z) = (z) / (2z + 1)\n"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	if len(s.terms) != 3 {
		t.Errorf("want 3 terms, got %v", s.terms)
	}
}

func TestSession_Slider(t *testing.T) {
	s := newTestSession()
	run(t, s, ":set b 2")
	got := run(t, s, "y[n] = b*x[n]")
	if want := "H(z) = (2) / (1)\n"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestSession_Response(t *testing.T) {
	s := newTestSession()
	run(t, s, "y[n] = x[n]")
	out := run(t, s, ":response 4")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("want header + 4 rows, got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "1.000000") {
		t.Errorf("identity filter should have magnitude 1, got %q", lines[1])
	}
}

func TestSession_ResponseWithoutFilter(t *testing.T) {
	s := newTestSession()
	if _, err := s.handle(":response", &bytes.Buffer{}); err == nil {
		t.Error("expected error before any filter is entered")
	}
}

func TestSession_Eval(t *testing.T) {
	s := newTestSession()
	run(t, s, "f(k) = k*k")
	if got := run(t, s, ":eval f(3) + 1"); got != "10\n" {
		t.Errorf("want 10, got %q", got)
	}
}

func TestSession_FilterError(t *testing.T) {
	s := newTestSession()
	_, err := s.handle("y[n] = y[n]", &bytes.Buffer{})
	if !errors.Is(err, gofilter.ErrInvalidSampleAccess) {
		t.Errorf("want InvalidSampleAccess, got %v", err)
	}
}

func TestSession_Reset(t *testing.T) {
	s := newTestSession()
	run(t, s, "a = 1")
	run(t, s, ":reset")
	if got := run(t, s, ":defs"); got != "" {
		t.Errorf("want no definitions after reset, got %q", got)
	}
}

func TestSession_QuitAndUnknown(t *testing.T) {
	s := newTestSession()
	more, err := s.handle(":quit", &bytes.Buffer{})
	if err != nil || more {
		t.Errorf("want quit, got more=%v err=%v", more, err)
	}
	if _, err := s.handle(":frobnicate", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown command")
	}
}

func TestComplete(t *testing.T) {
	got := complete(":re")
	if len(got) != 2 || got[0] != ":response" || got[1] != ":reset" {
		t.Errorf("want [:response :reset], got %v", got)
	}
	if complete("y[n]") != nil {
		t.Error("plain input should not complete")
	}
}

package gofilter_test

import (
	"encoding/json"
	"strings"
	"testing"

	gofilter "github.com/njchilds90/gofilter"
)

func call(tool string, params map[string]interface{}) gofilter.ToolResponse {
	return gofilter.HandleToolCall(gofilter.ToolRequest{Tool: tool, Params: params})
}

// ============================================================
// Tool calls
// ============================================================

func TestTool_ParseTerms(t *testing.T) {
	resp := call("parse_terms", map[string]interface{}{
		"input": "y[n] = a*x[n]",
		"vars":  map[string]interface{}{"a": 0.5},
	})
	if resp.Error != "" {
		t.Fatal(resp.Error)
	}
	terms, ok := resp.Result.([]gofilter.Term)
	if !ok || len(terms) != 2 || terms[1].Coefficient != 0.5 {
		t.Errorf("want [y0:1 x0:0.5], got %v", resp.Result)
	}
}

func TestTool_TransferFunction(t *testing.T) {
	resp := call("transfer_function", map[string]interface{}{"input": example})
	if resp.String != "H(z) = (z + 2 + z^-1) / (4z - 2)" {
		t.Errorf("unexpected string %q (error %q)", resp.String, resp.Error)
	}
	if !strings.HasPrefix(resp.LaTeX, `H(z) = \frac{`) {
		t.Errorf("unexpected LaTeX %q", resp.LaTeX)
	}
}

func TestTool_ExtractTerms(t *testing.T) {
	resp := call("extract_terms", map[string]interface{}{"input": example})
	terms, ok := resp.Result.([]gofilter.Term)
	if !ok || len(terms) != 5 || terms[4].Coefficient != -0.5 {
		t.Errorf("want unnormalized terms, got %v", resp.Result)
	}
}

func TestTool_FrequencyResponse(t *testing.T) {
	resp := call("frequency_response", map[string]interface{}{"input": "y[n] = x[n]", "points": 3.0})
	samples, ok := resp.Result.([]gofilter.Sample)
	if !ok || len(samples) != 3 {
		t.Fatalf("want 3 samples, got %v (%s)", resp.Result, resp.Error)
	}
	resp = call("frequency_response", map[string]interface{}{"input": "y[n] = x[n]", "points": 1e9})
	if !strings.Contains(resp.Error, "at most") {
		t.Errorf("want points limit error, got %q", resp.Error)
	}
}

func TestTool_Eval(t *testing.T) {
	resp := call("eval", map[string]interface{}{
		"input": "f(k) = k + 1; f(a)",
		"vars":  map[string]interface{}{"a": 2.0},
	})
	if resp.Result != 3.0 || resp.String != "3" {
		t.Errorf("want 3, got %v (%s)", resp.Result, resp.Error)
	}
}

func TestTool_Complex(t *testing.T) {
	resp := call("complex", map[string]interface{}{
		"op": "pow",
		"a":  map[string]interface{}{"re": 0.0, "im": 1.0},
		"b":  map[string]interface{}{"re": 2.0, "im": 0.0},
	})
	if resp.String != "(-1 + 0i)" {
		t.Errorf("i^2: want (-1 + 0i), got %q (%s)", resp.String, resp.Error)
	}
	resp = call("complex", map[string]interface{}{
		"op": "pow",
		"a":  map[string]interface{}{"re": 2.0},
		"b":  map[string]interface{}{"re": 0.5},
	})
	if resp.Kind != "UnsupportedExponent" {
		t.Errorf("want UnsupportedExponent, got %q (%s)", resp.Kind, resp.Error)
	}
	resp = call("complex", map[string]interface{}{
		"op": "pow",
		"a":  map[string]interface{}{"re": 1.0},
		"b":  map[string]interface{}{"re": 1e12},
	})
	if resp.Kind != "UnsupportedExponent" {
		t.Errorf("huge exponent: want UnsupportedExponent, got %q (%s)", resp.Kind, resp.Error)
	}
}

func TestTool_ComplexBadOperand(t *testing.T) {
	resp := call("complex", map[string]interface{}{
		"op": "exp",
		"a":  map[string]interface{}{"re": "1"},
	})
	if resp.Error != "param a.re must be a number" {
		t.Errorf("want operand type error, got %q", resp.Error)
	}
}

func TestTool_ErrorKinds(t *testing.T) {
	cases := []struct {
		tool   string
		params map[string]interface{}
		kind   string
	}{
		{"parse_terms", map[string]interface{}{"input": "a = 1"}, "MissingFilterDefinition"},
		{"parse_terms", map[string]interface{}{"input": "y[n] = x[n - 0.5]"}, "InvalidSampleAccess"},
		{"parse", map[string]interface{}{"input": "1 )", "strict": true}, "SyntaxError"},
		{"eval", map[string]interface{}{"input": "pii"}, "UndefinedVariable"},
	}
	for _, c := range cases {
		resp := call(c.tool, c.params)
		if resp.Kind != c.kind {
			t.Errorf("%s %v: want kind %s, got %q (%s)", c.tool, c.params, c.kind, resp.Kind, resp.Error)
		}
	}
}

func TestTool_BadParams(t *testing.T) {
	if resp := call("parse", map[string]interface{}{}); resp.Error != "missing param: input" {
		t.Errorf("want missing param error, got %q", resp.Error)
	}
	resp := call("parse_terms", map[string]interface{}{"input": "y[n] = x[n]", "vars": map[string]interface{}{"a": "one"}})
	if resp.Error != "param vars.a must be a number" {
		t.Errorf("want vars type error, got %q", resp.Error)
	}
}

func TestTool_Unknown(t *testing.T) {
	resp := call("integrate", nil)
	if resp.Error != "unknown tool: integrate" {
		t.Errorf("want unknown tool error, got %q", resp.Error)
	}
}

func TestTool_MCPSpec(t *testing.T) {
	var spec struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	if err := json.Unmarshal([]byte(gofilter.MCPToolSpec()), &spec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(spec.Tools) != 8 {
		t.Errorf("want 8 tools, got %d", len(spec.Tools))
	}
	resp := call("mcp_spec", nil)
	if _, ok := resp.Result.(string); !ok {
		t.Errorf("mcp_spec should return the schema string, got %T", resp.Result)
	}
}

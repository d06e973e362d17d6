package gofilter

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	Kind   string      `json:"kind,omitempty"`
}

// DefaultResponsePoints is used by frequency_response when "points" is absent.
const DefaultResponsePoints = 64

// MaxResponsePoints caps "points" for frequency_response.
const MaxResponsePoints = 1 << 16

func HandleToolCall(req ToolRequest) ToolResponse {
	fail := func(err error) ToolResponse {
		resp := ToolResponse{Error: err.Error()}
		if e, ok := err.(*Error); ok {
			resp.Kind = e.Kind.String()
		}
		return resp
	}
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getEnv := func() (*Env, error) {
		v, ok := req.Params["vars"]
		if !ok || v == nil {
			return DefaultEnv(), nil
		}
		raw, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("param vars must be an object of numbers")
		}
		vals := make(map[string]float64, len(raw))
		for name, x := range raw {
			f, ok := x.(float64)
			if !ok {
				return nil, fmt.Errorf("param vars.%s must be a number", name)
			}
			vals[name] = f
		}
		return EnvFromValues(vals), nil
	}
	getInt := func(key string, def int) (int, error) {
		v, ok := req.Params[key]
		if !ok {
			return def, nil
		}
		f, ok := v.(float64)
		if !ok || f != math.Trunc(f) {
			return 0, fmt.Errorf("param %s must be an integer", key)
		}
		return int(f), nil
	}
	getComplex := func(key string) (Complex, error) {
		v, ok := req.Params[key]
		if !ok {
			return Complex{}, fmt.Errorf("missing param: %s", key)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return Complex{}, fmt.Errorf("param %s must be {re, im}", key)
		}
		part := func(name string) (float64, error) {
			v, ok := m[name]
			if !ok {
				return 0, nil
			}
			f, ok := v.(float64)
			if !ok {
				return 0, fmt.Errorf("param %s.%s must be a number", key, name)
			}
			return f, nil
		}
		re, err := part("re")
		if err != nil {
			return Complex{}, err
		}
		im, err := part("im")
		if err != nil {
			return Complex{}, err
		}
		return C(re, im), nil
	}
	// termsFor runs the pipeline on params "input" and "vars".
	termsFor := func(normalize bool) ([]Term, error) {
		input, err := getString("input")
		if err != nil {
			return nil, err
		}
		env, err := getEnv()
		if err != nil {
			return nil, err
		}
		root, err := Parse(input)
		if err != nil {
			return nil, err
		}
		terms, err := Extract(root, env)
		if err != nil {
			return nil, err
		}
		if normalize {
			terms = Normalize(terms)
		}
		return terms, nil
	}

	switch req.Tool {
	case "parse":
		input, err := getString("input")
		if err != nil {
			return fail(err)
		}
		parse := Parse
		if strict, _ := req.Params["strict"].(bool); strict {
			parse = ParseStrict
		}
		root, err := parse(input)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: root.toJSON(), String: root.String()}

	case "parse_terms", "extract_terms":
		terms, err := termsFor(req.Tool == "parse_terms")
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: terms, String: TransferFunction(terms), LaTeX: TransferFunctionLaTeX(terms)}

	case "transfer_function":
		terms, err := termsFor(true)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{String: TransferFunction(terms), LaTeX: TransferFunctionLaTeX(terms)}

	case "frequency_response":
		terms, err := termsFor(true)
		if err != nil {
			return fail(err)
		}
		points, err := getInt("points", DefaultResponsePoints)
		if err != nil {
			return fail(err)
		}
		if points > MaxResponsePoints {
			return fail(fmt.Errorf("param points must be at most %d", MaxResponsePoints))
		}
		samples, err := Response(terms, points)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: samples, String: TransferFunction(terms)}

	case "eval":
		input, err := getString("input")
		if err != nil {
			return fail(err)
		}
		env, err := getEnv()
		if err != nil {
			return fail(err)
		}
		v, err := EvalProgram(input, env)
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: jsonFloat(v), String: fmt.Sprintf("%g", v)}

	case "complex":
		op, err := getString("op")
		if err != nil {
			return fail(err)
		}
		a, err := getComplex("a")
		if err != nil {
			return fail(err)
		}
		var z Complex
		switch op {
		case "exp":
			z = a.Exp()
		case "ln":
			z = a.Ln()
		case "sin":
			z = a.Sin()
		case "cos":
			z = a.Cos()
		case "tan":
			z = a.Tan()
		case "polar":
			r, theta := a.Polar()
			return ToolResponse{Result: map[string]interface{}{"radius": jsonFloat(r), "angle": jsonFloat(theta)}}
		case "add", "sub", "mul", "div", "pow":
			b, err := getComplex("b")
			if err != nil {
				return fail(err)
			}
			switch op {
			case "add":
				z = a.Add(b)
			case "sub":
				z = a.Sub(b)
			case "mul":
				z = a.Mul(b)
			case "div":
				z = a.Div(b)
			case "pow":
				if z, err = a.Pow(b); err != nil {
					return fail(err)
				}
			}
		default:
			return fail(fmt.Errorf("unknown complex op: %s", op))
		}
		return ToolResponse{Result: map[string]interface{}{"re": jsonFloat(z.Re), "im": jsonFloat(z.Im)}, String: z.String()}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

func MCPToolSpec() string {
	program := map[string]string{"input": "string", "vars": "object"}
	tools := []map[string]interface{}{
		ts("parse", "Parse a program into its syntax tree. Optional strict (bool) rejects trailing input", []string{"input"}, map[string]string{"input": "string", "strict": "boolean"}),
		ts("parse_terms", "Normalized transfer-function terms of a y[n] = ... difference equation", []string{"input"}, program),
		ts("extract_terms", "Combined terms of y[n] = ... before normalization", []string{"input"}, program),
		ts("transfer_function", "H(z) as text and LaTeX", []string{"input"}, program),
		ts("frequency_response", "Magnitude and phase of H on the upper unit circle. Optional points (int)", []string{"input"}, map[string]string{"input": "string", "vars": "object", "points": "integer"}),
		ts("eval", "Evaluate the last statement of a program to a real number", []string{"input"}, program),
		ts("complex", "Complex arithmetic: op in add, sub, mul, div, pow, exp, ln, sin, cos, tan, polar", []string{"op", "a"}, map[string]string{"op": "string", "a": "object", "b": "object"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}

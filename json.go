package gofilter

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================

func (r *Real) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": r.nodeType(), "value": r.Value}
}
func (i *Ident) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": i.nodeType(), "name": i.Name}
}
func (n *Negate) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": n.nodeType(), "rhs": n.RHS.toJSON()}
}

func binJSON(typ string, l, r Node) map[string]interface{} {
	return map[string]interface{}{"type": typ, "lhs": l.toJSON(), "rhs": r.toJSON()}
}

func (b *Add) toJSON() map[string]interface{}    { return binJSON(b.nodeType(), b.LHS, b.RHS) }
func (b *Sub) toJSON() map[string]interface{}    { return binJSON(b.nodeType(), b.LHS, b.RHS) }
func (b *Mul) toJSON() map[string]interface{}    { return binJSON(b.nodeType(), b.LHS, b.RHS) }
func (b *Div) toJSON() map[string]interface{}    { return binJSON(b.nodeType(), b.LHS, b.RHS) }
func (b *Pow) toJSON() map[string]interface{}    { return binJSON(b.nodeType(), b.LHS, b.RHS) }
func (a *Assign) toJSON() map[string]interface{} { return binJSON(a.nodeType(), a.LHS, a.RHS) }

func (x *Index) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": x.nodeType(), "object": x.Object.toJSON(), "index": x.Index.toJSON()}
}

func (c *Call) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": c.nodeType(), "name": c.Name, "args": listJSON(c.Args)}
}

func (r *Root) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": r.nodeType(), "nodes": listJSON(r.Nodes)}
}

func listJSON(nodes []Node) []map[string]interface{} {
	out := make([]map[string]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = n.toJSON()
	}
	return out
}

// ToJSON encodes an AST as nested objects tagged by "type".
func ToJSON(n Node) (string, error) {
	b, err := json.Marshal(n.toJSON())
	return string(b), err
}

// FromJSON decodes the output of ToJSON after it went through
// encoding/json into a map.
func FromJSON(data map[string]interface{}) (Node, error) {
	if data == nil {
		return nil, fmt.Errorf("node must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	sub := func(field string) (Node, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		n, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return n, nil
	}

	subList := func(field string) ([]Node, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Node, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			n, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = n
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	binary := func() (Node, Node, error) {
		l, err := sub("lhs")
		if err != nil {
			return nil, nil, err
		}
		r, err := sub("rhs")
		if err != nil {
			return nil, nil, err
		}
		return l, r, nil
	}

	switch typ {
	case "real":
		v, ok := data["value"].(float64)
		if !ok {
			return nil, fmt.Errorf("real: 'value' must be a number")
		}
		return &Real{Value: v}, nil

	case "ident":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		return &Ident{Name: name}, nil

	case "negate":
		rhs, err := sub("rhs")
		if err != nil {
			return nil, err
		}
		return &Negate{RHS: rhs}, nil

	case "add", "sub", "mul", "div", "pow", "assign":
		l, r, err := binary()
		if err != nil {
			return nil, err
		}
		switch typ {
		case "add":
			return &Add{LHS: l, RHS: r}, nil
		case "sub":
			return &Sub{LHS: l, RHS: r}, nil
		case "mul":
			return &Mul{LHS: l, RHS: r}, nil
		case "div":
			return &Div{LHS: l, RHS: r}, nil
		case "pow":
			return &Pow{LHS: l, RHS: r}, nil
		}
		return &Assign{LHS: l, RHS: r}, nil

	case "index":
		obj, err := sub("object")
		if err != nil {
			return nil, err
		}
		idx, err := sub("index")
		if err != nil {
			return nil, err
		}
		return &Index{Object: obj, Index: idx}, nil

	case "call":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		args, err := subList("args")
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return nil, fmt.Errorf("call: %q needs at least one argument", name)
		}
		return &Call{Name: name, Args: args}, nil

	case "root":
		nodes, err := subList("nodes")
		if err != nil {
			return nil, err
		}
		return &Root{Nodes: nodes}, nil
	}
	return nil, fmt.Errorf("unknown node type: %s", typ)
}

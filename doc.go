// Package gofilter turns a difference equation such as
//
//	y[n] = (x[n] + x[n-2])/4 + (x[n-1] - y[n-1])/2
//
// into the terms of its transfer function H(z) and samples H on the unit
// circle.
//
// Design goals:
//   - Small recursive-descent parser, no code generation
//   - Lazy variables and user functions (a = 0.5, f(k) = k/2)
//   - Deterministic term order and normalization for stable display
//   - Bit-reproducible complex arithmetic (sequential integer powers)
//   - JSON and MCP-ready tool API, safe for concurrent use
package gofilter

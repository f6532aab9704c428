// Package capes holds the set of built-in cape names shipped with the
// gateware repository. A template must be one of them; a new cape must not.
package capes

import (
	"slices"
	"strings"
)

// BuiltIn lists the capes present in the upstream gateware repository.
var BuiltIn = []string{
	"DEFAULT",
	"GPIOS",
	"NONE",
	"NONE_NO_USER_LEDS",
	"ROBOTICS",
	"VERILOG_TEMPLATE",
	"VERILOG_TUTORIAL",
}

// Registry is a reserved-name set. The zero value is empty.
type Registry struct {
	names map[string]struct{}
}

// NewRegistry returns a registry holding BuiltIn plus any extra names.
// Blank extras are ignored.
func NewRegistry(extra ...string) *Registry {
	r := &Registry{names: make(map[string]struct{}, len(BuiltIn)+len(extra))}
	for _, n := range BuiltIn {
		r.names[n] = struct{}{}
	}
	for _, n := range extra {
		n = strings.TrimSpace(n)
		if n != "" {
			r.names[n] = struct{}{}
		}
	}
	return r
}

// Contains reports whether name is reserved. Matching is exact.
func (r *Registry) Contains(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.names[name]
	return ok
}

// Names returns the reserved names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

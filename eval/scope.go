package eval

import "github.com/motching/ginger-go/value"

// scope is one frame of the lexical scope stack a render walks while
// executing statements. Lookup walks outward through parent before
// falling through to the host lookup.
type scope struct {
	vars   map[string]value.Value
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: map[string]value.Value{}, parent: parent}
}

// set binds name in this frame only, never touching a parent frame.
func (s *scope) set(name string, v value.Value) {
	s.vars[name] = v
}

func (s *scope) lookup(name string) (value.Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// bindArgs binds params positionally against args, with named arguments
// matched to a parameter of the same name taking priority and the
// remaining positional arguments filling whatever parameters are left in
// declaration order. Unfilled trailing parameters bind to Null.
func bindArgs(sc *scope, params []string, args []value.Argument) {
	assigned := make(map[string]bool, len(params))
	var positional []value.Value
	for _, a := range args {
		if a.Name != nil {
			sc.set(*a.Name, a.Value)
			assigned[*a.Name] = true
		} else {
			positional = append(positional, a.Value)
		}
	}
	pi := 0
	for _, p := range params {
		if assigned[p] {
			continue
		}
		if pi < len(positional) {
			sc.set(p, positional[pi])
			pi++
			continue
		}
		sc.set(p, value.Null())
	}
}

// Package conformance holds an embedded table of end-to-end rendering
// scenarios and behavioral invariants this engine guarantees. The shape
// (Name, Description, inputs, expected output, WantErr) follows
// pgavlin/yomlette's internal/spec.Test, with the git-clone-backed
// fixture loader replaced by a literal Go table — there is no external
// corpus to check out for this engine.
package conformance

import "github.com/motching/ginger-go/value"

// Scenario is one conformance case: a named template, resolved against
// any auxiliary templates it includes or extends, rendered against Vars.
type Scenario struct {
	Name        string
	Description string

	// Templates maps source name to source text. Entry names the one to
	// parse and render; the rest exist only to satisfy includes/extends.
	Templates map[string]string
	Entry     string

	Vars map[string]value.Value

	Want    string
	WantErr bool
}

// Scenarios is the full conformance table: the engine's core invariants
// expressed as renderable cases rather than abstract laws, followed by
// end-to-end scenarios exercising template inheritance, includes, and
// error paths.
var Scenarios = []Scenario{
	{
		Name:        "literal-fidelity",
		Description: "source with no tags renders verbatim",
		Templates:   map[string]string{"main": "plain text, no tags at all"},
		Entry:       "main",
		Want:        "plain text, no tags at all",
	},
	{
		Name:        "precedence",
		Description: "a + b * c parses as a + (b * c)",
		Templates:   map[string]string{"main": "{{ 2 + 3 * 4 }}"},
		Entry:       "main",
		Want:        "14",
	},
	{
		Name:        "unspaced-minus-is-binary-not-negative-literal",
		Description: "a-b with no surrounding whitespace still parses as subtraction, not a negative-number literal",
		Templates:   map[string]string{"main": "{{ 3-2 }}"},
		Entry:       "main",
		Want:        "1",
	},
	{
		Name:        "longest-match-operators",
		Description: "==, !=, >=, <=, // parse as single operators",
		Templates: map[string]string{
			"main": "{{ 1 == 1 }}-{{ 1 != 2 }}-{{ 2 >= 2 }}-{{ 2 <= 1 }}-{{ 7 // 2 }}",
		},
		Entry: "main",
		Want:  "true-true-true-false-3",
	},
	{
		Name:        "comment-elision",
		Description: "comments emit nothing regardless of contents",
		Templates:   map[string]string{"main": "{# this { is }} ignored #}visible"},
		Entry:       "main",
		Want:        "visible",
	},
	{
		Name:        "whitespace-trim-idempotence",
		Description: "trim markers strip adjacent whitespace on both sides of a tag",
		Templates:   map[string]string{"main": "X {%- if true -%} Y {%- endif -%} Z"},
		Entry:       "main",
		Want:        "XYZ",
	},
	{
		Name:        "for-ordering",
		Description: "a for loop visits a list in source order",
		Templates:   map[string]string{"main": "{% for x in xs %}{{ x }}{% endfor %}"},
		Entry:       "main",
		Vars: map[string]value.Value{
			"xs": value.List([]value.Value{value.IntNumber(1), value.IntNumber(2), value.IntNumber(3)}),
		},
		Want: "123",
	},
	{
		Name:        "indexed-for",
		Description: "the two-identifier for form binds index and value together",
		Templates:   map[string]string{"main": "{% for i, x in xs %}{{ i }}:{{ x }},{% endfor %}"},
		Entry:       "main",
		Vars: map[string]value.Value{
			"xs": value.List([]value.Value{value.String("a"), value.String("b")}),
		},
		Want: "0:a,1:b,",
	},
	{
		Name:        "elif-desugaring",
		Description: "an elif chain picks the first true branch and falls back to else",
		Templates: map[string]string{
			"main": "{% if a %}a{% elif b %}b{% else %}c{% endif %}",
		},
		Entry: "main",
		Vars: map[string]value.Value{
			"a": value.Bool(false),
			"b": value.Bool(true),
		},
		Want: "b",
	},
	{
		Name:        "filter-rewrite",
		Description: "x | f(y) renders identically to f(x, y)",
		Templates: map[string]string{
			"main": "{{ 3 | difference(1) }}-{{ difference(3, 1) }}",
		},
		Entry: "main",
		Want:  "2-2",
	},
	{
		Name:        "missing-lookup-softness",
		Description: "an unbound variable renders as Null, never a failure",
		Templates:   map[string]string{"main": "[{{ nope }}]"},
		Entry:       "main",
		Want:        "[]",
	},
	{
		Name:        "scenario-hello",
		Description: "a host-supplied variable interpolates into plain text",
		Templates:   map[string]string{"main": "Hello, {{ name }}!"},
		Entry:       "main",
		Vars:        map[string]value.Value{"name": value.String("world")},
		Want:        "Hello, world!",
	},
	{
		Name:        "scenario-for",
		Description: "a for loop over a host-supplied list renders each item",
		Templates:   map[string]string{"main": "{% for x in xs %}[{{ x }}]{% endfor %}"},
		Entry:       "main",
		Vars: map[string]value.Value{
			"xs": value.List([]value.Value{value.IntNumber(1), value.IntNumber(2), value.IntNumber(3)}),
		},
		Want: "[1][2][3]",
	},
	{
		Name:        "scenario-if-elif-else",
		Description: "an if/elif/else chain picks the branch matching the comparison",
		Templates: map[string]string{
			"main": "{% if n > 0 %}pos{% elif n == 0 %}zero{% else %}neg{% endif %}",
		},
		Entry: "main",
		Vars:  map[string]value.Value{"n": value.IntNumber(-5)},
		Want:  "neg",
	},
	{
		Name:        "scenario-lambda",
		Description: "a lambda parses and is directly callable at the point it's built",
		Templates:   map[string]string{"main": "{{ ((a, b) -> a + b)(2, 3) }}"},
		Entry:       "main",
		Want:        "5",
	},
	{
		Name:        "scenario-concat",
		Description: "the ~ operator desugars to string concatenation across mixed kinds",
		Templates:   map[string]string{"main": `{{ "x" ~ 1 ~ "y" }}`},
		Entry:       "main",
		Want:        "x1y",
	},
	{
		Name:        "scenario-comment",
		Description: "a leading comment produces no output of its own",
		Templates:   map[string]string{"main": "{# hidden #}visible"},
		Entry:       "main",
		Want:        "visible",
	},
	{
		Name:        "set-binds-current-frame",
		Description: "set binds into the current scope frame, visible to later statements",
		Templates:   map[string]string{"main": "{% set x = 1 + 1 %}{{ x }}"},
		Entry:       "main",
		Want:        "2",
	},
	{
		Name: "macro-call-and-caller",
		Description: "a call block desugars to a scope binding `caller` to the block " +
			"body, which a macro can receive explicitly and invoke",
		Templates: map[string]string{
			"main": "{% macro twice(f) %}{{ f() }}{{ f() }}{% endmacro %}{% call twice(caller) %}X{% endcall %}",
		},
		Entry: "main",
		Want:  "XX",
	},
	{
		Name:        "extends-block-override",
		Description: "a derived template's block overrides the parent's",
		Templates: map[string]string{
			"base":  "<{% block title %}default{% endblock %}>",
			"child": `{% extends "base" %}{% block title %}mine{% endblock %}`,
		},
		Entry: "child",
		Want:  "<mine>",
	},
	{
		Name:        "extends-block-fallthrough",
		Description: "a derived template that does not override a block inherits the parent's",
		Templates: map[string]string{
			"base":  "<{% block title %}default{% endblock %}>",
			"child": `{% extends "base" %}`,
		},
		Entry: "child",
		Want:  "<default>",
	},
	{
		Name:        "include-cycle-is-an-error",
		Description: "a self-including template is a parse error, not unbounded recursion",
		Templates: map[string]string{
			"main": `{% include "main" %}`,
		},
		Entry:   "main",
		WantErr: true,
	},
	{
		Name:        "endblock-name-mismatch-is-an-error",
		Description: "a mismatched endblock/endmacro name is rejected, not silently accepted",
		Templates: map[string]string{
			"main": "{% block a %}x{% endblock b %}",
		},
		Entry:   "main",
		WantErr: true,
	},
}

package eval

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/motching/ginger-go/value"
	"github.com/motching/ginger-go/value/html"
)

// seedBuiltins binds the names the expression grammar's operators
// desugar to into the root scope frame, plus `raw`, the one built-in
// templates can call directly to mark a string as pre-escaped. Without
// these, every operator expression would silently evaluate to Null the
// moment a call's "extract function projection" step found nothing
// bound — the desugaring only works if something provides them, so this
// is treated as part of the ambient evaluator, not a host concern.
func seedBuiltins(sc *scope) {
	sc.set("raw", value.Func(builtinRaw))

	sc.set("any", value.Func(builtinAny))
	sc.set("all", value.Func(builtinAll))

	sc.set("equals", value.Func(builtinEquals))
	sc.set("nequals", value.Func(negate(builtinEquals)))
	sc.set("greater", value.Func(builtinCompare(func(c int) bool { return c > 0 })))
	sc.set("greaterEquals", value.Func(builtinCompare(func(c int) bool { return c >= 0 })))
	sc.set("less", value.Func(builtinCompare(func(c int) bool { return c < 0 })))
	sc.set("lessEquals", value.Func(builtinCompare(func(c int) bool { return c <= 0 })))

	sc.set("sum", value.Func(builtinArith(decimal.Decimal.Add)))
	sc.set("difference", value.Func(builtinArith(decimal.Decimal.Sub)))
	sc.set("concat", value.Func(builtinConcat))

	sc.set("product", value.Func(builtinArith(decimal.Decimal.Mul)))
	sc.set("int_ratio", value.Func(builtinArith(intRatio)))
	sc.set("ratio", value.Func(builtinArith(ratio)))
	sc.set("modulo", value.Func(builtinArith(decimal.Decimal.Mod)))
}

func intRatio(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b).Truncate(0)
}

func ratio(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.DivRound(b, 16)
}

// builtinRaw re-wraps its first positional argument as unescaped HTML.
func builtinRaw(args []value.Argument) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), nil
	}
	return value.FromHTML(html.UnsafeRaw(value.ToText(args[0].Value))), nil
}

func builtinAny(args []value.Argument) (value.Value, error) {
	for _, a := range args {
		if value.ToBoolean(a.Value) {
			return value.Bool(true), nil
		}
	}
	return value.Bool(false), nil
}

func builtinAll(args []value.Argument) (value.Value, error) {
	for _, a := range args {
		if !value.ToBoolean(a.Value) {
			return value.Bool(false), nil
		}
	}
	return value.Bool(true), nil
}

func builtinEquals(args []value.Argument) (value.Value, error) {
	if len(args) != 2 {
		return value.Bool(false), nil
	}
	return value.Bool(valuesEqual(args[0].Value, args[1].Value)), nil
}

func negate(f value.Function) value.Function {
	return func(args []value.Argument) (value.Value, error) {
		v, err := f(args)
		if err != nil {
			return nil, err
		}
		return value.Bool(!value.ToBoolean(v)), nil
	}
}

func valuesEqual(a, b value.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case value.KindNull:
		return true
	case value.KindBool:
		return value.ToBoolean(a) == value.ToBoolean(b)
	case value.KindNumber:
		da, _ := value.Decimal(a)
		db, _ := value.Decimal(b)
		return da.Cmp(db) == 0
	case value.KindString, value.KindHTML:
		return value.ToText(a) == value.ToText(b)
	case value.KindList:
		la, lb := value.ToList(a), value.ToList(b)
		if len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !valuesEqual(la[i], lb[i]) {
				return false
			}
		}
		return true
	case value.KindObject:
		ka := value.IterKeys(a)
		if len(ka) != len(value.IterKeys(b)) {
			return false
		}
		la := value.ToList(a)
		for i := range ka {
			vb, ok := value.LookupLoose(ka[i], b)
			if !ok || !valuesEqual(la[i], vb) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// builtinCompare compares two Numbers by their decimal ordering, falling
// back to lexicographic text comparison for any other kind pairing.
func builtinCompare(pred func(c int) bool) value.Function {
	return func(args []value.Argument) (value.Value, error) {
		if len(args) != 2 {
			return value.Bool(false), nil
		}
		a, aok := value.Decimal(args[0].Value)
		b, bok := value.Decimal(args[1].Value)
		if aok && bok {
			return value.Bool(pred(a.Cmp(b))), nil
		}
		sa, sb := value.ToText(args[0].Value), value.ToText(args[1].Value)
		return value.Bool(pred(strings.Compare(sa, sb))), nil
	}
}

// builtinArith folds op over the arguments' decimals left to right,
// returning Null the moment a non-Number argument appears — consistent
// with the evaluator's soft-fail discipline.
func builtinArith(op func(a, b decimal.Decimal) decimal.Decimal) value.Function {
	return func(args []value.Argument) (value.Value, error) {
		if len(args) == 0 {
			return value.Null(), nil
		}
		acc, ok := value.Decimal(args[0].Value)
		if !ok {
			return value.Null(), nil
		}
		for _, a := range args[1:] {
			n, ok := value.Decimal(a.Value)
			if !ok {
				return value.Null(), nil
			}
			acc = op(acc, n)
		}
		return value.DecimalNumber(acc), nil
	}
}

func builtinConcat(args []value.Argument) (value.Value, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(value.ToText(a.Value))
	}
	return value.String(sb.String()), nil
}

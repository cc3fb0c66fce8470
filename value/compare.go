package value

import (
	"regexp"
	"strings"

	"github.com/postgraph/gtype/errs"
)

// Lt, Le, Gt, Ge, Eq, Ne implement the six relational operators over the
// total order established by Compare (spec §4.1).
func Lt(a, b Value) (bool, error) { return cmpBool(a, b, func(c int) bool { return c < 0 }) }
func Le(a, b Value) (bool, error) { return cmpBool(a, b, func(c int) bool { return c <= 0 }) }
func Gt(a, b Value) (bool, error) { return cmpBool(a, b, func(c int) bool { return c > 0 }) }
func Ge(a, b Value) (bool, error) { return cmpBool(a, b, func(c int) bool { return c >= 0 }) }
func Eq(a, b Value) (bool, error) { return cmpBool(a, b, func(c int) bool { return c == 0 }) }
func Ne(a, b Value) (bool, error) { return cmpBool(a, b, func(c int) bool { return c != 0 }) }

func cmpBool(a, b Value, pred func(int) bool) (bool, error) {
	c, err := Compare(a, b)
	if err != nil {
		return false, err
	}

	return pred(c), nil
}

// StartsWith, EndsWith, and ContainsText implement the STRING match family
// (spec §4.2's "STARTS WITH" / "ENDS WITH" / "CONTAINS" operators).
func StartsWith(a, prefix Value) (bool, error) {
	as, aok := a.AsString()
	ps, pok := prefix.AsString()

	if !aok || !pok {
		return false, &errs.TypeError{Op: "STARTS WITH", Left: a.Kind().String(), Right: prefix.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	return strings.HasPrefix(as, ps), nil
}

func EndsWith(a, suffix Value) (bool, error) {
	as, aok := a.AsString()
	ss, sok := suffix.AsString()

	if !aok || !sok {
		return false, &errs.TypeError{Op: "ENDS WITH", Left: a.Kind().String(), Right: suffix.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	return strings.HasSuffix(as, ss), nil
}

func ContainsText(a, sub Value) (bool, error) {
	as, aok := a.AsString()
	ss, sok := sub.AsString()

	if !aok || !sok {
		return false, &errs.TypeError{Op: "CONTAINS", Left: a.Kind().String(), Right: sub.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	return strings.Contains(as, ss), nil
}

// RegexMatch implements '=~' (case-sensitive) and, via caseInsensitive,
// '=~*'. regexp is stdlib rather than an example-pack dependency: none of
// the retrieved repos wire a third-party regex engine, and Go's RE2-based
// regexp is the idiomatic default for linear-time, ReDoS-safe matching
// (recorded in DESIGN.md).
func RegexMatch(a, pattern Value, caseInsensitive bool) (bool, error) {
	as, aok := a.AsString()
	ps, pok := pattern.AsString()

	if !aok || !pok {
		return false, &errs.TypeError{Op: "=~", Left: a.Kind().String(), Right: pattern.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	expr := ps
	if caseInsensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return false, &errs.ParseError{Err: errs.ErrInvalidRegex, Excerpt: ps}
	}

	return re.MatchString(as), nil
}

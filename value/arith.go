package value

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
	"github.com/postgraph/gtype/errs"
)

var apdCtx = apd.BaseContext.WithPrecision(34)

func typeErr(op string, a, b Value, cause error) error {
	return &errs.TypeError{Op: op, Left: a.Kind().String(), Right: b.Kind().String(), Err: cause}
}

// promote implements spec §4.2's "promote left→right as Numeric > Float >
// Integer": the result family is the widest of the two operand families.
func promote(a, b Kind) Kind {
	rank := func(k Kind) int {
		switch k {
		case KindNumeric:
			return 2
		case KindFloat:
			return 1
		case KindInteger:
			return 0
		default:
			return -1
		}
	}

	if rank(a) >= rank(b) {
		return a
	}

	return b
}

// decimalResult narrows an apd.Decimal result back to the promoted operand
// kind. Integer/Float are fixed-width: a result that no longer fits is an
// overflow/underflow error (spec §4.2, "Integer overflow → error"), not a
// silent widening to Numeric.
func decimalResult(d *apd.Decimal, kind Kind) (Value, error) {
	switch kind {
	case KindInteger:
		i, err := d.Int64()
		if err != nil {
			return Value{}, overflowErr("integer", d)
		}

		return Integer(i), nil
	case KindFloat:
		f, err := d.Float64()
		if err != nil {
			return Value{}, overflowErr("float", d)
		}

		if err := checkFinite(f); err != nil {
			return Value{}, err
		}

		return Float(f), nil
	default:
		return Numeric(d), nil
	}
}

// overflowErr picks the overflow or underflow sentinel by the sign of the
// out-of-range decimal: positive magnitudes overflow, negative ones
// underflow.
func overflowErr(what string, d *apd.Decimal) error {
	sentinel := errs.ErrIntegerOverflow
	if d.Negative {
		sentinel = errs.ErrIntegerUnderflow
	}

	return &errs.DomainError{Detail: what + " overflow", Err: sentinel}
}

// Add implements the '+' operator (spec §4.2): numeric-family addition with
// promotion, string concatenation (auto-stringifying numbers), element-wise
// Vector addition, Interval added to date/time/timestamp(tz)/interval, and
// Integer added to Inet.
func Add(a, b Value) (Value, error) {
	switch {
	case a.isNumericFamily() && b.isNumericFamily():
		da, _ := a.AsDecimal()
		db, _ := b.AsDecimal()

		var r apd.Decimal
		if _, err := apdCtx.Add(&r, da, db); err != nil {
			return Value{}, &errs.DomainError{Detail: "add overflow", Err: err}
		}

		return decimalResult(&r, promote(a.Kind(), b.Kind()))

	case a.Kind() == KindString || b.Kind() == KindString:
		as, aok := a.renderAsText()
		bs, bok := b.renderAsText()

		if !aok || !bok {
			return Value{}, typeErr("+", a, b, errs.ErrTypeMismatch)
		}

		return String(as + bs), nil

	case a.Kind() == KindVector && b.Kind() == KindVector:
		return vectorElementwise(a, b, func(x, y float64) float64 { return x + y })

	case a.Kind() == KindInterval && isTemporal(b.Kind()):
		return addIntervalToTemporal(b, a)
	case isTemporal(a.Kind()) && b.Kind() == KindInterval:
		return addIntervalToTemporal(a, b)
	case a.Kind() == KindInterval && b.Kind() == KindInterval:
		return addIntervals(a, b)

	case a.Kind() == KindInet && b.Kind() == KindInteger:
		return addIntegerToInet(a, b)
	case a.Kind() == KindInteger && b.Kind() == KindInet:
		return addIntegerToInet(b, a)

	default:
		return Value{}, typeErr("+", a, b, errs.ErrTypeMismatch)
	}
}

func (v Value) renderAsText() (string, bool) {
	switch v.Kind() {
	case KindString:
		s, _ := v.AsString()
		return s, true
	case KindInteger:
		i, _ := v.AsInt64()
		return fmt.Sprintf("%d", i), true
	case KindFloat:
		f, _ := v.AsFloat64()
		return fmt.Sprintf("%g", f), true
	case KindNumeric:
		d, _ := v.AsNumeric()
		return d.String(), true
	default:
		return "", false
	}
}

// Sub implements '-': numeric-family subtraction with promotion,
// interval-interval subtraction, and temporal-minus-interval.
func Sub(a, b Value) (Value, error) {
	switch {
	case a.isNumericFamily() && b.isNumericFamily():
		da, _ := a.AsDecimal()
		db, _ := b.AsDecimal()

		var r apd.Decimal
		if _, err := apdCtx.Sub(&r, da, db); err != nil {
			return Value{}, &errs.DomainError{Detail: "sub overflow", Err: err}
		}

		return decimalResult(&r, promote(a.Kind(), b.Kind()))

	case a.Kind() == KindVector && b.Kind() == KindVector:
		return vectorElementwise(a, b, func(x, y float64) float64 { return x - y })

	case isTemporal(a.Kind()) && b.Kind() == KindInterval:
		neg, err := negateInterval(b)
		if err != nil {
			return Value{}, err
		}

		return addIntervalToTemporal(a, neg)

	case a.Kind() == KindInterval && b.Kind() == KindInterval:
		neg, err := negateInterval(b)
		if err != nil {
			return Value{}, err
		}

		return addIntervals(a, neg)

	default:
		return Value{}, typeErr("-", a, b, errs.ErrTypeMismatch)
	}
}

// Mul implements '*': numeric-family multiplication with promotion, and
// element-wise Vector multiplication.
func Mul(a, b Value) (Value, error) {
	switch {
	case a.isNumericFamily() && b.isNumericFamily():
		da, _ := a.AsDecimal()
		db, _ := b.AsDecimal()

		var r apd.Decimal
		if _, err := apdCtx.Mul(&r, da, db); err != nil {
			return Value{}, &errs.DomainError{Detail: "mul overflow", Err: err}
		}

		return decimalResult(&r, promote(a.Kind(), b.Kind()))

	case a.Kind() == KindVector && b.Kind() == KindVector:
		return vectorElementwise(a, b, func(x, y float64) float64 { return x * y })

	default:
		return Value{}, typeErr("*", a, b, errs.ErrTypeMismatch)
	}
}

// Div implements '/': numeric-family division with promotion. Division by
// zero is a DomainError (spec §8 scenario 3).
func Div(a, b Value) (Value, error) {
	if !a.isNumericFamily() || !b.isNumericFamily() {
		return Value{}, typeErr("/", a, b, errs.ErrTypeMismatch)
	}

	da, _ := a.AsDecimal()
	db, _ := b.AsDecimal()

	if db.IsZero() {
		return Value{}, &errs.DomainError{Detail: "division by zero", Err: errs.ErrDivideByZero}
	}

	var r apd.Decimal
	if _, err := apdCtx.Quo(&r, da, db); err != nil {
		return Value{}, &errs.DomainError{Detail: "division overflow", Err: err}
	}

	return decimalResult(&r, promote(a.Kind(), b.Kind()))
}

// Mod implements '%'.
func Mod(a, b Value) (Value, error) {
	if !a.isNumericFamily() || !b.isNumericFamily() {
		return Value{}, typeErr("%", a, b, errs.ErrTypeMismatch)
	}

	da, _ := a.AsDecimal()
	db, _ := b.AsDecimal()

	if db.IsZero() {
		return Value{}, &errs.DomainError{Detail: "modulo by zero", Err: errs.ErrDivideByZero}
	}

	var r apd.Decimal
	if _, err := apdCtx.Rem(&r, da, db); err != nil {
		return Value{}, &errs.DomainError{Detail: "modulo error", Err: err}
	}

	return decimalResult(&r, promote(a.Kind(), b.Kind()))
}

// Pow implements '^'.
func Pow(a, b Value) (Value, error) {
	if !a.isNumericFamily() || !b.isNumericFamily() {
		return Value{}, typeErr("^", a, b, errs.ErrTypeMismatch)
	}

	da, _ := a.AsDecimal()
	db, _ := b.AsDecimal()

	var r apd.Decimal
	if _, err := apdCtx.Pow(&r, da, db); err != nil {
		return Value{}, &errs.DomainError{Detail: "power error", Err: err}
	}

	return decimalResult(&r, promote(a.Kind(), b.Kind()))
}

// Neg implements unary negation over the numeric family.
func Neg(a Value) (Value, error) {
	if !a.isNumericFamily() {
		return Value{}, &errs.TypeError{Op: "neg", Left: a.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	d, _ := a.AsDecimal()

	var r apd.Decimal
	r.Neg(d)

	return decimalResult(&r, a.Kind())
}

func checkFinite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &errs.DomainError{Detail: "non-finite result", Err: errs.ErrNonFiniteValue}
	}

	return nil
}

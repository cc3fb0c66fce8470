// Package errs collects the sentinel errors raised across gtype's container
// codec, scalar algebra, composite entities, parser, and VLE path engine.
//
// Call sites wrap a sentinel with detail using fmt.Errorf("%w: ...", errs.ErrX),
// so callers can still errors.Is against the sentinel while getting a
// human-readable message. The seven categories from the error-handling design
// (ParseError, TypeError, LimitExceeded, DomainError, SchemaError,
// NotFoundError, InternalError) wrap these sentinels; see category.go.
package errs

import "errors"

// Container codec (C2).
var (
	ErrInvalidHeader        = errors.New("gtype: invalid container header")
	ErrInvalidEntry         = errors.New("gtype: invalid container entry")
	ErrInvalidStrideOffset  = errors.New("gtype: stride offset does not match cumulative length")
	ErrStringTooLong        = errors.New("gtype: string exceeds maximum entry length")
	ErrKeyNotSorted         = errors.New("gtype: object keys are not sorted")
	ErrKeyNotFound          = errors.New("gtype: key not found")
	ErrIndexOutOfRange      = errors.New("gtype: index out of range")
	ErrNotContainer         = errors.New("gtype: value is not a container")
	ErrNotArray             = errors.New("gtype: value is not an array")
	ErrNotObject            = errors.New("gtype: value is not an object")
	ErrNotScalar            = errors.New("gtype: value is not a raw scalar")
	ErrUnterminatedBuild    = errors.New("gtype: builder has unclosed containers")
	ErrBuilderStackEmpty    = errors.New("gtype: builder stack is empty")
	ErrBuilderStackMismatch = errors.New("gtype: builder END does not match current frame kind")
)

// Scalar algebra (C1).
var (
	ErrTypeMismatch       = errors.New("gtype: operator type mismatch")
	ErrDivideByZero       = errors.New("gtype: division by zero")
	ErrIntegerOverflow    = errors.New("gtype: integer overflow")
	ErrIntegerUnderflow   = errors.New("gtype: integer underflow")
	ErrNonFiniteValue     = errors.New("gtype: non-finite numeric value")
	ErrDimensionMismatch  = errors.New("gtype: vector dimension mismatch")
	ErrVectorTooWide      = errors.New("gtype: vector dimension exceeds limit")
	ErrNegativeDimension  = errors.New("gtype: negative or zero vector dimension")
	ErrMalformedRangeFlag = errors.New("gtype: malformed range bound flags")
	ErrMalformedNetwork   = errors.New("gtype: malformed network value")
	ErrMalformedMAC       = errors.New("gtype: malformed MAC address")
	ErrFamilyMismatch     = errors.New("gtype: inet/cidr address family mismatch")
	ErrInvalidRegex       = errors.New("gtype: invalid regular expression")
	ErrCoercionFailed     = errors.New("gtype: coercion failed")
	ErrUnsupportedCodec   = errors.New("gtype: unsupported bytea codec")
)

// Composite entities (C3).
var (
	ErrBadAlternation   = errors.New("gtype: composite entity violates vertex/edge alternation")
	ErrPropertiesNotObj = errors.New("gtype: properties value is not an object")
	ErrEmptyPath        = errors.New("gtype: path has no elements")
)

// Parser / lexer (C4).
var (
	ErrUnexpectedToken  = errors.New("gtype: unexpected token")
	ErrUnexpectedEOF    = errors.New("gtype: unexpected end of input")
	ErrUnknownAnnot     = errors.New("gtype: unknown type annotation")
	ErrBadEscape        = errors.New("gtype: invalid string escape")
	ErrRecursionTooDeep = errors.New("gtype: recursion depth limit exceeded")
)

// VLE path engine (C5).
var (
	ErrGraphNotFound  = errors.New("gtype: graph not found")
	ErrLabelNotFound  = errors.New("gtype: label not found")
	ErrInvariantBreach = errors.New("gtype: internal invariant breach")
)

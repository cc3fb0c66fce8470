package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
	"github.com/postgraph/gtype/internal/options"
	"github.com/postgraph/gtype/lexer"
	"github.com/postgraph/gtype/value"
)

// defaultMaxDepth guards the recursive-descent parser against unbounded
// nesting (spec §5 "Recursive parser/iterator depth guarded by an explicit
// stack-depth check") unless overridden via WithMaxDepth.
const defaultMaxDepth = 512

// Parser reads one gtype text-form document into its binary container
// form.
type Parser struct {
	lex      *lexer.Lexer
	tok      lexer.Token
	depth    int
	maxDepth int
}

// New creates a Parser over input, applying any Options. An invalid option
// (WithMaxDepth(n) with n<=0) falls back to defaultMaxDepth rather than
// failing New, since malformed parser configuration is a caller bug, not a
// runtime condition worth threading an error return through every call site
// for.
func New(input string, opts ...Option) *Parser {
	p := &Parser{lex: lexer.New(input), maxDepth: defaultMaxDepth}

	_ = options.Apply(p, opts...)

	return p
}

// Parse is the package-level entry point: parse(text) of spec §4.4.
func Parse(text string, opts ...Option) ([]byte, error) {
	return New(text, opts...).Parse()
}

func (p *Parser) advance() { p.tok = p.lex.NextToken() }

func (p *Parser) errf(state State, err error) error {
	return &errs.ParseError{Err: err, Line: p.tok.Line, Excerpt: p.tok.Val + " (" + state.String() + ")"}
}

// Parse runs PARSE_VALUE at the top level, then expects PARSE_END.
func (p *Parser) Parse() ([]byte, error) {
	p.advance()

	b := container.New()

	blob, err := p.parseValue(b)
	if err != nil {
		return nil, err
	}

	if p.tok.Typ != lexer.TokenEOF {
		return nil, p.errf(ParseEnd, errs.ErrUnexpectedToken)
	}

	return blob, nil
}

// parseValue implements PARSE_VALUE: dispatch on the lookahead token. A
// nested call (b.Depth() > 0 on entry) pushes its result into the
// already-open parent frame and returns a nil blob; the outermost call
// returns the finished document.
func (p *Parser) parseValue(b *container.Builder) ([]byte, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.maxDepth {
		return nil, p.errf(ParseValue, errs.ErrRecursionTooDeep)
	}

	root := p.depth == 1

	switch p.tok.Typ {
	case lexer.TokenLBrace:
		return p.parseObject(b, root)
	case lexer.TokenLBracket:
		return p.parseArray(b, root)
	case lexer.TokenEOF:
		return nil, p.errf(ParseValue, errs.ErrUnexpectedEOF)
	default:
		v, err := p.parseScalar()
		if err != nil {
			return nil, err
		}

		if root {
			// A single bare scalar at the top level parses to a raw_scalar
			// array (spec §4.4).
			return container.BuildRawScalar(v.Entry(), v.Payload())
		}

		return nil, b.PutRaw(v.Entry(), v.Payload())
	}
}

// parseScalar implements PARSE_STRING plus the other scalar productions,
// then the optional `:: IDENT` annotation retype.
func (p *Parser) parseScalar() (value.Value, error) {
	v, err := p.scalarFromToken()
	if err != nil {
		return value.Value{}, err
	}

	p.advance()

	if p.tok.Typ == lexer.TokenAnnotation {
		p.advance()

		if p.tok.Typ != lexer.TokenIdent {
			return value.Value{}, p.errf(ParseValue, errs.ErrUnexpectedToken)
		}

		annot := p.tok.Val

		v, err = applyAnnotation(v, annot)
		if err != nil {
			return value.Value{}, err
		}

		p.advance()
	}

	return v, nil
}

func (p *Parser) scalarFromToken() (value.Value, error) {
	tok := p.tok

	switch tok.Typ {
	case lexer.TokenString:
		s, err := unescapeString(tok.Val)
		if err != nil {
			return value.Value{}, p.errf(ParseString, err)
		}

		return value.String(s), nil
	case lexer.TokenInteger:
		i, err := strconv.ParseInt(tok.Val, 10, 64)
		if err != nil {
			return value.Value{}, p.errf(ParseValue, errs.ErrUnexpectedToken)
		}

		return value.Integer(i), nil
	case lexer.TokenFloat:
		return parseFloatToken(tok.Val)
	case lexer.TokenInet:
		return value.InetFromString(tok.Val)
	case lexer.TokenIdent:
		switch tok.Val {
		case "true":
			return value.Bool(true), nil
		case "false":
			return value.Bool(false), nil
		case "null":
			return value.Null(), nil
		default:
			return value.Value{}, p.errf(ParseValue, errs.ErrUnexpectedToken)
		}
	default:
		return value.Value{}, p.errf(ParseValue, errs.ErrUnexpectedToken)
	}
}

// parseFloatToken handles ordinary floats and the NaN/Inf/-Inf/Infinity
// spellings the lexer passes through as-is (spec §4.4).
func parseFloatToken(s string) (value.Value, error) {
	switch s {
	case "NaN":
		return value.Float(math.NaN()), nil
	case "Inf", "Infinity":
		return value.Float(math.Inf(1)), nil
	case "-Inf", "-Infinity":
		return value.Float(math.Inf(-1)), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return value.Value{}, &errs.ParseError{Err: errs.ErrUnexpectedToken, Excerpt: s}
	}

	return value.Float(f), nil
}

// parseArray implements PARSE_ARRAY_START / PARSE_ARRAY_NEXT.
func (p *Parser) parseArray(b *container.Builder, root bool) ([]byte, error) {
	b.BeginArray()
	p.advance()

	if p.tok.Typ == lexer.TokenRBracket {
		p.advance()
		return closeInto(b, root)
	}

	for {
		if _, err := p.parseValue(b); err != nil {
			return nil, err
		}

		switch p.tok.Typ {
		case lexer.TokenComma:
			p.advance()
			continue
		case lexer.TokenRBracket:
			p.advance()
			return closeInto(b, root)
		default:
			return nil, p.errf(ParseArrayNext, errs.ErrUnexpectedToken)
		}
	}
}

// parseObject implements PARSE_OBJECT_START / PARSE_OBJECT_LABEL /
// PARSE_OBJECT_NEXT / PARSE_OBJECT_COMMA.
func (p *Parser) parseObject(b *container.Builder, root bool) ([]byte, error) {
	b.BeginObject()
	p.advance()

	if p.tok.Typ == lexer.TokenRBrace {
		p.advance()
		return closeInto(b, root)
	}

	for {
		if p.tok.Typ != lexer.TokenString && p.tok.Typ != lexer.TokenIdent {
			return nil, p.errf(ParseObjectLabel, errs.ErrUnexpectedToken)
		}

		key := p.tok.Val
		if p.tok.Typ == lexer.TokenString {
			unescaped, err := unescapeString(key)
			if err != nil {
				return nil, p.errf(ParseObjectLabel, err)
			}

			key = unescaped
		}

		p.advance()

		if p.tok.Typ != lexer.TokenColon {
			return nil, p.errf(ParseObjectLabel, errs.ErrUnexpectedToken)
		}

		p.advance()

		if err := b.Key(key); err != nil {
			return nil, err
		}

		if _, err := p.parseValue(b); err != nil {
			return nil, err
		}

		switch p.tok.Typ {
		case lexer.TokenComma:
			p.advance()
			continue
		case lexer.TokenRBrace:
			p.advance()
			return closeInto(b, root)
		default:
			return nil, p.errf(ParseObjectComma, errs.ErrUnexpectedToken)
		}
	}
}

// closeInto ends the current frame. At the root it returns the finished
// document blob directly; nested, it threads the blob into the
// already-open parent frame and returns nil.
func closeInto(b *container.Builder, root bool) ([]byte, error) {
	blob, err := b.End()
	if err != nil {
		return nil, err
	}

	if root {
		return blob, nil
	}

	return nil, b.PutContainer(blob)
}

func unescapeString(raw string) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", errs.ErrBadEscape
	}

	inner := raw[1 : len(raw)-1]

	var sb strings.Builder

	for i := 0; i < len(inner); i++ {
		c := inner[i]

		if c != '\\' {
			sb.WriteByte(c)
			continue
		}

		i++
		if i >= len(inner) {
			return "", errs.ErrBadEscape
		}

		switch inner[i] {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case '/':
			sb.WriteByte('/')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			if i+4 >= len(inner) {
				return "", errs.ErrBadEscape
			}

			r, err := strconv.ParseUint(inner[i+1:i+5], 16, 32)
			if err != nil {
				return "", errs.ErrBadEscape
			}

			sb.WriteRune(rune(r))
			i += 4
		default:
			return "", errs.ErrBadEscape
		}
	}

	return sb.String(), nil
}

func applyAnnotation(v value.Value, annot string) (value.Value, error) {
	switch annot {
	case "numeric":
		return value.ToNumeric(v)
	case "integer":
		return value.ToInteger(v)
	case "float":
		return value.ToFloat(v)
	case "timestamp":
		return value.ToTimestamp(v)
	case "timestamptz":
		return value.ToTimestampTZ(v)
	case "date":
		return value.ToDate(v)
	case "time":
		return value.ToTime(v)
	case "timetz":
		return value.ToTimeTZ(v)
	case "interval":
		return value.ToInterval(v)
	case "inet":
		return value.ToInet(v)
	case "cidr":
		return value.ToCidr(v)
	case "macaddr":
		return value.ToMacaddr(v)
	case "macaddr8":
		return value.ToMacaddr8(v)
	default:
		return value.Value{}, &errs.ParseError{Err: errs.ErrUnknownAnnot, Excerpt: annot}
	}
}

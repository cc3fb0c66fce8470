package value

import (
	"sort"
	"strings"

	"github.com/postgraph/gtype/container"
	"github.com/postgraph/gtype/errs"
)

// TSVECTOR payloads are a sorted, deduplicated count-prefixed list of
// length-prefixed lexemes (positions are not modeled — gtype's TSVECTOR
// supports containment/match queries only, not ts_rank's position weights,
// matching the spec's graph-property use case rather than full-text search
// ranking). TSQUERY payloads are the query text itself, parsed lazily at
// match time; gtype stores it as text rather than a pre-parsed query tree
// since queries are typically constructed once and matched many times from
// the lexeme side.

func encodeLexemes(lexemes []string) []byte {
	uniq := map[string]bool{}
	for _, l := range lexemes {
		uniq[l] = true
	}

	sorted := make([]string, 0, len(uniq))
	for l := range uniq {
		sorted = append(sorted, l)
	}

	sort.Strings(sorted)

	total := 4
	for _, l := range sorted {
		total += 4 + len(l)
	}

	buf := make([]byte, total)
	wireOrder.PutUint32(buf[:4], uint32(len(sorted)))
	off := 4

	for _, l := range sorted {
		wireOrder.PutUint32(buf[off:off+4], uint32(len(l)))
		off += 4
		copy(buf[off:], l)
		off += len(l)
	}

	return buf
}

func decodeLexemes(b []byte) []string {
	if len(b) < 4 {
		return nil
	}

	n := wireOrder.Uint32(b[:4])
	out := make([]string, 0, n)
	off := 4

	for i := uint32(0); i < n; i++ {
		l := wireOrder.Uint32(b[off : off+4])
		off += 4
		out = append(out, string(b[off:off+int(l)]))
		off += int(l)
	}

	return out
}

// TSVector builds a TSVECTOR scalar from its lexemes.
func TSVector(lexemes []string) Value {
	e, p, _ := container.MakeExtended(container.ExtTSVector, encodeLexemes(lexemes))
	return Value{entry: e, payload: p}
}

// AsTSVector returns v's lexemes, if v is a TSVECTOR.
func (v Value) AsTSVector() ([]string, bool) {
	s, ok := v.extScalarOf(container.ExtTSVector)
	if !ok {
		return nil, false
	}

	return decodeLexemes(s), true
}

// TSQuery builds a TSQUERY scalar from its query text (a space-free-token
// expression over &, |, !, and <-> FOLLOWEDBY, PostgreSQL-style).
func TSQuery(query string) Value {
	e, p, _ := container.MakeExtended(container.ExtTSQuery, []byte(query))
	return Value{entry: e, payload: p}
}

// AsTSQuery returns v's query text, if v is a TSQUERY.
func (v Value) AsTSQuery() (string, bool) {
	s, ok := v.extScalarOf(container.ExtTSQuery)
	if !ok {
		return "", false
	}

	return string(s), true
}

// tsqNode is a parsed TSQUERY expression node.
type tsqNode struct {
	op    byte // 0 = leaf, '&', '|', '!', '>' (followedby)
	term  string
	left  *tsqNode
	right *tsqNode
}

func parseTSQuery(q string) (*tsqNode, error) {
	toks := tokenizeTSQuery(q)
	p := &tsqParser{toks: toks}

	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.pos != len(p.toks) {
		return nil, &errs.ParseError{Err: errs.ErrUnexpectedToken, Excerpt: q}
	}

	return node, nil
}

func tokenizeTSQuery(q string) []string {
	var toks []string

	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(q)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		switch {
		case c == '&' || c == '|' || c == '!' || c == '(' || c == ')':
			flush()
			toks = append(toks, string(c))
		case c == '<' && i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] == '>':
			flush()
			toks = append(toks, "<->")
			i += 2
		case c == ' ':
			flush()
		default:
			cur.WriteRune(c)
		}
	}

	flush()

	return toks
}

type tsqParser struct {
	toks []string
	pos  int
}

func (p *tsqParser) peek() string {
	if p.pos >= len(p.toks) {
		return ""
	}

	return p.toks[p.pos]
}

func (p *tsqParser) next() string {
	t := p.peek()
	p.pos++

	return t
}

func (p *tsqParser) parseOr() (*tsqNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.peek() == "|" {
		p.next()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = &tsqNode{op: '|', left: left, right: right}
	}

	return left, nil
}

func (p *tsqParser) parseAnd() (*tsqNode, error) {
	left, err := p.parseFollowedBy()
	if err != nil {
		return nil, err
	}

	for p.peek() == "&" {
		p.next()

		right, err := p.parseFollowedBy()
		if err != nil {
			return nil, err
		}

		left = &tsqNode{op: '&', left: left, right: right}
	}

	return left, nil
}

func (p *tsqParser) parseFollowedBy() (*tsqNode, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.peek() == "<->" {
		p.next()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		left = &tsqNode{op: '>', left: left, right: right}
	}

	return left, nil
}

func (p *tsqParser) parseUnary() (*tsqNode, error) {
	if p.peek() == "!" {
		p.next()

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &tsqNode{op: '!', left: operand}, nil
	}

	if p.peek() == "(" {
		p.next()

		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		if p.peek() != ")" {
			return nil, &errs.ParseError{Err: errs.ErrUnexpectedEOF}
		}

		p.next()

		return node, nil
	}

	t := p.next()
	if t == "" {
		return nil, &errs.ParseError{Err: errs.ErrUnexpectedEOF}
	}

	return &tsqNode{term: t}, nil
}

func (n *tsqNode) match(lexemes map[string]bool) bool {
	switch n.op {
	case '&':
		return n.left.match(lexemes) && n.right.match(lexemes)
	case '|':
		return n.left.match(lexemes) || n.right.match(lexemes)
	case '!':
		return !n.left.match(lexemes)
	case '>':
		// FOLLOWEDBY is treated as co-occurrence; gtype's TSVECTOR does not
		// retain lexeme positions, so exact adjacency cannot be verified.
		return n.left.match(lexemes) && n.right.match(lexemes)
	default:
		return lexemes[n.term]
	}
}

// TSMatch implements TSVECTOR '@@' TSQUERY.
func TSMatch(vec, query Value) (bool, error) {
	lexemes, ok := vec.AsTSVector()
	if !ok {
		return false, &errs.TypeError{Op: "@@", Left: vec.Kind().String(), Right: query.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	qtext, ok := query.AsTSQuery()
	if !ok {
		return false, &errs.TypeError{Op: "@@", Left: vec.Kind().String(), Right: query.Kind().String(), Err: errs.ErrTypeMismatch}
	}

	node, err := parseTSQuery(qtext)
	if err != nil {
		return false, err
	}

	set := make(map[string]bool, len(lexemes))
	for _, l := range lexemes {
		set[l] = true
	}

	return node.match(set), nil
}

func init() {
	container.RegisterExtComparator(container.ExtTSVector, compareLexemesPayload)
}

func compareLexemesPayload(a, b []byte) (int, error) {
	la, lb := decodeLexemes(a), decodeLexemes(b)

	return strings.Compare(strings.Join(la, " "), strings.Join(lb, " ")), nil
}

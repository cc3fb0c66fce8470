package parser

import "github.com/postgraph/gtype/internal/options"

// Option configures a Parser, following the functional-options pattern used
// throughout this codebase's builders and encoders.
type Option = options.Option[*Parser]

// WithMaxDepth overrides defaultMaxDepth, the recursion guard on nested
// arrays/objects (spec §5).
func WithMaxDepth(n int) Option {
	return options.NoError(func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	})
}

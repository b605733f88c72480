package plugin

import (
	"regexp"
	"strings"
)

// headClose matches the first closing head tag together with the whitespace
// in front of it.
var headClose = regexp.MustCompile(`(?i)\s*</head>`)

// PageOptions are per-page injection settings.
type PageOptions struct {
	// SkipFavicons leaves this page untouched.
	SkipFavicons bool
}

// Delimiters around the injected markup. A page that already carries a
// delimited block gets that block replaced on the next injection.
const (
	BlockStart = "<!-- faviconbuilder -->"
	BlockEnd   = "<!-- /faviconbuilder -->"
)

// Inject splices the fragments into page right before the first </head>,
// or in place of an existing faviconbuilder block. Pages without a head are
// returned unchanged.
func Inject(page string, fragments []string) string {
	if len(fragments) == 0 {
		return page
	}
	block := BlockStart + strings.Join(fragments, "") + BlockEnd
	if start, end, ok := existingBlock(page); ok {
		return page[:start] + block + page[end:]
	}
	loc := headClose.FindStringIndex(page)
	if loc == nil {
		return page
	}
	return page[:loc[0]] + block + page[loc[0]:]
}

func existingBlock(page string) (start, end int, ok bool) {
	start = strings.Index(page, BlockStart)
	if start < 0 {
		return 0, 0, false
	}
	rest := strings.Index(page[start:], BlockEnd)
	if rest < 0 {
		return 0, 0, false
	}
	return start, start + rest + len(BlockEnd), true
}

// InjectHTML adds the fragments of the last compilation to page. The page is
// returned unchanged before the first Compile or when injection is turned off.
func (p *Plugin) InjectHTML(page string, opts PageOptions) string {
	if !p.cfg.Inject || opts.SkipFavicons {
		return page
	}
	c := p.Compilation()
	if c == nil {
		return page
	}
	return Inject(page, c.Result.HTML)
}

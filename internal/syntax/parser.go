package syntax

import (
	"bufio"

	"github.com/BenSimner/starling-tool/internal/report"
)

// Parser is a recursive-descent parser for a single Starling source file.
// It holds one token of lookahead; every parseX method assumes the parser
// begins centred on the first token of its production and leaves it on the
// first token past it.
type Parser struct {
	lexer *Lexer
	tok   *Token
}

// NewParser creates a parser reading from r.
func NewParser(r *bufio.Reader) *Parser {
	return &Parser{lexer: NewLexer(r)}
}

// ParseFile parses an entire source file into its ScriptItems.
func ParseFile(r *bufio.Reader) ([]ScriptItem, error) {
	p := NewParser(r)
	if err := p.next(); err != nil {
		return nil, err
	}
	return p.parseScriptItems()
}

// -----------------------------------------------------------------------------

func (p *Parser) next() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) got(kind int) bool { return p.tok.Kind == kind }

func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, k := range kinds {
		if p.tok.Kind == k {
			return true
		}
	}
	return false
}

// expect asserts the current token's kind and advances past it.
func (p *Parser) expect(kind int) error {
	if !p.got(kind) {
		return report.Raise(p.tok.Span, "expected %s but got %s", tokenKindName(kind), tokenKindName(p.tok.Kind))
	}
	return p.next()
}

// expectIdent asserts the current token is an identifier, returns its text,
// and advances past it.
func (p *Parser) expectIdent() (string, *report.Span, error) {
	if !p.got(TOK_IDENT) {
		return "", nil, report.Raise(p.tok.Span, "expected identifier but got %s", tokenKindName(p.tok.Kind))
	}
	name, sp := p.tok.Value, p.tok.Span
	return name, sp, p.next()
}

package syntax

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/BenSimner/starling-tool/internal/report"
)

// Lexer tokenizes a Starling source file.
type Lexer struct {
	file    *bufio.Reader
	tokBuff strings.Builder

	line, col           int
	startLine, startCol int
}

// NewLexer creates a lexer reading from r.
func NewLexer(r *bufio.Reader) *Lexer {
	return &Lexer{file: r, line: 1, col: 1}
}

// NextToken returns the next token in the stream. At end of file it returns
// a TOK_EOF token forever after.
func (l *Lexer) NextToken() (*Token, error) {
	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		} else if c == -1 {
			return &Token{Kind: TOK_EOF, Span: report.SpanAt(l.line, l.col)}, nil
		}

		switch c {
		case ' ', '\t', '\r', '\n':
			l.skip()
			continue
		case '/':
			if tok, err := l.lexCommentOrSlash(); tok != nil || err != nil {
				return tok, err
			}
			continue
		case '{':
			if tok, err := l.lexBraceOrViewOpen(); tok != nil || err != nil {
				return tok, err
			}
			continue
		case '|':
			return l.lexPipeOrViewClose()
		case '%':
			return l.lexSymOpen()
		default:
			if isDecimalDigit(c) {
				return l.lexIntLit()
			} else if isIdentStart(c) {
				return l.lexIdentOrKeyword()
			}
			return l.lexPunctOrOper()
		}
	}
}

var symbolPatterns = map[string]int{
	"+":  TOK_PLUS,
	"-":  TOK_MINUS,
	"*":  TOK_STAR,
	"<":  TOK_LT,
	"<=": TOK_LTEQ,
	">":  TOK_GT,
	">=": TOK_GTEQ,
	"==": TOK_EQ,
	"!=": TOK_NEQ,
	"&&": TOK_AND,
	"||": TOK_OR,
	"!":  TOK_NOT,
	"=":  TOK_ASSIGN,
	"++": TOK_INC,
	"--": TOK_DEC,
	"(":  TOK_LPAREN,
	")":  TOK_RPAREN,
	"}":  TOK_RBRACE,
	"[":  TOK_LBRACKET,
	"]":  TOK_RBRACKET,
	";":  TOK_SEMI,
	",":  TOK_COMMA,
	"->": TOK_ARROW,
}

func (l *Lexer) lexPunctOrOper() (*Token, error) {
	l.mark()
	c, err := l.eat()
	if err != nil {
		return nil, err
	}

	kind, ok := symbolPatterns[string(c)]
	if !ok {
		// '&' only occurs as the first half of '&&'.
		if ahead, _ := l.peek(); c == '&' && ahead == '&' {
			l.eat()
			return l.makeToken(TOK_AND), nil
		}
		return nil, report.Raise(l.getSpan(), "unrecognised character %q", string(c))
	}

	for {
		ahead, err := l.peek()
		if err != nil {
			return nil, err
		}
		if ahead == -1 {
			break
		}
		if nextKind, ok := symbolPatterns[l.tokBuff.String()+string(ahead)]; ok {
			l.eat()
			kind = nextKind
		} else {
			break
		}
	}

	return l.makeToken(kind), nil
}

// lexBraceOrViewOpen disambiguates a bare '{' from the view-assertion opener
// '{|'.
func (l *Lexer) lexBraceOrViewOpen() (*Token, error) {
	l.mark()
	l.eat()

	ahead, err := l.peek()
	if err != nil {
		return nil, err
	}

	if ahead == '|' {
		l.eat()
		return l.makeToken(TOK_VBAR_OPEN), nil
	}
	return l.makeToken(TOK_LBRACE), nil
}

// lexPipeOrViewClose lexes the view-assertion closer '|}' and the '||'
// operator. A bare '|' is not otherwise part of the surface grammar.
func (l *Lexer) lexPipeOrViewClose() (*Token, error) {
	l.mark()
	l.eat()

	ahead, err := l.peek()
	if err != nil {
		return nil, err
	}
	if ahead == '|' {
		l.eat()
		return l.makeToken(TOK_OR), nil
	}
	if ahead != '}' {
		return nil, report.Raise(l.getSpan(), "expected '}' to close '|}'")
	}
	l.eat()
	return l.makeToken(TOK_VBAR_CLOSE), nil
}

// lexSymOpen lexes the symbol opener '%{'. The matching identifier and '}'
// are consumed by the parser so the symbol's name can be read as an
// ordinary identifier token.
func (l *Lexer) lexSymOpen() (*Token, error) {
	l.mark()
	l.eat()

	ahead, err := l.peek()
	if err != nil {
		return nil, err
	}
	if ahead != '{' {
		return nil, report.Raise(l.getSpan(), "expected '{' after '%%'")
	}
	l.eat()
	return l.makeToken(TOK_SYM_OPEN), nil
}

func (l *Lexer) lexCommentOrSlash() (*Token, error) {
	l.mark()
	l.eat()

	ahead, err := l.peek()
	if err != nil {
		return nil, err
	}

	switch ahead {
	case '/':
		for {
			c, err := l.peek()
			if err != nil {
				return nil, err
			}
			if c == -1 || c == '\n' {
				break
			}
			l.skip()
		}
		l.tokBuff.Reset()
		return nil, nil
	case '*':
		l.skip()
		depth := 1
		for depth > 0 {
			c, err := l.skip()
			if err != nil {
				return nil, err
			}
			if c == -1 {
				return nil, report.Raise(l.getSpan(), "unterminated comment")
			}
			if c == '/' {
				if ahead, _ := l.peek(); ahead == '*' {
					l.skip()
					depth++
				}
			} else if c == '*' {
				if ahead, _ := l.peek(); ahead == '/' {
					l.skip()
					depth--
				}
			}
		}
		l.tokBuff.Reset()
		return nil, nil
	default:
		return l.makeToken(TOK_SLASH), nil
	}
}

func (l *Lexer) lexIdentOrKeyword() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}
		if !isIdentStart(c) && !isDecimalDigit(c) {
			break
		}
		l.eat()
	}

	value := l.tokBuff.String()
	if kind, ok := keywordPatterns[value]; ok {
		return l.makeToken(kind), nil
	}
	return l.makeToken(TOK_IDENT), nil
}

func (l *Lexer) lexIntLit() (*Token, error) {
	l.mark()
	l.eat()

	for {
		c, err := l.peek()
		if err != nil {
			return nil, err
		}
		if !isDecimalDigit(c) {
			break
		}
		l.eat()
	}

	return l.makeToken(TOK_INTLIT), nil
}

// -----------------------------------------------------------------------------

func (l *Lexer) mark() {
	l.startLine, l.startCol = l.line, l.col
}

func (l *Lexer) makeToken(kind int) *Token {
	value := l.tokBuff.String()
	l.tokBuff.Reset()
	return &Token{Kind: kind, Value: value, Span: l.getSpan()}
}

func (l *Lexer) getSpan() *report.Span {
	return &report.Span{StartLine: l.startLine, StartCol: l.startCol, EndLine: l.line, EndCol: l.col}
}

func (l *Lexer) eat() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}
		return 0, report.Raise(l.getSpan(), "error reading source: %s", err.Error())
	}
	l.updatePos(c)
	l.tokBuff.WriteRune(c)
	return c, nil
}

func (l *Lexer) skip() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}
		return 0, report.Raise(l.getSpan(), "error reading source: %s", err.Error())
	}
	l.updatePos(c)
	return c, nil
}

func (l *Lexer) peek() (rune, error) {
	c, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, nil
		}
		return 0, report.Raise(l.getSpan(), "error reading source: %s", err.Error())
	}
	if err := l.file.UnreadRune(); err != nil {
		return 0, report.Raise(l.getSpan(), "error reading source: %s", err.Error())
	}
	return c, nil
}

func (l *Lexer) updatePos(c rune) {
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func isDecimalDigit(c rune) bool { return c >= '0' && c <= '9' }

func isIdentStart(c rune) bool { return c == '_' || unicode.IsLetter(c) }

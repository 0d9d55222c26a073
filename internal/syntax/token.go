package syntax

import "github.com/BenSimner/starling-tool/internal/report"

// Token is a single lexical token together with the span of source text it
// was read from.
type Token struct {
	Kind  int
	Value string
	Span  *report.Span
}

// Enumeration of token kinds.
const (
	TOK_EOF = iota

	TOK_IDENT
	TOK_INTLIT

	// reserved words
	TOK_SHARED
	TOK_THREAD
	TOK_VIEW
	TOK_CONSTRAINT
	TOK_METHOD
	TOK_ITER
	TOK_IF
	TOK_THEN
	TOK_ELSE
	TOK_DO
	TOK_WHILE
	TOK_EMP
	TOK_TRUE
	TOK_FALSE
	TOK_INT
	TOK_BOOL
	TOK_SEARCH
	TOK_CAS

	// operators
	TOK_PLUS
	TOK_MINUS
	TOK_STAR
	TOK_SLASH
	TOK_LT
	TOK_LTEQ
	TOK_GT
	TOK_GTEQ
	TOK_EQ
	TOK_NEQ
	TOK_AND
	TOK_OR
	TOK_NOT
	TOK_ASSIGN
	TOK_INC
	TOK_DEC

	// punctuation
	TOK_LBRACE
	TOK_RBRACE
	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_SEMI
	TOK_COMMA
	TOK_ARROW

	// view-assertion and symbol brackets
	TOK_VBAR_OPEN  // {|
	TOK_VBAR_CLOSE // |}
	TOK_SYM_OPEN   // %{
)

var keywordPatterns = map[string]int{
	"shared":     TOK_SHARED,
	"thread":     TOK_THREAD,
	"view":       TOK_VIEW,
	"constraint": TOK_CONSTRAINT,
	"method":     TOK_METHOD,
	"iter":       TOK_ITER,
	"if":         TOK_IF,
	"then":       TOK_THEN,
	"else":       TOK_ELSE,
	"do":         TOK_DO,
	"while":      TOK_WHILE,
	"emp":        TOK_EMP,
	"true":       TOK_TRUE,
	"false":      TOK_FALSE,
	"int":        TOK_INT,
	"bool":       TOK_BOOL,
	"search":     TOK_SEARCH,
	"CAS":        TOK_CAS,
}

func tokenKindName(kind int) string {
	switch kind {
	case TOK_EOF:
		return "end of file"
	case TOK_IDENT:
		return "identifier"
	case TOK_INTLIT:
		return "integer literal"
	case TOK_VBAR_OPEN:
		return "'{|'"
	case TOK_VBAR_CLOSE:
		return "'|}'"
	case TOK_SYM_OPEN:
		return "'%{'"
	default:
		for s, k := range keywordPatterns {
			if k == kind {
				return "'" + s + "'"
			}
		}
		for s, k := range symbolPatterns {
			if k == kind {
				return "'" + s + "'"
			}
		}
		return "token"
	}
}

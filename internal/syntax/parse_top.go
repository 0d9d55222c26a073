package syntax

import "github.com/BenSimner/starling-tool/internal/report"

// parseScriptItems parses the full top-level item sequence, stopping at EOF.
func (p *Parser) parseScriptItems() ([]ScriptItem, error) {
	var items []ScriptItem
	for !p.got(TOK_EOF) {
		item, err := p.parseScriptItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// script_item = global_decl | local_decl | view_proto_decl | constraint_decl | method_decl
func (p *Parser) parseScriptItem() (ScriptItem, error) {
	switch p.tok.Kind {
	case TOK_SHARED:
		return p.parseGlobalDecl()
	case TOK_THREAD:
		return p.parseLocalDecl()
	case TOK_VIEW:
		return p.parseViewProtoDecl()
	case TOK_CONSTRAINT:
		return p.parseConstraintDecl()
	case TOK_METHOD:
		return p.parseMethodDecl()
	default:
		return nil, report.Raise(p.tok.Span, "expected 'shared', 'thread', 'view', 'constraint', or 'method' but got %s", tokenKindName(p.tok.Kind))
	}
}

// type_name = 'int' | 'bool'
func (p *Parser) parseTypeName() (string, *report.Span, error) {
	switch p.tok.Kind {
	case TOK_INT:
		sp := p.tok.Span
		return "int", sp, p.next()
	case TOK_BOOL:
		sp := p.tok.Span
		return "bool", sp, p.next()
	default:
		return "", nil, report.Raise(p.tok.Span, "expected a type ('int' or 'bool') but got %s", tokenKindName(p.tok.Kind))
	}
}

func (p *Parser) parseTypedName() (TypedNameNode, error) {
	ty, startSp, err := p.parseTypeName()
	if err != nil {
		return TypedNameNode{}, err
	}
	name, endSp, err := p.expectIdent()
	if err != nil {
		return TypedNameNode{}, err
	}
	return TypedNameNode{Type: ty, Name: name, Sp: report.SpanOver(startSp, endSp)}, nil
}

// global_decl = 'shared' type_name IDENT ';'
func (p *Parser) parseGlobalDecl() (*GlobalDecl, error) {
	startSp := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}
	tn, err := p.parseTypedName()
	if err != nil {
		return nil, err
	}
	endSp := p.tok.Span
	if err := p.expect(TOK_SEMI); err != nil {
		return nil, err
	}
	return &GlobalDecl{Name: tn, Sp: report.SpanOver(startSp, endSp)}, nil
}

// local_decl = 'thread' type_name IDENT ';'
func (p *Parser) parseLocalDecl() (*LocalDecl, error) {
	startSp := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}
	tn, err := p.parseTypedName()
	if err != nil {
		return nil, err
	}
	endSp := p.tok.Span
	if err := p.expect(TOK_SEMI); err != nil {
		return nil, err
	}
	return &LocalDecl{Name: tn, Sp: report.SpanOver(startSp, endSp)}, nil
}

// view_proto_decl = 'view' ['iter'] IDENT '(' [typed_name {',' typed_name}] ')' ';'
//
// A prototype named '_' is anonymous (no surface syntax distinguishes
// anonymity otherwise).
func (p *Parser) parseViewProtoDecl() (*ViewProtoDecl, error) {
	startSp := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}

	isIter := false
	if p.got(TOK_ITER) {
		isIter = true
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if err := p.expect(TOK_LPAREN); err != nil {
		return nil, err
	}
	var params []TypedNameNode
	if !p.got(TOK_RPAREN) {
		for {
			tn, err := p.parseTypedName()
			if err != nil {
				return nil, err
			}
			params = append(params, tn)
			if !p.got(TOK_COMMA) {
				break
			}
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.expect(TOK_RPAREN); err != nil {
		return nil, err
	}
	endSp := p.tok.Span
	if err := p.expect(TOK_SEMI); err != nil {
		return nil, err
	}

	return &ViewProtoDecl{
		Name:      name,
		Params:    params,
		IsIter:    isIter,
		Anonymous: name == "_",
		Sp:        report.SpanOver(startSp, endSp),
	}, nil
}

// constraint_decl = 'constraint' view_pattern '->' expr ';'
func (p *Parser) parseConstraintDecl() (*ConstraintDecl, error) {
	startSp := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}
	pattern, err := p.parseViewPattern()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOK_ARROW); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	endSp := p.tok.Span
	if err := p.expect(TOK_SEMI); err != nil {
		return nil, err
	}
	return &ConstraintDecl{Pattern: pattern, Body: body, Sp: report.SpanOver(startSp, endSp)}, nil
}

// method_decl = 'method' IDENT '(' ')' block
func (p *Parser) parseMethodDecl() (*MethodDecl, error) {
	startSp := p.tok.Span
	if err := p.next(); err != nil {
		return nil, err
	}
	name, _, err := p.expectIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TOK_LPAREN); err != nil {
		return nil, err
	}
	if err := p.expect(TOK_RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &MethodDecl{Name: name, Body: body, Sp: report.SpanOver(startSp, body.Sp)}, nil
}

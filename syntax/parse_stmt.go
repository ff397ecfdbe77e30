package syntax

import (
	"minic/common"
	"minic/kinds"
	"minic/report"
)

func (p *Parser) parseStmt() common.AstNode {
	switch p.tok.Kind {
	case TOK_SEMICOLON:
		span := p.tok.Span
		p.next()
		return &common.AstEmptyStmt{AstBase: common.AstBase{Span: span}}
	case TOK_DECORATOR:
		return p.parseDecorated(false)
	case TOK_EXPORT:
		return p.parseExport()
	case TOK_IMPORT:
		return p.parseImport()
	case TOK_LET, TOK_CONST:
		return p.parseVarDecl(false)
	case TOK_FUNCTION:
		return p.parseFuncDef(nil, false)
	case TOK_DECLARE:
		return p.parseDeclareFunc(nil, false)
	case TOK_CLASS:
		return p.parseClassDef()
	case TOK_RETURN:
		return p.parseReturn()
	default:
		expr := p.parseExpr()
		p.want(TOK_SEMICOLON)

		return &common.AstExprStmt{
			AstBase: common.AstBase{Span: expr.GetSpan()},
			Expr:    expr,
		}
	}
}

/* -------------------------------------------------------------------------- */

// parseDecorated accumulates leading @name tokens, which may only precede a
// function or declare-function form.
func (p *Parser) parseDecorated(exported bool) common.AstNode {
	var decorators []*Token
	for p.has(TOK_DECORATOR) {
		decorators = append(decorators, p.tok)
		p.next()
	}

	switch p.tok.Kind {
	case TOK_FUNCTION:
		return p.parseFuncDef(decorators, exported)
	case TOK_DECLARE:
		return p.parseDeclareFunc(decorators, exported)
	default:
		p.error("decorators may only precede function declarations")
		return nil
	}
}

func (p *Parser) parseExport() common.AstNode {
	p.want(TOK_EXPORT)

	switch p.tok.Kind {
	case TOK_LET, TOK_CONST:
		return p.parseVarDecl(true)
	case TOK_FUNCTION:
		return p.parseFuncDef(nil, true)
	case TOK_DECLARE:
		return p.parseDeclareFunc(nil, true)
	case TOK_DECORATOR:
		return p.parseDecorated(true)
	default:
		p.error("expected a definition after 'export'")
		return nil
	}
}

func (p *Parser) parseImport() common.AstNode {
	startSpan := p.tok.Span
	p.want(TOK_IMPORT)

	nameTok := p.wantAndGet(TOK_IDENT)
	p.want(TOK_FROM)
	fromTok := p.wantAndGet(TOK_STRLIT)
	p.want(TOK_SEMICOLON)

	return &common.AstImport{
		AstBase: common.AstBase{Span: report.SpanOver(startSpan, fromTok.Span)},
		Name:    nameTok.Value,
		From:    fromTok.Value,
	}
}

/* -------------------------------------------------------------------------- */

func (p *Parser) parseVarDecl(exported bool) common.AstNode {
	startSpan := p.tok.Span
	writable := p.has(TOK_LET)
	p.next()

	nameTok := p.wantAndGet(TOK_IDENT)

	var kind kinds.Kind
	if p.has(TOK_COLON) {
		p.next()
		kind = p.parseTypeLabel()
	}

	var init common.AstExpr
	if p.has(TOK_ASSIGN) {
		p.next()
		init = p.parseExpr()
	}

	p.want(TOK_SEMICOLON)

	return &common.AstVarDecl{
		AstBase: common.AstBase{Span: report.SpanOver(startSpan, p.prevSpan)},
		Def: &common.Definition{
			Span:     nameTok.Span,
			Name:     nameTok.Value,
			Kind:     kind,
			Writable: writable,
			Exported: exported,
		},
		Initializer: init,
	}
}

func (p *Parser) parseReturn() common.AstNode {
	startSpan := p.tok.Span
	p.want(TOK_RETURN)

	var value common.AstExpr
	if !p.has(TOK_SEMICOLON) {
		value = p.parseExpr()
	}

	p.want(TOK_SEMICOLON)

	return &common.AstReturn{
		AstBase: common.AstBase{Span: report.SpanOver(startSpan, p.prevSpan)},
		Value:   value,
	}
}

/* -------------------------------------------------------------------------- */

func (p *Parser) parseFuncDef(decorators []*Token, exported bool) common.AstNode {
	startSpan := p.tok.Span
	p.want(TOK_FUNCTION)

	fd := p.parseFuncHeader(decorators, exported, false)

	p.want(TOK_LBRACE)
	for !p.has(TOK_RBRACE) {
		fd.Body = append(fd.Body, p.parseStmt())
	}
	p.want(TOK_RBRACE)

	fd.Span = report.SpanOver(startSpan, p.prevSpan)

	return fd
}

func (p *Parser) parseDeclareFunc(decorators []*Token, exported bool) common.AstNode {
	startSpan := p.tok.Span
	p.want(TOK_DECLARE)
	p.want(TOK_FUNCTION)

	fd := p.parseFuncHeader(decorators, exported, false)
	fd.Def.External = true

	p.want(TOK_SEMICOLON)
	fd.Span = report.SpanOver(startSpan, p.prevSpan)

	return fd
}

// parseFuncHeader parses `name(params) [: Type]` and builds the definition
// with its Function kind. Methods get a synthesized leading `this: any`.
func (p *Parser) parseFuncHeader(decorators []*Token, exported, isMethod bool) *common.AstFuncDef {
	nameTok := p.wantAndGet(TOK_IDENT)

	p.want(TOK_LPAREN)
	var params []funcParam
	if isMethod {
		params = append(params, funcParam{
			def: &common.Definition{
				Span:     nameTok.Span,
				Name:     "this",
				Kind:     kinds.GlobAnyKind,
				Writable: false,
			},
		})
	}
	if !p.has(TOK_RPAREN) {
		params = append(params, p.parseFuncParams()...)
	}
	p.want(TOK_RPAREN)

	var returnKind kinds.Kind = kinds.GlobAnyKind
	if p.has(TOK_COLON) {
		p.next()

		if p.has(TOK_VOID) {
			p.next()
			returnKind = kinds.GlobUndefinedKind
		} else {
			returnKind = p.parseTypeLabel()
		}
	}

	funcKind := &kinds.FuncKind{ReturnKind: returnKind}
	paramDefs := make([]*common.Definition, len(params))
	for i, param := range params {
		funcKind.Params = append(funcKind.Params, kinds.ParamKind{
			Kind:     param.def.Kind,
			Optional: param.optional,
			Rest:     param.rest,
		})
		paramDefs[i] = param.def
	}

	def := &common.Definition{
		Span:     nameTok.Span,
		Name:     nameTok.Value,
		Kind:     funcKind,
		Writable: false,
		Exported: exported,
	}

	for _, dec := range decorators {
		def.AddDecorator(dec.Value)
	}

	return &common.AstFuncDef{
		AstBase:  common.AstBase{Span: nameTok.Span},
		Def:      def,
		Params:   paramDefs,
		IsMethod: isMethod,
	}
}

type funcParam struct {
	def      *common.Definition
	optional bool
	rest     bool
}

func (p *Parser) parseFuncParams() (params []funcParam) {
	seenOptional := false
	seenRest := false

	for {
		rest := false
		if p.has(TOK_ELLIPSIS) {
			p.next()
			rest = true
		}

		nameTok := p.wantAndGet(TOK_IDENT)

		optional := false
		if p.has(TOK_QUESTION) {
			p.next()
			optional = true
		}

		var kind kinds.Kind
		if p.has(TOK_COLON) {
			p.next()
			kind = p.parseTypeLabel()
		}

		if seenRest {
			p.errorOn(nameTok.Span, "rest parameter must be last")
		}

		if rest {
			seenRest = true

			if optional {
				p.errorOn(nameTok.Span, "rest parameter cannot be optional")
			}

			if kind == nil {
				kind = &kinds.ArrayKind{ElemKind: kinds.GlobAnyKind}
			} else if _, ok := kind.(*kinds.ArrayKind); !ok {
				p.errorOn(nameTok.Span, "rest parameter must have an array type")
			}
		} else if kind == nil {
			kind = kinds.GlobAnyKind
		}

		if optional {
			seenOptional = true
		} else if seenOptional && !rest {
			p.errorOn(nameTok.Span, "required parameter cannot follow an optional parameter")
		}

		params = append(params, funcParam{
			def: &common.Definition{
				Span:     nameTok.Span,
				Name:     nameTok.Value,
				Kind:     kind,
				Writable: true,
			},
			optional: optional,
			rest:     rest,
		})

		if p.has(TOK_COMMA) {
			p.next()
		} else {
			break
		}
	}

	return
}

/* -------------------------------------------------------------------------- */

func (p *Parser) parseClassDef() common.AstNode {
	startSpan := p.tok.Span
	p.want(TOK_CLASS)

	nameTok := p.wantAndGet(TOK_IDENT)

	p.want(TOK_LBRACE)

	var methods []*common.AstFuncDef
	for !p.has(TOK_RBRACE) {
		methods = append(methods, p.parseMethod())
	}

	p.want(TOK_RBRACE)

	return &common.AstClassDef{
		AstBase: common.AstBase{Span: report.SpanOver(startSpan, p.prevSpan)},
		Def: &common.Definition{
			Span:     nameTok.Span,
			Name:     nameTok.Value,
			Kind:     &kinds.ClassKind{},
			Writable: false,
		},
		Methods: methods,
	}
}

// parseMethod is the function syntax without the `function` keyword.
func (p *Parser) parseMethod() *common.AstFuncDef {
	var decorators []*Token
	for p.has(TOK_DECORATOR) {
		decorators = append(decorators, p.tok)
		p.next()
	}

	startSpan := p.tok.Span
	fd := p.parseFuncHeader(decorators, false, true)

	p.want(TOK_LBRACE)
	for !p.has(TOK_RBRACE) {
		fd.Body = append(fd.Body, p.parseStmt())
	}
	p.want(TOK_RBRACE)

	fd.Span = report.SpanOver(startSpan, p.prevSpan)

	return fd
}

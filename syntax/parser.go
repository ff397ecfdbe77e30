package syntax

import (
	"fmt"
	"io"

	"minic/common"
	"minic/report"
)

type Parser struct {
	srcFile  *common.SourceFile
	lexer    *Lexer
	tok      *Token
	prevSpan *report.TextSpan
}

func NewParser(srcFile *common.SourceFile, file io.Reader) *Parser {
	return &Parser{
		srcFile: srcFile,
		lexer:   NewLexer(file, srcFile.Parent.Name, srcFile.DisplayPath),
	}
}

// Parse consumes the whole translation unit into srcFile.Stmts. Any lexical
// or grammatical mismatch throws at the first error; statements parsed
// before it remain in srcFile.Stmts.
func (p *Parser) Parse() {
	p.next()

	for !p.has(TOK_EOF) {
		p.srcFile.Stmts = append(p.srcFile.Stmts, p.parseStmt())
	}
}

/* -------------------------------------------------------------------------- */

func (p *Parser) next() {
	if p.tok != nil {
		p.prevSpan = p.tok.Span
	}

	p.tok = p.lexer.NextToken()
}

func (p *Parser) has(kind TokenKind) bool {
	return p.tok.Kind == kind
}

func (p *Parser) want(kind TokenKind) {
	if p.has(kind) {
		p.next()
	} else {
		p.reject()
	}
}

func (p *Parser) wantAndGet(kind TokenKind) *Token {
	if p.has(kind) {
		tok := p.tok
		p.next()
		return tok
	} else {
		p.reject()
		return nil
	}
}

func (p *Parser) reject() {
	if p.tok.Kind == TOK_EOF {
		p.error("unexpected end of file")
	} else {
		p.error("unexpected token: %s", p.tok.Value)
	}
}

func (p *Parser) error(msg string, a ...any) {
	p.errorOn(p.tok.Span, msg, a...)
}

func (p *Parser) errorOn(span *report.TextSpan, msg string, a ...any) {
	report.Throw(&report.SourceError{
		Category: report.CAT_PARSE,
		Message:  fmt.Sprintf(msg, a...),
		Info: &report.SourceInfo{
			ModName:     p.srcFile.Parent.Name,
			DisplayPath: p.srcFile.DisplayPath,
			Span:        span,
		},
	})
}

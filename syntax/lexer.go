package syntax

import (
	"bufio"
	"io"
	"strings"

	"minic/report"
)

type Lexer struct {
	file        *bufio.Reader
	modName     string
	displayPath string

	tokBuff *strings.Builder

	line, col           int
	startLine, startCol int

	ahead rune
}

func NewLexer(file io.Reader, modName, displayPath string) *Lexer {
	return &Lexer{
		file:        bufio.NewReader(file),
		modName:     modName,
		displayPath: displayPath,
		tokBuff:     &strings.Builder{},
		line:        1, col: 1,
		startLine: 1, startCol: 1,
		ahead: 0,
	}
}

func (l *Lexer) NextToken() *Token {
	for l.peek() {
		switch l.ahead {
		case '\t', ' ', '\r', '\n':
			l.skip()
		case '/':
			l.mark()
			l.read()

			if l.peek() {
				if l.ahead == '/' {
					l.skipLineComment()
					continue
				} else if l.ahead == '*' {
					l.skipBlockComment()
					continue
				}
			}

			return l.makeToken(TOK_FSLASH)
		case '\'':
			return l.lexStringLit('\'')
		case '`':
			return l.lexStringLit('`')
		case '@':
			return l.lexDecorator()
		case '+':
			return l.lexSingle(TOK_PLUS)
		case '-':
			return l.lexSingle(TOK_MINUS)
		case '*':
			return l.lexSingle(TOK_STAR)
		case '%':
			return l.lexSingle(TOK_MOD)
		case '=':
			return l.lexEquals()
		case '!':
			return l.lexBang()
		case '<':
			return l.lexMaybeEq(TOK_LT, TOK_LTEQ)
		case '>':
			return l.lexMaybeEq(TOK_GT, TOK_GTEQ)
		case '&':
			return l.lexDouble('&', TOK_ANDAND)
		case '|':
			return l.lexDouble('|', TOK_OROR)
		case '.':
			return l.lexDots()
		case '(':
			return l.lexSingle(TOK_LPAREN)
		case ')':
			return l.lexSingle(TOK_RPAREN)
		case '{':
			return l.lexSingle(TOK_LBRACE)
		case '}':
			return l.lexSingle(TOK_RBRACE)
		case '[':
			return l.lexSingle(TOK_LBRACKET)
		case ']':
			return l.lexSingle(TOK_RBRACKET)
		case ',':
			return l.lexSingle(TOK_COMMA)
		case ':':
			return l.lexSingle(TOK_COLON)
		case ';':
			return l.lexSingle(TOK_SEMICOLON)
		case '?':
			return l.lexSingle(TOK_QUESTION)
		default:
			if isIdentStart(l.ahead) {
				return l.lexIdentOrKeyword()
			} else if isDigit(l.ahead) {
				return l.lexNumberLit()
			} else {
				l.mark()
				l.error("unknown character")
			}
		}
	}

	return &Token{Kind: TOK_EOF, Span: l.getSpan()}
}

/* -------------------------------------------------------------------------- */

func isIdentStart(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

/* -------------------------------------------------------------------------- */

// lexNumberLit reads an integer literal, or a float literal when a decimal
// point with trailing digits follows.
func (l *Lexer) lexNumberLit() *Token {
	l.mark()

	for l.peek() && isDigit(l.ahead) {
		l.read()
	}

	if !l.peek() || l.ahead != '.' {
		return l.makeToken(TOK_INTLIT)
	}

	l.read()

	if !l.peek() || !isDigit(l.ahead) {
		l.error("expected digit after decimal point")
	}

	for l.peek() && isDigit(l.ahead) {
		l.read()
	}

	return l.makeToken(TOK_FLOATLIT)
}

/* -------------------------------------------------------------------------- */

var keywordPatterns = map[string]TokenKind{
	"let":      TOK_LET,
	"const":    TOK_CONST,
	"function": TOK_FUNCTION,
	"declare":  TOK_DECLARE,
	"return":   TOK_RETURN,
	"class":    TOK_CLASS,
	"new":      TOK_NEW,
	"typeof":   TOK_TYPEOF,
	"export":   TOK_EXPORT,
	"import":   TOK_IMPORT,
	"from":     TOK_FROM,

	"any":       TOK_ANY,
	"string":    TOK_STRING,
	"number":    TOK_NUMBER,
	"void":      TOK_VOID,
	"null":      TOK_NULL,
	"undefined": TOK_UNDEFINED,

	"true":  TOK_BOOLLIT,
	"false": TOK_BOOLLIT,
}

func (l *Lexer) lexIdentOrKeyword() *Token {
	l.mark()
	l.read()

	for l.peek() && (isIdentStart(l.ahead) || isDigit(l.ahead)) {
		l.read()
	}

	if kkind, ok := keywordPatterns[l.tokBuff.String()]; ok {
		return l.makeToken(kkind)
	}

	return l.makeToken(TOK_IDENT)
}

func (l *Lexer) lexDecorator() *Token {
	l.mark()
	l.skip()

	if !l.peek() || !isIdentStart(l.ahead) {
		l.error("expected decorator name after '@'")
	}

	l.read()
	for l.peek() && (isIdentStart(l.ahead) || isDigit(l.ahead)) {
		l.read()
	}

	return l.makeToken(TOK_DECORATOR)
}

/* -------------------------------------------------------------------------- */

func (l *Lexer) lexSingle(kind TokenKind) *Token {
	l.mark()
	l.read()
	return l.makeToken(kind)
}

func (l *Lexer) lexEquals() *Token {
	l.mark()
	l.read()

	if l.peek() && l.ahead == '=' {
		l.read()

		if l.peek() && l.ahead == '=' {
			l.read()
			return l.makeToken(TOK_SEQ)
		}

		return l.makeToken(TOK_EQ)
	}

	return l.makeToken(TOK_ASSIGN)
}

func (l *Lexer) lexBang() *Token {
	l.mark()
	l.read()

	if l.peek() && l.ahead == '=' {
		l.read()

		if l.peek() && l.ahead == '=' {
			l.read()
			return l.makeToken(TOK_SNEQ)
		}

		return l.makeToken(TOK_NEQ)
	}

	return l.makeToken(TOK_NOT)
}

func (l *Lexer) lexMaybeEq(bare, withEq TokenKind) *Token {
	l.mark()
	l.read()

	if l.peek() && l.ahead == '=' {
		l.read()
		return l.makeToken(withEq)
	}

	return l.makeToken(bare)
}

func (l *Lexer) lexDouble(second rune, kind TokenKind) *Token {
	l.mark()
	l.read()

	if !l.peek() || l.ahead != second {
		l.error("unknown character")
	}

	l.read()
	return l.makeToken(kind)
}

func (l *Lexer) lexDots() *Token {
	l.mark()
	l.read()

	if l.peek() && l.ahead == '.' {
		l.read()

		if !l.peek() || l.ahead != '.' {
			l.error("expected '...'")
		}

		l.read()
		return l.makeToken(TOK_ELLIPSIS)
	}

	return l.makeToken(TOK_DOT)
}

/* -------------------------------------------------------------------------- */

// lexStringLit dequotes as it reads: the delimiters never reach the token
// value and no escape processing is performed.
func (l *Lexer) lexStringLit(quote rune) *Token {
	l.mark()
	l.skip()

	for l.peek() {
		switch l.ahead {
		case quote:
			l.skip()
			return l.makeToken(TOK_STRLIT)
		case '\n', '\r':
			l.error("string literal contains new line")
		default:
			l.read()
		}
	}

	l.error("unclosed string literal")
	return nil
}

/* -------------------------------------------------------------------------- */

func (l *Lexer) skipLineComment() {
	l.tokBuff.Reset()
	l.skip()

	for l.peek() {
		if l.ahead == '\n' {
			break
		}

		l.skip()
	}
}

func (l *Lexer) skipBlockComment() {
	l.tokBuff.Reset()
	l.skip()

	for l.peek() {
		if l.ahead == '*' {
			l.skip()

			if l.peek() && l.ahead == '/' {
				l.skip()
				return
			}
		} else {
			l.skip()
		}
	}

	l.error("unterminated block comment")
}

/* -------------------------------------------------------------------------- */

func (l *Lexer) makeToken(kind TokenKind) *Token {
	tok := &Token{
		Kind:  kind,
		Value: l.tokBuff.String(),
		Span:  l.getSpan(),
	}

	l.tokBuff.Reset()

	return tok
}

func (l *Lexer) mark() {
	l.startLine = l.line
	l.startCol = l.col
}

func (l *Lexer) error(msg string) {
	report.Throw(&report.SourceError{
		Category: report.CAT_LEX,
		Message:  msg,
		Info: &report.SourceInfo{
			ModName:     l.modName,
			DisplayPath: l.displayPath,
			Span:        l.getSpan(),
		},
	})
}

func (l *Lexer) getSpan() *report.TextSpan {
	return &report.TextSpan{
		StartLine: l.startLine, StartCol: l.startCol,
		EndLine: l.line, EndCol: l.col,
	}
}

/* -------------------------------------------------------------------------- */

func (l *Lexer) peek() bool {
	r, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return false
		}

		report.Throw(err)
	}

	l.ahead = r
	l.file.UnreadRune()

	return true
}

func (l *Lexer) read() bool {
	r, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return false
		}

		report.Throw(err)
	}

	l.tokBuff.WriteRune(r)
	l.updatePos(r)

	return true
}

func (l *Lexer) skip() bool {
	r, _, err := l.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return false
		}

		report.Throw(err)
	}

	l.updatePos(r)

	return true
}

func (l *Lexer) updatePos(r rune) {
	switch r {
	case '\n':
		l.line++
		l.col = 1
	case '\t':
		l.col += 4
	default:
		l.col += 1
	}
}

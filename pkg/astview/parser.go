package astview

import (
	"fmt"
	"strings"
)

// ParseError is returned for malformed source at the AST layer (the
// ParseError category from the error-handling design).
type ParseError struct {
	File    string
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// Parse builds a File façade over source. It never mutates source.
func Parse(path string, source []byte) (*File, error) {
	p := &parser{path: path, src: source, n: len(source)}
	f := &File{Path: path, Source: source}
	p.skipTrivia()
	for p.i < p.n {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			f.Statements = append(f.Statements, stmt)
		}
		p.skipTrivia()
	}
	return f, nil
}

type parser struct {
	path string
	src  []byte
	i    int
	n    int
}

func (p *parser) line() int {
	line := 1
	for k := 0; k < p.i && k < p.n; k++ {
		if p.src[k] == '\n' {
			line++
		}
	}
	return line
}

func (p *parser) errf(format string, args ...any) error {
	return &ParseError{File: p.path, Line: p.line(), Message: fmt.Sprintf(format, args...)}
}

func (p *parser) peek() byte {
	if p.i >= p.n {
		return 0
	}
	return p.src[p.i]
}

func (p *parser) peekAt(off int) byte {
	if p.i+off >= p.n {
		return 0
	}
	return p.src[p.i+off]
}

func (p *parser) advance() byte {
	c := p.src[p.i]
	p.i++
	return c
}

// skipTrivia skips whitespace, line comments and block comments.
func (p *parser) skipTrivia() {
	for p.i < p.n {
		c := p.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.i++
		case c == '/' && p.peekAt(1) == '/':
			for p.i < p.n && p.peek() != '\n' {
				p.i++
			}
		case c == '/' && p.peekAt(1) == '*':
			p.i += 2
			for p.i < p.n && !(p.peek() == '*' && p.peekAt(1) == '/') {
				p.i++
			}
			p.i += 2
			if p.i > p.n {
				p.i = p.n
			}
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (p *parser) matchKeyword(kw string) bool {
	if p.i+len(kw) > p.n {
		return false
	}
	if string(p.src[p.i:p.i+len(kw)]) != kw {
		return false
	}
	// must not be followed by an identifier char (word boundary)
	if p.i+len(kw) < p.n && isIdentPart(p.src[p.i+len(kw)]) {
		return false
	}
	return true
}

func (p *parser) parseIdentName() string {
	start := p.i
	for p.i < p.n && isIdentPart(p.peek()) {
		p.i++
	}
	return string(p.src[start:p.i])
}

// skipBalanced consumes from the current '(' or '{' up to and including its
// matching close, honoring nested strings so braces inside string literals
// don't confuse the balance count.
func (p *parser) skipBalanced(open, close byte) {
	depth := 0
	for p.i < p.n {
		c := p.peek()
		switch c {
		case open:
			depth++
			p.i++
		case close:
			depth--
			p.i++
			if depth == 0 {
				return
			}
		case '\'', '"', '`':
			p.skipStringLiteral()
		default:
			p.i++
		}
	}
}

func (p *parser) skipStringLiteral() {
	quote := p.advance()
	for p.i < p.n {
		c := p.advance()
		if c == '\\' {
			if p.i < p.n {
				p.i++
			}
			continue
		}
		if c == quote {
			return
		}
	}
}

// parseStatement recognizes the four top-level forms this compiler's
// source files use: import, const, function, and a bare default-exported
// JSX expression.
func (p *parser) parseStatement() (Statement, error) {
	pos := Position{Line: p.line()}
	switch {
	case p.matchKeyword("import"):
		return p.parseImport(pos)
	case p.matchKeyword("const"):
		return p.parseConst(pos)
	case p.matchKeyword("function"):
		return p.parseFunctionDecl(pos, false)
	case p.matchKeyword("export"):
		return p.parseExport(pos)
	case p.matchKeyword("interface") || p.matchKeyword("type"):
		p.skipStatementToSemicolon()
		return nil, nil
	default:
		// Unrecognized top-level statement: skip to the next semicolon or
		// balanced block so a stray expression statement doesn't abort the
		// whole file.
		p.skipStatementToSemicolon()
		return nil, nil
	}
}

func (p *parser) skipStatementToSemicolon() {
	for p.i < p.n {
		c := p.peek()
		if c == ';' {
			p.i++
			return
		}
		if c == '{' {
			p.skipBalanced('{', '}')
			continue
		}
		if c == '(' {
			p.skipBalanced('(', ')')
			continue
		}
		if c == '\n' {
			p.i++
			return
		}
		if c == '\'' || c == '"' || c == '`' {
			p.skipStringLiteral()
			continue
		}
		p.i++
	}
}

func (p *parser) parseImport(pos Position) (Statement, error) {
	p.i += len("import")
	p.skipTrivia()
	var names []string
	for p.i < p.n && p.peek() != 0 {
		c := p.peek()
		if c == ';' || c == '\n' {
			break
		}
		if isIdentStart(c) {
			// capture bare identifiers (default import, `as X` bindings,
			// named import list entries)
			start := p.i
			for p.i < p.n && isIdentPart(p.peek()) {
				p.i++
			}
			word := string(p.src[start:p.i])
			if word != "from" && word != "as" && word != "type" {
				names = append(names, word)
			}
			continue
		}
		if c == '\'' || c == '"' {
			// the module specifier; grab it and finish
			spec := p.readStringLiteralValue()
			p.skipStatementToSemicolon()
			return &Import{Pos: pos, Names: names, Specifier: spec}, nil
		}
		p.i++
	}
	p.skipStatementToSemicolon()
	return &Import{Pos: pos, Names: names}, nil
}

func (p *parser) readStringLiteralValue() string {
	quote := p.advance()
	start := p.i
	for p.i < p.n && p.peek() != quote {
		if p.peek() == '\\' {
			p.i++
		}
		p.i++
	}
	val := string(p.src[start:p.i])
	if p.i < p.n {
		p.i++ // closing quote
	}
	return unescapeSimple(val)
}

func unescapeSimple(s string) string {
	s = strings.ReplaceAll(s, `\'`, `'`)
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = strings.ReplaceAll(s, `\n`, "\n")
	return s
}

func (p *parser) parseConst(pos Position) (Statement, error) {
	p.i += len("const")
	p.skipTrivia()
	name := p.parseIdentName()
	p.skipTrivia()
	// optional type annotation `: Type`
	if p.peek() == ':' {
		p.i++
		p.skipTrivia()
		p.skipTypeAnnotation()
		p.skipTrivia()
	}
	if p.peek() != '=' {
		p.skipStatementToSemicolon()
		return &ConstDecl{Pos: pos, Name: name}, nil
	}
	p.i++ // '='
	p.skipTrivia()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipTrivia()
	if p.peek() == ';' {
		p.i++
	}
	return &ConstDecl{Pos: pos, Name: name, Init: expr}, nil
}

// skipTypeAnnotation skips a TypeScript type up to `=`, `;`, `,` or `)` at
// depth 0 — this compiler does not model the type system.
func (p *parser) skipTypeAnnotation() {
	depth := 0
	for p.i < p.n {
		c := p.peek()
		if depth == 0 && (c == '=' || c == ';' || c == ',' || c == ')') {
			return
		}
		switch c {
		case '<', '(', '{', '[':
			depth++
		case '>', ')', '}', ']':
			if depth > 0 {
				depth--
			}
		}
		p.i++
	}
}

func (p *parser) parseExport(pos Position) (Statement, error) {
	p.i += len("export")
	p.skipTrivia()
	if p.matchKeyword("default") {
		p.i += len("default")
		p.skipTrivia()
		if p.matchKeyword("function") {
			return p.parseFunctionDecl(pos, true)
		}
		// bare default export: an expression, often a parenthesized JSX tree.
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		p.skipTrivia()
		if p.peek() == ';' {
			p.i++
		}
		if jx, ok := expr.(*JSXExpr); ok {
			return &DefaultJSX{Pos: pos, Body: jx.Element}, nil
		}
		if pr, ok := expr.(*Paren); ok {
			if jx, ok := pr.Inner.(*JSXExpr); ok {
				return &DefaultJSX{Pos: pos, Body: jx.Element}, nil
			}
		}
		return &DefaultJSX{Pos: pos}, nil
	}
	if p.matchKeyword("function") {
		return p.parseFunctionDecl(pos, false)
	}
	if p.matchKeyword("const") {
		return p.parseConst(pos)
	}
	p.skipStatementToSemicolon()
	return nil, nil
}

func (p *parser) parseFunctionDecl(pos Position, isDefault bool) (Statement, error) {
	p.i += len("function")
	p.skipTrivia()
	name := ""
	if isIdentStart(p.peek()) {
		name = p.parseIdentName()
		p.skipTrivia()
	}
	var params []string
	if p.peek() == '(' {
		p.i++
		for p.i < p.n && p.peek() != ')' {
			p.skipTrivia()
			if isIdentStart(p.peek()) {
				params = append(params, p.parseIdentName())
			}
			p.skipTrivia()
			if p.peek() == ':' {
				p.i++
				p.skipTrivia()
				p.skipTypeAnnotation()
			}
			p.skipTrivia()
			if p.peek() == ',' {
				p.i++
			}
		}
		if p.peek() == ')' {
			p.i++
		}
	}
	p.skipTrivia()
	// optional return type annotation
	if p.peek() == ':' {
		p.i++
		p.skipTrivia()
		p.skipTypeAnnotation()
		p.skipTrivia()
	}
	var body *Element
	if p.peek() == '{' {
		bodyStart := p.i
		p.skipBalanced('{', '}')
		bodyEnd := p.i
		el, err := extractReturnedJSX(p.path, p.src[bodyStart:bodyEnd])
		if err != nil {
			return nil, err
		}
		body = el
	}
	return &FuncDecl{Pos: pos, Name: name, Params: params, Body: body, IsDefault: isDefault}, nil
}

// extractReturnedJSX finds the first `return ...;` inside a function body
// and parses its value as an expression, returning the JSX element if the
// returned value is (or wraps, via parens) a JSX tree.
func extractReturnedJSX(path string, body []byte) (*Element, error) {
	sp := &parser{path: path, src: body, n: len(body)}
	for sp.i < sp.n {
		sp.skipTrivia()
		if sp.i >= sp.n {
			break
		}
		if sp.matchKeyword("return") {
			sp.i += len("return")
			sp.skipTrivia()
			if sp.peek() == ';' || sp.i >= sp.n {
				return nil, nil
			}
			expr, err := sp.parseExpr()
			if err != nil {
				return nil, err
			}
			return unwrapJSX(expr), nil
		}
		if sp.peek() == '\'' || sp.peek() == '"' || sp.peek() == '`' {
			sp.skipStringLiteral()
			continue
		}
		if sp.peek() == '{' {
			sp.skipBalanced('{', '}')
			continue
		}
		if sp.peek() == '(' {
			sp.skipBalanced('(', ')')
			continue
		}
		sp.i++
	}
	return nil, nil
}

func unwrapJSX(e Expr) *Element {
	switch v := e.(type) {
	case *JSXExpr:
		return v.Element
	case *Paren:
		return unwrapJSX(v.Inner)
	default:
		return nil
	}
}

package astview

import "strings"

// parseElement parses one JSX element starting at the current '<'.
func (p *parser) parseElement() (*Element, error) {
	pos := Position{Line: p.line()}
	if p.peek() != '<' {
		return nil, p.errf("expected '<' to start JSX element")
	}
	p.i++
	if p.peek() == '>' {
		// JSX fragment `<>...</>`: treat as a synthetic "Fragment" element
		p.i++
		el := &Element{Pos: pos, Name: "Fragment"}
		children, err := p.parseChildrenUntilClose("")
		if err != nil {
			return nil, err
		}
		el.Children = children
		return el, nil
	}
	name := p.parseTagName()
	el := &Element{Pos: pos, Name: name}
	for {
		p.skipTrivia()
		c := p.peek()
		if c == '/' && p.peekAt(1) == '>' {
			p.i += 2
			el.SelfClosing = true
			return el, nil
		}
		if c == '>' {
			p.i++
			break
		}
		if c == 0 {
			return nil, p.errf("unterminated JSX tag <%s>", name)
		}
		attr, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		el.Attrs = append(el.Attrs, attr)
	}
	children, err := p.parseChildrenUntilClose(name)
	if err != nil {
		return nil, err
	}
	el.Children = children
	return el, nil
}

func (p *parser) parseTagName() string {
	start := p.i
	for p.i < p.n && (isIdentPart(p.peek()) || p.peek() == '.' || p.peek() == '-') {
		p.i++
	}
	return string(p.src[start:p.i])
}

func (p *parser) parseAttr() (Attr, error) {
	pos := Position{Line: p.line()}
	name := p.parseTagName()
	p.skipTrivia()
	if p.peek() != '=' {
		return Attr{Pos: pos, Name: name}, nil // boolean attribute
	}
	p.i++
	p.skipTrivia()
	if p.peek() == '"' || p.peek() == '\'' {
		val := p.readStringLiteralValue()
		return Attr{Pos: pos, Name: name, Value: &StringLit{Pos: pos, Value: val}}, nil
	}
	if p.peek() == '{' {
		p.i++
		p.skipTrivia()
		expr, err := p.parseExpr()
		if err != nil {
			return Attr{}, err
		}
		p.skipTrivia()
		if p.peek() == '}' {
			p.i++
		}
		return Attr{Pos: pos, Name: name, Value: expr}, nil
	}
	return Attr{}, p.errf("unsupported attribute value for %q", name)
}

// parseChildrenUntilClose reads JSX children (text, `{expr}`, nested
// elements) until the matching `</name>` close tag. tagName == "" matches a
// fragment's `</>`.
func (p *parser) parseChildrenUntilClose(tagName string) ([]JSXChild, error) {
	var children []JSXChild
	for {
		if p.i >= p.n {
			return nil, p.errf("unterminated JSX element <%s>: missing closing tag", tagName)
		}
		if p.peek() == '<' && p.peekAt(1) == '/' {
			p.i += 2
			p.skipTrivia()
			closeName := p.parseTagName()
			p.skipTrivia()
			if p.peek() == '>' {
				p.i++
			}
			if closeName != tagName {
				return nil, p.errf("mismatched closing tag </%s>, expected </%s>", closeName, tagName)
			}
			return children, nil
		}
		if p.peek() == '<' {
			el, err := p.parseElement()
			if err != nil {
				return nil, err
			}
			children = append(children, &ElementChild{Pos: el.Pos, Element: el})
			continue
		}
		if p.peek() == '{' {
			pos := Position{Line: p.line()}
			// JSX comment `{/* ... */}` is consumed and dropped.
			if p.peekAt(1) == '/' && p.peekAt(2) == '*' {
				p.i++
				p.skipTrivia()
				if p.peek() == '}' {
					p.i++
				}
				continue
			}
			p.i++
			p.skipTrivia()
			if p.peek() == '}' {
				p.i++
				continue
			}
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			p.skipTrivia()
			if p.peek() == '}' {
				p.i++
			}
			children = append(children, &ExprChild{Pos: pos, Expr: expr})
			continue
		}
		text, pos := p.readJSXText()
		if text != "" {
			children = append(children, &Text{Pos: pos, Value: text})
		}
	}
}

// readJSXText reads raw text up to the next `<` or `{`, exactly as written
// in the source (no normalization — that is the transformer's job, per the
// design's "re-read from raw source" note).
func (p *parser) readJSXText() (string, Position) {
	pos := Position{Line: p.line()}
	start := p.i
	for p.i < p.n && p.peek() != '<' && p.peek() != '{' {
		p.i++
	}
	return string(p.src[start:p.i]), pos
}

// RawSlice returns the raw bytes of the source file between two 1-based,
// inclusive line numbers. Used by the transformer to re-read multi-line
// text runs bypassing this parser's otherwise-untouched text capture (text
// here is already raw, but downstream multi-line normalization needs the
// surrounding indentation context on a line basis).
func (f *File) RawSlice(startLine, endLine int) string {
	lines := strings.Split(string(f.Source), "\n")
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	if startLine > endLine {
		return ""
	}
	return strings.Join(lines[startLine-1:endLine], "\n")
}

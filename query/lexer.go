package query

import (
	"strings"
)

type tokenKind uint8

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenOp
	tokenString
	tokenNumber
	tokenAnd
)

type token struct {
	kind tokenKind
	text string
	// isFloat is set for number tokens containing a decimal point.
	isFloat bool
}

type lexer struct {
	in  string
	pos int
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.in) {
		return 0
	}
	return l.in[l.pos]
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.in) {
		switch l.in[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.in) {
		return token{kind: tokenEOF}, nil
	}

	c := l.in[l.pos]
	switch {
	case c == '=':
		l.pos++
		return token{kind: tokenOp, text: "="}, nil
	case c == '!':
		if l.pos+1 < len(l.in) && l.in[l.pos+1] == '=' {
			l.pos += 2
			return token{kind: tokenOp, text: "!="}, nil
		}
		return token{}, parseErrorf("Invalid token '!' in filter string; expected '!='")
	case c == '<' || c == '>':
		op := string(c)
		l.pos++
		if l.peek() == '=' {
			op += "="
			l.pos++
		}
		return token{kind: tokenOp, text: op}, nil
	case c == '\'':
		return l.stringLiteral()
	case isDigit(c) || (c == '-' && l.pos+1 < len(l.in) && isDigit(l.in[l.pos+1])):
		return l.numberLiteral()
	case isIdentStart(c):
		return l.identifier()
	default:
		return token{}, parseErrorf("Invalid character '%c' in filter string", c)
	}
}

// stringLiteral scans a single-quoted literal. A doubled quote escapes an
// embedded quote: 'it''s'.
func (l *lexer) stringLiteral() (token, error) {
	start := l.pos
	l.pos++ // opening quote
	var b strings.Builder
	for l.pos < len(l.in) {
		c := l.in[l.pos]
		if c == '\'' {
			if l.pos+1 < len(l.in) && l.in[l.pos+1] == '\'' {
				b.WriteByte('\'')
				l.pos += 2
				continue
			}
			l.pos++
			return token{kind: tokenString, text: b.String()}, nil
		}
		b.WriteByte(c)
		l.pos++
	}
	return token{}, parseErrorf("Unterminated string literal starting at %q", l.in[start:])
}

func (l *lexer) numberLiteral() (token, error) {
	start := l.pos
	if l.in[l.pos] == '-' {
		l.pos++
	}
	for l.pos < len(l.in) && isDigit(l.in[l.pos]) {
		l.pos++
	}
	isFloat := false
	if l.peek() == '.' {
		isFloat = true
		l.pos++
		for l.pos < len(l.in) && isDigit(l.in[l.pos]) {
			l.pos++
		}
	}
	return token{kind: tokenNumber, text: l.in[start:l.pos], isFloat: isFloat}, nil
}

// identifier scans an attribute name or a tags. reference. Backtick
// quoting after "tags." admits keys with spaces or punctuation; the
// backticks are kept in the token text and stripped by the parser.
func (l *lexer) identifier() (token, error) {
	start := l.pos
	for l.pos < len(l.in) {
		c := l.in[l.pos]
		if isIdentChar(c) || c == '.' {
			l.pos++
			continue
		}
		if c == '`' && l.pos > start && l.in[l.pos-1] == '.' {
			// tags.`quoted key`
			l.pos++
			for l.pos < len(l.in) && l.in[l.pos] != '`' {
				l.pos++
			}
			if l.pos >= len(l.in) {
				return token{}, parseErrorf("Unterminated backtick in identifier %q", l.in[start:])
			}
			l.pos++ // closing backtick
			continue
		}
		break
	}

	text := l.in[start:l.pos]
	switch {
	case strings.EqualFold(text, "AND"):
		return token{kind: tokenAnd, text: text}, nil
	case strings.EqualFold(text, "LIKE"):
		return token{kind: tokenOp, text: "LIKE"}, nil
	case strings.EqualFold(text, "ILIKE"):
		return token{kind: tokenOp, text: "ILIKE"}, nil
	default:
		return token{kind: tokenIdent, text: text}, nil
	}
}

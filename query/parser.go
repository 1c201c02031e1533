package query

import (
	"regexp"
	"strconv"
	"strings"
)

// Op is a comparison operator in a filter clause.
type Op string

const (
	OpEq    Op = "="
	OpNe    Op = "!="
	OpLt    Op = "<"
	OpLe    Op = "<="
	OpGt    Op = ">"
	OpGe    Op = ">="
	OpLike  Op = "LIKE"
	OpILike Op = "ILIKE"
)

// Clause is one parsed comparison of the conjunction. Clauses keep their
// position in the filter string so error reporting stays deterministic.
type Clause struct {
	// IsTag marks a tags.<key> reference; Key then holds the tag key.
	// Otherwise Key is a name from the fixed attribute set.
	IsTag bool
	Key   string
	Op    Op
	Value Value

	// re is the compiled pattern for LIKE/ILIKE, anchored at both ends.
	re *regexp.Regexp
}

// ParseFilter parses a filter string into its conjunction of clauses.
// An empty string yields no clauses, which matches every record.
func ParseFilter(filterString string) ([]Clause, error) {
	if strings.TrimSpace(filterString) == "" {
		return nil, nil
	}

	l := &lexer{in: filterString}
	var clauses []Clause
	for {
		clause, err := parseClause(l)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)

		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			return clauses, nil
		}
		if tok.kind != tokenAnd {
			return nil, parseErrorf("Invalid clause(s) in filter string %q: expected AND, got %q",
				filterString, tok.text)
		}
	}
}

func parseClause(l *lexer) (Clause, error) {
	ident, err := l.next()
	if err != nil {
		return Clause{}, err
	}
	if ident.kind != tokenIdent {
		return Clause{}, parseErrorf("Invalid clause(s) in filter string: expected an identifier, got %q", ident.text)
	}

	clause, err := resolveIdentifier(ident.text)
	if err != nil {
		return Clause{}, err
	}

	opTok, err := l.next()
	if err != nil {
		return Clause{}, err
	}
	if opTok.kind != tokenOp {
		return Clause{}, parseErrorf("Invalid clause(s) in filter string: expected a comparator after '%s', got %q",
			ident.text, opTok.text)
	}
	clause.Op = Op(opTok.text)

	if err := validateComparator(clause, ident.text); err != nil {
		return Clause{}, err
	}

	lit, err := l.next()
	if err != nil {
		return Clause{}, err
	}
	if err := resolveLiteral(&clause, ident.text, lit); err != nil {
		return Clause{}, err
	}

	if clause.Op == OpLike || clause.Op == OpILike {
		clause.re = compileLike(clause.Value.Str, clause.Op == OpILike)
	}
	return clause, nil
}

// resolveIdentifier classifies an identifier as a fixed attribute or a tag
// reference and strips backtick quoting from tag keys.
func resolveIdentifier(text string) (Clause, error) {
	if key, ok := strings.CutPrefix(text, "tags."); ok {
		if inner, ok := strings.CutPrefix(key, "`"); ok {
			trimmed, ok := strings.CutSuffix(inner, "`")
			if !ok {
				return Clause{}, parseErrorf("Invalid tag reference '%s' in filter string", text)
			}
			key = trimmed
		}
		if key == "" || strings.Contains(key, "`") {
			return Clause{}, parseErrorf("Invalid tag reference '%s' in filter string", text)
		}
		return Clause{IsTag: true, Key: key}, nil
	}

	if _, ok := AttributeKind(text); !ok {
		return Clause{}, parseErrorf("Invalid attribute key '%s' specified. Valid keys are %s",
			text, validAttributeList())
	}
	return Clause{Key: text}, nil
}

func validateComparator(c Clause, ident string) error {
	if !c.IsTag {
		if kind, _ := AttributeKind(c.Key); kind == AttrNumericKind {
			switch c.Op {
			case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
				return nil
			}
			return parseErrorf("Invalid comparator '%s' for numeric attribute '%s'", c.Op, ident)
		}
	}
	switch c.Op {
	case OpEq, OpNe, OpLike, OpILike:
		return nil
	}
	if c.IsTag {
		return parseErrorf("Invalid comparator '%s' for tag '%s'", c.Op, c.Key)
	}
	return parseErrorf("Invalid comparator '%s' for string attribute '%s'", c.Op, ident)
}

func resolveLiteral(c *Clause, ident string, lit token) error {
	numeric := false
	if !c.IsTag {
		kind, _ := AttributeKind(c.Key)
		numeric = kind == AttrNumericKind
	}

	if numeric {
		if lit.kind != tokenNumber {
			return parseErrorf("Expected a numeric value for numeric attribute '%s', got %q", ident, lit.text)
		}
		if lit.isFloat {
			f, err := strconv.ParseFloat(lit.text, 64)
			if err != nil {
				return parseErrorf("Invalid numeric literal %q", lit.text)
			}
			c.Value = Float(f)
			return nil
		}
		i, err := strconv.ParseInt(lit.text, 10, 64)
		if err != nil {
			return parseErrorf("Invalid numeric literal %q", lit.text)
		}
		c.Value = Int(i)
		return nil
	}

	if lit.kind != tokenString {
		return parseErrorf("Expected a quoted string value for '%s', got %q", ident, lit.text)
	}
	c.Value = String(lit.text)
	return nil
}

// compileLike translates a SQL LIKE pattern into an anchored regexp:
// % matches any run of characters, _ matches exactly one. Everything else
// is literal.
func compileLike(pattern string, caseInsensitive bool) *regexp.Regexp {
	var b strings.Builder
	if caseInsensitive {
		b.WriteString("(?is)")
	} else {
		b.WriteString("(?s)")
	}
	b.WriteString(`\A`)
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`\z`)
	return regexp.MustCompile(b.String())
}

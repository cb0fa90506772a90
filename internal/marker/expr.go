package marker

import (
	"strings"
	"unicode"

	"ptc/internal/domain"
)

// Expr is a parsed marker filter expression: a boolean combination of
// marker names with "and", "or", "not" and parentheses, evaluated
// against the tags attached to each candidate test.
type Expr struct {
	root node
	src  string
}

type node interface {
	eval(tags Tags) bool
}

type literal struct{ name string }

func (l literal) eval(tags Tags) bool { return tags[l.name] }

type andNode struct{ left, right node }

func (n andNode) eval(tags Tags) bool { return n.left.eval(tags) && n.right.eval(tags) }

type orNode struct{ left, right node }

func (n orNode) eval(tags Tags) bool { return n.left.eval(tags) || n.right.eval(tags) }

type notNode struct{ operand node }

func (n notNode) eval(tags Tags) bool { return !n.operand.eval(tags) }

// ParseExpr parses a filter expression like "unit and not slow" and
// validates every referenced marker against the declared set. An
// unknown marker name is a configuration error, raised before any
// traversal happens.
func ParseExpr(src string, declared *Set) (*Expr, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &exprParser{src: src, tokens: tokens, declared: declared}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, domain.Configf("marker expression %q: unexpected %q", src, p.peek())
	}
	return &Expr{root: root, src: src}, nil
}

// Eval evaluates the expression against a test's tags. Evaluation is
// total and side-effect-free.
func (e *Expr) Eval(tags Tags) bool {
	return e.root.eval(tags)
}

func (e *Expr) String() string {
	return e.src
}

// lex splits an expression into identifier and parenthesis tokens.
func lex(src string) ([]string, error) {
	var tokens []string
	i := 0
	runes := []rune(src)
	for i < len(runes) {
		c := runes[i]
		switch {
		case unicode.IsSpace(c):
			i++
		case c == '(' || c == ')':
			tokens = append(tokens, string(c))
			i++
		case c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c):
			j := i
			for j < len(runes) && (runes[j] == '_' || unicode.IsLetter(runes[j]) || unicode.IsDigit(runes[j])) {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		default:
			return nil, domain.Configf("marker expression %q: invalid character %q", src, string(c))
		}
	}
	return tokens, nil
}

type exprParser struct {
	src      string
	tokens   []string
	pos      int
	declared *Set
}

func (p *exprParser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *exprParser) peek() string {
	if p.atEnd() {
		return ""
	}
	return p.tokens[p.pos]
}

func (p *exprParser) accept(token string) bool {
	if p.peek() == token {
		p.pos++
		return true
	}
	return false
}

func (p *exprParser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept("or") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *exprParser) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.accept("and") {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *exprParser) parseNot() (node, error) {
	if p.accept("not") {
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return notNode{operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *exprParser) parsePrimary() (node, error) {
	if p.accept("(") {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.accept(")") {
			return nil, domain.Configf("marker expression %q: missing closing parenthesis", p.src)
		}
		return inner, nil
	}
	tok := p.peek()
	if tok == "" || tok == ")" || tok == "and" || tok == "or" || tok == "not" {
		return nil, domain.Configf("marker expression %q: expected marker name, got %q", p.src, tok)
	}
	p.pos++
	if !validIdent(tok) {
		return nil, domain.Configf("marker expression %q: invalid marker name %q", p.src, tok)
	}
	if !p.declared.Declared(tok) {
		return nil, domain.Configf("marker expression references undeclared marker %q (declared: %s)", tok, declaredNames(p.declared))
	}
	return literal{name: tok}, nil
}

func validIdent(tok string) bool {
	for i, c := range tok {
		if i == 0 && unicode.IsDigit(c) {
			return false
		}
		if c != '_' && !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return false
		}
	}
	return len(tok) > 0
}

func declaredNames(s *Set) string {
	if s.Len() == 0 {
		return "none"
	}
	names := make([]string, 0, s.Len())
	for _, m := range s.List() {
		names = append(names, m.Name)
	}
	return strings.Join(names, ", ")
}

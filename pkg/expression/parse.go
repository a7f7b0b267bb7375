package expression

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenPath tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenLParen
	tokenRParen
	tokenComma
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			i++
		case ch == ',':
			tokens = append(tokens, token{kind: tokenComma, raw: ","})
			i++
		case ch == '\'' || ch == '"':
			quote := ch
			i++
			var b strings.Builder
			closed := false
			for i < len(input) {
				c := input[i]
				i++
				if c == '\\' && i < len(input) {
					b.WriteByte(input[i])
					i++
					continue
				}
				if c == quote {
					closed = true
					break
				}
				b.WriteByte(c)
			}
			if !closed {
				return nil, errors.New("expression: unterminated string literal")
			}
			tokens = append(tokens, token{kind: tokenString, raw: b.String()})
		default:
			start := i
			for i < len(input) && !isDelimiter(input[i]) {
				i++
			}
			raw := input[start:i]
			if raw == "" {
				return nil, fmt.Errorf("expression: unexpected %q", string(ch))
			}
			switch raw {
			case "true", "false":
				tokens = append(tokens, token{kind: tokenBool, raw: raw})
			case "null":
				tokens = append(tokens, token{kind: tokenNull, raw: raw})
			default:
				if looksLikeNumber(raw) {
					tokens = append(tokens, token{kind: tokenNumber, raw: raw})
				} else {
					tokens = append(tokens, token{kind: tokenPath, raw: raw})
				}
			}
		}
	}
	return tokens, nil
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', ',', '\'', '"':
		return true
	default:
		return false
	}
}

func looksLikeNumber(raw string) bool {
	if raw == "" {
		return false
	}
	ch := raw[0]
	if ch == '-' || ch == '+' {
		if len(raw) == 1 {
			return false
		}
		ch = raw[1]
	}
	return ch >= '0' && ch <= '9'
}

type node interface {
	eval(ev *Evaluator, scope *Scope) (any, error)
	paths(out []string) []string
}

type literalNode struct {
	value any
}

func (n literalNode) eval(*Evaluator, *Scope) (any, error) { return n.value, nil }

func (n literalNode) paths(out []string) []string { return out }

type pathNode struct {
	path string
}

func (n pathNode) eval(_ *Evaluator, scope *Scope) (any, error) {
	if scope == nil {
		return nil, nil
	}
	value, ok := scope.Lookup(n.path)
	if !ok {
		return nil, nil
	}
	return value, nil
}

func (n pathNode) paths(out []string) []string { return append(out, n.path) }

type callNode struct {
	name string
	args []node
}

func (n callNode) eval(ev *Evaluator, scope *Scope) (any, error) {
	op, ok := ev.operation(n.name)
	if !ok {
		return nil, fmt.Errorf("expression: unknown operation %q", n.name)
	}
	args := make([]any, 0, len(n.args))
	for _, arg := range n.args {
		value, err := arg.eval(ev, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}
	out, err := op(args...)
	if err != nil {
		return nil, fmt.Errorf("expression: %s: %w", n.name, err)
	}
	return out, nil
}

func (n callNode) paths(out []string) []string {
	for _, arg := range n.args {
		out = arg.paths(out)
	}
	return out
}

type tokenStream struct {
	tokens []token
	pos    int
}

func parseExpression(input string) (node, error) {
	tokens, err := tokenize(strings.TrimSpace(input))
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.New("expression: empty expression")
	}
	stream := &tokenStream{tokens: tokens}
	n, err := parseTerm(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("expression: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return n, nil
}

func parseTerm(stream *tokenStream) (node, error) {
	if stream.pos >= len(stream.tokens) {
		return nil, errors.New("expression: unexpected end of expression")
	}
	tok := stream.tokens[stream.pos]
	stream.pos++

	switch tok.kind {
	case tokenString:
		return literalNode{value: tok.raw}, nil
	case tokenNumber:
		value, err := strconv.ParseFloat(tok.raw, 64)
		if err != nil {
			return nil, fmt.Errorf("expression: invalid number literal %q", tok.raw)
		}
		return literalNode{value: value}, nil
	case tokenBool:
		return literalNode{value: tok.raw == "true"}, nil
	case tokenNull:
		return literalNode{value: nil}, nil
	case tokenPath:
		if !stream.match(tokenLParen) {
			return pathNode{path: tok.raw}, nil
		}
		call := callNode{name: tok.raw}
		if stream.match(tokenRParen) {
			return call, nil
		}
		for {
			arg, err := parseTerm(stream)
			if err != nil {
				return nil, err
			}
			call.args = append(call.args, arg)
			if stream.match(tokenComma) {
				continue
			}
			if stream.match(tokenRParen) {
				return call, nil
			}
			return nil, fmt.Errorf("expression: missing ')' after arguments of %q", tok.raw)
		}
	default:
		return nil, fmt.Errorf("expression: unexpected token %q", tok.raw)
	}
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) {
		return false
	}
	if s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ParseCSS parses a stylesheet. Supported selectors are compound selectors built from
// a type name, .class, #id, [attr] and [attr="value"], optionally comma-separated.
// Combinators and at-rules are skipped. Later rules override earlier ones.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	p := css.NewParser(parse.NewInput(strings.NewReader(content)), false)

	var selectors []string
	var props map[string]string
	atDepth := 0
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				return sheet, fmt.Errorf("parse css: %w", err)
			}
			return sheet, nil
		case css.BeginAtRuleGrammar:
			atDepth++
		case css.EndAtRuleGrammar:
			atDepth--
		case css.BeginRulesetGrammar:
			selectors = nil
			props = make(map[string]string)
			if atDepth > 0 {
				continue
			}
			for _, s := range strings.Split(joinTokens(p.Values()), ",") {
				if s = strings.TrimSpace(s); s != "" {
					selectors = append(selectors, s)
				}
			}
		case css.DeclarationGrammar:
			if props != nil {
				props[strings.ToLower(string(data))] = joinTokens(p.Values())
			}
		case css.EndRulesetGrammar:
			for _, s := range selectors {
				sel, ok := parseSelector(s)
				if !ok {
					continue
				}
				sheet.Rules = append(sheet.Rules, Rule{Selector: s, Props: props, sel: sel})
			}
			selectors = nil
			props = nil
		}
	}
}

// MustParseCSS is ParseCSS for stylesheets embedded in the binary.
func MustParseCSS(content string) *Stylesheet {
	sheet, err := ParseCSS(content)
	if err != nil {
		panic(err)
	}
	return sheet
}

func joinTokens(tokens []css.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			b.WriteByte(' ')
			continue
		}
		b.Write(t.Data)
	}
	return strings.TrimSpace(b.String())
}

type attrMatch struct {
	name     string
	value    string
	hasValue bool
}

// compound is one parsed compound selector; every part must match.
type compound struct {
	typ     string
	id      string
	classes []string
	attrs   []attrMatch
}

func isIdentByte(c byte) bool {
	return c == '-' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func readIdent(s string, i int) (string, int) {
	j := i
	for j < len(s) && isIdentByte(s[j]) {
		j++
	}
	return s[i:j], j
}

func parseSelector(s string) (compound, bool) {
	var sel compound
	i := 0
	for i < len(s) {
		switch c := s[i]; {
		case c == '.':
			name, j := readIdent(s, i+1)
			if name == "" {
				return compound{}, false
			}
			sel.classes = append(sel.classes, name)
			i = j
		case c == '#':
			name, j := readIdent(s, i+1)
			if name == "" {
				return compound{}, false
			}
			sel.id = name
			i = j
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return compound{}, false
			}
			body := s[i+1 : i+end]
			am := attrMatch{name: strings.TrimSpace(body)}
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				am.name = strings.TrimSpace(body[:eq])
				am.value = strings.Trim(strings.TrimSpace(body[eq+1:]), `"'`)
				am.hasValue = true
			}
			if am.name == "" {
				return compound{}, false
			}
			sel.attrs = append(sel.attrs, am)
			i += end + 1
		case c == '*':
			i++
		case isIdentByte(c) && i == 0:
			sel.typ, i = readIdent(s, i)
		default:
			return compound{}, false
		}
	}
	return sel, true
}

func (sel compound) matches(n *Node) bool {
	if sel.typ != "" && sel.typ != n.Type {
		return false
	}
	if sel.id != "" && sel.id != n.ID {
		return false
	}
	for _, c := range sel.classes {
		if !n.HasClass(c) {
			return false
		}
	}
	for _, a := range sel.attrs {
		v, ok := n.Attr(a.name)
		if !ok || a.hasValue && v != a.value {
			return false
		}
	}
	return true
}

// Matches reports whether selector (a comma-separated list of compound selectors)
// matches n. Unsupported selectors never match.
func Matches(n *Node, selector string) bool {
	for _, s := range strings.Split(selector, ",") {
		sel, ok := parseSelector(strings.TrimSpace(s))
		if ok && sel.matches(n) {
			return true
		}
	}
	return false
}

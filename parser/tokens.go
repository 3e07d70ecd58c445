package parser

import (
	"strings"

	"github.com/heathj/foreigncontent/parser/spec"
)

type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	endOfFileToken
	commentToken
	docTypeToken
)

var tokenTypeNames = [...]string{
	characterToken: "character",
	startTagToken:  "start tag",
	endTagToken:    "end tag",
	endOfFileToken: "end of file",
	commentToken:   "comment",
	docTypeToken:   "doctype",
}

func (t tokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "unknown"
}

// Token is a concrete token that is ready to be processed by the tree
// constructor. Attributes keep their source order; the foreign-content
// adjustments rewrite them in place.
type Token struct {
	TokenType        tokenType
	Attributes       []spec.Attr
	TagName          string
	PublicIdentifier string
	SystemIdentifier string
	SelfClosing      bool
	Data             string
}

// NewStartTagToken builds a start tag token with the given attributes.
func NewStartTagToken(name string, attrs ...spec.Attr) *Token {
	return &Token{
		TokenType:  startTagToken,
		TagName:    name,
		Attributes: attrs,
	}
}

// GetAttr returns the first attribute with the given name, or nil.
func (t *Token) GetAttr(name string) *spec.Attr {
	for i := range t.Attributes {
		if t.Attributes[i].Name == name {
			return &t.Attributes[i]
		}
	}
	return nil
}

// AddAttribute appends an attribute unless one with the same name was
// already committed; the first occurrence wins.
// https://html.spec.whatwg.org/multipage/parsing.html#attribute-name-state
func (t *Token) AddAttribute(name, value string) bool {
	if name == "" || t.GetAttr(name) != nil {
		return false
	}
	t.Attributes = append(t.Attributes, spec.NewAttr(name, value))
	return true
}

// parseDoctype splits the contents of a doctype token into its name and
// public and system identifiers.
// https://html.spec.whatwg.org/multipage/parsing.html#doctype-state
func parseDoctype(s string) (name, public, system string) {
	s = strings.TrimLeft(s, whitespace)
	i := strings.IndexAny(s, whitespace)
	if i < 0 {
		i = len(s)
	}
	name, s = strings.ToLower(s[:i]), strings.TrimLeft(s[i:], whitespace)

	if len(s) < 6 {
		return name, "", ""
	}
	keyword := strings.ToLower(s[:6])
	s = s[6:]
	switch keyword {
	case "public":
		var ok bool
		public, s, ok = quoted(s)
		if ok {
			system, _, _ = quoted(s)
		}
	case "system":
		system, _, _ = quoted(s)
	}
	return name, public, system
}

const whitespace = " \t\n\f\r"

func quoted(s string) (string, string, bool) {
	s = strings.TrimLeft(s, whitespace)
	if s == "" || (s[0] != '"' && s[0] != '\'') {
		return "", s, false
	}
	q := s[0]
	s = s[1:]
	i := strings.IndexByte(s, q)
	if i < 0 {
		return s, "", true
	}
	return s[:i], s[i+1:], true
}

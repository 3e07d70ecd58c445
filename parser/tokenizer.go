package parser

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/heathj/foreigncontent/parser/spec"
)

// HTMLTokenizer adapts the golang.org/x/net/html tokenizer to the Token
// shape the tree constructor consumes. The tree constructor reports its
// adjusted current node back through Progress so that raw text and CDATA
// handling follow the namespace of the element being built.
type HTMLTokenizer struct {
	z     *html.Tokenizer
	token *Token
	err   error
	done  bool
}

// NewHTMLTokenizer creates a tokenizer over an HTML stream.
func NewHTMLTokenizer(r io.Reader) *HTMLTokenizer {
	return &HTMLTokenizer{z: html.NewTokenizer(r)}
}

// Progress is what the tree constructor hands back to the tokenizer after
// each token.
type Progress struct {
	AdjustedCurrentNode *spec.Node
}

func MakeProgress(adjCurNode *spec.Node) *Progress {
	return &Progress{AdjustedCurrentNode: adjCurNode}
}

func (p *Progress) inForeignContent() bool {
	return p != nil && p.AdjustedCurrentNode != nil &&
		p.AdjustedCurrentNode.NodeType == spec.ElementNode &&
		p.AdjustedCurrentNode.Element.NamespaceURI != spec.Htmlns
}

// Next reads the next token. It returns false once the end of file token
// has been handed out or a read error occurred.
// https://html.spec.whatwg.org/multipage/parsing.html#tokenization
func (p *HTMLTokenizer) Next(progress *Progress) bool {
	if p.done {
		return false
	}

	foreign := progress.inForeignContent()
	if foreign {
		// a foreign <title> or <style> has element children, not raw text
		p.z.NextIsNotRawText()
	}
	// https://html.spec.whatwg.org/multipage/parsing.html#markup-declaration-open-state
	p.z.AllowCDATA(foreign)

	tt := p.z.Next()
	if tt == html.ErrorToken {
		p.done = true
		if err := p.z.Err(); err != io.EOF {
			p.err = errors.Wrap(err, "tokenize")
			p.token = nil
			return false
		}
		p.token = &Token{TokenType: endOfFileToken}
		return true
	}

	p.token = convertToken(p.z.Token())
	return true
}

// Token returns the token read by the last call to Next.
func (p *HTMLTokenizer) Token() *Token {
	return p.token
}

// Err returns the read error that stopped tokenization, if any.
func (p *HTMLTokenizer) Err() error {
	return p.err
}

func convertToken(tok html.Token) *Token {
	switch tok.Type {
	case html.TextToken:
		return &Token{TokenType: characterToken, Data: tok.Data}
	case html.StartTagToken, html.SelfClosingTagToken:
		t := &Token{
			TokenType:   startTagToken,
			TagName:     tok.Data,
			SelfClosing: tok.Type == html.SelfClosingTagToken,
		}
		for _, a := range tok.Attr {
			t.AddAttribute(a.Key, a.Val)
		}
		return t
	case html.EndTagToken:
		return &Token{TokenType: endTagToken, TagName: tok.Data}
	case html.CommentToken:
		return &Token{TokenType: commentToken, Data: tok.Data}
	case html.DoctypeToken:
		name, pub, sys := parseDoctype(tok.Data)
		return &Token{
			TokenType:        docTypeToken,
			TagName:          name,
			PublicIdentifier: pub,
			SystemIdentifier: sys,
		}
	}
	return &Token{TokenType: characterToken}
}

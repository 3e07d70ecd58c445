package parser

import (
	"strings"

	"github.com/sirupsen/logrus"
	a "golang.org/x/net/html/atom"

	"github.com/heathj/foreigncontent/parser/spec"
)

// ParseError is a recoverable tree construction error. Parsing always
// continues after one is recorded.
type ParseError uint

const (
	noError ParseError = iota
	generalParseError
	unexpectedNullCharacterParseError
	unexpectedDoctypeParseError
	unexpectedEndTagParseError
	foreignContentExitParseError
)

var parseErrorNames = [...]string{
	noError:                           "no-error",
	generalParseError:                 "general-parse-error",
	unexpectedNullCharacterParseError: "unexpected-null-character",
	unexpectedDoctypeParseError:       "unexpected-doctype",
	unexpectedEndTagParseError:        "unexpected-end-tag",
	foreignContentExitParseError:      "unexpected-html-start-tag-in-foreign-content",
}

func (e ParseError) String() string {
	if int(e) < len(parseErrorNames) {
		return parseErrorNames[e]
	}
	return "unknown"
}

// HTMLTreeConstructor builds a node tree from tokens. It runs a single
// body-like insertion mode: there are no implied html, head or body
// elements and no table or formatting-element recovery. What it does
// implement in full is the dispatch between HTML content and foreign
// content.
type HTMLTreeConstructor struct {
	log                 *logrus.Entry
	root                *spec.Node
	context             *spec.Node
	stackOfOpenElements spec.StackOfOpenElements
	seenDoctype         bool
	errors              []ParseError
}

// NewHTMLTreeConstructor creates a tree constructor that builds a
// document.
func NewHTMLTreeConstructor(c Config) *HTMLTreeConstructor {
	return &HTMLTreeConstructor{
		log:  c.entry(),
		root: spec.NewDocumentNode(),
	}
}

// NewFragmentTreeConstructor creates a tree constructor for the fragment
// case: nodes are parsed as if they were children of context.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-fragments
func NewFragmentTreeConstructor(c Config, context *spec.Node) *HTMLTreeConstructor {
	tc := NewHTMLTreeConstructor(c)
	tc.context = context
	html := spec.NewDOMElement("html", spec.Htmlns, nil)
	tc.root.AppendChild(html)
	tc.stackOfOpenElements.Push(html)
	tc.seenDoctype = true
	return tc
}

// Document returns the document built so far.
func (c *HTMLTreeConstructor) Document() *spec.Node {
	return c.root
}

// Fragment moves the parsed children of the fragment root into a new
// document fragment and returns it. It returns nil outside the fragment
// case.
func (c *HTMLTreeConstructor) Fragment() *spec.Node {
	if c.context == nil {
		return nil
	}
	frag := spec.NewDocumentFragmentNode()
	html := c.root.FirstChild()
	for html.HasChildNodes() {
		frag.AppendChild(html.FirstChild())
	}
	return frag
}

// Errors returns the parse errors recorded so far, in order.
func (c *HTMLTreeConstructor) Errors() []ParseError {
	return c.errors
}

// ProcessToken runs one token through tree construction and reports the
// adjusted current node back for the tokenizer.
// https://html.spec.whatwg.org/multipage/parsing.html#tree-construction-dispatcher
func (c *HTMLTreeConstructor) ProcessToken(t *Token) *Progress {
	var err ParseError
	if c.shouldProcessInForeignContent(t) {
		err = c.foreignContentHandler(t)
	} else {
		err = c.htmlContentHandler(t)
	}
	c.logError(t, err)
	return MakeProgress(c.adjustedCurrentNode())
}

// tracing reports whether Debug entries reach the logger, so trace fields
// are only built when they are written.
func (c *HTMLTreeConstructor) tracing() bool {
	return c.log.Logger.IsLevelEnabled(logrus.DebugLevel)
}

func (c *HTMLTreeConstructor) logError(t *Token, err ParseError) {
	if err == noError {
		return
	}
	c.errors = append(c.errors, err)
	if !c.tracing() {
		return
	}
	c.log.WithFields(logrus.Fields{
		"token": t.TokenType.String(),
		"tag":   t.TagName,
		"error": err.String(),
	}).Debug("parse error")
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjusted-current-node
func (c *HTMLTreeConstructor) adjustedCurrentNode() *spec.Node {
	if c.context != nil && len(c.stackOfOpenElements.NodeList) == 1 {
		return c.context
	}
	return c.stackOfOpenElements.Top()
}

func (c *HTMLTreeConstructor) shouldProcessInForeignContent(t *Token) bool {
	acn := c.adjustedCurrentNode()
	if acn == nil || acn.NodeType != spec.ElementNode || acn.Element.NamespaceURI == spec.Htmlns {
		return false
	}

	switch t.TokenType {
	case endOfFileToken:
		return false
	case startTagToken:
		if t.TagName != "mglyph" && t.TagName != "malignmark" && isIntegrationPointNode(acn, spec.Mathmlns) {
			if c.tracing() {
				c.log.WithField("node", acn.Element.TagName).Debug("mathml text integration point")
			}
			return false
		}
		if t.TagName == "svg" && acn.Element.NamespaceURI == spec.Mathmlns && acn.Element.TagName == "annotation-xml" {
			return false
		}
		if isIntegrationPointNode(acn, spec.Htmlns) {
			if c.tracing() {
				c.log.WithField("node", acn.Element.TagName).Debug("html integration point")
			}
			return false
		}
	case characterToken:
		if isIntegrationPointNode(acn, spec.Mathmlns) || isIntegrationPointNode(acn, spec.Htmlns) {
			return false
		}
	}
	return true
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
func (c *HTMLTreeConstructor) foreignContentHandler(t *Token) ParseError {
	switch t.TokenType {
	case characterToken:
		data := strings.ReplaceAll(t.Data, "\x00", "\ufffd")
		c.insertCharacter(data)
		if data != t.Data {
			return unexpectedNullCharacterParseError
		}
	case commentToken:
		c.insertComment(t)
	case docTypeToken:
		return unexpectedDoctypeParseError
	case startTagToken:
		if CausesExit(t) {
			return c.exitForeignContent(t)
		}

		ns := c.adjustedCurrentNode().Element.NamespaceURI
		switch ns {
		case spec.Mathmlns:
			AdjustTokenMathMLAttrs(t)
		case spec.Svgns:
			AdjustTokenSVGTagName(t)
			AdjustTokenSVGAttrs(t)
		}
		AdjustTokenXMLAttrs(t)
		c.insertForeignElementForToken(t, ns)
		if t.SelfClosing {
			c.popCurrentNode()
		}
	case endTagToken:
		if t.TagName == "br" || t.TagName == "p" {
			return c.exitForeignContent(t)
		}
		return c.foreignEndTagHandler(t)
	}
	return noError
}

// exitForeignContent pops until the current node is HTML or an integration
// point and hands t to HTML processing.
func (c *HTMLTreeConstructor) exitForeignContent(t *Token) ParseError {
	if c.tracing() {
		c.log.WithFields(logrus.Fields{
			"token": t.TokenType.String(),
			"tag":   t.TagName,
		}).Debug("exit foreign content")
	}
	c.stackOfOpenElements.PopUntilConditions(
		func(n *spec.Node) bool { return n.Element.NamespaceURI == spec.Htmlns },
		func(n *spec.Node) bool { return isIntegrationPointNode(n, spec.Nons) },
	)
	c.htmlContentHandler(t)
	return foreignContentExitParseError
}

func (c *HTMLTreeConstructor) foreignEndTagHandler(t *Token) ParseError {
	err := noError
	stack := c.stackOfOpenElements.NodeList
	if top := c.stackOfOpenElements.Top(); top != nil && strings.ToLower(top.Element.TagName) != t.TagName {
		err = unexpectedEndTagParseError
	}

	for i := len(stack) - 1; i >= 0; i-- {
		node := stack[i]
		if i == 0 && c.context != nil {
			return err
		}
		if strings.ToLower(node.Element.TagName) == t.TagName {
			c.popThrough(node)
			return err
		}
		if i > 0 && stack[i-1].Element.NamespaceURI == spec.Htmlns {
			c.htmlContentHandler(t)
			return err
		}
	}
	return err
}

// htmlContentHandler covers the parts of "in body" that foreign content
// interacts with.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *HTMLTreeConstructor) htmlContentHandler(t *Token) ParseError {
	switch t.TokenType {
	case characterToken:
		data := strings.ReplaceAll(t.Data, "\x00", "")
		if !c.insertCharacter(data) && strings.Trim(data, whitespace) != "" {
			return generalParseError
		}
		if data != t.Data {
			return unexpectedNullCharacterParseError
		}
	case commentToken:
		c.insertComment(t)
	case docTypeToken:
		if c.seenDoctype || c.hasDocumentElement() {
			return unexpectedDoctypeParseError
		}
		c.insertDoctype(t)
	case startTagToken:
		switch t.TagName {
		case "html":
			if html := c.openHTMLElement(); html != nil {
				mergeAttributes(html, t.Attributes)
				return generalParseError
			}
			c.insertHTMLElementForToken(t)
		case "math":
			AdjustTokenMathMLAttrs(t)
			AdjustTokenXMLAttrs(t)
			c.insertForeignElementForToken(t, spec.Mathmlns)
			if t.SelfClosing {
				c.popCurrentNode()
			}
		case "svg":
			AdjustTokenSVGAttrs(t)
			AdjustTokenXMLAttrs(t)
			c.insertForeignElementForToken(t, spec.Svgns)
			if t.SelfClosing {
				c.popCurrentNode()
			}
		default:
			c.insertHTMLElementForToken(t)
			if isVoidElement(t.TagName) {
				c.popCurrentNode()
			}
		}
	case endTagToken:
		switch t.TagName {
		case "html":
			return noError
		case "br":
			t.TokenType = startTagToken
			t.Attributes = nil
			c.htmlContentHandler(t)
			return unexpectedEndTagParseError
		}
		if isVoidElement(t.TagName) {
			return unexpectedEndTagParseError
		}
		n := c.elementInScope(t.TagName)
		if n == nil {
			return unexpectedEndTagParseError
		}
		c.popThrough(n)
	}
	return noError
}

func (c *HTMLTreeConstructor) hasDocumentElement() bool {
	for _, n := range c.root.ChildNodes {
		if n.NodeType == spec.ElementNode {
			return true
		}
	}
	return false
}

func (c *HTMLTreeConstructor) openHTMLElement() *spec.Node {
	if len(c.stackOfOpenElements.NodeList) == 0 {
		return nil
	}
	if bottom := c.stackOfOpenElements.NodeList[0]; bottom.IsHTML("html") {
		return bottom
	}
	return nil
}

// mergeAttributes adds the attributes elem does not already carry.
func mergeAttributes(elem *spec.Node, attrs []spec.Attr) {
	m := elem.AttributeMap()
	for _, attr := range attrs {
		if m.GetNamedItemNS(attr.NamespaceURI, attr.Name) == nil {
			m.SetNamedItem(attr)
		}
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#has-an-element-in-scope
var defaultScopeStopTags = map[spec.Namespace][]a.Atom{
	spec.Htmlns:   {a.Applet, a.Caption, a.Html, a.Table, a.Td, a.Th, a.Marquee, a.Object, a.Template},
	spec.Mathmlns: {a.AnnotationXml, a.Mi, a.Mn, a.Mo, a.Ms, a.Mtext},
	spec.Svgns:    {a.Desc, a.ForeignObject, a.Title},
}

// elementInScope returns the nearest open HTML element named tagName, or
// nil when a scope boundary comes first.
func (c *HTMLTreeConstructor) elementInScope(tagName string) *spec.Node {
	stack := c.stackOfOpenElements.NodeList
	for i := len(stack) - 1; i >= 0; i-- {
		n := stack[i]
		if n.IsHTML(tagName) {
			return n
		}
		tagAtom := a.Lookup([]byte(n.Element.TagName))
		for _, stop := range defaultScopeStopTags[n.Element.NamespaceURI] {
			if tagAtom == stop {
				return nil
			}
		}
	}
	return nil
}

func isVoidElement(tagName string) bool {
	switch a.Lookup([]byte(tagName)) {
	case a.Area, a.Base, a.Basefont, a.Bgsound, a.Br, a.Col, a.Embed, a.Frame, a.Hr,
		a.Img, a.Input, a.Keygen, a.Link, a.Meta, a.Param, a.Source, a.Track, a.Wbr:
		return true
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node
func (c *HTMLTreeConstructor) getAppropriatePlaceForInsertion() *spec.Node {
	target := c.stackOfOpenElements.Top()
	if target == nil {
		return c.root
	}
	if target.IsTemplate() {
		return target.Template.Content
	}
	return target
}

// createElementForToken creates an element from a token in the provided
// namespace. The element takes over the token's attributes.
// https://html.spec.whatwg.org/multipage/parsing.html#create-an-element-for-the-token
func createElementForToken(t *Token, ns spec.Namespace) *spec.Node {
	if ns == spec.Htmlns && t.TagName == "template" {
		n := spec.NewTemplateElement(t.TagName, ns, t.Attributes)
		n.SetContent(spec.NewDocumentFragmentNode())
		return n
	}
	return spec.NewDOMElement(t.TagName, ns, t.Attributes)
}

func (c *HTMLTreeConstructor) insertHTMLElementForToken(t *Token) *spec.Node {
	return c.insertForeignElementForToken(t, spec.Htmlns)
}

// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-foreign-element
func (c *HTMLTreeConstructor) insertForeignElementForToken(t *Token, ns spec.Namespace) *spec.Node {
	loc := c.getAppropriatePlaceForInsertion()
	elem := createElementForToken(t, ns)
	loc.AppendChild(elem)
	c.stackOfOpenElements.Push(elem)
	if c.tracing() {
		c.log.WithFields(logrus.Fields{
			"tag":       elem.Element.TagName,
			"namespace": ns.String(),
			"depth":     len(c.stackOfOpenElements.NodeList),
		}).Debug("push")
	}
	return elem
}

func (c *HTMLTreeConstructor) popCurrentNode() {
	if n := c.stackOfOpenElements.Pop(); n != nil && c.tracing() {
		c.log.WithField("tag", n.Element.TagName).Debug("pop")
	}
}

func (c *HTMLTreeConstructor) popThrough(n *spec.Node) {
	c.stackOfOpenElements.PopThrough(n)
	if c.tracing() {
		c.log.WithFields(logrus.Fields{
			"tag":   n.Element.TagName,
			"depth": len(c.stackOfOpenElements.NodeList),
		}).Debug("pop through")
	}
}

// insertCharacter appends data to the text node at the insertion point,
// creating one when needed. Text is never a child of the document; it
// reports false when data was dropped for that reason.
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-character
func (c *HTMLTreeConstructor) insertCharacter(data string) bool {
	if data == "" {
		return true
	}
	loc := c.getAppropriatePlaceForInsertion()
	if loc.NodeType == spec.DocumentNode {
		return false
	}

	if last := loc.LastChild(); last != nil && last.NodeType == spec.TextNode {
		last.AppendData(data)
		return true
	}
	loc.AppendChild(spec.NewTextNode(data))
	return true
}

// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-comment
func (c *HTMLTreeConstructor) insertComment(t *Token) {
	c.getAppropriatePlaceForInsertion().AppendChild(spec.NewComment(t.Data))
}

func (c *HTMLTreeConstructor) insertDoctype(t *Token) {
	c.seenDoctype = true
	c.root.AppendChild(spec.NewDocTypeNode(t.TagName, t.PublicIdentifier, t.SystemIdentifier))
	c.root.Document.Mode = quirksModeFor(t)
	if c.tracing() {
		c.log.WithField("mode", c.root.Document.Mode).Debug("doctype")
	}
}

// quirksModeFor is a reduced form of the initial insertion mode's doctype
// checks.
// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func quirksModeFor(t *Token) spec.QuirksMode {
	if t.TagName != "html" {
		return spec.Quirks
	}
	pub := strings.ToLower(t.PublicIdentifier)
	switch {
	case pub == "html",
		strings.HasPrefix(pub, "-//ietf//dtd html"),
		strings.HasPrefix(pub, "-//w3c//dtd html 3.2"),
		t.SystemIdentifier == "" && strings.HasPrefix(pub, "-//w3c//dtd html 4.01 frameset//"),
		t.SystemIdentifier == "" && strings.HasPrefix(pub, "-//w3c//dtd html 4.01 transitional//"):
		return spec.Quirks
	case strings.HasPrefix(pub, "-//w3c//dtd xhtml 1.0 frameset//"),
		strings.HasPrefix(pub, "-//w3c//dtd xhtml 1.0 transitional//"),
		strings.HasPrefix(pub, "-//w3c//dtd html 4.01 frameset//"),
		strings.HasPrefix(pub, "-//w3c//dtd html 4.01 transitional//"):
		return spec.LimitedQuirks
	}
	return spec.NoQuirks
}

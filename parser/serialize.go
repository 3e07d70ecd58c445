package parser

import (
	"strings"

	"github.com/heathj/foreigncontent/parser/spec"
)

// https://html.spec.whatwg.org/#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.Replace(s, "&", "&amp;", -1)
	s = strings.Replace(s, "\u00A0", "&nbsp;", -1)
	if attrVal {
		s = strings.Replace(s, "\"", "&quot;", -1)
	} else {
		s = strings.Replace(s, "<", "&lt;", -1)
		s = strings.Replace(s, ">", "&gt;", -1)
	}

	return s
}

// serializedAttrName is the attribute's serialized name. Foreign
// attributes get their conventional prefix back.
// https://html.spec.whatwg.org/multipage/parsing.html#attribute's-serialized-name
func serializedAttrName(a spec.Attr) string {
	switch a.NamespaceURI {
	case spec.Nons:
		return a.Name
	case spec.Xmlns:
		return "xml:" + a.Name
	case spec.Xmlnsns:
		if a.Name == "xmlns" {
			return "xmlns"
		}
		return "xmlns:" + a.Name
	case spec.Xlinkns:
		return "xlink:" + a.Name
	}
	return a.QualifiedName()
}

// SerializeHTMLFragment serializes the children of node back to markup.
// SVG and MathML names keep their adjusted case.
// https://html.spec.whatwg.org/multipage/parsing.html#serialising-html-fragments
func SerializeHTMLFragment(node *spec.Node) string {
	var sb strings.Builder
	serializeChildren(&sb, node)
	return sb.String()
}

func serializeChildren(sb *strings.Builder, node *spec.Node) {
	if node.NodeType == spec.ElementNode && node.Element.NamespaceURI == spec.Htmlns && isVoidElement(node.Element.TagName) {
		return
	}
	if node.IsTemplate() && node.Template.Content != nil {
		node = node.Template.Content
	}

	for _, child := range node.ChildNodes {
		switch child.NodeType {
		case spec.ElementNode:
			sb.WriteString("<" + child.Element.TagName)
			for _, a := range child.Attributes() {
				sb.WriteString(" " + serializedAttrName(a) + "=\"" + escapeString(a.Value, true) + "\"")
			}
			sb.WriteString(">")
			if child.Element.NamespaceURI == spec.Htmlns && isVoidElement(child.Element.TagName) {
				continue
			}
			serializeChildren(sb, child)
			sb.WriteString("</" + child.Element.TagName + ">")
		case spec.TextNode:
			if isRawTextParent(child.ParentNode) {
				sb.WriteString(child.Text.Value)
			} else {
				sb.WriteString(escapeString(child.Text.Value, false))
			}
		case spec.CommentNode:
			sb.WriteString("<!--" + child.Comment.Data + "-->")
		case spec.DocumentTypeNode:
			sb.WriteString("<!DOCTYPE " + child.DocumentType.Name + ">")
		}
	}
}

// Scripting is never enabled, so noscript content is escaped.
func isRawTextParent(n *spec.Node) bool {
	if n == nil || n.NodeType != spec.ElementNode || n.Element.NamespaceURI != spec.Htmlns {
		return false
	}
	switch n.Element.TagName {
	case "style", "script", "xmp", "iframe", "noembed", "noframes", "plaintext":
		return true
	}
	return false
}

package spec

import (
	"sort"
	"strings"
)

type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	AttrNode
	TextNode
	CDATASectionNode
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
)

// https://dom.spec.whatwg.org/#node
//
// A node is owned by at most one parent and appears exactly once in that
// parent's ChildNodes. Exactly one of the embedded type pointers is set,
// matching NodeType; template elements set both Element and Template.
type Node struct {
	NodeType   NodeType
	NodeName   string
	ParentNode *Node
	ChildNodes NodeList

	// Node types
	*Element
	*Template
	*Text
	*Comment
	*Document
	*DocumentType
	*DocumentFragment
}

// NewDocumentNode returns an empty no-quirks document.
func NewDocumentNode() *Node {
	return &Node{
		NodeType: DocumentNode,
		NodeName: "#document",
		Document: &Document{Mode: NoQuirks},
	}
}

func NewDocumentFragmentNode() *Node {
	return &Node{
		NodeType:         DocumentFragmentNode,
		NodeName:         "#document-fragment",
		DocumentFragment: &DocumentFragment{},
	}
}

func NewDocTypeNode(name, pub, sys string) *Node {
	return &Node{
		NodeType: DocumentTypeNode,
		NodeName: name,
		DocumentType: &DocumentType{
			Name:     name,
			PublicID: pub,
			SystemID: sys,
		},
	}
}

// NewDOMElement creates an element. The attribute slice is adopted, not
// copied.
func NewDOMElement(name string, namespace Namespace, attrs []Attr) *Node {
	e := &Element{
		TagName:      name,
		NamespaceURI: namespace,
	}
	if len(attrs) > 0 {
		e.attrs = attrs
	}
	return &Node{
		NodeType: ElementNode,
		NodeName: name,
		Element:  e,
	}
}

// NewTemplateElement creates a template element with no content yet; the
// tree builder assigns the content fragment with SetContent.
func NewTemplateElement(name string, namespace Namespace, attrs []Attr) *Node {
	n := NewDOMElement(name, namespace, attrs)
	n.Template = &Template{}
	return n
}

// NewComment returns a comment node with its Data section filled.
func NewComment(data string) *Node {
	return &Node{
		NodeType: CommentNode,
		NodeName: "#comment",
		Comment:  &Comment{Data: data},
	}
}

func NewTextNode(text string) *Node {
	return &Node{
		NodeType: TextNode,
		NodeName: "#text",
		Text:     &Text{Value: text},
	}
}

// IsHTML reports whether n is an element in the HTML namespace with the
// given local name.
func (n *Node) IsHTML(name string) bool {
	return n.NodeType == ElementNode && n.Element.NamespaceURI == Htmlns && n.Element.TagName == name
}

// IsTemplate reports whether n is a template element with contents.
func (n *Node) IsTemplate() bool {
	return n.Template != nil
}

func (n *Node) HasChildNodes() bool {
	return len(n.ChildNodes) > 0
}

func (n *Node) FirstChild() *Node {
	if len(n.ChildNodes) == 0 {
		return nil
	}
	return n.ChildNodes[0]
}

func (n *Node) LastChild() *Node {
	if len(n.ChildNodes) == 0 {
		return nil
	}
	return n.ChildNodes[len(n.ChildNodes)-1]
}

// Contains reports whether on is n or one of its descendants.
// https://dom.spec.whatwg.org/#dom-node-contains
func (n *Node) Contains(on *Node) bool {
	for i := on; i != nil; i = i.ParentNode {
		if i == n {
			return true
		}
	}
	return false
}

// AppendChild moves on to the end of n's children. It returns nil without
// changing anything if on is n or one of n's ancestors.
// https://dom.spec.whatwg.org/#concept-node-append
func (n *Node) AppendChild(on *Node) *Node {
	if on == nil || on.Contains(n) {
		return nil
	}
	on.detach()
	on.ParentNode = n
	n.ChildNodes = append(n.ChildNodes, on)
	return on
}

// InsertBefore inserts on right before child. A nil child appends.
// https://dom.spec.whatwg.org/#concept-node-pre-insert
func (n *Node) InsertBefore(on, child *Node) *Node {
	if child == nil {
		return n.AppendChild(on)
	}
	if on == nil || child.ParentNode != n || on.Contains(n) {
		return nil
	}
	if on == child {
		return on
	}
	on.detach()
	n.ChildNodes.WedgeIn(n.ChildNodes.Contains(child), on)
	on.ParentNode = n
	return on
}

// RemoveChild detaches child from n and returns it, or nil when child is
// not one of n's children.
func (n *Node) RemoveChild(child *Node) *Node {
	if child == nil || child.ParentNode != n {
		return nil
	}
	node := n.ChildNodes.Remove(n.ChildNodes.Contains(child))
	if node != nil {
		node.ParentNode = nil
	}
	return node
}

func (n *Node) detach() {
	if n.ParentNode != nil {
		n.ParentNode.RemoveChild(n)
	}
}

func indent(level int) string {
	return "| " + strings.Repeat("  ", level)
}

// serializeNodeType renders a single node line in the html5lib tree-dump
// format, plus attribute lines for elements.
func serializeNodeType(node *Node, level int) string {
	switch node.NodeType {
	case ElementNode:
		e := "<"
		switch ns := node.Element.NamespaceURI; ns {
		case Svgns, Mathmlns:
			e += ns.String() + " "
		}
		e += node.Element.TagName + ">"

		attrs := node.Attributes()
		if len(attrs) == 0 {
			return e
		}
		lines := make([]string, 0, len(attrs))
		for _, attr := range attrs {
			name := attr.Name
			switch attr.NamespaceURI {
			case Xlinkns, Xmlns, Xmlnsns:
				name = attr.NamespaceURI.String() + " " + attr.Name
			}
			lines = append(lines, name+"=\""+attr.Value+"\"")
		}
		sort.Strings(lines)
		for _, l := range lines {
			e += "\n" + indent(level+1) + l
		}
		return e
	case TextNode:
		return "\"" + node.Text.Value + "\""
	case CommentNode:
		return "<!-- " + node.Comment.Data + " -->"
	case DocumentTypeNode:
		d := "<!DOCTYPE " + node.DocumentType.Name
		if node.DocumentType.PublicID != "" || node.DocumentType.SystemID != "" {
			d += " \"" + node.DocumentType.PublicID + "\" \"" + node.DocumentType.SystemID + "\""
		}
		return d + ">"
	}
	return node.NodeName
}

func (node *Node) serialize(sb *strings.Builder, level int) {
	child := level
	if node.NodeType == DocumentNode || node.NodeType == DocumentFragmentNode {
		sb.WriteString(node.NodeName + "\n")
		child = 0
	} else {
		sb.WriteString(indent(level) + serializeNodeType(node, level) + "\n")
		child = level + 1
	}

	if node.IsTemplate() && node.Template.Content != nil {
		sb.WriteString(indent(child) + "content\n")
		for _, c := range node.Template.Content.ChildNodes {
			c.serialize(sb, child+1)
		}
	}
	for _, c := range node.ChildNodes {
		c.serialize(sb, child)
	}
}

// String dumps the subtree rooted at node in the html5lib tree-construction
// test format.
func (node *Node) String() string {
	var sb strings.Builder
	node.serialize(&sb, 0)
	return strings.TrimRight(sb.String(), "\n")
}

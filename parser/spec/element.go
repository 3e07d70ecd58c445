package spec

// zeroAttrs is handed out by every element that has no attributes yet.
// Its capacity is zero, so the first append always copies.
var zeroAttrs = []Attr{}

// Element is the element half of https://dom.spec.whatwg.org/#interface-element.
type Element struct {
	TagName      string
	NamespaceURI Namespace
	attrs        []Attr
}

// Attributes returns the element's attributes in source order.
func (e *Element) Attributes() []Attr {
	if e.attrs == nil {
		return zeroAttrs
	}
	return e.attrs
}

// PushAttribute appends an attribute.
func (e *Element) PushAttribute(a Attr) {
	e.attrs = append(e.Attributes(), a)
}

// GetAttribute returns the value of the first attribute whose qualified
// name is name.
func (e *Element) GetAttribute(name string) (string, bool) {
	if a := e.AttributeMap().GetNamedItem(name); a != nil {
		return a.Value, true
	}
	return "", false
}

// GetAttributeNS is GetAttribute by namespace and local name.
func (e *Element) GetAttributeNS(ns Namespace, name string) (string, bool) {
	if a := e.AttributeMap().GetNamedItemNS(ns, name); a != nil {
		return a.Value, true
	}
	return "", false
}

// Template holds the inert content of a template element.
// https://html.spec.whatwg.org/multipage/scripting.html#template-contents
type Template struct {
	Content *Node
}

// SetContent assigns the template contents. It only succeeds once.
func (t *Template) SetContent(n *Node) bool {
	if t.Content != nil || n == nil {
		return false
	}
	t.Content = n
	return true
}

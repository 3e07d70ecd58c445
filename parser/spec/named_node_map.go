package spec

// NamedNodeMap is a view over an element's attribute list.
// https://dom.spec.whatwg.org/#interface-namednodemap
type NamedNodeMap struct {
	AssociatedElement *Element
}

// AttributeMap returns the NamedNodeMap of e.
func (e *Element) AttributeMap() NamedNodeMap {
	return NamedNodeMap{AssociatedElement: e}
}

func (n NamedNodeMap) Length() int {
	return len(n.AssociatedElement.attrs)
}

// GetNamedItem returns the first attribute whose qualified name is qn.
// Names are lowercased first on HTML elements.
// https://dom.spec.whatwg.org/#concept-element-attributes-get-by-name
func (n NamedNodeMap) GetNamedItem(qn string) *Attr {
	if n.AssociatedElement.NamespaceURI == Htmlns {
		qn = asciiLower(qn)
	}
	attrs := n.AssociatedElement.attrs
	for i := range attrs {
		if attrs[i].QualifiedName() == qn {
			return &attrs[i]
		}
	}
	return nil
}

// https://dom.spec.whatwg.org/#concept-element-attributes-get-by-namespace
func (n NamedNodeMap) GetNamedItemNS(ns Namespace, localName string) *Attr {
	attrs := n.AssociatedElement.attrs
	for i := range attrs {
		if attrs[i].NamespaceURI == ns && attrs[i].Name == localName {
			return &attrs[i]
		}
	}
	return nil
}

// SetNamedItem replaces the attribute with the same namespace and local
// name, or appends attr when there is none. It returns the replaced
// attribute's old value.
// https://dom.spec.whatwg.org/#concept-element-attributes-set
func (n NamedNodeMap) SetNamedItem(attr Attr) (string, bool) {
	if old := n.GetNamedItemNS(attr.NamespaceURI, attr.Name); old != nil {
		v := old.Value
		*old = attr
		return v, true
	}
	n.AssociatedElement.PushAttribute(attr)
	return "", false
}

package spec

import "hash/fnv"

// Attr is https://dom.spec.whatwg.org/#attr minus the owner pointer.
// Attributes are plain values owned by exactly one element or token and
// are adjusted in place.
type Attr struct {
	NamespaceURI Namespace
	Prefix       string
	Name         string
	Value        string
}

// NewAttr creates an attribute with no namespace and no prefix, the shape
// the tokenizer emits.
func NewAttr(name, value string) Attr {
	return Attr{Name: name, Value: value}
}

// Equal compares namespace and value exactly and prefix and name ASCII
// case-insensitively. The tree builder uses it to merge duplicates.
func (a Attr) Equal(o Attr) bool {
	return a.NamespaceURI == o.NamespaceURI &&
		asciiLower(a.Prefix) == asciiLower(o.Prefix) &&
		asciiLower(a.Name) == asciiLower(o.Name) &&
		a.Value == o.Value
}

// Hash is consistent with Equal.
func (a Attr) Hash() uint64 {
	h := fnv.New64a()
	h.Write([]byte{byte(a.NamespaceURI), 0})
	h.Write([]byte(asciiLower(a.Prefix)))
	h.Write([]byte{0})
	h.Write([]byte(asciiLower(a.Name)))
	h.Write([]byte{0})
	h.Write([]byte(a.Value))
	return h.Sum64()
}

// QualifiedName returns prefix:name, or name when there is no prefix.
func (a Attr) QualifiedName() string {
	if a.Prefix == "" {
		return a.Name
	}
	return a.Prefix + ":" + a.Name
}

func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

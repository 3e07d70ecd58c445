package spec

import "github.com/pkg/errors"

// Namespace is the closed set of namespaces the parser ever assigns.
// Nons is the zero value and stands for "no namespace": attributes that
// were never adjusted, or an unset foreign-content context.
type Namespace uint

const (
	Nons Namespace = iota
	Htmlns
	Mathmlns
	Svgns
	Xlinkns
	Xmlns
	Xmlnsns
)

// https://infra.spec.whatwg.org/#namespaces
var namespaceURIs = [...]string{
	Nons:     "",
	Htmlns:   "http://www.w3.org/1999/xhtml",
	Mathmlns: "http://www.w3.org/1998/Math/MathML",
	Svgns:    "http://www.w3.org/2000/svg",
	Xlinkns:  "http://www.w3.org/1999/xlink",
	Xmlns:    "http://www.w3.org/XML/1998/namespace",
	Xmlnsns:  "http://www.w3.org/2000/xmlns/",
}

var namespaceNames = [...]string{
	Nons:     "",
	Htmlns:   "html",
	Mathmlns: "math",
	Svgns:    "svg",
	Xlinkns:  "xlink",
	Xmlns:    "xml",
	Xmlnsns:  "xmlns",
}

// URI returns the namespace URI, or the empty string for Nons.
func (n Namespace) URI() string {
	if int(n) < len(namespaceURIs) {
		return namespaceURIs[n]
	}
	return ""
}

// String returns the short name html5lib tree dumps use for the namespace.
func (n Namespace) String() string {
	if int(n) < len(namespaceNames) {
		return namespaceNames[n]
	}
	return "unknown"
}

// ParseNamespace maps a short name ("html", "svg", "math") or a full
// namespace URI back to its Namespace.
func ParseNamespace(s string) (Namespace, error) {
	for i := range namespaceNames {
		if s == namespaceNames[i] || s == namespaceURIs[i] {
			return Namespace(i), nil
		}
	}
	return Nons, errors.Errorf("unknown namespace %q", s)
}

// ValidForeignContext reports whether ns may be used as the enclosing
// foreign-content context of an integration point check. Only the element
// namespaces and the Nons sentinel are allowed; the attribute-only
// namespaces (xlink, xml, xmlns) never describe a context.
func ValidForeignContext(ns Namespace) error {
	switch ns {
	case Nons, Htmlns, Mathmlns, Svgns:
		return nil
	}
	return errors.Errorf("invalid foreign namespace context %q", ns)
}

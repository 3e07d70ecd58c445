package spec

// QuirksMode is https://dom.spec.whatwg.org/#concept-document-mode.
type QuirksMode string

const (
	NoQuirks      QuirksMode = "no-quirks"
	Quirks        QuirksMode = "quirks"
	LimitedQuirks QuirksMode = "limited-quirks"
)

// Document is https://dom.spec.whatwg.org/#interface-document.
type Document struct {
	Mode QuirksMode
}

// DocumentFragment is https://dom.spec.whatwg.org/#documentfragment.
type DocumentFragment struct{}

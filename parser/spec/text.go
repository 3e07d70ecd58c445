package spec

// https://dom.spec.whatwg.org/#text
type Text struct {
	Value string
}

// AppendData adds to the text. The tree builder coalesces adjacent
// character tokens through it.
func (t *Text) AppendData(s string) {
	t.Value += s
}

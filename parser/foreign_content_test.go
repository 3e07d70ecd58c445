package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/foreigncontent/parser/spec"
)

func TestAdjustTokenSVGAttrs(t *testing.T) {
	for lower, adjusted := range svgAttrsAdjustmentMap {
		t.Run(lower, func(t *testing.T) {
			tok := NewStartTagToken("path", spec.NewAttr(lower, "v"))
			AdjustTokenSVGAttrs(tok)
			require.Len(t, tok.Attributes, 1)
			assert.Equal(t, spec.Attr{Name: adjusted, Value: "v"}, tok.Attributes[0])
		})
	}

	tok := NewStartTagToken("path", spec.NewAttr("d", "M0 0"), spec.NewAttr("foo", "bar"))
	AdjustTokenSVGAttrs(tok)
	assert.Equal(t, []spec.Attr{spec.NewAttr("d", "M0 0"), spec.NewAttr("foo", "bar")}, tok.Attributes)
}

func TestAdjustTokenSVGAttrsEveryAttribute(t *testing.T) {
	tok := NewStartTagToken("svg",
		spec.NewAttr("viewbox", "0 0 1 1"),
		spec.NewAttr("class", "a"),
		spec.NewAttr("preserveaspectratio", "none"),
	)
	AdjustTokenSVGAttrs(tok)
	assert.Equal(t, "viewBox", tok.Attributes[0].Name)
	assert.Equal(t, "class", tok.Attributes[1].Name)
	assert.Equal(t, "preserveAspectRatio", tok.Attributes[2].Name)
}

func TestAdjustTokenXMLAttrs(t *testing.T) {
	for key, adj := range xmlAttrsAdjustmentMap {
		t.Run(key, func(t *testing.T) {
			tok := NewStartTagToken("svg", spec.NewAttr(key, "v"))
			AdjustTokenXMLAttrs(tok)
			require.Len(t, tok.Attributes, 1)
			assert.Equal(t, spec.Attr{
				NamespaceURI: adj.namespace,
				Prefix:       adj.prefix,
				Name:         adj.name,
				Value:        "v",
			}, tok.Attributes[0])
		})
	}
}

func TestAdjustTokenXMLAttrsTable(t *testing.T) {
	assert.Len(t, xmlAttrsAdjustmentMap, 12)

	tok := NewStartTagToken("use", spec.NewAttr("xlink:href", "#a"), spec.NewAttr("href", "#b"))
	AdjustTokenXMLAttrs(tok)
	assert.Equal(t, spec.Attr{NamespaceURI: spec.Xlinkns, Prefix: "xlink", Name: "href", Value: "#a"}, tok.Attributes[0])
	assert.Equal(t, spec.NewAttr("href", "#b"), tok.Attributes[1])

	tok = NewStartTagToken("svg", spec.NewAttr("xmlns", "http://www.w3.org/2000/svg"))
	AdjustTokenXMLAttrs(tok)
	assert.Equal(t, spec.Xmlnsns, tok.Attributes[0].NamespaceURI)
	assert.Equal(t, "", tok.Attributes[0].Prefix)
	assert.Equal(t, "xmlns", tok.Attributes[0].Name)
}

func TestAdjustTokenMathMLAttrs(t *testing.T) {
	tok := NewStartTagToken("math", spec.NewAttr("definitionurl", "a"), spec.NewAttr("foo", "b"))
	first := &tok.Attributes[0]
	AdjustTokenMathMLAttrs(tok)
	assert.Equal(t, []spec.Attr{spec.NewAttr("definitionURL", "a"), spec.NewAttr("foo", "b")}, tok.Attributes)
	assert.Same(t, first, &tok.Attributes[0], "attributes are adjusted in place")

	tok = NewStartTagToken("math", spec.NewAttr("definitionurl", "a"), spec.NewAttr("definitionurl", "b"))
	AdjustTokenMathMLAttrs(tok)
	assert.Equal(t, "definitionURL", tok.Attributes[0].Name)
	assert.Equal(t, "definitionurl", tok.Attributes[1].Name, "only the first match is renamed")

	tok = NewStartTagToken("mi", spec.NewAttr("mathvariant", "bold"))
	AdjustTokenMathMLAttrs(tok)
	assert.Equal(t, []spec.Attr{spec.NewAttr("mathvariant", "bold")}, tok.Attributes)
}

func TestAdjustTokenSVGTagName(t *testing.T) {
	for lower, adjusted := range svgTagNamesAdjustmentMap {
		tok := NewStartTagToken(lower)
		AdjustTokenSVGTagName(tok)
		assert.Equal(t, adjusted, tok.TagName)

		// already adjusted names are not keys, so adjusting twice is a no-op
		AdjustTokenSVGTagName(tok)
		assert.Equal(t, adjusted, tok.TagName)
	}

	tok := NewStartTagToken("circle")
	AdjustTokenSVGTagName(tok)
	assert.Equal(t, "circle", tok.TagName)
}

func TestCausesExit(t *testing.T) {
	tests := []struct {
		name string
		tok  *Token
		exit bool
	}{
		{"div", NewStartTagToken("div"), true},
		{"h6", NewStartTagToken("h6"), true},
		{"table", NewStartTagToken("table"), true},
		{"font color", NewStartTagToken("font", spec.NewAttr("color", "red")), true},
		{"font size", NewStartTagToken("font", spec.NewAttr("size", "2")), true},
		{"font face", NewStartTagToken("font", spec.NewAttr("style", "x"), spec.NewAttr("face", "serif")), true},
		{"font style", NewStartTagToken("font", spec.NewAttr("style", "x")), false},
		{"font", NewStartTagToken("font"), false},
		{"svg", NewStartTagToken("svg"), false},
		{"path", NewStartTagToken("path"), false},
		{"uppercase", NewStartTagToken("DIV"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exit, CausesExit(tt.tok))
		})
	}

	for name := range exitsForeignContent {
		assert.True(t, CausesExit(NewStartTagToken(name)), name)
	}
}

func TestIsIntegrationPoint(t *testing.T) {
	html := []spec.Attr{spec.NewAttr("encoding", "text/html")}
	tests := []struct {
		name    string
		tagName string
		ns      spec.Namespace
		attrs   []spec.Attr
		ctx     spec.Namespace
		want    bool
	}{
		{"annotation-xml text/html", "annotation-xml", spec.Mathmlns, html, spec.Nons, true},
		{"annotation-xml upper case", "annotation-xml", spec.Mathmlns, []spec.Attr{spec.NewAttr("encoding", "TEXT/HTML")}, spec.Nons, true},
		{"annotation-xml xhtml", "annotation-xml", spec.Mathmlns, []spec.Attr{spec.NewAttr("encoding", "application/xhtml+xml")}, spec.Nons, true},
		{"annotation-xml no encoding", "annotation-xml", spec.Mathmlns, nil, spec.Nons, false},
		{"annotation-xml other encoding", "annotation-xml", spec.Mathmlns, []spec.Attr{spec.NewAttr("encoding", "image/svg+xml")}, spec.Nons, false},
		{"annotation-xml first encoding wins", "annotation-xml", spec.Mathmlns, []spec.Attr{
			spec.NewAttr("encoding", "text/plain"),
			spec.NewAttr("encoding", "text/html"),
		}, spec.Nons, false},
		{"annotation-xml html ctx", "annotation-xml", spec.Mathmlns, html, spec.Htmlns, true},
		{"annotation-xml mathml ctx", "annotation-xml", spec.Mathmlns, html, spec.Mathmlns, false},
		{"annotation-xml in svg", "annotation-xml", spec.Svgns, html, spec.Nons, false},
		{"foreignObject", "foreignObject", spec.Svgns, nil, spec.Nons, true},
		{"desc", "desc", spec.Svgns, nil, spec.Nons, true},
		{"title", "title", spec.Svgns, nil, spec.Htmlns, true},
		{"title mathml ctx", "title", spec.Svgns, nil, spec.Mathmlns, false},
		{"html title", "title", spec.Htmlns, nil, spec.Nons, false},
		{"foreignobject lower case", "foreignobject", spec.Svgns, nil, spec.Nons, false},
		{"mi", "mi", spec.Mathmlns, nil, spec.Nons, true},
		{"mtext mathml ctx", "mtext", spec.Mathmlns, nil, spec.Mathmlns, true},
		{"mi svg ctx", "mi", spec.Mathmlns, nil, spec.Svgns, false},
		{"mi html ctx", "mi", spec.Mathmlns, nil, spec.Htmlns, false},
		{"mi in svg", "mi", spec.Svgns, nil, spec.Nons, false},
		{"desc svg ctx", "desc", spec.Svgns, nil, spec.Svgns, false},
		{"circle", "circle", spec.Svgns, nil, spec.Nons, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsIntegrationPoint(tt.tagName, tt.ns, tt.attrs, tt.ctx))
		})
	}
}

func TestIsIntegrationPointInvalidContext(t *testing.T) {
	assert.Panics(t, func() {
		IsIntegrationPoint("mi", spec.Mathmlns, nil, spec.Xlinkns)
	})
}

func TestIsMathMLTextIntegrationPoint(t *testing.T) {
	for _, name := range []string{"mi", "mo", "mn", "ms", "mtext"} {
		assert.True(t, IsMathMLTextIntegrationPoint(name, spec.Mathmlns), name)
		assert.False(t, IsMathMLTextIntegrationPoint(name, spec.Htmlns), name)
	}
	assert.False(t, IsMathMLTextIntegrationPoint("annotation-xml", spec.Mathmlns))
}

// The adjustments run in a fixed order for a token entering SVG content;
// the XML pass runs last and owns the namespace.
func TestSVGAdjustmentOrder(t *testing.T) {
	tok := NewStartTagToken("lineargradient",
		spec.NewAttr("gradientunits", "userSpaceOnUse"),
		spec.NewAttr("xlink:href", "#g"),
	)
	AdjustTokenSVGTagName(tok)
	AdjustTokenSVGAttrs(tok)
	AdjustTokenXMLAttrs(tok)

	assert.Equal(t, "linearGradient", tok.TagName)
	assert.Equal(t, []spec.Attr{
		spec.NewAttr("gradientUnits", "userSpaceOnUse"),
		{NamespaceURI: spec.Xlinkns, Prefix: "xlink", Name: "href", Value: "#g"},
	}, tok.Attributes)
}

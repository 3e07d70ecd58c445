package parser

import (
	"strings"

	"github.com/heathj/foreigncontent/parser/spec"
)

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign

const (
	textHTML         = "text/html"
	applicationXHTML = "application/xhtml+xml"

	definitionURLAttr         = "definitionurl"
	adjustedDefinitionURLAttr = "definitionURL"
)

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-svg-attributes
var svgAttrsAdjustmentMap = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

type xmlAdjustment struct {
	prefix    string
	name      string
	namespace spec.Namespace
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-foreign-attributes
var xmlAttrsAdjustmentMap = map[string]xmlAdjustment{
	"xlink:actuate": {"xlink", "actuate", spec.Xlinkns},
	"xlink:arcrole": {"xlink", "arcrole", spec.Xlinkns},
	"xlink:href":    {"xlink", "href", spec.Xlinkns},
	"xlink:role":    {"xlink", "role", spec.Xlinkns},
	"xlink:show":    {"xlink", "show", spec.Xlinkns},
	"xlink:title":   {"xlink", "title", spec.Xlinkns},
	"xlink:type":    {"xlink", "type", spec.Xlinkns},
	"xml:base":      {"xml", "base", spec.Xmlns},
	"xml:lang":      {"xml", "lang", spec.Xmlns},
	"xml:space":     {"xml", "space", spec.Xmlns},
	"xmlns":         {"", "xmlns", spec.Xmlnsns},
	"xmlns:xlink":   {"xmlns", "xlink", spec.Xmlnsns},
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
// (the table under "any other start tag" for the SVG namespace)
var svgTagNamesAdjustmentMap = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

// Start tags that always break out of foreign content.
var exitsForeignContent = map[string]bool{
	"b":          true,
	"big":        true,
	"blockquote": true,
	"body":       true,
	"br":         true,
	"center":     true,
	"code":       true,
	"dd":         true,
	"div":        true,
	"dl":         true,
	"dt":         true,
	"em":         true,
	"embed":      true,
	"h1":         true,
	"h2":         true,
	"h3":         true,
	"h4":         true,
	"h5":         true,
	"h6":         true,
	"head":       true,
	"hr":         true,
	"i":          true,
	"img":        true,
	"li":         true,
	"listing":    true,
	"menu":       true,
	"meta":       true,
	"nobr":       true,
	"ol":         true,
	"p":          true,
	"pre":        true,
	"ruby":       true,
	"s":          true,
	"small":      true,
	"span":       true,
	"strong":     true,
	"strike":     true,
	"sub":        true,
	"sup":        true,
	"table":      true,
	"tt":         true,
	"u":          true,
	"ul":         true,
	"var":        true,
}

// CausesExit reports whether a start tag seen in foreign content makes
// the parser pop back to HTML content. A font tag only does so when it
// carries a color, face or size attribute.
func CausesExit(t *Token) bool {
	if t.TagName == "font" && (t.GetAttr("color") != nil || t.GetAttr("size") != nil || t.GetAttr("face") != nil) {
		return true
	}
	return exitsForeignContent[t.TagName]
}

// AdjustTokenMathMLAttrs renames the first definitionurl attribute to
// definitionURL.
// https://html.spec.whatwg.org/multipage/parsing.html#adjust-mathml-attributes
func AdjustTokenMathMLAttrs(t *Token) {
	for i := range t.Attributes {
		if t.Attributes[i].Name == definitionURLAttr {
			t.Attributes[i].Name = adjustedDefinitionURLAttr
			break
		}
	}
}

// AdjustTokenSVGAttrs restores the camel case of SVG attribute names.
func AdjustTokenSVGAttrs(t *Token) {
	for i := range t.Attributes {
		if adjusted, ok := svgAttrsAdjustmentMap[t.Attributes[i].Name]; ok {
			t.Attributes[i].Name = adjusted
		}
	}
}

// AdjustTokenXMLAttrs assigns prefix and namespace to the xlink, xml and
// xmlns attributes. It must run after the other attribute adjustments.
func AdjustTokenXMLAttrs(t *Token) {
	for i := range t.Attributes {
		attr := &t.Attributes[i]
		if adj, ok := xmlAttrsAdjustmentMap[attr.Name]; ok {
			attr.Prefix = adj.prefix
			attr.Name = adj.name
			attr.NamespaceURI = adj.namespace
		}
	}
}

// AdjustTokenSVGTagName restores the camel case of SVG element names.
func AdjustTokenSVGTagName(t *Token) {
	if adjusted, ok := svgTagNamesAdjustmentMap[t.TagName]; ok {
		t.TagName = adjusted
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#mathml-text-integration-point
func IsMathMLTextIntegrationPoint(tagName string, ns spec.Namespace) bool {
	if ns != spec.Mathmlns {
		return false
	}
	switch tagName {
	case "mi", "mo", "mn", "ms", "mtext":
		return true
	}
	return false
}

// IsHTMLIntegrationPoint only looks at the first encoding attribute of an
// annotation-xml element.
// https://html.spec.whatwg.org/multipage/parsing.html#html-integration-point
func IsHTMLIntegrationPoint(tagName string, ns spec.Namespace, attrs []spec.Attr) bool {
	if ns == spec.Mathmlns && tagName == "annotation-xml" {
		for _, attr := range attrs {
			if attr.Name == "encoding" {
				return strings.EqualFold(attr.Value, textHTML) || strings.EqualFold(attr.Value, applicationXHTML)
			}
		}
	}

	if ns != spec.Svgns {
		return false
	}
	switch tagName {
	case "foreignObject", "desc", "title":
		return true
	}
	return false
}

// IsIntegrationPoint is the check the tree constructor runs against
// elements on the stack of open elements. foreignNS narrows the check:
// Htmlns only asks for HTML integration points, Mathmlns only for MathML
// text integration points, and Nons asks for either. Svgns matches
// nothing. Any other value is a caller bug and panics.
func IsIntegrationPoint(tagName string, ns spec.Namespace, attrs []spec.Attr, foreignNS spec.Namespace) bool {
	if err := spec.ValidForeignContext(foreignNS); err != nil {
		panic(err)
	}

	if (foreignNS == spec.Nons || foreignNS == spec.Htmlns) && IsHTMLIntegrationPoint(tagName, ns, attrs) {
		return true
	}

	if (foreignNS == spec.Nons || foreignNS == spec.Mathmlns) && IsMathMLTextIntegrationPoint(tagName, ns) {
		return true
	}

	return false
}

// isIntegrationPointNode runs IsIntegrationPoint against an element node.
func isIntegrationPointNode(n *spec.Node, foreignNS spec.Namespace) bool {
	if n == nil || n.NodeType != spec.ElementNode {
		return false
	}
	return IsIntegrationPoint(n.Element.TagName, n.Element.NamespaceURI, n.Attributes(), foreignNS)
}

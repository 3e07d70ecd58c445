package parser

import (
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heathj/foreigncontent/parser/spec"
)

type docFragmentTest struct {
	enabled    bool
	contextTag string
	contextNS  spec.Namespace
}

type treeTest struct {
	in       string
	docFrag  docFragmentTest
	expected string
}

// parseContext reads a #document-fragment line such as "svg path" or "td".
func parseContext(line string) docFragmentTest {
	frag := docFragmentTest{enabled: true, contextTag: line, contextNS: spec.Htmlns}
	if prefix, name, ok := strings.Cut(line, " "); ok {
		switch prefix {
		case "svg":
			frag.contextNS = spec.Svgns
			frag.contextTag = name
		case "math":
			frag.contextNS = spec.Mathmlns
			frag.contextTag = name
		}
	}
	return frag
}

func parseTests(t *testing.T, path string) []treeTest {
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var treeTests []treeTest
	for i, test := range strings.Split(string(data), "#data\n") {
		if i == 0 {
			continue
		}
		tt := treeTest{}
		lines := strings.Split(test, "\n")
		j := 0
		var in []string
		for ; j < len(lines) && lines[j] != "#errors"; j++ {
			in = append(in, lines[j])
		}
		tt.in = strings.Join(in, "\n")

		for ; j < len(lines); j++ {
			switch lines[j] {
			case "#document-fragment":
				if j+1 < len(lines) {
					tt.docFrag = parseContext(lines[j+1])
				}
			case "#document":
				expected := []string{"#document"}
				for _, l := range lines[j+1:] {
					if l == "" {
						break
					}
					expected = append(expected, l)
				}
				tt.expected = strings.Join(expected, "\n")
				j = len(lines)
			}
		}
		treeTests = append(treeTests, tt)
	}
	return treeTests
}

func TestTreeConstructor(t *testing.T) {
	tests := parseTests(t, "./testdata/tree_construction/foreign.dat")
	require.NotEmpty(t, tests)
	for _, test := range tests {
		runTreeConstructorTest(t, test)
	}
}

func runTreeConstructorTest(t *testing.T, test treeTest) {
	t.Run(test.in, func(t *testing.T) {
		t.Parallel()
		if test.docFrag.enabled {
			frag, err := ParseFragment(strings.NewReader(test.in), test.docFrag.contextTag, test.docFrag.contextNS)
			require.NoError(t, err)
			require.Equal(t, spec.DocumentFragmentNode, frag.NodeType)

			n := spec.NewDocumentNode()
			for frag.HasChildNodes() {
				n.AppendChild(frag.FirstChild())
			}
			assert.Equal(t, test.expected, n.String())
			return
		}

		doc, err := Parse(strings.NewReader(test.in))
		require.NoError(t, err)
		assert.Equal(t, test.expected, doc.String())
	})
}

func TestQuirksMode(t *testing.T) {
	tests := []struct {
		in   string
		mode spec.QuirksMode
	}{
		{"<svg></svg>", spec.NoQuirks},
		{"<!DOCTYPE html>", spec.NoQuirks},
		{"<!DOCTYPE svg>", spec.Quirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 3.2 Final//EN">`, spec.Quirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN">`, spec.Quirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd">`, spec.LimitedQuirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Frameset//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-frameset.dtd">`, spec.LimitedQuirks},
		{`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">`, spec.NoQuirks},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.mode, doc.Document.Mode)
		})
	}
}

func TestDoctypeAfterDocumentElement(t *testing.T) {
	p := NewParser(strings.NewReader("<!--c--><!DOCTYPE html><svg></svg><!DOCTYPE svg>"), Config{})
	doc, err := p.Start()
	require.NoError(t, err)
	assert.Equal(t, "#document\n| <!-- c -->\n| <!DOCTYPE html>\n| <svg svg>", doc.String())
	assert.Equal(t, []ParseError{unexpectedDoctypeParseError}, p.TreeConstructor.Errors())
}

func TestParseErrors(t *testing.T) {
	p := NewParser(strings.NewReader("<svg><p>text</p></svg>"), Config{})
	_, err := p.Start()
	require.NoError(t, err)
	assert.Equal(t, []ParseError{foreignContentExitParseError, unexpectedEndTagParseError}, p.TreeConstructor.Errors())
	assert.Equal(t, "unexpected-html-start-tag-in-foreign-content", foreignContentExitParseError.String())
	assert.Equal(t, "unknown", ParseError(99).String())
}

func TestNullCharacters(t *testing.T) {
	p := NewParser(strings.NewReader("<svg>a\x00b</svg><p>c\x00d</p>"), Config{})
	doc, err := p.Start()
	require.NoError(t, err)
	assert.Equal(t, "#document\n| <svg svg>\n|   \"a\ufffdb\"\n| <p>\n|   \"cd\"", doc.String())
	assert.Equal(t, []ParseError{unexpectedNullCharacterParseError, unexpectedNullCharacterParseError}, p.TreeConstructor.Errors())
}

func TestHTMLStartTagMergesAttributes(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<html lang="en"><html lang="fr" dir="ltr"><svg></svg></html>`))
	require.NoError(t, err)
	assert.Equal(t, "#document\n| <html>\n|   dir=\"ltr\"\n|   lang=\"en\"\n|   <svg svg>", doc.String())
}

func TestAdjustedCurrentNodeInFragment(t *testing.T) {
	context := spec.NewDOMElement("mi", spec.Mathmlns, nil)
	tc := NewFragmentTreeConstructor(Config{}, context)
	assert.Same(t, context, tc.adjustedCurrentNode())

	progress := tc.ProcessToken(NewStartTagToken("b"))
	require.NotNil(t, progress.AdjustedCurrentNode)
	assert.Equal(t, "b", progress.AdjustedCurrentNode.Element.TagName)
	assert.False(t, progress.inForeignContent())

	tc.ProcessToken(&Token{TokenType: endTagToken, TagName: "b"})
	assert.Same(t, context, tc.adjustedCurrentNode())
	assert.Nil(t, NewHTMLTreeConstructor(Config{}).Fragment())
}

func TestDebugLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	require.Equal(t, logrus.InfoLevel, logger.GetLevel())
	_, err := NewParser(strings.NewReader("<svg><desc><div>x</div></desc></svg>"), Config{Debug: true, Logger: logger}).Start()
	require.NoError(t, err)

	var pushes []string
	for _, e := range hook.AllEntries() {
		assert.Equal(t, logrus.DebugLevel, e.Level)
		assert.Equal(t, "tree", e.Data["component"])
		if e.Message == "push" {
			pushes = append(pushes, e.Data["namespace"].(string)+" "+e.Data["tag"].(string))
		}
	}
	assert.Equal(t, []string{"svg svg", "svg desc", "html div"}, pushes)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel(), "Debug leaves the given logger's level alone")

	hook.Reset()
	_, err = NewParser(strings.NewReader("<svg><p>x</p></svg>"), Config{Logger: logger}).Start()
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())

	verbose, verboseHook := logtest.NewNullLogger()
	verbose.SetLevel(logrus.DebugLevel)
	_, err = NewParser(strings.NewReader("<svg></svg>"), Config{Logger: verbose}).Start()
	require.NoError(t, err)
	assert.NotEmpty(t, verboseHook.AllEntries(), "a Debug logger traces without Config.Debug")
}

func TestTracingFollowsLevel(t *testing.T) {
	quiet, _ := logtest.NewNullLogger()
	assert.False(t, NewHTMLTreeConstructor(Config{Logger: quiet}).tracing())
	assert.False(t, NewHTMLTreeConstructor(Config{}).tracing())
	assert.True(t, NewHTMLTreeConstructor(Config{Debug: true}).tracing())
	assert.True(t, NewHTMLTreeConstructor(Config{Debug: true, Logger: quiet}).tracing())
	assert.False(t, quiet.IsLevelEnabled(logrus.DebugLevel))
}

package parser

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/heathj/foreigncontent/parser/spec"
)

// Config controls a parse. The zero value parses quietly.
type Config struct {
	// Debug traces every push, pop and foreign-content decision.
	Debug bool
	// Logger receives the trace. A private logger is used when nil. Debug
	// never changes the level of a given logger: when it is below Debug
	// the trace goes through a copy sharing its output, formatter and
	// hooks.
	Logger *logrus.Logger
}

func (c Config) entry() *logrus.Entry {
	l := c.Logger
	switch {
	case l == nil:
		l = logrus.New()
		if c.Debug {
			l.SetLevel(logrus.DebugLevel)
		}
	case c.Debug && !l.IsLevelEnabled(logrus.DebugLevel):
		l = &logrus.Logger{
			Out:          l.Out,
			Hooks:        l.Hooks,
			Formatter:    l.Formatter,
			ReportCaller: l.ReportCaller,
			Level:        logrus.DebugLevel,
			ExitFunc:     l.ExitFunc,
		}
	}
	return l.WithField("component", "tree")
}

type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor
}

func NewParser(htmlIn io.Reader, c Config) *Parser {
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(htmlIn),
		TreeConstructor: NewHTMLTreeConstructor(c),
	}
}

// NewFragmentParser parses htmlIn as the children of a context element
// with the given tag name and namespace.
func NewFragmentParser(htmlIn io.Reader, contextTag string, contextNS spec.Namespace, c Config) *Parser {
	context := spec.NewDOMElement(contextTag, contextNS, nil)
	return &Parser{
		Tokenizer:       NewHTMLTokenizer(htmlIn),
		TreeConstructor: NewFragmentTreeConstructor(c, context),
	}
}

// Start runs the parse to completion and returns the document, or the
// document fragment for a fragment parser.
func (p *Parser) Start() (*spec.Node, error) {
	var progress *Progress
	for p.Tokenizer.Next(progress) {
		progress = p.TreeConstructor.ProcessToken(p.Tokenizer.Token())
	}
	if err := p.Tokenizer.Err(); err != nil {
		return nil, err
	}

	if frag := p.TreeConstructor.Fragment(); frag != nil {
		return frag, nil
	}
	return p.TreeConstructor.Document(), nil
}

// Parse parses a whole document with the default configuration.
func Parse(r io.Reader) (*spec.Node, error) {
	return NewParser(r, Config{}).Start()
}

// ParseFragment parses r as the children of a context element.
func ParseFragment(r io.Reader, contextTag string, contextNS spec.Namespace) (*spec.Node, error) {
	return NewFragmentParser(r, contextTag, contextNS, Config{}).Start()
}

// Command foreigncontent parses HTML from a file or stdin and prints the
// resulting tree in the html5lib tree-construction test format, or
// serialized back to markup with --html.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/heathj/foreigncontent/parser"
	"github.com/heathj/foreigncontent/parser/spec"
)

func main() {
	var (
		debug    = flag.Bool("debug", false, "trace tree construction to stderr")
		fragment = flag.String("fragment", "", "parse as a fragment of a context element, e.g. svg, math or body")
		markup   = flag.Bool("html", false, "print the parsed tree serialized as HTML")
	)
	flag.Parse()

	in := io.Reader(os.Stdin)
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			logrus.WithError(err).Fatal("open input")
		}
		defer f.Close()
		in = f
	}

	cfg := parser.Config{Debug: *debug, Logger: logrus.StandardLogger()}
	p := parser.NewParser(in, cfg)
	if *fragment != "" {
		ns, err := contextNamespace(*fragment)
		if err != nil {
			logrus.WithError(err).Fatal("fragment context")
		}
		p = parser.NewFragmentParser(in, *fragment, ns, cfg)
	}

	n, err := p.Start()
	if err != nil {
		logrus.WithError(err).Fatal("parse")
	}
	if *markup {
		fmt.Println(parser.SerializeHTMLFragment(n))
		return
	}
	fmt.Println(n.String())
}

// contextNamespace picks the namespace of a --fragment context element:
// svg and math are foreign roots, anything else is an HTML element.
func contextNamespace(tagName string) (spec.Namespace, error) {
	switch tagName {
	case "svg", "math":
		return spec.ParseNamespace(tagName)
	case "":
		return spec.Nons, errors.New("empty context element")
	}
	return spec.Htmlns, nil
}

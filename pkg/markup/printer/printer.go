// Package printer renders markup documents.
//
// Compact produces a single string with no added whitespace and keeps text
// and comment nodes. Pretty writes an indented document with an XML header,
// one construct per line, and keeps only elements and their text content.
package printer

import (
	"bufio"
	"io"
	"strings"

	"github.com/joshuapare/prefkit/pkg/markup"
	"github.com/joshuapare/prefkit/pkg/types"
)

const (
	DefaultIndentSize = 2

	// Header is the first line written by Pretty.
	Header = `<?xml version="1.0" encoding="UTF-8"?>`
)

// Options controls pretty printing.
type Options struct {
	// IndentSize is the number of spaces per nesting level.
	// Default: 2
	IndentSize int

	// OmitHeader suppresses the XML declaration line.
	// Default: false
	OmitHeader bool
}

// DefaultOptions returns the options used for preference files.
func DefaultOptions() Options {
	return Options{IndentSize: DefaultIndentSize}
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five markup metacharacters with entity references.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Printer writes one document to a sink.
type Printer struct {
	doc  *markup.Document
	w    *bufio.Writer
	opts Options
	err  error
}

// New creates a Printer that writes doc to w.
func New(doc *markup.Document, w io.Writer, opts Options) *Printer {
	if opts.IndentSize < 0 {
		opts.IndentSize = 0
	}
	return &Printer{doc: doc, w: bufio.NewWriter(w), opts: opts}
}

// Pretty writes doc to w in indented form.
func Pretty(w io.Writer, doc *markup.Document, opts Options) error {
	return New(doc, w, opts).PrintDocument()
}

// PrintDocument writes the header followed by every top-level element. The
// first write error aborts printing and is returned.
func (p *Printer) PrintDocument() error {
	if !p.opts.OmitHeader {
		p.writeString(Header)
		p.writeByte('\n')
	}
	for _, id := range p.doc.Elements(p.doc.Root()) {
		p.printElement(id, 0)
		if p.err != nil {
			return p.err
		}
	}
	if p.err != nil {
		return p.err
	}
	return p.w.Flush()
}

// PrintElement writes the subtree rooted at element id without a header.
func (p *Printer) PrintElement(id types.NodeID) error {
	p.printElement(id, 0)
	if p.err != nil {
		return p.err
	}
	return p.w.Flush()
}

func (p *Printer) printElement(id types.NodeID, depth int) {
	p.indent(depth)
	p.openTag(id)

	text, hasText := p.doc.TextContent(id)
	switch {
	case p.doc.HasElements(id):
		p.writeString(">\n")
		for _, child := range p.doc.Elements(id) {
			p.printElement(child, depth+1)
			if p.err != nil {
				return
			}
		}
		p.indent(depth)
		p.closeTag(id)
	case hasText:
		p.writeByte('>')
		p.writeString(Escape(text))
		p.closeTag(id)
	default:
		p.writeString("/>")
	}
	p.writeByte('\n')
}

func (p *Printer) openTag(id types.NodeID) {
	p.writeByte('<')
	p.writeString(p.doc.NodeName(id))
	for _, a := range p.doc.Attrs(id) {
		p.writeByte(' ')
		p.writeString(a.Name)
		p.writeString(`="`)
		p.writeString(Escape(a.Value))
		p.writeByte('"')
	}
}

func (p *Printer) closeTag(id types.NodeID) {
	p.writeString("</")
	p.writeString(p.doc.NodeName(id))
	p.writeByte('>')
}

func (p *Printer) indent(depth int) {
	for i := 0; i < depth*p.opts.IndentSize; i++ {
		p.writeByte(' ')
	}
}

func (p *Printer) writeString(s string) {
	if p.err != nil {
		return
	}
	_, p.err = p.w.WriteString(s)
}

func (p *Printer) writeByte(c byte) {
	if p.err != nil {
		return
	}
	p.err = p.w.WriteByte(c)
}

// Package xmltext is the single-pass markup scanner behind markup.Parse.
//
// The scanner turns a byte stream into four kinds of events (start tag, end
// tag, text, passthrough) and hands each to a Handler. It enforces
// well-formedness: tags must nest, text outside the root element must be
// whitespace, bytes must decode in the declared encoding. It never builds a
// tree itself.
package xmltext

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/joshuapare/prefkit/pkg/types"
)

// Attr is a single attribute in source order.
type Attr struct {
	Name  string
	Value string
}

// Handler receives scanner events. Slices passed to Text and Passthrough are
// only valid for the duration of the call.
type Handler interface {
	StartElement(name string, attrs []Attr) error
	EndElement(name string) error
	Text(data []byte) error
	Passthrough(data []byte) error
}

// Scan reads markup from r and dispatches events to h until EOF or the first
// error. Errors are *types.Error of kind ErrKindParse or ErrKindIO, prefixed
// with the source name and position.
func Scan(r io.Reader, sourceName string, h Handler) error {
	src, err := newSource(r)
	if err != nil {
		return types.Errorf(types.ErrKindIO, "%s: read: %w", sourceName, err)
	}

	s := &scanner{
		dec:  xml.NewDecoder(src.r),
		src:  src,
		name: sourceName,
		h:    h,
	}
	s.dec.Strict = true
	s.dec.CharsetReader = src.charsetReader
	return s.run()
}

type scanner struct {
	dec   *xml.Decoder
	src   *source
	name  string
	h     Handler
	open  []string // names of currently open elements
	pass  bytes.Buffer
	attrs []Attr
}

func (s *scanner) run() error {
	for {
		tok, err := s.dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return s.tokenError(err)
		}
		if err := s.dispatch(tok); err != nil {
			return s.errorAt(err)
		}
	}

	if n := len(s.open); n > 0 {
		return s.errorf("unexpected end of input: element <%s> not closed", s.open[n-1])
	}
	return nil
}

func (s *scanner) dispatch(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.StartElement:
		name := fullName(t.Name)
		s.attrs = s.attrs[:0]
		for _, a := range t.Attr {
			s.attrs = append(s.attrs, Attr{Name: fullName(a.Name), Value: a.Value})
		}
		s.open = append(s.open, name)
		return s.h.StartElement(name, s.attrs)

	case xml.EndElement:
		name := fullName(t.Name)
		n := len(s.open)
		if n == 0 {
			return types.Errorf(types.ErrKindParse, "unexpected closing tag </%s>", name)
		}
		if s.open[n-1] != name {
			return types.Errorf(types.ErrKindParse, "closing tag </%s> does not match <%s>", name, s.open[n-1])
		}
		s.open = s.open[:n-1]
		return s.h.EndElement(name)

	case xml.CharData:
		if len(s.open) == 0 {
			if len(bytes.TrimSpace(t)) != 0 {
				return types.Errorf(types.ErrKindParse, "unexpected text outside of root element")
			}
			return nil
		}
		return s.h.Text(t)

	case xml.Comment:
		return s.passthrough(CommentOpen, t, CommentClose)

	case xml.ProcInst:
		s.pass.Reset()
		s.pass.WriteString(ProcInstOpen)
		s.pass.WriteString(t.Target)
		if len(t.Inst) > 0 {
			s.pass.WriteByte(' ')
			s.pass.Write(t.Inst)
		}
		s.pass.WriteString(ProcInstClose)
		return s.h.Passthrough(s.pass.Bytes())

	case xml.Directive:
		return s.passthrough(DirectiveOpen, t, DirectiveClose)
	}
	return nil
}

func (s *scanner) passthrough(open string, body []byte, close string) error {
	s.pass.Reset()
	s.pass.WriteString(open)
	s.pass.Write(body)
	s.pass.WriteString(close)
	return s.h.Passthrough(s.pass.Bytes())
}

// tokenError converts decoder failures. Syntax errors become parse errors;
// anything else came from the underlying reader.
func (s *scanner) tokenError(err error) error {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return types.Errorf(types.ErrKindParse, "%s:%d: %s", s.name, syn.Line, syn.Msg)
	}
	if s.src.err != nil {
		return types.Errorf(types.ErrKindParse, "%s: %w", s.name, s.src.err)
	}
	return types.Errorf(types.ErrKindIO, "%s: read: %w", s.name, err)
}

func (s *scanner) errorAt(err error) error {
	line, col := s.dec.InputPos()
	if types.IsKind(err, types.ErrKindParse) {
		return types.Errorf(types.ErrKindParse, "%s:%d:%d: %w", s.name, line, col, err)
	}
	return err
}

func (s *scanner) errorf(format string, args ...any) error {
	line, _ := s.dec.InputPos()
	e := types.Errorf(types.ErrKindParse, format, args...)
	return types.Errorf(types.ErrKindParse, "%s:%d: %w", s.name, line, e)
}

func fullName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + NameSpaceSeparator + n.Local
}

package markup

import (
	"bytes"
	"io"
	"os"

	"github.com/joshuapare/prefkit/internal/xmltext"
	"github.com/joshuapare/prefkit/pkg/types"
)

// MemoryDocumentName labels documents parsed from a byte slice.
const MemoryDocumentName = "memory"

// builder assembles a Document from scanner events.
type builder struct {
	doc    *Document
	cursor types.NodeID
}

func (b *builder) StartElement(name string, attrs []xmltext.Attr) error {
	id := b.doc.alloc(types.ElementNode, name)
	if len(attrs) > 0 {
		n := &b.doc.nodes[id.Index()]
		n.attrs = make([]Attr, 0, len(attrs))
		for _, a := range attrs {
			n.attrs = setAttr(n.attrs, a.Name, a.Value)
		}
	}
	b.doc.appendChild(b.cursor, id)
	b.cursor = id
	return nil
}

func (b *builder) EndElement(string) error {
	parent := b.doc.nodes[b.cursor.Index()].parent
	if parent == types.NoNode {
		return types.Errorf(types.ErrKindParse, "closing tag without open element")
	}
	b.doc.collectText(b.cursor)
	b.cursor = parent
	return nil
}

func (b *builder) Text(data []byte) error {
	b.doc.CreateText(b.cursor, types.TextNode, data)
	return nil
}

func (b *builder) Passthrough(data []byte) error {
	b.doc.CreateText(b.cursor, types.CommentNode, data)
	return nil
}

// Parse reads a complete document from r. name becomes the document label
// and prefixes error positions. On error no document is returned.
func Parse(r io.Reader, name string) (*Document, error) {
	doc := NewDocument(name)
	doc.SetTrackModified(false)

	b := &builder{doc: doc, cursor: doc.root}
	if err := xmltext.Scan(r, name, b); err != nil {
		doc.Unref()
		return nil, err
	}

	doc.SetTrackModified(true)
	doc.SetModified(false)
	return doc, nil
}

// ParseMemory parses an in-memory buffer.
func ParseMemory(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data), MemoryDocumentName)
}

// ParseFile parses the file at path. The document is labelled with path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.Errorf(types.ErrKindIO, "open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f, path)
}

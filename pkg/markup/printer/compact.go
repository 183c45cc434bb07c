package printer

import (
	"strings"

	"github.com/joshuapare/prefkit/pkg/markup"
	"github.com/joshuapare/prefkit/pkg/types"
)

// Compact renders the subtree rooted at id as one string. Elements without
// children self-close, text is escaped and comments are written verbatim.
// For the document node the top-level children are concatenated.
func Compact(doc *markup.Document, id types.NodeID) string {
	var sb strings.Builder
	compact(&sb, doc, id)
	return sb.String()
}

// CompactDocument renders the whole document.
func CompactDocument(doc *markup.Document) string {
	return Compact(doc, doc.Root())
}

func compact(sb *strings.Builder, doc *markup.Document, id types.NodeID) {
	switch doc.Kind(id) {
	case types.DocumentNode:
		for _, c := range doc.Children(id) {
			compact(sb, doc, c)
		}

	case types.ElementNode:
		name := doc.NodeName(id)
		sb.WriteByte('<')
		sb.WriteString(name)
		for _, a := range doc.Attrs(id) {
			sb.WriteByte(' ')
			sb.WriteString(a.Name)
			sb.WriteString(`="`)
			escaper.WriteString(sb, a.Value)
			sb.WriteByte('"')
		}
		if doc.FirstChild(id) == types.NoNode {
			sb.WriteString("/>")
			return
		}
		sb.WriteByte('>')
		for c := doc.FirstChild(id); c != types.NoNode; c = doc.Next(c) {
			compact(sb, doc, c)
		}
		sb.WriteString("</")
		sb.WriteString(name)
		sb.WriteByte('>')

	case types.TextNode:
		escaper.WriteString(sb, string(doc.Bytes(id)))

	case types.CommentNode:
		sb.Write(doc.Bytes(id))
	}
}

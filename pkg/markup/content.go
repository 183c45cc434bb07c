package markup

import (
	"strings"

	"github.com/joshuapare/prefkit/pkg/types"
)

// collectText recomputes the text cache of element id from its direct text
// children.
func (d *Document) collectText(id types.NodeID) {
	n := &d.nodes[id.Index()]
	var sb strings.Builder
	has := false
	for c := n.first; c != types.NoNode; c = d.nodes[c.Index()].next {
		cn := &d.nodes[c.Index()]
		if cn.kind == types.TextNode {
			sb.Write(cn.data)
			has = true
		}
	}
	n.content = sb.String()
	n.hasContent = has
	n.stale = false
}

// TextContent returns the concatenated bytes of the direct text children
// of element id. ok is false when the element has no text child.
func (d *Document) TextContent(id types.NodeID) (content string, ok bool) {
	n := d.at(id)
	if n.kind != types.ElementNode {
		return "", false
	}
	if n.stale {
		d.collectText(id)
	}
	return n.content, n.hasContent
}

// SetContent replaces every child of element id with a single text node
// holding content.
func (d *Document) SetContent(id types.NodeID, content string) {
	d.element(id)
	for c := d.nodes[id.Index()].first; c != types.NoNode; c = d.nodes[id.Index()].first {
		d.DeleteNode(c)
	}
	d.CreateText(id, types.TextNode, []byte(content))
	d.collectText(id)
}

// ClearContent removes every child of element id.
func (d *Document) ClearContent(id types.NodeID) {
	d.element(id)
	for c := d.nodes[id.Index()].first; c != types.NoNode; c = d.nodes[id.Index()].first {
		d.DeleteNode(c)
	}
	d.collectText(id)
}

// CreateTextElement creates a fresh element at path below parent (see
// CreateElementPath) holding content as its only child.
func (d *Document) CreateTextElement(parent types.NodeID, path, content string) types.NodeID {
	id := d.CreateElementPath(parent, path)
	d.CreateText(id, types.TextNode, []byte(content))
	d.collectText(id)
	return id
}

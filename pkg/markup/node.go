package markup

import (
	"github.com/joshuapare/prefkit/pkg/types"
)

// Kind returns the node's variant.
func (d *Document) Kind(id types.NodeID) types.NodeKind { return d.at(id).kind }

// NodeName returns the tag name of an element, the label of the document node,
// or TextNodeName / CommentNodeName for text kinds.
func (d *Document) NodeName(id types.NodeID) string { return d.at(id).name }

// IsElement reports whether id is an element.
func (d *Document) IsElement(id types.NodeID) bool { return d.at(id).kind == types.ElementNode }

// Parent returns the parent of id, or types.NoNode for the document node.
func (d *Document) Parent(id types.NodeID) types.NodeID { return d.at(id).parent }

// FirstChild returns the first child of id, or types.NoNode.
func (d *Document) FirstChild(id types.NodeID) types.NodeID { return d.at(id).first }

// LastChild returns the last child of id, or types.NoNode.
func (d *Document) LastChild(id types.NodeID) types.NodeID { return d.at(id).last }

// Next returns the following sibling of id, or types.NoNode.
func (d *Document) Next(id types.NodeID) types.NodeID { return d.at(id).next }

// Prev returns the preceding sibling of id, or types.NoNode.
func (d *Document) Prev(id types.NodeID) types.NodeID { return d.at(id).prev }

// Children returns the children of id in order.
func (d *Document) Children(id types.NodeID) []types.NodeID {
	var out []types.NodeID
	for c := d.at(id).first; c != types.NoNode; c = d.nodes[c.Index()].next {
		out = append(out, c)
	}
	return out
}

// Elements returns the element children of id in order.
func (d *Document) Elements(id types.NodeID) []types.NodeID {
	var out []types.NodeID
	for c := d.at(id).first; c != types.NoNode; c = d.nodes[c.Index()].next {
		if d.nodes[c.Index()].kind == types.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// HasElements reports whether id has at least one element child.
func (d *Document) HasElements(id types.NodeID) bool {
	for c := d.at(id).first; c != types.NoNode; c = d.nodes[c.Index()].next {
		if d.nodes[c.Index()].kind == types.ElementNode {
			return true
		}
	}
	return false
}

// Bytes returns the buffer of a text or comment node. The slice aliases the
// node and must not be modified.
func (d *Document) Bytes(id types.NodeID) []byte {
	n := d.at(id)
	if !n.kind.IsText() {
		types.UsagePanic("markup: Bytes on %s node", n.kind)
	}
	return n.data
}

func (d *Document) requireContainer(id types.NodeID) *node {
	n := d.at(id)
	if n.kind != types.DocumentNode && n.kind != types.ElementNode {
		types.UsagePanic("markup: %s node cannot have children", n.kind)
	}
	return n
}

// appendChild links child as the last child of parent.
func (d *Document) appendChild(parent, child types.NodeID) {
	p := &d.nodes[parent.Index()]
	c := &d.nodes[child.Index()]
	c.parent = parent
	c.prev = p.last
	if p.last != types.NoNode {
		d.nodes[p.last.Index()].next = child
	} else {
		p.first = child
	}
	p.last = child
}

// CreateElement appends a new element named name under parent.
func (d *Document) CreateElement(parent types.NodeID, name string, attrs ...Attr) types.NodeID {
	d.requireContainer(parent)
	id := d.alloc(types.ElementNode, name)
	if len(attrs) > 0 {
		n := &d.nodes[id.Index()]
		for _, a := range attrs {
			n.attrs = setAttr(n.attrs, a.Name, a.Value)
		}
	}
	d.appendChild(parent, id)
	d.touch()
	return id
}

// CreateText appends data under parent as a node of kind, which must be
// types.TextNode or types.CommentNode. When parent's last child already has
// that kind the bytes are appended to it and its handle is returned.
func (d *Document) CreateText(parent types.NodeID, kind types.NodeKind, data []byte) types.NodeID {
	if !kind.IsText() {
		types.UsagePanic("markup: CreateText with %s kind", kind)
	}
	p := d.requireContainer(parent)
	if kind == types.TextNode {
		p.stale = true
	}

	if last := p.last; last != types.NoNode {
		if ln := &d.nodes[last.Index()]; ln.kind == kind {
			ln.data = append(ln.data, data...)
			d.touch()
			return last
		}
	}

	name := TextNodeName
	if kind == types.CommentNode {
		name = CommentNodeName
	}
	id := d.alloc(kind, name)
	d.nodes[id.Index()].data = append([]byte(nil), data...)
	d.appendChild(parent, id)
	d.touch()
	return id
}

// DeleteNode unlinks id from its parent and frees its subtree. Every handle
// into the subtree becomes stale. Deleting the document node panics; the
// document goes away through Unref.
func (d *Document) DeleteNode(id types.NodeID) {
	n := d.at(id)
	if n.parent == types.NoNode {
		types.UsagePanic("markup: delete of node without parent")
	}

	p := &d.nodes[n.parent.Index()]
	if n.prev != types.NoNode {
		d.nodes[n.prev.Index()].next = n.next
	} else {
		p.first = n.next
	}
	if n.next != types.NoNode {
		d.nodes[n.next.Index()].prev = n.prev
	} else {
		p.last = n.prev
	}
	if n.kind == types.TextNode {
		p.stale = true
	}

	d.freeSubtree(id)
	d.touch()
}

func (d *Document) freeSubtree(id types.NodeID) {
	for c := d.nodes[id.Index()].first; c != types.NoNode; {
		next := d.nodes[c.Index()].next
		d.freeSubtree(c)
		c = next
	}
	d.release(id)
}

// RootElement returns the first top-level element named name, or the first
// top-level element of any name when name is empty.
func (d *Document) RootElement(name string) (types.NodeID, bool) {
	for c := d.at(d.root).first; c != types.NoNode; c = d.nodes[c.Index()].next {
		n := &d.nodes[c.Index()]
		if n.kind == types.ElementNode && (name == "" || n.name == name) {
			return c, true
		}
	}
	return types.NoNode, false
}

// CreateRootElement appends a new top-level element.
func (d *Document) CreateRootElement(name string) types.NodeID {
	return d.CreateElement(d.root, name)
}

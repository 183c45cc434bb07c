package markup

import (
	"github.com/joshuapare/prefkit/pkg/types"
)

// Sentinel names carried by the text node kinds.
const (
	TextNodeName    = "TEXT"
	CommentNodeName = "COMMENT"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// node is one arena slot. Links are handles into the same arena.
type node struct {
	gen  uint32
	live bool

	kind types.NodeKind
	name string

	parent types.NodeID
	first  types.NodeID
	last   types.NodeID
	next   types.NodeID
	prev   types.NodeID

	// Element only
	attrs      []Attr
	content    string // cached concatenation of direct text children
	hasContent bool   // at least one direct text child
	stale      bool   // content must be recomputed before use

	// Text and Comment only
	data []byte
}

// Document owns every node of one markup tree. Nodes are addressed by
// types.NodeID handles that stay valid until the node is deleted or the
// document is released.
type Document struct {
	nodes []node
	free  []uint32
	root  types.NodeID

	refs     int
	modified bool
	track    bool
}

// NewDocument returns an empty in-memory document named name. The document
// has no backing file, so it starts out modified.
func NewDocument(name string) *Document {
	d := &Document{refs: 1, track: true, modified: true}
	d.root = d.alloc(types.DocumentNode, name)
	return d
}

// Root returns the document node. Top-level elements are its children.
func (d *Document) Root() types.NodeID {
	d.checkLive()
	return d.root
}

// Name returns the document's display label.
func (d *Document) Name() string {
	return d.at(d.root).name
}

// Ref takes an additional reference and returns d.
func (d *Document) Ref() *Document {
	d.checkLive()
	d.refs++
	return d
}

// Unref drops one reference. The arena is drained when the last reference
// goes away; any handle used afterwards panics. Releasing an already
// released document panics.
func (d *Document) Unref() {
	if d.refs <= 0 {
		types.UsagePanic("markup: unref of released document")
	}
	d.refs--
	if d.refs == 0 {
		d.nodes = nil
		d.free = nil
	}
}

// RefCount returns the current number of references.
func (d *Document) RefCount() int { return d.refs }

// Released reports whether the last reference has been dropped.
func (d *Document) Released() bool { return d.refs <= 0 }

// Modified reports whether the document changed since the flag was last
// cleared.
func (d *Document) Modified() bool { return d.modified }

// SetModified sets or clears the modified flag. Savers clear it after a
// successful write.
func (d *Document) SetModified(modified bool) { d.modified = modified }

// TrackModified reports whether mutations currently set the modified flag.
func (d *Document) TrackModified() bool { return d.track }

// SetTrackModified turns modification tracking on or off.
func (d *Document) SetTrackModified(track bool) { d.track = track }

func (d *Document) touch() {
	if d.track {
		d.modified = true
	}
}

func (d *Document) checkLive() {
	if d.refs <= 0 {
		types.UsagePanic("markup: use of released document")
	}
}

// at resolves a handle, panicking on stale or foreign handles.
func (d *Document) at(id types.NodeID) *node {
	d.checkLive()
	idx := id.Index()
	if id == types.NoNode || int(idx) >= len(d.nodes) {
		types.UsagePanic("markup: invalid node handle %#x", uint64(id))
	}
	n := &d.nodes[idx]
	if !n.live || n.gen != id.Gen() {
		types.UsagePanic("markup: stale node handle %#x", uint64(id))
	}
	return n
}

// valid reports whether id still refers to a live node.
func (d *Document) valid(id types.NodeID) bool {
	if d.refs <= 0 || id == types.NoNode {
		return false
	}
	idx := id.Index()
	if int(idx) >= len(d.nodes) {
		return false
	}
	n := &d.nodes[idx]
	return n.live && n.gen == id.Gen()
}

// Contains reports whether id refers to a live node of this document.
func (d *Document) Contains(id types.NodeID) bool { return d.valid(id) }

func (d *Document) alloc(kind types.NodeKind, name string) types.NodeID {
	var idx uint32
	if k := len(d.free); k > 0 {
		idx = d.free[k-1]
		d.free = d.free[:k-1]
	} else {
		idx = uint32(len(d.nodes))
		d.nodes = append(d.nodes, node{})
	}
	n := &d.nodes[idx]
	n.gen++
	*n = node{gen: n.gen, live: true, kind: kind, name: name}
	return types.MakeNodeID(idx, n.gen)
}

// release returns a slot to the free list. The generation is bumped on the
// next alloc, so handles to the old occupant never validate again.
func (d *Document) release(id types.NodeID) {
	n := &d.nodes[id.Index()]
	gen := n.gen
	*n = node{gen: gen}
	d.free = append(d.free, id.Index())
}

package markup

import (
	"strings"

	"github.com/joshuapare/prefkit/pkg/types"
)

// PathSeparator separates element names in a path.
const PathSeparator = "/"

// splitPath splits a path into its non-empty segments.
func splitPath(path string) []string {
	parts := strings.Split(path, PathSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// childElement returns the first element child of id named name.
func (d *Document) childElement(id types.NodeID, name string) (types.NodeID, bool) {
	for c := d.at(id).first; c != types.NoNode; c = d.nodes[c.Index()].next {
		n := &d.nodes[c.Index()]
		if n.kind == types.ElementNode && n.name == name {
			return c, true
		}
	}
	return types.NoNode, false
}

// GetElement descends from id one path segment at a time, taking the first
// element child with a matching name at each level. An empty path returns id.
func (d *Document) GetElement(id types.NodeID, path string) (types.NodeID, bool) {
	d.requireContainer(id)
	cur := id
	for _, seg := range splitPath(path) {
		next, ok := d.childElement(cur, seg)
		if !ok {
			return types.NoNode, false
		}
		cur = next
	}
	return cur, true
}

// CreateElementPath walks path below parent, reusing the first matching
// element for every intermediate segment and creating the missing ones. The
// final segment always gets a new element, so two calls with the same path
// produce two sibling leaves under one shared chain.
func (d *Document) CreateElementPath(parent types.NodeID, path string) types.NodeID {
	segs := splitPath(path)
	if len(segs) == 0 {
		types.UsagePanic("markup: empty element path")
	}
	cur := d.ensure(parent, segs[:len(segs)-1])
	return d.CreateElement(cur, segs[len(segs)-1])
}

// EnsureElementPath is like CreateElementPath but reuses an existing leaf,
// so repeated calls return the same element.
func (d *Document) EnsureElementPath(parent types.NodeID, path string) types.NodeID {
	segs := splitPath(path)
	if len(segs) == 0 {
		types.UsagePanic("markup: empty element path")
	}
	return d.ensure(parent, segs)
}

func (d *Document) ensure(parent types.NodeID, segs []string) types.NodeID {
	d.requireContainer(parent)
	cur := parent
	for _, seg := range segs {
		next, ok := d.childElement(cur, seg)
		if !ok {
			next = d.CreateElement(cur, seg)
		}
		cur = next
	}
	return cur
}

// ElementPath returns the slash-joined names from the top-level element
// down to id.
func (d *Document) ElementPath(id types.NodeID) string {
	n := d.at(id)
	if n.kind != types.ElementNode {
		types.UsagePanic("markup: ElementPath on %s node", n.kind)
	}
	names := []string{n.name}
	for p := n.parent; p != types.NoNode; p = d.nodes[p.Index()].parent {
		pn := &d.nodes[p.Index()]
		if pn.kind != types.ElementNode {
			break
		}
		names = append(names, pn.name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, PathSeparator)
}

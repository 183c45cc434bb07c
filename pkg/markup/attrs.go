package markup

import (
	"strconv"

	"github.com/joshuapare/prefkit/pkg/types"
)

func setAttr(attrs []Attr, name, value string) []Attr {
	for i := range attrs {
		if attrs[i].Name == name {
			attrs[i].Value = value
			return attrs
		}
	}
	return append(attrs, Attr{Name: name, Value: value})
}

func (d *Document) element(id types.NodeID) *node {
	n := d.at(id)
	if n.kind != types.ElementNode {
		types.UsagePanic("markup: %s node has no attributes", n.kind)
	}
	return n
}

// Attr returns the value of attribute name on element id.
func (d *Document) Attr(id types.NodeID, name string) (string, bool) {
	for _, a := range d.element(id).attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr overwrites attribute name in place, or appends it when absent.
func (d *Document) SetAttr(id types.NodeID, name, value string) {
	n := d.element(id)
	n.attrs = setAttr(n.attrs, name, value)
	d.touch()
}

// RemoveAttr deletes attribute name. Removing an absent attribute is a no-op.
func (d *Document) RemoveAttr(id types.NodeID, name string) {
	n := d.element(id)
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			d.touch()
			return
		}
	}
}

// Attrs returns a copy of the attributes of element id in order.
func (d *Document) Attrs(id types.NodeID) []Attr {
	attrs := d.element(id).attrs
	if len(attrs) == 0 {
		return nil
	}
	return append([]Attr(nil), attrs...)
}

// IntAttr parses attribute name as a signed decimal integer. def is
// returned when the attribute is absent or malformed.
func (d *Document) IntAttr(id types.NodeID, name string, def int64) int64 {
	s, ok := d.Attr(id, name)
	if !ok {
		return def
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

// UintAttr parses attribute name as an unsigned decimal integer.
func (d *Document) UintAttr(id types.NodeID, name string, def uint64) uint64 {
	s, ok := d.Attr(id, name)
	if !ok {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

// BoolAttr parses attribute name with types.ParseBool.
func (d *Document) BoolAttr(id types.NodeID, name string, def bool) bool {
	s, ok := d.Attr(id, name)
	if !ok {
		return def
	}
	v, err := types.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}

// SetBoolAttr stores b as TRUE or FALSE.
func (d *Document) SetBoolAttr(id types.NodeID, name string, b bool) {
	d.SetAttr(id, name, types.Bool(b).String())
}

package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/prefkit/pkg/markup"
	"github.com/joshuapare/prefkit/pkg/types"
)

// buildSample builds a small tree with every node kind.
func buildSample() *markup.Document {
	d := markup.NewDocument("sample")
	root := d.CreateRootElement("root")
	d.SetAttr(root, "version", "1.0")
	d.SetAttr(root, "quote", `say "hi" & 'bye'`)

	prefs := d.CreateElement(root, "Prefs")
	d.CreateTextElement(prefs, "item", "a < b > c")
	d.CreateElement(prefs, "empty")
	d.CreateText(root, types.CommentNode, []byte("<!-- keep me -->"))
	mixed := d.CreateElement(root, "mixed")
	d.CreateText(mixed, types.TextNode, []byte("lead"))
	d.CreateElement(mixed, "inner", markup.Attr{Name: "k", Value: "v"})
	d.CreateText(mixed, types.TextNode, []byte("tail"))
	return d
}

// shape flattens a subtree into comparable strings.
func shape(d *markup.Document, id types.NodeID) []string {
	var out []string
	var walk func(types.NodeID, string)
	walk = func(id types.NodeID, indent string) {
		switch d.Kind(id) {
		case types.ElementNode:
			line := indent + "<" + d.NodeName(id)
			for _, a := range d.Attrs(id) {
				line += " " + a.Name + "=" + a.Value
			}
			out = append(out, line)
		case types.TextNode, types.CommentNode:
			out = append(out, indent+d.Kind(id).String()+":"+string(d.Bytes(id)))
		}
		for _, c := range d.Children(id) {
			walk(c, indent+" ")
		}
	}
	walk(id, "")
	return out
}

func TestCompact(t *testing.T) {
	d := buildSample()
	expected := `<root version="1.0" quote="say &quot;hi&quot; &amp; &apos;bye&apos;">` +
		`<Prefs><item>a &lt; b &gt; c</item><empty/></Prefs>` +
		`<!-- keep me -->` +
		`<mixed>lead<inner k="v"/>tail</mixed>` +
		`</root>`
	assert.Equal(t, expected, CompactDocument(d))

	inner, ok := d.GetElement(d.Root(), "root/mixed/inner")
	require.True(t, ok)
	assert.Equal(t, `<inner k="v"/>`, Compact(d, inner))
}

func TestCompact_RoundTrip(t *testing.T) {
	d := buildSample()

	parsed, err := markup.ParseMemory([]byte(CompactDocument(d)))
	require.NoError(t, err)
	defer parsed.Unref()

	assert.Equal(t, shape(d, d.Root()), shape(parsed, parsed.Root()))
	assert.Equal(t, CompactDocument(d), CompactDocument(parsed))
}

func TestPretty(t *testing.T) {
	d := buildSample()

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, d, DefaultOptions()))

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<root version="1.0" quote="say &quot;hi&quot; &amp; &apos;bye&apos;">
  <Prefs>
    <item>a &lt; b &gt; c</item>
    <empty/>
  </Prefs>
  <mixed>
    <inner k="v"/>
  </mixed>
</root>
`
	assert.Equal(t, expected, buf.String())
}

func TestPretty_IndentSize(t *testing.T) {
	d := markup.NewDocument("mem")
	a := d.CreateRootElement("a")
	d.CreateTextElement(a, "b", "x")

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, d, Options{IndentSize: 4, OmitHeader: true}))
	assert.Equal(t, "<a>\n    <b>x</b>\n</a>\n", buf.String())
}

func TestPretty_ParsesBack(t *testing.T) {
	d := buildSample()

	var buf bytes.Buffer
	require.NoError(t, Pretty(&buf, d, DefaultOptions()))

	parsed, err := markup.ParseMemory(buf.Bytes())
	require.NoError(t, err)
	defer parsed.Unref()

	item, ok := parsed.GetElement(parsed.Root(), "root/Prefs/item")
	require.True(t, ok)
	text, _ := parsed.TextContent(item)
	assert.Equal(t, "a < b > c", text)
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("sink closed")
}

func TestPretty_WriteErrorPropagates(t *testing.T) {
	d := buildSample()
	w := &failingWriter{}

	err := Pretty(w, d, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink closed")
	assert.Equal(t, 1, w.n)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&amp;&lt;&gt;&quot;&apos;plain", Escape(`&<>"'plain`))
}

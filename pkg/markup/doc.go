// Package markup is a small in-memory markup tree with a streaming parser.
//
// A Document owns every node in an arena. Callers hold types.NodeID handles
// and go through Document methods for navigation and mutation; there are no
// node pointers to leak or free. Deleting a node frees its subtree and makes
// all handles into it stale. Using a stale handle panics with a usage error.
//
// # Node Kinds
//
// The tree has four node kinds: the document node itself, elements, text
// and comments. Comments also carry processing instructions and directives
// found in the source, stored verbatim with their delimiters so that the
// compact printer can write them back unchanged.
//
// # Paths
//
// GetElement resolves slash-separated paths by taking the first element
// with a matching name at every level. CreateElementPath creates the
// missing intermediate elements and always appends a fresh leaf;
// EnsureElementPath reuses the leaf as well.
//
// # Lifetime and Modification
//
// Documents are reference counted with Ref and Unref. Every structural or
// attribute mutation sets the modified flag while tracking is on. Parsing
// runs with tracking off, so a freshly parsed document is unmodified while
// a document built with NewDocument starts out modified.
//
// # Usage Example
//
//	doc, err := markup.ParseFile("prefs.xml")
//	if err != nil {
//		return err
//	}
//	defer doc.Unref()
//
//	if prefs, ok := doc.GetElement(doc.Root(), "moo-prefs/Prefs"); ok {
//		for _, item := range doc.Elements(prefs) {
//			name, _ := doc.Attr(item, "name")
//			value, _ := doc.TextContent(item)
//			fmt.Println(name, value)
//		}
//	}
package markup

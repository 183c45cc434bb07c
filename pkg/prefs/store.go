package prefs

import (
	"github.com/joshuapare/prefkit/pkg/markup"
	"github.com/joshuapare/prefkit/pkg/types"
)

// File format constants.
const (
	RootElement   = "moo-prefs"
	VersionAttr   = "version"
	FormatVersion = "1.0"
	PrefsElement  = "Prefs"
	ItemElement   = "item"
	ItemNameAttr  = "name"
	ItemTypeAttr  = "type"

	// FileMode is the permission of newly created preference files.
	FileMode = 0o644

	prefsPath = RootElement + markup.PathSeparator + PrefsElement
)

// Options configures a Store.
type Options struct {
	// FS performs all file access.
	// Default: OSFS
	FS FileSystem
}

// DefaultOptions returns options backed by the OS file system.
func DefaultOptions() Options {
	return Options{FS: DefaultFS()}
}

// Store is a Registry bound to its rc and state documents. Load merges
// system, rc and state files into the registry; Save writes the rc and
// state files back.
type Store struct {
	*Registry

	fs    FileSystem
	rc    *markup.Document
	state *markup.Document
}

// New returns an empty store.
func New(opts Options) *Store {
	if opts.FS == nil {
		opts.FS = DefaultFS()
	}
	return &Store{Registry: NewRegistry(), fs: opts.FS}
}

// Close releases the rc and state documents.
func (s *Store) Close() {
	s.setDoc(KindRC, nil)
	s.setDoc(KindState, nil)
}

func (s *Store) doc(kind Kind) *markup.Document {
	if kind == KindState {
		return s.state
	}
	return s.rc
}

// setDoc replaces the document for kind, dropping the store's reference to
// the previous one.
func (s *Store) setDoc(kind Kind, d *markup.Document) {
	slot := &s.rc
	if kind == KindState {
		slot = &s.state
	}
	if *slot != nil {
		(*slot).Unref()
	}
	*slot = d
}

// newPrefsDocument returns an empty document with the versioned root.
func newPrefsDocument(kind Kind) *markup.Document {
	d := markup.NewDocument(kind.String())
	root := d.CreateRootElement(RootElement)
	d.SetAttr(root, VersionAttr, FormatVersion)
	return d
}

// Document returns the document backing kind, creating an empty one when no
// file has been loaded. The store keeps ownership; call Ref to retain it.
func (s *Store) Document(kind Kind) *markup.Document {
	if s.doc(kind) == nil {
		s.setDoc(kind, newPrefsDocument(kind))
	}
	return s.doc(kind)
}

// Markup returns the document for kind together with its root element.
// Collaborators may keep their own elements under the root; only the Prefs
// container is rewritten on save.
func (s *Store) Markup(kind Kind) (*markup.Document, types.NodeID) {
	d := s.Document(kind)
	root, ok := d.RootElement(RootElement)
	if !ok {
		root = d.CreateRootElement(RootElement)
		d.SetAttr(root, VersionAttr, FormatVersion)
	}
	return d, root
}

// Modified reports whether the rc file needs saving.
func (s *Store) Modified() bool {
	if s.rc != nil && s.rc.Modified() {
		return true
	}
	return s.rcDirty
}

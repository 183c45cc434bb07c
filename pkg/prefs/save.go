package prefs

import (
	"bytes"
	"errors"
	"io/fs"

	"github.com/joshuapare/prefkit/internal/logger"
	"github.com/joshuapare/prefkit/pkg/markup"
	"github.com/joshuapare/prefkit/pkg/markup/printer"
	"github.com/joshuapare/prefkit/pkg/types"
)

// Save writes the rc and state files. Empty paths are skipped.
//
// The rc file is rewritten only when an rc key changed or its document was
// edited directly. The state file is always rebuilt, but left alone when
// the result matches what is already on disk. A file that ends up with no
// items and no foreign elements is removed instead of written.
func (s *Store) Save(rcFile, stateFile string) error {
	if rcFile != "" {
		if s.Modified() {
			if err := s.saveFile(rcFile, KindRC, false); err != nil {
				return err
			}
			s.rc.SetModified(false)
			s.rcDirty = false
		} else {
			logger.Debug("rc file unchanged, not saving", "file", rcFile)
		}
	}

	if stateFile != "" {
		return s.saveFile(stateFile, KindState, true)
	}
	return nil
}

func (s *Store) saveFile(path string, kind Kind, skipUnchanged bool) error {
	d := s.sync(kind)

	if isEmpty(d) {
		if _, err := s.fs.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err := s.fs.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return types.Errorf(types.ErrKindIO, "remove %s: %w", path, err)
		}
		logger.Info("removed empty preference file", "file", path)
		return nil
	}

	var buf bytes.Buffer
	if err := printer.Pretty(&buf, d, printer.DefaultOptions()); err != nil {
		return types.Errorf(types.ErrKindIO, "render %s: %w", path, err)
	}

	if skipUnchanged {
		if old, err := s.fs.ReadFile(path); err == nil && bytes.Equal(old, buf.Bytes()) {
			logger.Debug("preference file unchanged, not saving", "file", path)
			return nil
		}
	}

	if err := s.fs.WriteFile(path, buf.Bytes(), FileMode); err != nil {
		return types.Errorf(types.ErrKindIO, "write %s: %w", path, err)
	}
	logger.Debug("preference file saved", "file", path, "kind", kind.String())
	return nil
}

// sync rebuilds the Prefs container of kind's document from the registry:
// one item per key whose value differs from its default, sorted by key.
func (s *Store) sync(kind Kind) *markup.Document {
	d, _ := s.Markup(kind)

	if old, ok := d.GetElement(d.Root(), prefsPath); ok {
		d.DeleteNode(old)
	}

	var keys []string
	for _, k := range s.ListKeys(kind) {
		if s.items[k].changed() {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return d
	}

	container := d.CreateElementPath(d.Root(), prefsPath)
	for _, k := range keys {
		it := s.items[k]
		el := d.CreateTextElement(container, ItemElement, it.value.String())
		d.SetAttr(el, ItemNameAttr, k)
		d.SetAttr(el, ItemTypeAttr, it.typ.String())
	}
	return d
}

// isEmpty reports whether d holds nothing but a bare root element.
func isEmpty(d *markup.Document) bool {
	top := d.Elements(d.Root())
	switch len(top) {
	case 0:
		return true
	case 1:
		return d.NodeName(top[0]) == RootElement && !d.HasElements(top[0])
	default:
		return false
	}
}

package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/joshuapare/prefkit/internal/logger"
	"github.com/joshuapare/prefkit/pkg/markup"
	"github.com/joshuapare/prefkit/pkg/types"
)

// tier is a file's position in the merge order.
type tier uint8

const (
	tierSys tier = iota
	tierRC
	tierState
)

func (t tier) String() string {
	switch t {
	case tierSys:
		return "sys"
	case tierRC:
		return "rc"
	default:
		return "state"
	}
}

// Warning is a recoverable problem found while loading a file. The affected
// key, if any, kept its previous value or its default.
type Warning struct {
	File string
	Key  string
	Err  error
}

func (w Warning) Error() string {
	if w.Key == "" {
		return fmt.Sprintf("%s: %v", w.File, w.Err)
	}
	return fmt.Sprintf("%s: key %q: %v", w.File, w.Key, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }

// LoadReport describes what a Load call merged.
type LoadReport struct {
	Loaded   []string  // files merged into the registry
	Missing  []string  // files that did not exist
	Warnings []Warning // per-item problems that did not stop the load
}

func (r *LoadReport) warn(file, key string, err error) {
	logger.Warn("preference load warning", "file", file, "key", key, "error", err)
	r.Warnings = append(r.Warnings, Warning{File: file, Key: key, Err: err})
}

// Load merges sysFiles in order, then rcFile, then stateFile into the
// registry. Empty paths are skipped, as are files that do not exist.
//
// A file that cannot be read, parsed or fails the root/version check
// contributes nothing, but the remaining files are still loaded; every such
// failure is returned joined together. Item-level problems are reported as
// warnings and never fail the call.
func (s *Store) Load(sysFiles []string, rcFile, stateFile string) (*LoadReport, error) {
	s.rcDirty = false

	report := &LoadReport{}
	var errs []error

	for _, f := range sysFiles {
		if err := s.loadFile(f, tierSys, report); err != nil {
			errs = append(errs, err)
		}
	}
	if rcFile != "" {
		if err := s.loadFile(rcFile, tierRC, report); err != nil {
			errs = append(errs, err)
		}
	}
	if stateFile != "" {
		if err := s.loadFile(stateFile, tierState, report); err != nil {
			errs = append(errs, err)
		}
	}

	return report, errors.Join(errs...)
}

func (s *Store) loadFile(path string, t tier, report *LoadReport) error {
	if path == "" {
		return nil
	}

	data, err := s.fs.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("preference file missing", "file", path, "tier", t.String())
		report.Missing = append(report.Missing, path)
		return nil
	}
	if err != nil {
		return types.Errorf(types.ErrKindIO, "read %s: %w", path, err)
	}

	doc, err := markup.Parse(bytes.NewReader(data), path)
	if err != nil {
		return err
	}

	root, err := checkRoot(doc, path)
	if err != nil {
		doc.Unref()
		return err
	}

	if container, ok := doc.GetElement(root, PrefsElement); ok {
		for _, el := range doc.Elements(container) {
			s.loadItem(doc, el, path, t, report)
		}
	}

	switch t {
	case tierRC:
		s.setDoc(KindRC, doc)
	case tierState:
		s.setDoc(KindState, doc)
	default:
		doc.Unref()
	}

	logger.Debug("preference file loaded", "file", path, "tier", t.String())
	report.Loaded = append(report.Loaded, path)
	return nil
}

// checkRoot returns the versioned root element of a preference document.
func checkRoot(doc *markup.Document, path string) (types.NodeID, error) {
	root, ok := doc.RootElement(RootElement)
	if !ok {
		return types.NoNode, types.Errorf(types.ErrKindSchema, "%s: element <%s> missing", path, RootElement)
	}
	version, ok := doc.Attr(root, VersionAttr)
	if !ok || version != FormatVersion {
		return types.NoNode, types.Errorf(types.ErrKindSchema, "%s: invalid version %q, want %q", path, version, FormatVersion)
	}
	return root, nil
}

func (s *Store) loadItem(doc *markup.Document, el types.NodeID, path string, t tier, report *LoadReport) {
	if name := doc.NodeName(el); name != ItemElement {
		report.warn(path, "", fmt.Errorf("unexpected element <%s>", name))
		return
	}

	key, _ := doc.Attr(el, ItemNameAttr)
	tag, _ := doc.Attr(el, ItemTypeAttr)
	if key == "" || tag == "" {
		report.warn(path, key, errors.New("item without name or type"))
		return
	}

	typ, err := types.ParseValueType(tag)
	if err != nil {
		report.warn(path, key, err)
		return
	}

	text, _ := doc.TextContent(el)
	v, convErr := types.ParseValue(typ, text)

	it, exists := s.items[key]
	if !exists {
		if convErr != nil {
			report.warn(path, key, convErr)
			return
		}
		kind := KindRC
		if t == tierState {
			kind = KindState
		}
		s.items[key] = &item{
			typ:        typ,
			value:      v,
			def:        v,
			kind:       kind,
			overridden: t == tierSys,
			loadedOnly: t != tierSys,
		}
		return
	}

	if convErr == nil {
		v, convErr = v.Convert(it.typ)
	}
	if convErr != nil {
		report.warn(path, key, convErr)
		if t != tierSys {
			it.value = it.def
		}
		return
	}

	if t == tierSys {
		it.def = v
		it.overridden = true
	}
	it.value = v
}

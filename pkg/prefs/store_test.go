package prefs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/prefkit/pkg/types"
)

// countingFS wraps the OS file system and counts mutating calls.
type countingFS struct {
	OSFS
	writes  int
	removes int
	failOn  string
}

func (c *countingFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if c.failOn != "" && path == c.failOn {
		return errors.New("disk full")
	}
	c.writes++
	return c.OSFS.WriteFile(path, data, perm)
}

func (c *countingFS) Remove(path string) error {
	c.removes++
	return c.OSFS.Remove(path)
}

type fixture struct {
	dir   string
	rc    string
	state string
	fs    *countingFS
	store *Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	cfs := &countingFS{}
	s := New(Options{FS: cfs})
	t.Cleanup(s.Close)
	return &fixture{
		dir:   dir,
		rc:    filepath.Join(dir, "rc.xml"),
		state: filepath.Join(dir, "state.xml"),
		fs:    cfs,
		store: s,
	}
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func prefsFile(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<moo-prefs version="1.0">
  <Prefs>
    ` + strings.Join(items, "\n    ") + `
  </Prefs>
</moo-prefs>
`
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestScenario_MissingFilesThenToggle(t *testing.T) {
	f := newFixture(t)
	s := f.store

	report, err := s.Load(nil, f.rc, f.state)
	require.NoError(t, err)
	assert.Equal(t, []string{f.rc, f.state}, report.Missing)
	assert.Empty(t, s.ListKeys(KindRC))

	s.RegisterBool("UI/ShowHidden", false, KindRC)
	require.NoError(t, s.SetBool("UI/ShowHidden", true))
	require.NoError(t, s.Save(f.rc, f.state))

	expected := `<?xml version="1.0" encoding="UTF-8"?>
<moo-prefs version="1.0">
  <Prefs>
    <item name="UI/ShowHidden" type="bool">TRUE</item>
  </Prefs>
</moo-prefs>
`
	assert.Equal(t, expected, readFile(t, f.rc))
	assert.NoFileExists(t, f.state)

	require.NoError(t, s.SetBool("UI/ShowHidden", false))
	require.NoError(t, s.Save(f.rc, f.state))
	assert.NoFileExists(t, f.rc)
}

func TestSave_SkipsDefaults(t *testing.T) {
	f := newFixture(t)
	s := f.store
	s.RegisterInt("A", 1, KindRC)
	s.RegisterInt("K", 10, KindRC)
	require.NoError(t, s.SetInt("A", 2))

	require.NoError(t, s.Save(f.rc, ""))
	assert.NotContains(t, readFile(t, f.rc), `name="K"`)

	require.NoError(t, s.SetInt("K", 11))
	require.NoError(t, s.Save(f.rc, ""))
	assert.Contains(t, readFile(t, f.rc), `<item name="K" type="int">11</item>`)

	require.NoError(t, s.SetInt("K", 10))
	require.NoError(t, s.Save(f.rc, ""))
	content := readFile(t, f.rc)
	assert.NotContains(t, content, `name="K"`)
	assert.Contains(t, content, `<item name="A" type="int">2</item>`)
}

func TestSave_ItemsSorted(t *testing.T) {
	f := newFixture(t)
	s := f.store
	for _, k := range []string{"z", "a", "m"} {
		s.RegisterString(k, "", KindRC)
		require.NoError(t, s.SetString(k, k+"!"))
	}
	require.NoError(t, s.Save(f.rc, ""))

	content := readFile(t, f.rc)
	ia := strings.Index(content, `name="a"`)
	im := strings.Index(content, `name="m"`)
	iz := strings.Index(content, `name="z"`)
	assert.True(t, ia < im && im < iz, content)
}

func TestSave_TwiceWritesOnce(t *testing.T) {
	f := newFixture(t)
	s := f.store
	s.RegisterBool("rc", false, KindRC)
	s.RegisterInt("state", 0, KindState)
	require.NoError(t, s.SetBool("rc", true))
	require.NoError(t, s.SetInt("state", 3))

	require.NoError(t, s.Save(f.rc, f.state))
	assert.Equal(t, 2, f.fs.writes)

	require.NoError(t, s.Save(f.rc, f.state))
	assert.Equal(t, 2, f.fs.writes)
	assert.Equal(t, 0, f.fs.removes)
}

func TestSave_StateChangeDoesNotRewriteRC(t *testing.T) {
	f := newFixture(t)
	s := f.store
	s.RegisterBool("rc", false, KindRC)
	s.RegisterInt("state", 0, KindState)
	require.NoError(t, s.SetBool("rc", true))
	require.NoError(t, s.Save(f.rc, f.state))
	writes := f.fs.writes

	require.NoError(t, s.SetInt("state", 9))
	assert.False(t, s.Modified())
	require.NoError(t, s.Save(f.rc, f.state))

	assert.Equal(t, writes+1, f.fs.writes)
	assert.Contains(t, readFile(t, f.state), `<item name="state" type="int">9</item>`)
}

func TestLoad_TieredOverride(t *testing.T) {
	f := newFixture(t)
	s := f.store
	sys := f.write(t, "sys.xml", prefsFile(`<item name="K" type="bool">true</item>`))
	rc := f.write(t, "rc.xml", prefsFile(`<item name="K" type="bool">no</item>`))

	_, err := s.Load([]string{sys}, rc, "")
	require.NoError(t, err)

	assert.True(t, s.Overridden("K"))
	def, _ := s.GetDefault("K")
	assert.Equal(t, types.Bool(true), def)
	v, _ := s.GetBool("K")
	assert.False(t, v)

	// Application registration must not reset a system default.
	s.RegisterBool("K", false, KindRC)
	def, _ = s.GetDefault("K")
	assert.Equal(t, types.Bool(true), def)

	// A later system load may still change it.
	f.write(t, "sys.xml", prefsFile(`<item name="K" type="bool">0</item>`))
	_, err = s.Load([]string{sys}, "", "")
	require.NoError(t, err)
	def, _ = s.GetDefault("K")
	assert.Equal(t, types.Bool(false), def)
}

func TestLoad_LaterSysFilesWin(t *testing.T) {
	f := newFixture(t)
	s := f.store
	sys1 := f.write(t, "sys1.xml", prefsFile(`<item name="K" type="int">1</item>`))
	sys2 := f.write(t, "sys2.xml", prefsFile(`<item name="K" type="int">2</item>`))

	_, err := s.Load([]string{sys1, sys2}, "", "")
	require.NoError(t, err)

	v, _ := s.GetInt("K")
	assert.Equal(t, int64(2), v)
	kind, _ := s.KeyKind("K")
	assert.Equal(t, KindRC, kind)
}

func TestLoad_SysKeyReregisteredAsState(t *testing.T) {
	f := newFixture(t)
	s := f.store
	sys := f.write(t, "sys.xml", prefsFile(`<item name="Win/width" type="int">800</item>`))

	_, err := s.Load([]string{sys}, f.rc, f.state)
	require.NoError(t, err)

	s.RegisterInt("Win/width", 640, KindState)
	kind, err := s.KeyKind("Win/width")
	require.NoError(t, err)
	assert.Equal(t, KindState, kind)
	def, _ := s.GetDefault("Win/width")
	assert.Equal(t, types.Int(800), def)
	assert.False(t, s.RCModified())

	require.NoError(t, s.SetInt("Win/width", 1024))
	assert.False(t, s.RCModified())

	require.NoError(t, s.Save(f.rc, f.state))
	_, err = os.Stat(f.rc)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, readFile(t, f.state), `<item name="Win/width" type="int">1024</item>`)
}

func TestLoad_BadFileDoesNotStopOthers(t *testing.T) {
	f := newFixture(t)
	s := f.store
	badVersion := f.write(t, "sys1.xml", `<moo-prefs version="2.0"><Prefs><item name="X" type="int">1</item></Prefs></moo-prefs>`)
	noRoot := f.write(t, "sys2.xml", `<other version="1.0"/>`)
	broken := f.write(t, "sys3.xml", `<moo-prefs version="1.0"><Prefs>`)
	rc := f.write(t, "rc.xml", prefsFile(`<item name="Y" type="string">kept</item>`))

	report, err := s.Load([]string{badVersion, noRoot, broken}, rc, f.state)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSchema)
	assert.ErrorIs(t, err, types.ErrParse)
	assert.Contains(t, err.Error(), badVersion)
	assert.Contains(t, err.Error(), noRoot)

	assert.False(t, s.Registered("X"))
	y, err := s.GetString("Y")
	require.NoError(t, err)
	assert.Equal(t, "kept", y)
	assert.Equal(t, []string{rc}, report.Loaded)
}

func TestLoad_ConversionFailureKeepsDefault(t *testing.T) {
	f := newFixture(t)
	s := f.store
	s.RegisterInt("Num", 5, KindRC)
	s.RegisterBool("Flag", true, KindRC)
	rc := f.write(t, "rc.xml", prefsFile(
		`<item name="Num" type="int">12abc</item>`,
		`<item name="Flag" type="string">maybe</item>`,
		`<item name="Unknown" type="int">nope</item>`,
		`<item name="Weird" type="double">1.5</item>`,
		`<item type="int">1</item>`,
		`<other/>`,
	))

	report, err := s.Load(nil, rc, "")
	require.NoError(t, err)
	require.Len(t, report.Warnings, 6)
	assert.Equal(t, "Num", report.Warnings[0].Key)
	assert.ErrorIs(t, report.Warnings[0], types.ErrConversion)

	n, _ := s.GetInt("Num")
	assert.Equal(t, int64(5), n)
	b, _ := s.GetBool("Flag")
	assert.True(t, b)
	assert.False(t, s.Registered("Unknown"))
	assert.False(t, s.Registered("Weird"))
}

func TestLoad_ConvertsToRegisteredType(t *testing.T) {
	f := newFixture(t)
	s := f.store
	s.RegisterBool("Flag", false, KindRC)
	rc := f.write(t, "rc.xml", prefsFile(`<item name="Flag" type="string">Yes</item>`))

	_, err := s.Load(nil, rc, "")
	require.NoError(t, err)
	b, err := s.GetBool("Flag")
	require.NoError(t, err)
	assert.True(t, b)
	assert.False(t, s.Modified())
}

func TestLoad_UnregisteredKeysSurviveSave(t *testing.T) {
	f := newFixture(t)
	s := f.store
	f.write(t, "rc.xml", prefsFile(
		`<item name="Plugin/Enabled" type="bool">TRUE</item>`,
		`<item name="UI/Width" type="int">640</item>`,
	))

	_, err := s.Load(nil, f.rc, "")
	require.NoError(t, err)
	def, _ := s.GetDefault("Plugin/Enabled")
	assert.Equal(t, types.Bool(true), def)

	s.RegisterInt("UI/Width", 800, KindRC)
	require.NoError(t, s.SetInt("UI/Width", 1024))
	require.NoError(t, s.Save(f.rc, ""))

	content := readFile(t, f.rc)
	assert.Contains(t, content, `<item name="Plugin/Enabled" type="bool">TRUE</item>`)
	assert.Contains(t, content, `<item name="UI/Width" type="int">1024</item>`)
}

func TestLoad_StateTier(t *testing.T) {
	f := newFixture(t)
	s := f.store
	f.write(t, "state.xml", prefsFile(`<item name="Window/X" type="uint">120</item>`))

	_, err := s.Load(nil, "", f.state)
	require.NoError(t, err)

	kind, _ := s.KeyKind("Window/X")
	assert.Equal(t, KindState, kind)
	x, _ := s.GetUint("Window/X")
	assert.Equal(t, uint64(120), x)
	assert.False(t, s.Modified())
}

func TestLoad_ResetsRCModified(t *testing.T) {
	f := newFixture(t)
	s := f.store
	s.RegisterBool("K", false, KindRC)
	require.NoError(t, s.SetBool("K", true))
	require.True(t, s.Modified())

	_, err := s.Load(nil, f.rc, "")
	require.NoError(t, err)
	assert.False(t, s.Modified())
}

func TestMarkup_ForeignElementsKept(t *testing.T) {
	f := newFixture(t)
	s := f.store
	_, err := s.Load(nil, f.rc, "")
	require.NoError(t, err)

	d, root := s.Markup(KindRC)
	tools := d.CreateElement(root, "Tools")
	d.CreateTextElement(tools, "tool", "grep")
	assert.True(t, s.Modified())

	require.NoError(t, s.Save(f.rc, ""))
	content := readFile(t, f.rc)
	assert.Contains(t, content, "<tool>grep</tool>")
	assert.NotContains(t, content, "<Prefs")
	assert.False(t, s.Modified())

	// Reload and check the element is still reachable.
	s2 := New(Options{FS: f.fs})
	defer s2.Close()
	_, err = s2.Load(nil, f.rc, "")
	require.NoError(t, err)
	d2, root2 := s2.Markup(KindRC)
	_, ok := d2.GetElement(root2, "Tools/tool")
	assert.True(t, ok)
}

func TestSave_FailureKeepsPreviousFile(t *testing.T) {
	f := newFixture(t)
	s := f.store
	s.RegisterString("K", "", KindRC)
	require.NoError(t, s.SetString("K", "first"))
	require.NoError(t, s.Save(f.rc, ""))

	f.fs.failOn = f.rc
	require.NoError(t, s.SetString("K", "second"))
	err := s.Save(f.rc, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)

	assert.Contains(t, readFile(t, f.rc), ">first<")
	assert.True(t, s.Modified(), "failed save keeps the rc file dirty")
}

func TestSave_EscapesValues(t *testing.T) {
	f := newFixture(t)
	s := f.store
	s.RegisterString("Cmd", "", KindRC)
	require.NoError(t, s.SetString("Cmd", `a < b && echo "x"`))
	require.NoError(t, s.Save(f.rc, ""))

	s2 := New(Options{FS: f.fs})
	defer s2.Close()
	_, err := s2.Load(nil, f.rc, "")
	require.NoError(t, err)
	v, _ := s2.GetString("Cmd")
	assert.Equal(t, `a < b && echo "x"`, v)
}

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DisabledDiscards(t *testing.T) {
	require.NoError(t, Init(Options{Enabled: false}))
	assert.False(t, L.Enabled(t.Context(), slog.LevelError))

	stderr := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	Error("dropped", "key", "value")
	w.Close()
	os.Stderr = stderr

	var out bytes.Buffer
	_, err = out.ReadFrom(r)
	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestInit_TextWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Writer: &buf, Level: slog.LevelDebug}))
	t.Cleanup(func() { Init(Options{}) })

	Debug("loaded", "file", "rc.xml")
	assert.Contains(t, buf.String(), "msg=loaded")
	assert.Contains(t, buf.String(), "file=rc.xml")
}

func TestInit_JSONWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Writer: &buf, Format: FormatJSON, Level: slog.LevelWarn}))
	t.Cleanup(func() { Init(Options{}) })

	Info("hidden")
	Warn("shown", "key", "UI/ShowHidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "UI/ShowHidden", rec["key"])
}

func TestInit_LogDirCleansOldFiles(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, logPrefix+time.Now().AddDate(0, 0, -retentionDays-5).Format("2006-01-02")+logSuffix)
	unrelated := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(old, nil, 0o644))
	require.NoError(t, os.WriteFile(unrelated, nil, 0o644))

	require.NoError(t, Init(Options{Enabled: true, LogDir: dir}))
	t.Cleanup(func() { Init(Options{}) })

	assert.NoFileExists(t, old)
	assert.FileExists(t, unrelated)
	assert.FileExists(t, filepath.Join(dir, logPrefix+time.Now().Format("2006-01-02")+logSuffix))
}

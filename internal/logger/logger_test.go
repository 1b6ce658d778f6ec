package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestZerologAdapterWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Info("DocumentSession", "document opened", map[string]interface{}{"path": "/tmp/a.txt"})
	log.Error("Storage", errors.New("disk full"), map[string]interface{}{"path": "/tmp/b.txt"})

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)

	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "DocumentSession", entries[0]["component"])
	assert.Equal(t, "document opened", entries[0]["message"])
	assert.Equal(t, "/tmp/a.txt", entries[0]["path"])

	assert.Equal(t, "error", entries[1]["level"])
	assert.Equal(t, "disk full", entries[1]["error"])
	assert.Equal(t, "Storage", entries[1]["component"])
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("Shell", "hidden", nil)
	log.Info("Shell", "hidden too", nil)
	log.Warning("Shell", "shown", nil)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewWithLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notepad.log")

	log, err := New(Options{Level: "info", JSON: true, File: path})
	require.NoError(t, err)

	log.Info("App", "started", nil)
	log.Shutdown()
	log.Shutdown()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"started"`)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestNewWrapsLogFileError(t *testing.T) {
	_, err := New(Options{File: filepath.Join(t.TempDir(), "missing", "notepad.log")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log file")
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestShutdownWhileLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notepad.log")
	log, err := New(Options{Level: "info", JSON: true, File: path})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				log.Info("Worker", "tick", map[string]interface{}{"worker": worker, "n": j})
			}
		}(i)
	}

	log.Shutdown()
	wg.Wait()
	log.Shutdown()

	log.Info("Worker", "after shutdown", nil)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "after shutdown")
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		assert.True(t, json.Valid(line), "log file entries are never torn: %q", line)
	}
}

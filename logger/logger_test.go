// file: logger/logger_test.go
package logger

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_CreatesTimestampedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	t.Cleanup(func() { SetOutput(os.Stdout) })

	require.NoError(t, InitLogger(dir))
	Info.Println("hello from test")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "INFO: ")
	assert.Contains(t, string(data), "hello from test")
}

func TestSetLogLevel_ProductionDiscardsDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	SetLogLevel("production")
	Debug.Println("hidden")
	Warn.Println("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN: ")
	assert.Equal(t, io.Discard, Debug.Writer())
}

func TestSetLogLevel_DevelopmentKeepsDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	SetLogLevel("development")
	Debug.Println("visible")

	assert.Contains(t, buf.String(), "DEBUG: ")
}

package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUIModeSendsEntriesToChannel(t *testing.T) {
	ch := initCommon("tui", LevelInfo, &bytes.Buffer{}, 4)
	defer CloseTUIChannel()

	Debug("Test", "hidden %d", 1)
	Info("Test", "visible %d", 2)
	Error("Test", errors.New("boom"), "failed")

	require.Len(t, ch, 2)
	first := <-ch
	assert.Equal(t, LevelInfo, first.Level)
	assert.Equal(t, "Test", first.Subsystem)
	assert.Equal(t, "visible 2", first.Message)

	second := <-ch
	assert.Equal(t, LevelError, second.Level)
	assert.EqualError(t, second.Err, "boom")
	assert.Contains(t, second.String(), "[ERROR] Test: failed: boom")
}

func TestTUIModeDropsWhenFull(t *testing.T) {
	ch := initCommon("tui", LevelDebug, &bytes.Buffer{}, 1)
	defer CloseTUIChannel()

	Info("Test", "one")
	Info("Test", "two")

	assert.Len(t, ch, 1)
	assert.Equal(t, 1, Dropped())
}

func TestCLIModeWritesThroughHandler(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Info("Test", "quiet")
	Warn("Test", "loud %s", "warning")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud warning")
	assert.Contains(t, out, "subsystem=Test")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("ERROR"))
	assert.Equal(t, LevelInfo, ParseLevel("anything"))
	assert.Equal(t, "WARN", LevelWarn.String())
}

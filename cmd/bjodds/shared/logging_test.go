package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupLogger(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "key=value")

	_, err = SetupLogger(&buf, "loud")
	assert.Error(t, err)
}

func TestSetupFileLogger(t *testing.T) {
	t.Run("discard without path", func(t *testing.T) {
		logger, closeFn, err := SetupFileLogger("", "info")
		require.NoError(t, err)
		logger.Info("nowhere")
		assert.NoError(t, closeFn())
	})

	t.Run("writes to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bjodds.log")
		logger, closeFn, err := SetupFileLogger(path, "debug")
		require.NoError(t, err)

		logger.Debug("to the file")
		require.NoError(t, closeFn())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "to the file")
	})
}

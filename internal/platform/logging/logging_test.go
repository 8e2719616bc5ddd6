package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrmon/internal/platform/config"
	"hrmon/internal/platform/logging"
)

func TestNewWritesJSONToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "hrmon.log")
	logger, closer, err := logging.New(config.Log{Level: "debug", File: path}, false)
	require.NoError(t, err)

	logger.Debug().Str("component", "test").Msg("hello")
	require.NoError(t, closer.Close())

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(payload))
	assert.Contains(t, line, `"level":"debug"`)
	assert.Contains(t, line, `"component":"test"`)
	assert.Contains(t, line, `"time":`)
}

func TestNewFiltersBelowLevel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hrmon.log")
	logger, closer, err := logging.New(config.Log{Level: "warn", File: path}, false)
	require.NoError(t, err)

	logger.Info().Msg("quiet")
	logger.Warn().Msg("loud")
	require.NoError(t, closer.Close())

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "quiet")
	assert.Contains(t, string(payload), "loud")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, _, err := logging.New(config.Log{Level: "chatty"}, false)
	assert.Error(t, err)
}

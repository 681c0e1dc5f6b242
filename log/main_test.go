package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetFile("", 0, 0)

	SetVerbose(false)
	GetLogger().Debug().Msg("hidden")
	GetLogger().Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	SetVerbose(true)
	defer SetVerbose(false)
	GetLogger().Debug().Msg("details")
	assert.Contains(t, buf.String(), "details")
}

func TestSetFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "dartreorder.log")
	SetFile(filename, 1, 1)
	defer SetFile("", 0, 0)

	GetLogger().Error().Str("file", "a.dart").Msg("cannot parse")

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(content), "cannot parse")
	assert.Contains(t, string(content), "a.dart")
}

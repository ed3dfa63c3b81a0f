package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPatterns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.list")
	content := `# paths kept by a minimal migration
user/Login Data

  root/session_manager/policy  
!user/Cache
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := LoadPatterns(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"user/Login Data", "root/session_manager/policy", "!user/Cache"}, got)
}

func TestLoadPatternsMissing(t *testing.T) {
	_, err := LoadPatterns(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestLoadPatternsInvalidLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.list")
	require.NoError(t, os.WriteFile(path, []byte("ok\n/\n"), 0o644))

	_, err := LoadPatterns(path)
	require.ErrorContains(t, err, "line 2")
}

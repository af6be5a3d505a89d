package curseforge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintOfFile(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "sodium-0.5.8.jar")
	require.NoError(t, os.WriteFile(jar, []byte("PK\x03\x04 fake jar payload"), 0o644))

	first, err := FingerprintOfFile(jar)
	require.NoError(t, err)
	assert.Positive(t, first)

	second, err := FingerprintOfFile(jar)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same content fingerprints identically")
}

func TestFingerprintOfFileMissing(t *testing.T) {
	_, err := FingerprintOfFile(filepath.Join(t.TempDir(), "ghost.jar"))

	assert.Error(t, err)
}

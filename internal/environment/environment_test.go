package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModrinthAPIKey(t *testing.T) {
	t.Run("from environment", func(t *testing.T) {
		t.Setenv("MODRINTH_API_KEY", "test-key")
		assert.Equal(t, "test-key", ModrinthAPIKey())
	})

	t.Run("build-time default", func(t *testing.T) {
		t.Setenv("MODRINTH_API_KEY", "")
		assert.Equal(t, "", ModrinthAPIKey())
	})
}

func TestCurseforgeAPIKey(t *testing.T) {
	t.Setenv("CURSEFORGE_API_KEY", "cf-key")
	assert.Equal(t, "cf-key", CurseforgeAPIKey())
}

func TestAppVersionPlaceholder(t *testing.T) {
	assert.NotEmpty(t, AppVersion())
}

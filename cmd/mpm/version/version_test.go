package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packsmith/minecraft-pack-manager/internal/environment"
)

func TestVersionCommand(t *testing.T) {
	cmd := Command()
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	require.NoError(t, cmd.Execute())

	assert.Equal(t, environment.AppVersion()+"\n", out.String())
}

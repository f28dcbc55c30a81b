package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWatchCommand(t *testing.T) {
	cmd := NewWatchCommand()

	assert.Equal(t, "watch [dir]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("output"))
	assert.NotNil(t, cmd.Flags().Lookup("verbose"))
	assert.NotNil(t, cmd.Flags().Lookup("jobs"))
}

func TestWatchSession_Regenerate(t *testing.T) {
	dir := setupProject(t, map[string]string{
		"Source/ULightComponent.h": lightHeader,
	})

	var out bytes.Buffer
	session := &watchSession{
		opts: &pipelineOptions{
			SourceDir: filepath.Join(dir, "Source"),
			OutputDir: filepath.Join(dir, "Generated"),
			Jobs:      1,
		},
		logger: zap.NewNop(),
		out:    &out,
	}

	require.NoError(t, session.regenerate(context.Background()))
	assert.Contains(t, out.String(), "1 class(es), 2 file(s) changed")

	// Editing the header picks up the new property on the next run
	edited := lightHeader[:len(lightHeader)-3] + "\tUPROPERTY(EditAnywhere, Category=\"Light\")\n\tbool bCastShadows = true;\n};\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Source", "ULightComponent.h"), []byte(edited), 0644))

	out.Reset()
	require.NoError(t, session.regenerate(context.Background()))
	assert.Contains(t, out.String(), "1 class(es), 1 file(s) changed")

	source, err := os.ReadFile(filepath.Join(dir, "Generated", "ULightComponent.generated.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(source), `ADD_PROPERTY(bool, bCastShadows, "Light", true)`)
}

func TestWatchSession_MissingSource(t *testing.T) {
	dir := t.TempDir()
	session := &watchSession{
		opts: &pipelineOptions{
			SourceDir: filepath.Join(dir, "missing"),
			OutputDir: filepath.Join(dir, "Generated"),
			Jobs:      1,
		},
		logger: zap.NewNop(),
		out:    &bytes.Buffer{},
	}

	assert.Error(t, session.regenerate(context.Background()))
}

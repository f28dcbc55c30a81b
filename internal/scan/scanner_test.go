package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundi-engine/reflectgen/internal/compiler/classifier"
	compilererrors "github.com/mundi-engine/reflectgen/internal/compiler/errors"
	"github.com/mundi-engine/reflectgen/internal/compiler/metadata"
)

const componentHeader = `#pragma once
class %[1]s : public UActorComponent
{
	GENERATED_REFLECTION_BODY()
public:
	UPROPERTY(EditAnywhere, Category="Rendering")
	UTexture* Sprite = nullptr;

	UPROPERTY(EditAnywhere, Category="Light", Range="0, 1")
	float Intensity = 1.0f;
};
`

const plainHeader = `#pragma once
class FPlain : public FBase
{
	UPROPERTY(EditAnywhere)
	int32 Ignored;
};
`

func writeHeader(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func classNames(classes []*metadata.ClassDecl) []string {
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
	}
	return names
}

func TestFindReflectionClasses(t *testing.T) {
	root := t.TempDir()
	writeHeader(t, root, "Components/ULightComponent.h", fmt.Sprintf(componentHeader, "ULightComponent"))
	writeHeader(t, root, "Components/UBillboardComponent.h", fmt.Sprintf(componentHeader, "UBillboardComponent"))
	writeHeader(t, root, "Core/Plain.h", plainHeader)
	writeHeader(t, root, "Core/Notes.txt", fmt.Sprintf(componentHeader, "UIgnored"))

	s := NewScanner(Options{})
	result, err := s.FindReflectionClasses(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 3, result.FilesScanned)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, []string{"UBillboardComponent", "ULightComponent"}, classNames(result.Classes))

	light := result.Classes[1]
	require.Len(t, light.Properties, 2)
	assert.Equal(t, classifier.Texture, classifier.Of(light.Properties[0]))
	inner, ok := light.Properties[0].Extra.Get(metadata.ExtraInnerType)
	assert.True(t, ok)
	assert.Equal(t, "EPropertyType::Texture", inner)
	assert.Equal(t, classifier.Ranged, classifier.Of(light.Properties[1]))
}

func TestFindReflectionClasses_Excludes(t *testing.T) {
	root := t.TempDir()
	writeHeader(t, root, "A.h", fmt.Sprintf(componentHeader, "UA"))
	writeHeader(t, root, "Intermediate/UA.generated.h", fmt.Sprintf(componentHeader, "UGenerated"))

	s := NewScanner(Options{Exclude: []string{"Intermediate/**"}})
	result, err := s.FindReflectionClasses(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesScanned)
	assert.Equal(t, []string{"UA"}, classNames(result.Classes))
}

func TestFindReflectionClasses_OrderIndependentOfJobs(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("UComp%02d", i)
		writeHeader(t, root, fmt.Sprintf("Dir%d/%s.h", i%3, name), fmt.Sprintf(componentHeader, name))
	}

	serial, err := NewScanner(Options{Jobs: 1}).FindReflectionClasses(context.Background(), root)
	require.NoError(t, err)
	parallel, err := NewScanner(Options{Jobs: 8}).FindReflectionClasses(context.Background(), root)
	require.NoError(t, err)

	assert.Len(t, serial.Classes, 20)
	assert.Equal(t, classNames(serial.Classes), classNames(parallel.Classes))
}

func TestFindReflectionClasses_MissingRoot(t *testing.T) {
	s := NewScanner(Options{})
	_, err := s.FindReflectionClasses(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestFindReflectionClasses_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeHeader(t, root, "A.h", fmt.Sprintf(componentHeader, "UA"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScanner(Options{}).FindReflectionClasses(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanFile_ReadFailure(t *testing.T) {
	s := NewScanner(Options{})
	path := filepath.Join(t.TempDir(), "Gone.h")

	out := s.scanFile(path)
	assert.Nil(t, out.class)
	require.NotNil(t, out.diag)
	diag := out.diag
	assert.Equal(t, compilererrors.CodeReadFailed, diag.Code)
	assert.Equal(t, compilererrors.PhaseScan, diag.Phase)
	assert.Equal(t, path, diag.Location.File)
	assert.True(t, diag.IsError())
}

func TestScanFile_NotApplicable(t *testing.T) {
	root := t.TempDir()
	path := writeHeader(t, root, "Plain.h", plainHeader)

	out := NewScanner(Options{}).scanFile(path)
	assert.Nil(t, out.class)
	assert.Nil(t, out.diag)
}

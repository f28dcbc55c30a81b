package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mundi-engine/reflectgen/internal/compiler/metadata"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		lo, hi float64
		ok     bool
	}{
		{name: "integers", input: "0,1", lo: 0, hi: 1, ok: true},
		{name: "spaced floats", input: "0.0, 10000.0", lo: 0, hi: 10000, ok: true},
		{name: "negative", input: "-1.5,2.5", lo: -1.5, hi: 2.5, ok: true},
		{name: "exponent", input: "1e-3, 1e3", lo: 0.001, hi: 1000, ok: true},
		{name: "single token", input: "5", ok: false},
		{name: "three tokens", input: "0,1,2", ok: false},
		{name: "empty min", input: ",1", ok: false},
		{name: "empty max", input: "1, ", ok: false},
		{name: "non numeric min", input: "low,1", ok: false},
		{name: "non numeric max", input: "0,high", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := ParseRange(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.lo, lo)
				assert.Equal(t, tt.hi, hi)
			}
		})
	}
}

func TestResolveProperty_Attributes(t *testing.T) {
	r := NewResolver()

	t.Run("all attributes", func(t *testing.T) {
		prop := r.ResolveProperty(RawProperty{
			Meta: `EditAnywhere, Category="Fog", Range="0.0, 1.0", Tooltip="Fog density"`,
			Type: "float",
			Name: "Density",
		})
		assert.Equal(t, "Density", prop.Name)
		assert.Equal(t, "float", prop.Type)
		assert.Equal(t, "Fog", prop.Category)
		assert.True(t, prop.Editable)
		assert.True(t, prop.HasRange)
		assert.Equal(t, 0.0, prop.MinValue)
		assert.Equal(t, 1.0, prop.MaxValue)
		assert.Equal(t, "Fog density", prop.Tooltip)
		assert.Equal(t, 0, prop.Extra.Len())
	})

	t.Run("no attributes", func(t *testing.T) {
		prop := r.ResolveProperty(RawProperty{Type: "int32", Name: "Count"})
		assert.Empty(t, prop.Category)
		assert.False(t, prop.Editable)
		assert.False(t, prop.HasRange)
		assert.Empty(t, prop.Tooltip)
	})

	t.Run("malformed range is absent, rest still resolves", func(t *testing.T) {
		prop := r.ResolveProperty(RawProperty{
			Meta: `EditAnywhere, Category="Fog", Range="zero,1", Tooltip="Still here"`,
			Type: "float",
			Name: "Bad",
		})
		assert.False(t, prop.HasRange)
		assert.Equal(t, 0.0, prop.MinValue)
		assert.Equal(t, 0.0, prop.MaxValue)
		assert.Equal(t, "Fog", prop.Category)
		assert.Equal(t, "Still here", prop.Tooltip)
		assert.True(t, prop.Editable)
	})

	t.Run("empty quoted value is absent", func(t *testing.T) {
		prop := r.ResolveProperty(RawProperty{Meta: `Category=""`, Type: "float", Name: "X"})
		assert.Empty(t, prop.Category)
	})

	t.Run("editable is a presence flag", func(t *testing.T) {
		prop := r.ResolveProperty(RawProperty{Meta: `Category="A", EditAnywhere`, Type: "float", Name: "X"})
		assert.True(t, prop.Editable)

		prop = r.ResolveProperty(RawProperty{Meta: `VisibleAnywhere`, Type: "float", Name: "X"})
		assert.False(t, prop.Editable)
	})
}

func TestResolveFunction(t *testing.T) {
	r := NewResolver()

	t.Run("display name and lua flag", func(t *testing.T) {
		fn := r.ResolveFunction(RawFunction{
			Meta:       `LuaBind, DisplayName="Enable"`,
			ReturnType: "void",
			Name:       "EnableComponent",
		})
		assert.Equal(t, "Enable", fn.DisplayName)
		assert.True(t, fn.LuaBound())
		assert.Empty(t, fn.Params)
	})

	t.Run("defaults", func(t *testing.T) {
		fn := r.ResolveFunction(RawFunction{ReturnType: "int32", Name: "GetCount", IsConst: true})
		assert.Equal(t, "GetCount", fn.DisplayName)
		assert.True(t, fn.IsConst)
		v, ok := fn.Extra.Get(metadata.ExtraLuaBind)
		require.True(t, ok)
		assert.Equal(t, "false", v)
	})
}

func TestParseParams(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []metadata.ParamDecl
	}{
		{name: "empty", input: "", want: []metadata.ParamDecl{}},
		{name: "whitespace only", input: "  \n ", want: []metadata.ParamDecl{}},
		{
			name:  "qualified reference",
			input: "const FString& Name",
			want:  []metadata.ParamDecl{{Name: "Name", Type: "const FString&"}},
		},
		{
			name:  "multiple",
			input: "uint32 Index,  UMaterialInterface* NewMaterial",
			want: []metadata.ParamDecl{
				{Name: "Index", Type: "uint32"},
				{Name: "NewMaterial", Type: "UMaterialInterface*"},
			},
		},
		{
			name:  "segment without boundary is dropped",
			input: "float Value, void, int32\tCount",
			want: []metadata.ParamDecl{
				{Name: "Value", Type: "float"},
				{Name: "Count", Type: "int32"},
			},
		},
		{
			name:  "multiline",
			input: "\n\tconst FVector& Location,\n\tbool   bSweep\n",
			want: []metadata.ParamDecl{
				{Name: "Location", Type: "const FVector&"},
				{Name: "bSweep", Type: "bool"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseParams(tt.input))
		})
	}
}

func TestResolveClass(t *testing.T) {
	r := NewResolver()

	cls := r.ResolveClass(RawClass{Name: "UFoo", Parent: "UObject"}, "Foo.h")
	assert.True(t, cls.IsComponent)
	assert.Empty(t, cls.DisplayName)

	cls = r.ResolveClass(RawClass{
		Name:          "AFoo",
		Parent:        "AActor",
		Meta:          `DisplayName = "Foo", Description = "A foo actor", Spawnable`,
		HasAnnotation: true,
	}, "Foo.h")
	assert.Equal(t, "Foo", cls.DisplayName)
	assert.Equal(t, "A foo actor", cls.Description)
	assert.True(t, cls.IsSpawnable)
	assert.False(t, cls.IsComponent)
	assert.Equal(t, "Foo.h", cls.SourcePath)
}

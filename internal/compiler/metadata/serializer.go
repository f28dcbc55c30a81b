package metadata

import (
	"encoding/json"
	"fmt"
)

// ManifestVersion is the schema version written into every manifest
const ManifestVersion = "1.0.0"

// Manifest is the JSON view of every class found in one scan
type Manifest struct {
	Version string          `json:"version"`
	Classes []ClassManifest `json:"classes"`
}

// ClassManifest describes a class in the manifest
type ClassManifest struct {
	Name        string             `json:"name"`
	Parent      string             `json:"parent"`
	SourcePath  string             `json:"source_path"`
	DisplayName string             `json:"display_name,omitempty"`
	Description string             `json:"description,omitempty"`
	IsComponent bool               `json:"is_component"`
	IsSpawnable bool               `json:"is_spawnable"`
	Properties  []PropertyManifest `json:"properties"`
	Functions   []FunctionManifest `json:"functions"`
}

// PropertyManifest describes a property in the manifest
type PropertyManifest struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Category string      `json:"category,omitempty"`
	Editable bool        `json:"editable"`
	Tooltip  string      `json:"tooltip,omitempty"`
	Range    *[2]float64 `json:"range,omitempty"`
	Extra    *Extra      `json:"extra,omitempty"`
}

// FunctionManifest describes a function in the manifest
type FunctionManifest struct {
	Name        string      `json:"name"`
	DisplayName string      `json:"display_name"`
	ReturnType  string      `json:"return_type"`
	Params      []ParamDecl `json:"params"`
	IsConst     bool        `json:"is_const"`
	Extra       *Extra      `json:"extra,omitempty"`
}

// NewManifest builds a manifest from classes, keeping their order
func NewManifest(classes []*ClassDecl) *Manifest {
	m := &Manifest{
		Version: ManifestVersion,
		Classes: make([]ClassManifest, 0, len(classes)),
	}
	for _, c := range classes {
		m.Classes = append(m.Classes, classManifest(c))
	}
	return m
}

func classManifest(c *ClassDecl) ClassManifest {
	cm := ClassManifest{
		Name:        c.Name,
		Parent:      c.Parent,
		SourcePath:  c.SourcePath,
		DisplayName: c.DisplayName,
		Description: c.Description,
		IsComponent: c.IsComponent,
		IsSpawnable: c.IsSpawnable,
		Properties:  make([]PropertyManifest, 0, len(c.Properties)),
		Functions:   make([]FunctionManifest, 0, len(c.Functions)),
	}

	for _, p := range c.Properties {
		pm := PropertyManifest{
			Name:     p.Name,
			Type:     p.Type,
			Category: p.Category,
			Editable: p.Editable,
			Tooltip:  p.Tooltip,
		}
		if p.HasRange {
			pm.Range = &[2]float64{p.MinValue, p.MaxValue}
		}
		if p.Extra.Len() > 0 {
			pm.Extra = p.Extra
		}
		cm.Properties = append(cm.Properties, pm)
	}

	for _, f := range c.Functions {
		params := f.Params
		if params == nil {
			params = []ParamDecl{}
		}
		fm := FunctionManifest{
			Name:        f.Name,
			DisplayName: f.DisplayName,
			ReturnType:  f.ReturnType,
			Params:      params,
			IsConst:     f.IsConst,
		}
		if f.Extra.Len() > 0 {
			fm.Extra = f.Extra
		}
		cm.Functions = append(cm.Functions, fm)
	}

	return cm
}

// Serialize converts a manifest to indented JSON.
// The same manifest always produces the same bytes.
func Serialize(m *Manifest) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("manifest cannot be nil")
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize manifest: %w", err)
	}

	return append(data, '\n'), nil
}

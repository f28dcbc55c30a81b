// Package metadata holds the reflection model extracted from annotated
// headers: classes, their properties and their callable functions.
package metadata

import (
	"bytes"
	"encoding/json"
)

// Extra keys written by the parser and the classifier.
const (
	ExtraInnerType = "inner_type"
	ExtraLuaBind   = "lua_bind"
)

// PropertyDecl describes one reflected data member
type PropertyDecl struct {
	Name     string
	Type     string
	Category string
	Editable bool
	Tooltip  string

	// MinValue and MaxValue are meaningful only when HasRange is set.
	HasRange bool
	MinValue float64
	MaxValue float64

	// Extra is filled by the classifier, never by the resolver.
	Extra *Extra
}

// NewPropertyDecl creates a property with an empty Extra map
func NewPropertyDecl(name, typ string) *PropertyDecl {
	return &PropertyDecl{
		Name:  name,
		Type:  typ,
		Extra: NewExtra(),
	}
}

// ParamDecl describes one function parameter. Type is kept as raw text,
// qualifiers and reference markers included.
type ParamDecl struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// FunctionDecl describes one reflected callable member
type FunctionDecl struct {
	Name        string
	DisplayName string
	ReturnType  string
	Params      []ParamDecl
	IsConst     bool
	Extra       *Extra
}

// NewFunctionDecl creates a function whose display name defaults to its name
func NewFunctionDecl(name, returnType string) *FunctionDecl {
	return &FunctionDecl{
		Name:        name,
		DisplayName: name,
		ReturnType:  returnType,
		Params:      make([]ParamDecl, 0),
		Extra:       NewExtra(),
	}
}

// LuaBound reports whether the function was annotated with LuaBind
func (f *FunctionDecl) LuaBound() bool {
	v, _ := f.Extra.Get(ExtraLuaBind)
	return v == "true"
}

// ParamTypes returns the parameter types in declaration order
func (f *FunctionDecl) ParamTypes() []string {
	types := make([]string, 0, len(f.Params))
	for _, p := range f.Params {
		types = append(types, p.Type)
	}
	return types
}

// ClassDecl describes one reflected class and owns its members
type ClassDecl struct {
	Name        string
	Parent      string
	SourcePath  string
	Properties  []*PropertyDecl
	Functions   []*FunctionDecl
	IsComponent bool
	IsSpawnable bool
	DisplayName string
	Description string
}

// NewClassDecl creates an empty class declaration
func NewClassDecl(name, parent, sourcePath string) *ClassDecl {
	return &ClassDecl{
		Name:        name,
		Parent:      parent,
		SourcePath:  sourcePath,
		Properties:  make([]*PropertyDecl, 0),
		Functions:   make([]*FunctionDecl, 0),
		IsComponent: true,
	}
}

// LuaFunctions returns the functions bound to Lua, in source order
func (c *ClassDecl) LuaFunctions() []*FunctionDecl {
	var funcs []*FunctionDecl
	for _, fn := range c.Functions {
		if fn.LuaBound() {
			funcs = append(funcs, fn)
		}
	}
	return funcs
}

// Extra is a string map that remembers insertion order
type Extra struct {
	keys   []string
	values map[string]string
}

// NewExtra creates an empty ordered map
func NewExtra() *Extra {
	return &Extra{values: make(map[string]string)}
}

// Set stores a value. Overwriting keeps the key's original position.
func (e *Extra) Set(key, value string) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// Get returns the value stored under key
func (e *Extra) Get(key string) (string, bool) {
	if e == nil {
		return "", false
	}
	v, ok := e.values[key]
	return v, ok
}

// Keys returns the keys in insertion order
func (e *Extra) Keys() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// Len returns the number of entries
func (e *Extra) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// MarshalJSON writes the map as a JSON object in insertion order
func (e *Extra) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

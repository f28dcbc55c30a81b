// Package codegen renders classified reflection metadata into the
// registration code consumed by the engine's reflection runtime.
package codegen

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/mundi-engine/reflectgen/internal/compiler/classifier"
	"github.com/mundi-engine/reflectgen/internal/compiler/metadata"
)

const (
	markComponent = "MARK_AS_COMPONENT"
	markSpawnable = "MARK_AS_SPAWNABLE"
)

// Options controls which generated files and sections are produced
type Options struct {
	// PCHHeader is included first in generated sources when non-empty
	PCHHeader string
	// LuaBindings enables the Lua binding block
	LuaBindings bool
}

// Generator renders registration code. It holds parsed templates only and
// is safe for concurrent use.
type Generator struct {
	properties *template.Template
	empty      *template.Template
	lua        *template.Template
	header     *template.Template
	source     *template.Template
}

// NewGenerator creates a new code generator
func NewGenerator() *Generator {
	return &Generator{
		properties: mustParse("properties", propertyBlockTemplate),
		empty:      mustParse("empty", emptyPropertyBlockTemplate),
		lua:        mustParse("lua", luaBlockTemplate),
		header:     mustParse("header", headerFileTemplate),
		source:     mustParse("source", sourceFileTemplate),
	}
}

func mustParse(name, text string) *template.Template {
	funcs := sprig.TxtFuncMap()
	funcs["float"] = FloatLiteral
	return template.Must(template.New(name).Option("missingkey=error").Funcs(funcs).Parse(text))
}

type propertyView struct {
	Category  string
	Type      string
	Name      string
	Label     string
	Editable  bool
	Tooltip   string
	Min       float64
	Max       float64
	InnerType string
}

type classView struct {
	Name        string
	MarkMacro   string
	DisplayName string
	Description string
	Properties  []propertyView
}

type functionView struct {
	Helper      string
	TypeArgs    []string
	DisplayName string
	Name        string
}

type luaView struct {
	Name      string
	Functions []functionView
}

// PropertyBlock renders the BEGIN_PROPERTIES/END_PROPERTIES block of a class.
// Statements follow property order.
func (g *Generator) PropertyBlock(cls *metadata.ClassDecl) (string, error) {
	if len(cls.Properties) == 0 {
		return execute(g.empty, cls)
	}

	view := classView{
		Name:        cls.Name,
		MarkMacro:   markComponent,
		DisplayName: cls.DisplayName,
		Description: cls.Description,
		Properties:  make([]propertyView, 0, len(cls.Properties)),
	}
	if cls.IsSpawnable {
		view.MarkMacro = markSpawnable
	}
	if view.DisplayName == "" {
		view.DisplayName = cls.Name
	}
	if view.Description == "" {
		view.Description = "Auto-generated " + cls.Name
	}

	for _, p := range cls.Properties {
		view.Properties = append(view.Properties, newPropertyView(p))
	}

	return execute(g.properties, view)
}

func newPropertyView(p *metadata.PropertyDecl) propertyView {
	res := classifier.Classify(p.Type, p.HasRange)

	inner := res.InnerType
	if v, ok := p.Extra.Get(metadata.ExtraInnerType); ok {
		inner = v
	}

	return propertyView{
		Category:  string(res.Category),
		Type:      p.Type,
		Name:      p.Name,
		Label:     p.Category,
		Editable:  p.Editable,
		Tooltip:   p.Tooltip,
		Min:       p.MinValue,
		Max:       p.MaxValue,
		InnerType: inner,
	}
}

// LuaBlock renders Lua bindings for functions annotated with LuaBind.
// It returns an empty string when the class has none.
func (g *Generator) LuaBlock(cls *metadata.ClassDecl) (string, error) {
	funcs := cls.LuaFunctions()
	if len(funcs) == 0 {
		return "", nil
	}

	view := luaView{
		Name:      cls.Name,
		Functions: make([]functionView, 0, len(funcs)),
	}
	for _, fn := range funcs {
		view.Functions = append(view.Functions, newFunctionView(cls.Name, fn))
	}

	return execute(g.lua, view)
}

// newFunctionView picks the binding helper. AddAlias only accepts non-const
// void members; everything else goes through AddMethodR.
func newFunctionView(className string, fn *metadata.FunctionDecl) functionView {
	ret := bindReturnType(fn.ReturnType)

	view := functionView{
		DisplayName: fn.DisplayName,
		Name:        fn.Name,
	}
	if ret == "void" && !fn.IsConst {
		view.Helper = "AddAlias"
		view.TypeArgs = []string{className}
	} else {
		view.Helper = "AddMethodR"
		view.TypeArgs = []string{ret, className}
	}
	view.TypeArgs = append(view.TypeArgs, fn.ParamTypes()...)
	return view
}

var declSpecifiers = []string{"virtual", "inline", "FORCEINLINE"}

// bindReturnType drops declaration specifiers that are not part of the type
func bindReturnType(ret string) string {
	fields := strings.Fields(ret)
	for len(fields) > 1 && isDeclSpecifier(fields[0]) {
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

func isDeclSpecifier(s string) bool {
	for _, spec := range declSpecifiers {
		if s == spec {
			return true
		}
	}
	return false
}

// HeaderFileName returns the name of the generated header for a class
func HeaderFileName(cls *metadata.ClassDecl) string {
	return cls.Name + ".generated.h"
}

// SourceFileName returns the name of the generated source for a class
func SourceFileName(cls *metadata.ClassDecl) string {
	return cls.Name + ".generated.cpp"
}

// GenerateFiles renders the generated header and source for a class, keyed
// by file name
func (g *Generator) GenerateFiles(cls *metadata.ClassDecl, opts Options) (map[string]string, error) {
	props, err := g.PropertyBlock(cls)
	if err != nil {
		return nil, fmt.Errorf("failed to generate properties for %s: %w", cls.Name, err)
	}

	var lua string
	if opts.LuaBindings {
		lua, err = g.LuaBlock(cls)
		if err != nil {
			return nil, fmt.Errorf("failed to generate lua bindings for %s: %w", cls.Name, err)
		}
	}

	source := filepath.ToSlash(cls.SourcePath)
	header := filepath.Base(cls.SourcePath)

	files := make(map[string]string, 2)

	files[HeaderFileName(cls)], err = execute(g.header, map[string]string{"Source": source})
	if err != nil {
		return nil, fmt.Errorf("failed to generate header for %s: %w", cls.Name, err)
	}

	files[SourceFileName(cls)], err = execute(g.source, map[string]string{
		"Source":     source,
		"PCH":        opts.PCHHeader,
		"Header":     header,
		"Properties": props,
		"Lua":        lua,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate source for %s: %w", cls.Name, err)
	}

	return files, nil
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

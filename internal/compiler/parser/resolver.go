package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mundi-engine/reflectgen/internal/compiler/metadata"
)

// Attribute keys recognized inside annotation argument lists
const (
	AttrCategory     = "Category"
	AttrRange        = "Range"
	AttrTooltip      = "Tooltip"
	AttrDisplayName  = "DisplayName"
	AttrDescription  = "Description"
	FlagEditAnywhere = "EditAnywhere"
	FlagLuaBind      = "LuaBind"
	FlagSpawnable    = "Spawnable"
)

var (
	categoryAttr    = quotedAttr(AttrCategory)
	rangeAttr       = quotedAttr(AttrRange)
	tooltipAttr     = quotedAttr(AttrTooltip)
	displayNameAttr = quotedAttr(AttrDisplayName)
	descriptionAttr = quotedAttr(AttrDescription)
)

// quotedAttr builds the matcher for Key="value". Empty values do not match.
func quotedAttr(key string) *regexp.Regexp {
	return regexp.MustCompile(key + `\s*=\s*"([^"]+)"`)
}

func findAttr(re *regexp.Regexp, meta string) (string, bool) {
	m := re.FindStringSubmatch(meta)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Resolver turns raw annotation text into metadata declarations
type Resolver struct{}

// NewResolver creates a new resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveProperty builds an unclassified PropertyDecl
func (r *Resolver) ResolveProperty(raw RawProperty) *metadata.PropertyDecl {
	prop := metadata.NewPropertyDecl(raw.Name, raw.Type)

	if v, ok := findAttr(categoryAttr, raw.Meta); ok {
		prop.Category = v
	}

	prop.Editable = strings.Contains(raw.Meta, FlagEditAnywhere)

	if v, ok := findAttr(rangeAttr, raw.Meta); ok {
		if lo, hi, ok := ParseRange(v); ok {
			prop.HasRange = true
			prop.MinValue = lo
			prop.MaxValue = hi
		}
	}

	if v, ok := findAttr(tooltipAttr, raw.Meta); ok {
		prop.Tooltip = v
	}

	return prop
}

// ParseRange parses "min,max". Anything other than exactly two numeric
// tokens reports ok=false.
func ParseRange(s string) (lo, hi float64, ok bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	minStr := strings.TrimSpace(parts[0])
	maxStr := strings.TrimSpace(parts[1])
	if minStr == "" || maxStr == "" {
		return 0, 0, false
	}

	lo, err := strconv.ParseFloat(minStr, 64)
	if err != nil {
		return 0, 0, false
	}
	hi, err = strconv.ParseFloat(maxStr, 64)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// ResolveFunction builds a FunctionDecl with its parameters
func (r *Resolver) ResolveFunction(raw RawFunction) *metadata.FunctionDecl {
	fn := metadata.NewFunctionDecl(raw.Name, raw.ReturnType)
	fn.IsConst = raw.IsConst

	if v, ok := findAttr(displayNameAttr, raw.Meta); ok {
		fn.DisplayName = v
	}

	if strings.Contains(raw.Meta, FlagLuaBind) {
		fn.Extra.Set(metadata.ExtraLuaBind, "true")
	} else {
		fn.Extra.Set(metadata.ExtraLuaBind, "false")
	}

	fn.Params = ParseParams(raw.Params)
	return fn
}

// ParseParams splits a parameter list on commas and each segment on its
// last whitespace run. Segments without a type/name boundary are dropped.
// Commas nested in template arguments are not handled.
func ParseParams(s string) []metadata.ParamDecl {
	params := make([]metadata.ParamDecl, 0)
	if strings.TrimSpace(s) == "" {
		return params
	}

	for _, seg := range strings.Split(s, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		idx := strings.LastIndexFunc(seg, isSpace)
		if idx < 0 {
			continue
		}

		typ := strings.TrimRightFunc(seg[:idx], isSpace)
		name := seg[idx+1:]
		if typ == "" || name == "" {
			continue
		}
		params = append(params, metadata.ParamDecl{Name: name, Type: typ})
	}
	return params
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// ResolveClass applies UCLASS attributes to a class declaration
func (r *Resolver) ResolveClass(raw RawClass, sourcePath string) *metadata.ClassDecl {
	cls := metadata.NewClassDecl(raw.Name, raw.Parent, sourcePath)
	if !raw.HasAnnotation {
		return cls
	}

	if v, ok := findAttr(displayNameAttr, raw.Meta); ok {
		cls.DisplayName = v
	}
	if v, ok := findAttr(descriptionAttr, raw.Meta); ok {
		cls.Description = v
	}
	if strings.Contains(raw.Meta, FlagSpawnable) {
		cls.IsSpawnable = true
		cls.IsComponent = false
	}
	return cls
}

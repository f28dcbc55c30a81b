// Package classifier maps a property's declared type and attributes to the
// registration macro that the reflection runtime expects for it.
package classifier

import (
	"regexp"
	"strings"

	"github.com/mundi-engine/reflectgen/internal/compiler/metadata"
)

// Category is a registration form. Its value is the macro name emitted for it.
type Category string

const (
	Plain      Category = "ADD_PROPERTY"
	Ranged     Category = "ADD_PROPERTY_RANGE"
	Array      Category = "ADD_PROPERTY_ARRAY"
	Texture    Category = "ADD_PROPERTY_TEXTURE"
	StaticMesh Category = "ADD_PROPERTY_STATICMESH"
	Material   Category = "ADD_PROPERTY_MATERIAL"
	Audio      Category = "ADD_PROPERTY_AUDIO"
)

// Element markers stored under metadata.ExtraInnerType for array properties
const (
	InnerTexture    = "EPropertyType::Texture"
	InnerStaticMesh = "EPropertyType::StaticMesh"
	InnerMaterial   = "EPropertyType::Material"
	InnerSound      = "EPropertyType::Sound"
	InnerObjectPtr  = "EPropertyType::ObjectPtr"
)

type assetRule[T any] struct {
	substr string
	result T
}

// Checked in order; the first substring found wins.
var pointerRules = []assetRule[Category]{
	{"utexture", Texture},
	{"ustaticmesh", StaticMesh},
	{"umaterial", Material},
	{"usound", Audio},
}

// Element rules use a different order than pointer rules. Both orders are
// part of the output contract.
var elementRules = []assetRule[string]{
	{"umaterial", InnerMaterial},
	{"utexture", InnerTexture},
	{"usound", InnerSound},
	{"ustaticmesh", InnerStaticMesh},
}

var arrayElementPattern = regexp.MustCompile(`(?i)tarray\s*<\s*(\w+)`)

// Result is the outcome of classifying one property
type Result struct {
	Category Category
	// InnerType is set only for arrays whose element type could be read
	InnerType string
}

// Classify decides the registration category for a declared type. It does
// not modify anything and always returns the same result for the same input.
func Classify(declaredType string, hasRange bool) Result {
	lower := strings.ToLower(declaredType)

	if strings.Contains(declaredType, "*") {
		return Result{Category: match(lower, pointerRules, Plain)}
	}

	if strings.Contains(lower, "tarray") {
		res := Result{Category: Array}
		if m := arrayElementPattern.FindStringSubmatch(declaredType); m != nil {
			res.InnerType = match(strings.ToLower(m[1]), elementRules, InnerObjectPtr)
		}
		return res
	}

	if hasRange {
		return Result{Category: Ranged}
	}

	return Result{Category: Plain}
}

func match[T any](lower string, rules []assetRule[T], fallback T) T {
	for _, r := range rules {
		if strings.Contains(lower, r.substr) {
			return r.result
		}
	}
	return fallback
}

// Apply classifies a property and records side metadata in its Extra map
func Apply(prop *metadata.PropertyDecl) Category {
	res := Classify(prop.Type, prop.HasRange)
	if res.InnerType != "" {
		if prop.Extra == nil {
			prop.Extra = metadata.NewExtra()
		}
		prop.Extra.Set(metadata.ExtraInnerType, res.InnerType)
	}
	return res.Category
}

// ApplyClass classifies every property of a class in place
func ApplyClass(cls *metadata.ClassDecl) {
	for _, p := range cls.Properties {
		Apply(p)
	}
}

// Of returns the category of an already resolved property without
// modifying it
func Of(prop *metadata.PropertyDecl) Category {
	return Classify(prop.Type, prop.HasRange).Category
}

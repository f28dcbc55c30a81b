// Package parser locates reflection annotations in header text and resolves
// their argument lists into metadata declarations. It is a lexical matcher,
// not a C++ parser: types are kept as opaque text.
package parser

import (
	"regexp"
	"strings"
)

var (
	// Annotation argument lists are matched non-greedily up to the first
	// closing paren, so nested parens inside them are not supported.
	propertyPattern = regexp.MustCompile(
		`(?s)UPROPERTY\s*\((.*?)\)\s*` +
			`(.*?)\s+(\w+)\s*[;=]`)

	functionPattern = regexp.MustCompile(
		`(?s)UFUNCTION\s*\((.*?)\)\s*` +
			`(.*?)\s+(\w+)\s*\((.*?)\)\s*(const)?\s*[;{]`)

	classPattern = regexp.MustCompile(`class\s+(\w+)\s*:\s*public\s+(\w+)`)

	// Quoted values may contain parens, e.g. Description="Skeletal (skinned) mesh"
	classAnnotationPattern = regexp.MustCompile(`UCLASS\s*\(((?:[^()"]|"[^"]*")*)\)`)

	reflectionMarkerPattern = regexp.MustCompile(`GENERATED_REFLECTION_BODY\(\)`)
)

// RawProperty is an unresolved UPROPERTY match
type RawProperty struct {
	Meta string
	Type string
	Name string
}

// RawFunction is an unresolved UFUNCTION match
type RawFunction struct {
	Meta       string
	ReturnType string
	Name       string
	Params     string
	IsConst    bool
}

// RawClass is the class header of a reflection-enabled file
type RawClass struct {
	Name          string
	Parent        string
	Meta          string
	HasAnnotation bool
}

// Extractor finds annotated declarations in header text
type Extractor struct{}

// NewExtractor creates a new extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// HasReflectionMarker reports whether the file opted in to reflection
func (e *Extractor) HasReflectionMarker(src string) bool {
	return reflectionMarkerPattern.MatchString(src)
}

// FindClass returns the first class header of a file that carries the
// reflection marker. ok is false when either is missing.
func (e *Extractor) FindClass(src string) (RawClass, bool) {
	if !e.HasReflectionMarker(src) {
		return RawClass{}, false
	}

	m := classPattern.FindStringSubmatchIndex(src)
	if m == nil {
		return RawClass{}, false
	}

	cls := RawClass{Name: src[m[2]:m[3]], Parent: src[m[4]:m[5]]}
	if meta, ok := classAnnotation(src[:m[0]]); ok {
		cls.Meta = meta
		cls.HasAnnotation = true
	}
	return cls, true
}

// classAnnotation returns the UCLASS arguments that directly precede the
// end of head. An annotation in a line comment, or one followed by another
// declaration, belongs to something else.
func classAnnotation(head string) (string, bool) {
	matches := classAnnotationPattern.FindAllStringSubmatchIndex(head, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		a := matches[i]
		if strings.ContainsAny(head[a[1]:], ";{}") {
			return "", false
		}
		lineStart := strings.LastIndexByte(head[:a[0]], '\n') + 1
		if strings.Contains(head[lineStart:a[0]], "//") {
			continue
		}
		return head[a[2]:a[3]], true
	}
	return "", false
}

// ExtractProperties returns every UPROPERTY declaration in source order
func (e *Extractor) ExtractProperties(src string) []RawProperty {
	matches := propertyPattern.FindAllStringSubmatch(src, -1)
	props := make([]RawProperty, 0, len(matches))
	for _, m := range matches {
		props = append(props, RawProperty{
			Meta: m[1],
			Type: strings.TrimSpace(m[2]),
			Name: m[3],
		})
	}
	return props
}

// ExtractFunctions returns every UFUNCTION declaration in source order
func (e *Extractor) ExtractFunctions(src string) []RawFunction {
	matches := functionPattern.FindAllStringSubmatch(src, -1)
	funcs := make([]RawFunction, 0, len(matches))
	for _, m := range matches {
		funcs = append(funcs, RawFunction{
			Meta:       m[1],
			ReturnType: strings.TrimSpace(m[2]),
			Name:       m[3],
			Params:     m[4],
			IsConst:    m[5] != "",
		})
	}
	return funcs
}

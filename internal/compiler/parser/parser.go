package parser

import (
	"fmt"
	"os"

	"github.com/mundi-engine/reflectgen/internal/compiler/metadata"
)

// Parser runs extraction and resolution for one header
type Parser struct {
	extractor *Extractor
	resolver  *Resolver
}

// New creates a new header parser
func New() *Parser {
	return &Parser{
		extractor: NewExtractor(),
		resolver:  NewResolver(),
	}
}

// ParseFile reads a header from disk and parses it
func (p *Parser) ParseFile(path string) (*metadata.ClassDecl, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.Parse(string(content), path), nil
}

// Parse extracts the reflected class of a header. It returns nil when the
// file has no reflection marker or no class header.
func (p *Parser) Parse(src, sourcePath string) *metadata.ClassDecl {
	raw, ok := p.extractor.FindClass(src)
	if !ok {
		return nil
	}

	cls := p.resolver.ResolveClass(raw, sourcePath)

	for _, rp := range p.extractor.ExtractProperties(src) {
		cls.Properties = append(cls.Properties, p.resolver.ResolveProperty(rp))
	}

	for _, rf := range p.extractor.ExtractFunctions(src) {
		cls.Functions = append(cls.Functions, p.resolver.ResolveFunction(rf))
	}

	return cls
}

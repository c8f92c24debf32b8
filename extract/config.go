package extract

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Config carries the platform-specific selector fragments the block
// processors and the assembler depend on. All fields are plain CSS
// selectors; empty optional fields disable the corresponding lookup.
//
// The selector values themselves are configuration data owned by the
// platform adapters, not by this package.
type Config struct {
	// CodeContainer matches a code-block container element. Required.
	// Typically "pre", but some platforms wrap code in a custom element.
	CodeContainer string

	// CodeLeaf is the preferred code-bearing leaf inside the container.
	// The generic "code" tag is always tried as a fallback.
	CodeLeaf string

	// LangIndicator lists selector candidates, in priority order, for a
	// language label element decorating a code block.
	LangIndicator []string

	// CodeSkip matches decoration elements inside code blocks whose text
	// must not leak into the extracted code (line-number gutters, copy
	// buttons, headers).
	CodeSkip []string

	// Artifact matches an interactive artifact/canvas UI element.
	Artifact string

	// ArtifactTitle and ArtifactType list selector candidates for the
	// artifact's human-readable title and its secondary type label.
	ArtifactTitle []string
	ArtifactType  []string

	// ImageContainer matches an element wrapping an assistant image.
	ImageContainer string

	// ImageCaption lists selector candidates for an image caption.
	ImageCaption []string

	// Skip matches subtrees excluded entirely from extraction (reasoning/
	// "thinking" sections, feedback buttons, citations chrome). Kept as
	// configuration because these heuristics are fragile to UI redesigns.
	Skip []string
}

// matchers is the compiled form of Config.
type matchers struct {
	codeContainer cascadia.Matcher
	codeLeaf      cascadia.Matcher
	langIndicator []cascadia.Matcher
	codeSkip      []cascadia.Matcher
	artifact      cascadia.Matcher
	artifactTitle []cascadia.Matcher
	artifactType  []cascadia.Matcher
	imageWrap     cascadia.Matcher
	imageCaption  []cascadia.Matcher
	skip          []cascadia.Matcher
}

func compileConfig(cfg Config) (*matchers, error) {
	m := &matchers{}
	var err error

	compile := func(sel, field string) (cascadia.Matcher, error) {
		if sel == "" {
			return nil, nil
		}
		c, cerr := cascadia.Parse(sel)
		if cerr != nil {
			return nil, fmt.Errorf("compile %s selector %q: %w", field, sel, cerr)
		}
		return c, nil
	}
	compileAll := func(sels []string, field string) ([]cascadia.Matcher, error) {
		out := make([]cascadia.Matcher, 0, len(sels))
		for _, s := range sels {
			c, cerr := compile(s, field)
			if cerr != nil {
				return nil, cerr
			}
			out = append(out, c)
		}
		return out, nil
	}

	container := cfg.CodeContainer
	if container == "" {
		container = "pre"
	}
	if m.codeContainer, err = compile(container, "code container"); err != nil {
		return nil, err
	}
	if m.codeLeaf, err = compile(cfg.CodeLeaf, "code leaf"); err != nil {
		return nil, err
	}
	if m.langIndicator, err = compileAll(cfg.LangIndicator, "language indicator"); err != nil {
		return nil, err
	}
	if m.codeSkip, err = compileAll(cfg.CodeSkip, "code skip"); err != nil {
		return nil, err
	}
	if m.artifact, err = compile(cfg.Artifact, "artifact"); err != nil {
		return nil, err
	}
	if m.artifactTitle, err = compileAll(cfg.ArtifactTitle, "artifact title"); err != nil {
		return nil, err
	}
	if m.artifactType, err = compileAll(cfg.ArtifactType, "artifact type"); err != nil {
		return nil, err
	}
	if m.imageWrap, err = compile(cfg.ImageContainer, "image container"); err != nil {
		return nil, err
	}
	if m.imageCaption, err = compileAll(cfg.ImageCaption, "image caption"); err != nil {
		return nil, err
	}
	if m.skip, err = compileAll(cfg.Skip, "skip"); err != nil {
		return nil, err
	}
	return m, nil
}

func matchAny(ms []cascadia.Matcher, n *html.Node) bool {
	for _, m := range ms {
		if m != nil && m.Match(n) {
			return true
		}
	}
	return false
}

// queryFirstOf returns the first descendant of n matching any candidate,
// trying candidates in priority order.
func queryFirstOf(n *html.Node, ms []cascadia.Matcher) *html.Node {
	for _, m := range ms {
		if m == nil {
			continue
		}
		if found := cascadia.Query(n, m); found != nil {
			return found
		}
	}
	return nil
}

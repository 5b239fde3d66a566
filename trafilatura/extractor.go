// Package trafilatura provides the main-content scout.Extractor used when a
// scrape asks for OnlyMainContent.
package trafilatura

import (
	"bytes"
	"errors"
	"strings"

	"github.com/fwojciec/scout"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ scout.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to strip page boilerplate.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Links are kept so listing URLs
// survive extraction; user comments are dropped.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
			IncludeLinks:    true,
		},
	}
}

// Extract returns the main content of rawHTML. When no main content is
// detected the input is returned unchanged, so title rules still see it.
func (e *Extractor) Extract(rawHTML string) (*scout.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, errors.New("empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, err
	}

	out := &scout.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: rawHTML,
	}
	if result.ContentNode != nil {
		var buf bytes.Buffer
		if err := html.Render(&buf, result.ContentNode); err != nil {
			return nil, err
		}
		out.ContentHTML = buf.String()
	}
	return out, nil
}

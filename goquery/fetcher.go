// Package goquery provides a scout.PageFetcher that runs locally: it fetches
// raw HTML through a scout.Fetcher and trims the DOM with goquery.
package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scout"
)

var _ scout.PageFetcher = (*PageFetcher)(nil)

// PageFetcher turns a raw fetch into a ScrapeResult.
//
// Extractor and Converter are optional. Without an Extractor,
// OnlyMainContent is ignored; without a Converter, Markdown is left empty.
// WaitFor is the raw fetcher's concern and is not applied here.
type PageFetcher struct {
	Fetcher   scout.Fetcher
	Extractor scout.Extractor
	Converter scout.Converter
}

// Scrape fetches url and returns the filtered HTML and its markdown.
func (f *PageFetcher) Scrape(ctx context.Context, url string, opts scout.ScrapeOptions) (*scout.ScrapeResult, error) {
	raw, err := f.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if opts.OnlyMainContent && f.Extractor != nil {
		extracted, err := f.Extractor.Extract(raw)
		if err != nil {
			return nil, fmt.Errorf("extract main content: %w", err)
		}
		raw = extracted.ContentHTML
	}

	html, err := FilterTags(raw, opts.IncludeTags, opts.ExcludeTags)
	if err != nil {
		return nil, err
	}

	result := &scout.ScrapeResult{HTML: html}
	if f.Converter != nil && html != "" {
		md, err := f.Converter.Convert(html)
		if err != nil {
			return nil, fmt.Errorf("convert to markdown: %w", err)
		}
		result.Markdown = md
	}
	return result, nil
}

// FilterTags removes elements named in exclude and, when include is set,
// keeps only the outermost elements named in include, in document order.
// With neither set, the body's HTML is returned.
func FilterTags(html string, include, exclude []string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", scout.Errorf(scout.EINVALID, "failed to parse HTML: %v", err)
	}

	if sel := selector(exclude); sel != "" {
		doc.Find(sel).Remove()
	}

	sel := selector(include)
	if sel == "" {
		body, err := doc.Find("body").Html()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(body), nil
	}

	var sb strings.Builder
	var renderErr error
	doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
		if renderErr != nil || s.ParentsFiltered(sel).Length() > 0 {
			return
		}
		outer, err := goquery.OuterHtml(s)
		if err != nil {
			renderErr = err
			return
		}
		sb.WriteString(outer)
		sb.WriteByte('\n')
	})
	if renderErr != nil {
		return "", renderErr
	}
	return strings.TrimSpace(sb.String()), nil
}

// selector joins tag names into a goquery group selector.
func selector(tags []string) string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			names = append(names, t)
		}
	}
	return strings.Join(names, ", ")
}

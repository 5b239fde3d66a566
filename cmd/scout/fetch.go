package main

import (
	"fmt"

	"github.com/fwojciec/scout"
)

// Run executes the fetch command. Tag filtering and --main-content apply as
// they do for listing scrapes.
func (c *FetchCmd) Run(deps *Dependencies) error {
	page, err := deps.PageFetcher.Scrape(deps.Ctx, c.URL, deps.Options)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scout.ErrorMessage(err))
		return err
	}

	out := page.Markdown
	if c.HTML || out == "" {
		out = page.HTML
	}
	fmt.Fprintln(deps.Stdout, out)
	return nil
}

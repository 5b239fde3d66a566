package mock

import "github.com/fwojciec/scout"

var _ scout.Converter = (*Converter)(nil)

// Converter is a mock implementation of scout.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

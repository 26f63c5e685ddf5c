package mock

import "github.com/mwalto/jobpost"

var _ jobpost.Converter = (*Converter)(nil)

// Converter is a mock implementation of jobpost.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

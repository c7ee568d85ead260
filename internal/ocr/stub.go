package ocr

import "context"

// StubClient returns a fixed text block for every image. Used by the
// memory-backed dev configuration, where no Vision credentials exist.
type StubClient struct {
	Text string
	Err  error
}

func (c *StubClient) DetectText(ctx context.Context, imageURI string) (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	return c.Text, nil
}

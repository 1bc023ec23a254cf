package fetch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	// Register decoders for the formats donors actually upload.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// downloadTimeout bounds the whole fetch, matching the upstream image hosts'
// worst observed latency.
const downloadTimeout = 15 * time.Second

// maxImageBytes caps the response body read.
const maxImageBytes = 20 * 1024 * 1024

// FetchError covers network failure, a non-2xx status, or undecodable bytes.
// It is fatal for the request; there is no retry at this layer.
type FetchError struct {
	URL     string
	Message string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch image %s: %s", e.URL, e.Message)
}

// Image is a downloaded picture in both encoded and decoded form. The remote
// classifier sends Data to the provider; the heuristic classifier reads
// Pixels.
type Image struct {
	Data   []byte
	Pixels *image.NRGBA
	Format string
}

type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: downloadTimeout}}
}

// Fetch downloads and decodes the image at url, normalizing the pixels to
// 8-bit RGBA regardless of the source color model.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Message: err.Error()}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, &FetchError{URL: url, Message: err.Error()}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &FetchError{URL: url, Message: fmt.Sprintf("undecodable image: %v", err)}
	}

	return &Image{Data: data, Pixels: toNRGBA(img), Format: format}, nil
}

// toNRGBA flattens any decoded color model to straight 8-bit RGBA.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

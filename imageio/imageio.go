// Package imageio acquires and decodes images for the engine. It is glue
// around the standard decoders: the engine itself only ever sees a decoded
// RGBA bitmap.
package imageio

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"net/http"
	"os"
	"time"

	// registered decoders
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodedImage is the bitmap handed to the engine: dimensions plus pixels
// already converted to RGBA.
type DecodedImage struct {
	Width  int
	Height int
	RGBA   *image.RGBA
}

// DecodeError reports a failed acquisition, naming where the bytes came
// from.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image from %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}

// LoadFromBytes decodes an image from an in-memory encoding.
func LoadFromBytes(data []byte) (*DecodedImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Source: "bytes", Err: err}
	}
	rgba := toRGBA(img)
	return &DecodedImage{
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		RGBA:   rgba,
	}, nil
}

// LoadFromFile decodes an image from disk.
func LoadFromFile(path string) (*DecodedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	decoded, err := LoadFromBytes(data)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err.(*DecodeError).Err}
	}
	return decoded, nil
}

// LoadFromURL fetches and decodes an image over HTTP.
func LoadFromURL(ctx context.Context, url string) (*DecodedImage, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &DecodeError{Source: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, &DecodeError{Source: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &DecodeError{Source: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &DecodeError{Source: url, Err: err}
	}
	decoded, err := LoadFromBytes(data)
	if err != nil {
		return nil, &DecodeError{Source: url, Err: err.(*DecodeError).Err}
	}
	return decoded, nil
}

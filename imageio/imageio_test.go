package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoadFromBytes(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.Set(1, 2, color.NRGBA{R: 255, A: 255})

	decoded, err := LoadFromBytes(encodePNG(t, src))
	require.NoError(t, err)

	assert.Equal(t, 4, decoded.Width)
	assert.Equal(t, 3, decoded.Height)
	require.NotNil(t, decoded.RGBA)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, decoded.RGBA.RGBAAt(1, 2))
}

func TestLoadFromBytesRejectsGarbage(t *testing.T) {
	_, err := LoadFromBytes([]byte("not an image"))
	require.Error(t, err)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "bytes", decodeErr.Source)
}

func TestLoadFromFile(t *testing.T) {
	path := t.TempDir() + "/img.png"
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, os.WriteFile(path, encodePNG(t, src), 0o644))

	decoded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Width)

	_, err = LoadFromFile(path + ".missing")
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

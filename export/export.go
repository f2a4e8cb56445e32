// Package export produces video files and still captures from the engine.
// It drives RenderFrame with explicit, caller-chosen time values, so output
// is deterministic and independent of the free-running clock; the engine's
// interactive loop must be stopped while an export runs.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/richinsley/goshaderpaint/engine"
)

// RecordOptions describes one video export.
type RecordOptions struct {
	Width      int
	Height     int
	FPS        int
	Duration   float64 // seconds
	OutputFile string
	Codec      string // "h264" (default) or "hevc"
}

// readPixels reads the current framebuffer as RGBA and flips it to top-down
// row order.
func readPixels(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	rowSize := width * 4
	flipped := make([]byte, len(pixels))
	for y := 0; y < height; y++ {
		srcRow := pixels[(height-1-y)*rowSize : (height-y)*rowSize]
		copy(flipped[y*rowSize:], srcRow)
	}
	return flipped
}

func encoderArgs(opts RecordOptions) (inputArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"framerate": opts.FPS,
	}
	outputArgs = ffmpeg.KwArgs{
		"pix_fmt": "yuv420p",
	}
	switch opts.Codec {
	case "hevc":
		outputArgs["c:v"] = "libx265"
		if len(opts.OutputFile) > 4 && opts.OutputFile[len(opts.OutputFile)-4:] == ".mp4" {
			outputArgs["tag:v"] = "hvc1"
		}
	default:
		outputArgs["c:v"] = "libx264"
	}
	return
}

// Record renders Duration*FPS frames at t = frame/FPS and pipes the raw RGBA
// stream into ffmpeg. It must be called on the thread owning the GL context.
func Record(e *engine.Engine, opts RecordOptions) error {
	if opts.FPS <= 0 || opts.Duration <= 0 {
		return fmt.Errorf("invalid record options: fps=%d duration=%f", opts.FPS, opts.Duration)
	}

	totalFrames := int(opts.Duration * float64(opts.FPS))
	log.Printf("Recording %d frames at %dfps to %s", totalFrames, opts.FPS, opts.OutputFile)

	inputArgs, outputArgs := encoderArgs(opts)
	pr, pw := io.Pipe()
	encodeDone := make(chan error, 1)
	go func() {
		encodeDone <- ffmpeg.Input("pipe:", inputArgs).
			Output(opts.OutputFile, outputArgs).
			OverWriteOutput().
			WithInput(pr).
			Run()
	}()

	e.Resize(opts.Width, opts.Height)
	var writeErr error
	for i := 0; i < totalFrames; i++ {
		t := float64(i) / float64(opts.FPS)
		e.RenderFrame(t)
		if _, err := pw.Write(readPixels(opts.Width, opts.Height)); err != nil {
			writeErr = fmt.Errorf("frame %d: %w", i, err)
			break
		}
	}
	pw.Close()

	if err := <-encodeDone; err != nil {
		return fmt.Errorf("ffmpeg encode failed: %w", err)
	}
	return writeErr
}

// SavePNG renders one frame at the given time and writes it as a PNG.
func SavePNG(e *engine.Engine, path string, t float64, width, height int) error {
	e.RenderFrame(t)
	pixels := readPixels(width, height)

	img := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

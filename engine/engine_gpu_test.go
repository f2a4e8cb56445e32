package engine

import (
	"context"
	"image"
	"image/color"
	"os"
	"runtime"
	"testing"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/goshaderpaint/glcontext"
	"github.com/richinsley/goshaderpaint/shader"
)

func init() {
	runtime.LockOSThread()
}

// Requires a display and GL driver; set GOSHADERPAINT_GPU_TESTS=1 to run.
func TestEngineEndToEnd(t *testing.T) {
	if os.Getenv("GOSHADERPAINT_GPU_TESTS") == "" {
		t.Skip("set GOSHADERPAINT_GPU_TESTS=1 to run GPU tests")
	}

	if err := glcontext.InitGraphics(); err != nil {
		t.Fatalf("glfw init: %v", err)
	}
	defer glcontext.TerminateGraphics()

	win, err := glcontext.New(100, 100, "engine test", false)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	defer win.Shutdown()

	e, err := New(context.Background(), win)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	defer e.Shutdown()

	// 100x100 image, red left half, blue right half
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			c := color.RGBA{R: 255, A: 255}
			if x >= 50 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	if err := e.SetImage(img); err != nil {
		t.Fatalf("set image: %v", err)
	}

	e.SetShaderText(shader.DefaultFragmentSource)
	if err := e.Compile(); err != nil {
		t.Fatalf("compile passthrough: %v", err)
	}

	e.Resize(100, 100)
	e.RenderFrame(0)

	// pixel (50,50) top-down is GL row 49 bottom-up
	var px [4]byte
	gl.ReadPixels(50, 49, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	if px[2] < 200 || px[0] > 55 {
		t.Errorf("pixel (50,50): got RGBA %v, want blue half of source", px)
	}
	gl.ReadPixels(25, 49, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	if px[0] < 200 || px[2] > 55 {
		t.Errorf("pixel (25,50): got RGBA %v, want red half of source", px)
	}

	// a failed compile must leave the previous program renderable
	e.SetShaderText("precision mediump float;\nvoid broken() {}")
	if err := e.Compile(); err == nil {
		t.Fatal("expected compile error for shader without main")
	}
	e.RenderFrame(0)
	gl.ReadPixels(50, 49, 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	if px[2] < 200 {
		t.Errorf("after failed recompile: got RGBA %v, want previous program output", px)
	}

	// rotation=90 must produce the documented texcoord buffer
	e.SetRotation(90)
	want := [8]float32{0, 0, 0, 1, 1, 0, 1, 1}
	if e.TexCoords() != want {
		t.Errorf("rotation=90 texcoords: got %v, want %v", e.TexCoords(), want)
	}
	e.RenderFrame(0)
}

// Package engine ties the shader manager, transform mapper, history stack
// and GL context together into one explicitly-owned object. All GL resource
// mutation and rendering happens on the thread that owns the context; there
// is no locking because there is no concurrent mutation.
package engine

import (
	"context"
	"fmt"
	"image"
	"log"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/richinsley/goshaderpaint/graphics"
	"github.com/richinsley/goshaderpaint/history"
	"github.com/richinsley/goshaderpaint/resources"
	"github.com/richinsley/goshaderpaint/shader"
	"github.com/richinsley/goshaderpaint/transform"
)

// Quad positions in triangle-strip order: top-left, top-right, bottom-left,
// bottom-right. Created once, never rewritten.
var quadPositions = []float32{
	-1, 1,
	1, 1,
	-1, -1,
	1, -1,
}

// Engine owns every GPU handle the render pipeline needs: the linked shader
// program (through the shader manager), the image texture, the static
// position buffer and the mutable texcoord buffer. It drives the render loop
// and applies history snapshots.
type Engine struct {
	ctx     graphics.Context
	shaders *shader.Manager
	clock   *clock
	events  hub

	texture uint32
	imgW    int
	imgH    int

	vao         uint32
	positionVBO uint32
	texcoordVBO uint32
	texcoords   [8]float32

	shaderText string
	transform  transform.State
	canvas     history.Canvas
	hist       *history.Stack

	running   bool
	frameHook func()
}

// New builds an engine on an already-current GL context. The engine starts
// Idle: no program, no texture. Compile and SetImage bring it to a renderable
// state.
func New(ctx context.Context, win graphics.Context) (*Engine, error) {
	shaders, err := shader.NewManager(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader manager: %w", err)
	}

	e := &Engine{
		ctx:     win,
		shaders: shaders,
		clock:   newClock(win.Time),
		hist:    history.NewStack(history.Capacity),
		canvas:  history.Canvas{Zoom: 1},
	}
	e.texcoords = e.transform.TexCoords(0, 0)

	gl.GenVertexArrays(1, &e.vao)
	gl.BindVertexArray(e.vao)
	e.positionVBO = resources.NewArrayBuffer(quadPositions, gl.STATIC_DRAW)
	e.texcoordVBO = resources.NewArrayBuffer(e.texcoords[:], gl.DYNAMIC_DRAW)
	gl.BindVertexArray(0)

	win.OnResize(e.Resize)
	return e, nil
}

// Subscribe registers a handler for engine events and returns its id.
func (e *Engine) Subscribe(fn func(Event)) int {
	return e.events.Subscribe(fn)
}

// Unsubscribe removes a previously registered handler.
func (e *Engine) Unsubscribe(id int) {
	e.events.Unsubscribe(id)
}

// ShaderText returns the fragment source the engine currently holds, which
// may be newer than the last successfully compiled program.
func (e *Engine) ShaderText() string {
	return e.shaderText
}

// SetShaderText stores a new fragment source. It does not compile; call
// Compile to build a program from it.
func (e *Engine) SetShaderText(src string) {
	e.shaderText = src
}

// Compile builds a program from the stored fragment source. On failure the
// previous program stays active and the structured error is returned, so the
// engine keeps rendering the last good shader.
func (e *Engine) Compile() error {
	return e.shaders.Compile(e.shaderText)
}

// Validate runs the advisory static checks over the stored source.
func (e *Engine) Validate() shader.ValidationResult {
	return shader.Validate(e.shaderText)
}

// vflip reverses the row order of an RGBA image. Texture coordinates put
// v=1 at the image top, while decoded bitmaps store the top row first, so
// uploads flip.
func vflip(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	flipped := image.NewRGBA(bounds)
	height := bounds.Dy()

	rowSize := bounds.Dx() * 4
	for y := 0; y < height; y++ {
		srcRow := src.Pix[((height-1)-y)*src.Stride:]
		copy(flipped.Pix[y*flipped.Stride:], srcRow[:rowSize])
	}
	return flipped
}

// SetImage uploads a decoded bitmap as the engine's texture. The new texture
// is created first; only on success is the previous one deleted, so a failed
// upload leaves the engine rendering the old image. The render surface is
// resized to match the bitmap.
func (e *Engine) SetImage(rgba *image.RGBA) error {
	tex, err := resources.NewTexture(vflip(rgba))
	if err != nil {
		return fmt.Errorf("texture upload failed: %w", err)
	}

	hadPrevious := e.texture != 0
	prevW, prevH := e.imgW, e.imgH
	resources.DeleteTexture(&e.texture)
	e.texture = tex
	e.imgW = rgba.Rect.Dx()
	e.imgH = rgba.Rect.Dy()

	e.refreshTexCoords()
	e.ctx.SetWindowSize(e.imgW, e.imgH)
	e.Resize(e.imgW, e.imgH)

	if hadPrevious {
		e.events.publish(Event{Kind: EventImageUnloaded, Width: prevW, Height: prevH})
	}
	e.events.publish(Event{Kind: EventImageLoaded, Width: e.imgW, Height: e.imgH})
	return nil
}

// ImageSize returns the dimensions of the loaded image, 0,0 when none.
func (e *Engine) ImageSize() (int, int) {
	return e.imgW, e.imgH
}

// Transform returns the current geometric state.
func (e *Engine) Transform() transform.State {
	return e.transform
}

// SetTransform replaces the geometric state and rewrites the texcoord
// buffer.
func (e *Engine) SetTransform(s transform.State) {
	e.transform = s
	e.refreshTexCoords()
}

// SetRotation sets the rotation in degrees. Values other than 0, 90, 180 and
// 270 render with the 0° mapping.
func (e *Engine) SetRotation(degrees int) {
	e.transform.Rotation = degrees
	e.refreshTexCoords()
}

// SetMirrorX toggles horizontal mirroring.
func (e *Engine) SetMirrorX(on bool) {
	e.transform.MirrorX = on
	e.refreshTexCoords()
}

// SetMirrorY toggles vertical mirroring.
func (e *Engine) SetMirrorY(on bool) {
	e.transform.MirrorY = on
	e.refreshTexCoords()
}

// SetCrop sets the crop rectangle in image pixels; nil clears it.
func (e *Engine) SetCrop(crop *transform.CropRect) {
	e.transform.Crop = crop
	e.refreshTexCoords()
}

// TexCoords returns the 8 floats currently uploaded to the texcoord buffer.
func (e *Engine) TexCoords() [8]float32 {
	return e.texcoords
}

func (e *Engine) refreshTexCoords() {
	e.texcoords = e.transform.TexCoords(e.imgW, e.imgH)
	if e.texcoordVBO != 0 {
		resources.UpdateArrayBuffer(e.texcoordVBO, e.texcoords[:])
	}
}

// Canvas returns the current canvas view state.
func (e *Engine) Canvas() history.Canvas {
	return e.canvas
}

// SetCanvas replaces the canvas view state.
func (e *Engine) SetCanvas(c history.Canvas) {
	e.canvas = c
}

// SetBackground sets the clear color.
func (e *Engine) SetBackground(r, g, b float32) {
	e.canvas.Background = [3]float32{r, g, b}
}

// SetTransparent toggles a transparent background.
func (e *Engine) SetTransparent(on bool) {
	e.canvas.Transparent = on
}

// RenderFrame draws one frame at the given elapsed time. Callers outside the
// free-running loop (export) pass explicit times; the output depends only on
// the engine state and t, never on the wall clock. Without a linked program,
// a texture and buffers the call is a no-op. Everything the draw needs is
// re-bound; no prior GL binding state is assumed.
func (e *Engine) RenderFrame(t float64) {
	if !e.shaders.Active() || e.texture == 0 || e.positionVBO == 0 {
		return
	}

	alpha := float32(1)
	if e.canvas.Transparent {
		alpha = 0
	}
	bg := e.canvas.Background
	gl.ClearColor(bg[0], bg[1], bg[2], alpha)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	e.shaders.Use()
	e.shaders.SetFloat("time", float32(t))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, e.texture)
	e.shaders.SetInt("tex", 0)

	gl.BindVertexArray(e.vao)
	if loc := e.shaders.AttribLocation("position"); loc != -1 {
		gl.BindBuffer(gl.ARRAY_BUFFER, e.positionVBO)
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointer(uint32(loc), 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	}
	if loc := e.shaders.AttribLocation("texcoord"); loc != -1 {
		gl.BindBuffer(gl.ARRAY_BUFFER, e.texcoordVBO)
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointer(uint32(loc), 2, gl.FLOAT, false, 0, gl.PtrOffset(0))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)

	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Start runs the free-running render loop until Stop is called or the window
// closes. The running flag is checked before every frame, so a Stop issued
// from a key callback prevents any further frame. Calling Start while
// already running is a no-op.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	for e.running && !e.ctx.ShouldClose() {
		if e.frameHook != nil {
			e.frameHook()
		}
		e.RenderFrame(e.clock.Elapsed())
		e.ctx.EndFrame()
	}
	e.running = false
}

// OnFrame registers a function invoked on the render thread once per loop
// iteration, before the frame is drawn. The application uses it to apply
// work queued from other goroutines, such as shader-file reloads.
func (e *Engine) OnFrame(fn func()) {
	e.frameHook = fn
}

// Stop ends the render loop. Idempotent.
func (e *Engine) Stop() {
	e.running = false
}

// Running reports whether the free-running loop is active.
func (e *Engine) Running() bool {
	return e.running
}

// TogglePause freezes or resumes elapsed time. Pausing captures the current
// elapsed value; resuming restarts the epoch so time continues from exactly
// that value.
func (e *Engine) TogglePause() {
	e.clock.TogglePause()
}

// Paused reports whether elapsed time is frozen.
func (e *Engine) Paused() bool {
	return e.clock.Paused()
}

// Elapsed returns the current shader time in seconds.
func (e *Engine) Elapsed() float64 {
	return e.clock.Elapsed()
}

// ResetTime restarts the shader clock from zero.
func (e *Engine) ResetTime() {
	e.clock.Reset()
}

// Resize updates the viewport to new surface dimensions. Buffer contents are
// untouched.
func (e *Engine) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Snapshot pushes the current editable state onto the history stack.
func (e *Engine) Snapshot() {
	e.hist.Push(history.Entry{
		ShaderText: e.shaderText,
		Transform:  e.transform,
		Canvas:     e.canvas,
	})
}

// History exposes the snapshot stack, mainly for inspection.
func (e *Engine) History() *history.Stack {
	return e.hist
}

// Undo steps back one history entry and replays it through the full
// pipeline. At the bottom of the stack it is a no-op.
func (e *Engine) Undo() error {
	entry, ok := e.hist.Undo()
	if !ok {
		log.Printf("nothing to undo")
		return nil
	}
	return e.applyEntry(entry)
}

// Redo steps forward one history entry. At the tip it is a no-op.
func (e *Engine) Redo() error {
	entry, ok := e.hist.Redo()
	if !ok {
		log.Printf("nothing to redo")
		return nil
	}
	return e.applyEntry(entry)
}

// applyEntry restores a snapshot in pipeline order: shader text, transform
// UVs, recompile, canvas. A restored state renders identically to when it
// was captured.
func (e *Engine) applyEntry(entry history.Entry) error {
	e.shaderText = entry.ShaderText
	e.transform = entry.Transform
	e.refreshTexCoords()
	if err := e.shaders.Compile(e.shaderText); err != nil {
		return fmt.Errorf("failed to restore shader from history: %w", err)
	}
	e.canvas = entry.Canvas
	return nil
}

// Shutdown releases every GPU handle the engine owns. Safe to call more than
// once; each handle is released exactly once.
func (e *Engine) Shutdown() {
	e.Stop()
	e.shaders.Destroy()
	resources.DeleteTexture(&e.texture)
	resources.DeleteBuffer(&e.positionVBO)
	resources.DeleteBuffer(&e.texcoordVBO)
	resources.DeleteVertexArray(&e.vao)
}

// Package glcontext wraps GLFW window and OpenGL context creation. It owns
// the frame-pacing primitive (SwapBuffers + PollEvents), the wall-clock time
// source, and a small key-callback registry the application binds its
// shortcuts through.
package glcontext

import (
	"fmt"
	"log"
	"runtime"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
)

// Context wraps one GLFW window and its GL context.
type Context struct {
	window *glfw.Window

	keyCallbacks  map[glfw.Key]func()
	resizeHandler func(width, height int)
}

// New creates a window with a 4.1 core profile context and makes it current
// on the calling thread. When visible is false the window is hidden, which
// is the mode used for recording.
func New(width, height int, title string, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetFramebufferSizeCallback(c.glfwResizeCallback)
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	return c, nil
}

// RegisterKeyCallback binds a function to a key press.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// OnResize registers the handler invoked with the new framebuffer size when
// the window is resized.
func (c *Context) OnResize(f func(width, height int)) {
	c.resizeHandler = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwResizeCallback(w *glfw.Window, width, height int) {
	if c.resizeHandler != nil {
		c.resizeHandler(width, height)
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// ShouldClose reports whether the user asked the window to close.
func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// EndFrame presents the frame and pumps events. This is the cooperative
// yield point between frames.
func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

// GetFramebufferSize returns the window's framebuffer size in pixels.
func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// SetWindowSize resizes the window, in screen coordinates.
func (c *Context) SetWindowSize(width, height int) {
	c.window.SetSize(width, height)
}

// Time returns seconds since GLFW initialization.
func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// Shutdown destroys the window. Safe to call once per context.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts GLFW down. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

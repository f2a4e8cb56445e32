package graphics

// Context is the surface the engine renders into. glcontext.Context is the
// GLFW-backed implementation; the engine only depends on this interface.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the frame and yields to the host's frame pacing.
	EndFrame()
	GetFramebufferSize() (int, int)
	SetWindowSize(width, height int)
	// Time returns the wall-clock time source driving the render clock.
	Time() float64
	// OnResize registers the handler called with new framebuffer dimensions.
	OnResize(func(width, height int))
}

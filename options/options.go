package options

// Options carries the parsed command-line configuration. Fields are pointers
// so they can be wired straight to flag declarations.
type Options struct {
	ImagePath  *string
	ImageURL   *string
	ShaderPath *string
	Width      *int
	Height     *int

	Watch *bool // recompile when the shader file changes

	// Recording
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string

	// Save slots
	SlotsPath *string
}

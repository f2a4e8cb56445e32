package resources

import "fmt"

// CompileError is returned when a shader stage fails to compile or translate.
// Log holds the raw diagnostic text from the compiler.
type CompileError struct {
	Stage string // "vertex" or "fragment"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

// LinkError is returned when program linking fails. Log holds the raw
// program info log.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program link failed: %s", e.Log)
}

// ResourceError reports a GPU object allocation or upload failure. It is
// fatal to the operation that triggered it, never to the process.
type ResourceError struct {
	Op     string
	GLCode uint32
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("%s failed: GL error 0x%04x", e.Op, e.GLCode)
}

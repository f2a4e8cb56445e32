// Package resources owns the creation and destruction of raw OpenGL objects:
// shaders, programs, textures and vertex buffers. Every create either returns
// a live handle or a structured error; every delete is idempotent and zeroes
// the caller's handle so a second teardown is a no-op.
//
// All calls mutate global GL context state (bound shader/program/texture).
// Callers must treat binds as one-shot: nothing here restores prior bindings.
package resources

import (
	"image"
	"strings"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// CompileShader allocates a shader object of the given kind (gl.VERTEX_SHADER
// or gl.FRAGMENT_SHADER), uploads source and compiles it. On failure the
// partially-created object is released and a *CompileError carrying the raw
// info log is returned.
func CompileShader(kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	if shader == 0 {
		return 0, &ResourceError{Op: "glCreateShader", GLCode: gl.GetError()}
	}
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, &CompileError{Stage: stageName(kind), Log: strings.TrimRight(logText, "\x00")}
	}
	return shader, nil
}

func stageName(kind uint32) string {
	if kind == gl.VERTEX_SHADER {
		return "vertex"
	}
	return "fragment"
}

// LinkProgram attaches the two compiled stages and links them. On failure the
// program object is released and a *LinkError carrying the raw log is
// returned. The shader objects themselves remain owned by the caller.
func LinkProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, &ResourceError{Op: "glCreateProgram", GLCode: gl.GetError()}
	}
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, &LinkError{Log: strings.TrimRight(logText, "\x00")}
	}
	return program, nil
}

// NewTexture uploads an RGBA image as a 2D texture with clamp-to-edge
// wrapping and linear filtering on both axes. The previous texture binding is
// clobbered.
func NewTexture(rgba *image.RGBA) (uint32, error) {
	// drain stale error state so the post-upload check is meaningful
	for gl.GetError() != gl.NO_ERROR {
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	width := int32(rgba.Rect.Size().X)
	height := int32(rgba.Rect.Size().Y)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA8,
		width,
		height,
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)

	if code := gl.GetError(); code != gl.NO_ERROR {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.DeleteTextures(1, &textureID)
		return 0, &ResourceError{Op: "glTexImage2D", GLCode: code}
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return textureID, nil
}

// NewArrayBuffer creates a GL_ARRAY_BUFFER and uploads the given vertex data.
// usage is gl.STATIC_DRAW for the position quad, gl.DYNAMIC_DRAW for the
// texcoord buffer which is rewritten on every transform change.
func NewArrayBuffer(data []float32, usage uint32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo
}

// UpdateArrayBuffer replaces the full contents of an existing buffer.
func UpdateArrayBuffer(vbo uint32, data []float32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// DeleteShader releases a shader object. Passing a nil or zero handle is a
// no-op; the handle is zeroed afterwards so repeated teardown is safe.
func DeleteShader(id *uint32) {
	if id == nil || *id == 0 {
		return
	}
	gl.DeleteShader(*id)
	*id = 0
}

// DeleteProgram releases a linked program. Idempotent.
func DeleteProgram(id *uint32) {
	if id == nil || *id == 0 {
		return
	}
	gl.DeleteProgram(*id)
	*id = 0
}

// DeleteTexture releases a texture. Idempotent.
func DeleteTexture(id *uint32) {
	if id == nil || *id == 0 {
		return
	}
	gl.DeleteTextures(1, id)
	*id = 0
}

// DeleteBuffer releases a vertex buffer. Idempotent.
func DeleteBuffer(id *uint32) {
	if id == nil || *id == 0 {
		return
	}
	gl.DeleteBuffers(1, id)
	*id = 0
}

// DeleteVertexArray releases a VAO. Idempotent.
func DeleteVertexArray(id *uint32) {
	if id == nil || *id == 0 {
		return
	}
	gl.DeleteVertexArrays(1, id)
	*id = 0
}

package shader

// The vertex stage is fixed and not user-editable. It consumes the position
// and texcoord attributes and passes the texture coordinate through to the
// fragment stage. Both stages are written in the WebGL1 dialect and run
// through the ANGLE translator before the driver sees them.
const VertexSource = `attribute vec2 position;
attribute vec2 texcoord;
varying vec2 v_texcoord;
void main() {
    v_texcoord = texcoord;
    gl_Position = vec4(position, 0.0, 1.0);
}
`

// DefaultFragmentSource renders the loaded image unmodified. It is the
// program compiled at startup when the user has not supplied a shader yet.
const DefaultFragmentSource = `precision mediump float;
varying vec2 v_texcoord;
uniform sampler2D tex;
uniform float time;
void main() {
    gl_FragColor = texture2D(tex, v_texcoord);
}
`

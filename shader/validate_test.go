package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassthroughIsClean(t *testing.T) {
	r := Validate(DefaultFragmentSource)
	assert.True(t, r.OK())
	assert.Empty(t, r.Warnings)
}

func TestValidateMissingMainIsError(t *testing.T) {
	r := Validate(`precision mediump float;
uniform sampler2D tex;
vec4 shade() { return texture2D(tex, vec2(0.5)); }
`)
	require.False(t, r.OK())
	assert.Contains(t, r.Errors[0], "main")
}

func TestValidateMissingPrecisionIsWarning(t *testing.T) {
	r := Validate(`varying vec2 v_texcoord;
uniform sampler2D tex;
void main() { gl_FragColor = texture2D(tex, v_texcoord); }
`)
	assert.True(t, r.OK(), "missing precision must not block compilation")
	require.NotEmpty(t, r.Warnings)
	assert.Contains(t, r.Warnings[0], "precision")
}

func TestValidateMissingColorOutputIsWarning(t *testing.T) {
	r := Validate(`precision mediump float;
void main() { float x = 1.0; }
`)
	assert.True(t, r.OK())
	found := false
	for _, w := range r.Warnings {
		if strings.Contains(w, "gl_FragColor") {
			found = true
		}
	}
	assert.True(t, found, "expected a missing color output warning, got %v", r.Warnings)
}

func TestValidateTypoTable(t *testing.T) {
	r := Validate(`precison mediump float;
varing vec2 v_texcoord;
unifrom sampler2D tex;
void main() { gl_FragColour = texure2D(tex, v_texcoord); }
`)
	assert.True(t, r.OK(), "typos are advisory")
	joined := ""
	for _, w := range r.Warnings {
		joined += w + "\n"
	}
	assert.Contains(t, joined, `"texure2D"`)
	assert.Contains(t, joined, `"gl_FragColour"`)
	assert.Contains(t, joined, `"unifrom"`)
	assert.Contains(t, joined, `"varing"`)
	assert.Contains(t, joined, `"precison"`)
}

package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInfoLog(t *testing.T) {
	infoLog := `ERROR: 0:12: 'texure2D' : no matching overloaded function found
ERROR: 0:12: '=' : dimension mismatch
WARNING: 0:3: extension not supported
ERROR: 4:7: 'main' : function already has a body
`
	diags := ParseInfoLog(infoLog)
	require.Len(t, diags, 3)

	assert.Equal(t, Diagnostic{Line: 7, Column: 4, Message: "'main' : function already has a body"}, diags[0])
	assert.Equal(t, 12, diags[1].Line)
	assert.Equal(t, 12, diags[2].Line)
	assert.Contains(t, diags[1].Message, "texure2D")
}

func TestParseInfoLogSortedBySourceOrder(t *testing.T) {
	infoLog := `ERROR: 0:9: late
ERROR: 0:2: early
ERROR: 1:2: early but later column`
	diags := ParseInfoLog(infoLog)
	require.Len(t, diags, 3)
	assert.Equal(t, 2, diags[0].Line)
	assert.Equal(t, 0, diags[0].Column)
	assert.Equal(t, 2, diags[1].Line)
	assert.Equal(t, 1, diags[1].Column)
	assert.Equal(t, 9, diags[2].Line)
}

func TestParseInfoLogIgnoresGarbage(t *testing.T) {
	assert.Empty(t, ParseInfoLog(""))
	assert.Empty(t, ParseInfoLog("compile failed"))
	assert.Empty(t, ParseInfoLog("ERROR: not:numbers: msg"))
}

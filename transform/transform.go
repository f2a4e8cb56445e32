// Package transform maps the user-controlled geometry state (rotation,
// mirroring, crop) to the texture coordinates of the full-screen quad. It is
// pure arithmetic with no GL dependency; the engine uploads its output into
// the texcoord buffer whenever the state changes.
package transform

import "github.com/go-gl/mathgl/mgl32"

// CropRect selects a sub-region of the source image, in image pixels.
type CropRect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// State is the full geometric transform applied to the image. Rotation is in
// degrees; only the four canonical values 0, 90, 180 and 270 have distinct
// mappings, anything else falls back to the 0° table.
type State struct {
	Rotation int
	MirrorX  bool
	MirrorY  bool
	Crop     *CropRect
}

// UV tables for the quad's triangle strip, one pair per vertex, 90° steps
// clockwise.
var baseUVs = map[int][4]mgl32.Vec2{
	0:   {{0, 1}, {1, 1}, {0, 0}, {1, 0}},
	90:  {{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	180: {{1, 0}, {0, 0}, {1, 1}, {0, 1}},
	270: {{1, 1}, {1, 0}, {0, 1}, {0, 0}},
}

// TexCoords returns the 8 floats (4 UV pairs, triangle-strip order) for the
// given rotation and mirror flags. Mirroring is applied after the rotation
// mapping: mirrorX flips U (u' = 1-u), mirrorY flips V (v' = 1-v). A rotation
// that is not exactly one of 0/90/180/270 uses the 0° table.
func TexCoords(rotation int, mirrorX, mirrorY bool) [8]float32 {
	uvs, ok := baseUVs[rotation]
	if !ok {
		uvs = baseUVs[0]
	}

	var out [8]float32
	for i, uv := range uvs {
		u, v := uv.X(), uv.Y()
		if mirrorX {
			u = 1 - u
		}
		if mirrorY {
			v = 1 - v
		}
		out[i*2] = u
		out[i*2+1] = v
	}
	return out
}

// TexCoords applies the full state for an image of the given pixel size.
// Cropping rescales and offsets the rotated, mirrored UVs by the crop
// rectangle's fraction of the image. A nil crop, or a zero image dimension,
// leaves the UVs untouched.
func (s State) TexCoords(imageWidth, imageHeight int) [8]float32 {
	out := TexCoords(s.Rotation, s.MirrorX, s.MirrorY)
	if s.Crop == nil || imageWidth <= 0 || imageHeight <= 0 {
		return out
	}

	scaleU := float32(s.Crop.Width) / float32(imageWidth)
	scaleV := float32(s.Crop.Height) / float32(imageHeight)
	offsetU := float32(s.Crop.X) / float32(imageWidth)
	offsetV := float32(s.Crop.Y) / float32(imageHeight)
	for i := 0; i < 4; i++ {
		out[i*2] = out[i*2]*scaleU + offsetU
		out[i*2+1] = out[i*2+1]*scaleV + offsetV
	}
	return out
}

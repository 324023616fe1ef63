package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

type keypoint struct {
	c   colorful.Color
	pos float64
}

// gradient is a cyclic rainbow: midnight on both ends has the same colour.
type gradient []keypoint

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var rainbow = gradient{
	{mustHex("#6e40aa"), 0.0},
	{mustHex("#ff5e63"), 0.25},
	{mustHex("#aff05b"), 0.5},
	{mustHex("#1ac7c2"), 0.75},
	{mustHex("#6e40aa"), 1.0},
}

// at returns the colour at t, clamped to [0, 1].
func (g gradient) at(t float64) color.RGBA {
	if t <= g[0].pos {
		return rgba(g[0].c)
	}

	for i := 0; i < len(g)-1; i++ {
		a, b := g[i], g[i+1]
		if t == b.pos {
			return rgba(b.c)
		}
		if t < b.pos {
			c := a.c.BlendHcl(b.c, (t-a.pos)/(b.pos-a.pos)).Clamped()
			return rgba(c)
		}
	}

	return rgba(g[len(g)-1].c)
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

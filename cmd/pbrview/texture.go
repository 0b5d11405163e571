package main

import (
	"image"
	"image/color"

	"pbrview/internal/material"

	"github.com/go-gl/gl/v4.1-core/gl"
	xdraw "golang.org/x/image/draw"
)

// checkerTexture synthesizes a cells x cells checkerboard, scales it up to
// size x size with nearest-neighbor filtering to keep the edges crisp, and
// uploads it as a mipmapped 2D texture.
func checkerTexture(cells, size int, light, dark [4]uint8) material.TextureRef {
	small := image.NewRGBA(image.Rect(0, 0, cells, cells))
	for y := 0; y < cells; y++ {
		for x := 0; x < cells; x++ {
			c := light
			if (x+y)%2 == 1 {
				c = dark
			}
			small.SetRGBA(x, y, color.RGBA{c[0], c[1], c[2], c[3]})
		}
	}

	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.NearestNeighbor.Scale(rgba, rgba.Bounds(), small, small.Bounds(), xdraw.Src, nil)

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGBA,
		int32(size),
		int32(size),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(rgba.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return material.TextureRef(texture)
}

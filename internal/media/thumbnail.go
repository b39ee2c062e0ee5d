package media

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/nfnt/resize"
)

// Thumbnail renders img as cols×rows terminal cells using upper half blocks:
// each cell shows two pixels, the top one as foreground and the bottom one as
// background. The result has exactly rows lines, each ending in a reset.
// The image is scaled to fit and centered; cells outside it are left blank.
func Thumbnail(img *Image, cols, rows int) string {
	if img == nil || img.decoded == nil || cols <= 0 || rows <= 0 {
		return ""
	}

	w, h := fit(img.Width, img.Height, cols, rows*2)
	scaled := resize.Resize(uint(w), uint(h), img.decoded, resize.Bilinear)

	offX := (cols - w) / 2
	offY := (rows*2 - h) / 2

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, topOK := pixel(scaled, col-offX, row*2-offY)
			bottom, bottomOK := pixel(scaled, col-offX, row*2+1-offY)
			switch {
			case topOK && bottomOK:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
			case topOK:
				fmt.Fprintf(&sb, "\x1b[49m\x1b[38;2;%d;%d;%dm▀", top.R, top.G, top.B)
			case bottomOK:
				fmt.Fprintf(&sb, "\x1b[49m\x1b[38;2;%d;%d;%dm▄", bottom.R, bottom.G, bottom.B)
			default:
				sb.WriteString("\x1b[0m ")
			}
		}
		sb.WriteString("\x1b[0m")
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// fit scales w×h to fit inside maxW×maxH keeping the aspect ratio. Neither
// side drops below one pixel.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	if w*maxH <= h*maxW {
		return max(w*maxH/h, 1), maxH
	}
	return maxW, max(h*maxW/w, 1)
}

func pixel(img image.Image, x, y int) (color.RGBA, bool) {
	b := img.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return color.RGBA{}, false
	}
	r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 0xff}, true
}

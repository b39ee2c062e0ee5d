// Package media loads, decodes and previews the images attached to messages.
package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/dustin/go-humanize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	perrors "github.com/zhubert/chatter/internal/errors"
)

// Image is a decoded attachment.
type Image struct {
	Ref    string // the ImageRef it was loaded from
	Data   []byte // encoded bytes as loaded
	Format string // png, jpeg, gif, webp or bmp
	Width  int
	Height int

	decoded image.Image
}

// Decode parses data into an Image. ref is only recorded.
func Decode(ref string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, perrors.ImageLoadFailed(ref, fmt.Errorf("empty image data"))
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, perrors.ImageLoadFailed(ref, err)
	}
	b := img.Bounds()
	return &Image{
		Ref:     ref,
		Data:    data,
		Format:  format,
		Width:   b.Dx(),
		Height:  b.Dy(),
		decoded: img,
	}, nil
}

// Decoded returns the pixel data.
func (img *Image) Decoded() image.Image {
	return img.decoded
}

// Describe returns a short label such as "640×480 png · 52 kB".
func Describe(img *Image) string {
	if img == nil {
		return ""
	}
	return fmt.Sprintf("%d×%d %s · %s", img.Width, img.Height, img.Format, humanize.Bytes(uint64(len(img.Data))))
}

package clipboard

import (
	"fmt"

	"github.com/dustin/go-humanize"

	perrors "github.com/zhubert/chatter/internal/errors"
)

// MaxImageSize is the largest pasted image accepted, in bytes.
const MaxImageSize = 10 << 20

// MaxImageDimension is the largest accepted width or height in pixels.
const MaxImageDimension = 8000

// ImageData is a pasted image, always PNG encoded.
type ImageData struct {
	Data   []byte
	Width  int
	Height int
}

// Validate checks the image against the paste limits.
func (img *ImageData) Validate() error {
	if len(img.Data) > MaxImageSize {
		return perrors.E(perrors.Op("clipboard.Validate"), perrors.KindInvalid,
			fmt.Sprintf("image too large: %s (max %s)",
				humanize.Bytes(uint64(len(img.Data))), humanize.Bytes(MaxImageSize)))
	}
	if img.Width > MaxImageDimension || img.Height > MaxImageDimension {
		return perrors.E(perrors.Op("clipboard.Validate"), perrors.KindInvalid,
			fmt.Sprintf("image dimensions too large: %dx%d (max %dx%d)",
				img.Width, img.Height, MaxImageDimension, MaxImageDimension))
	}
	return nil
}

// String describes the image, e.g. "640x480 · 52 kB".
func (img *ImageData) String() string {
	return fmt.Sprintf("%dx%d · %s", img.Width, img.Height, humanize.Bytes(uint64(len(img.Data))))
}

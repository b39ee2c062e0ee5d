// Package clipboard reads pasted images and copies message text using the
// system clipboard.
package clipboard

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"sync"

	"golang.design/x/clipboard"

	perrors "github.com/zhubert/chatter/internal/errors"
	"github.com/zhubert/chatter/internal/logger"
)

var (
	mu          sync.Mutex
	initialized bool
)

// Init initializes the clipboard. Safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	if initialized {
		return nil
	}
	if err := clipboard.Init(); err != nil {
		logger.Warn("Clipboard: failed to initialize: %v", err)
		return perrors.ClipboardUnavailable(err)
	}
	initialized = true
	logger.Debug("Clipboard: initialized")
	return nil
}

// ReadImage reads an image from the clipboard and re-encodes it as PNG.
// Returns nil, nil when the clipboard holds no image.
func ReadImage() (*ImageData, error) {
	if err := Init(); err != nil {
		return nil, err
	}

	raw := clipboard.Read(clipboard.FmtImage)
	if len(raw) == 0 {
		logger.Debug("Clipboard: no image data found")
		return nil, nil
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, perrors.E(perrors.Op("clipboard.ReadImage"), perrors.KindImage, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, perrors.E(perrors.Op("clipboard.ReadImage"), perrors.KindImage, err)
	}

	b := img.Bounds()
	logger.Debug("Clipboard: read %s image %dx%d, %d bytes as png", format, b.Dx(), b.Dy(), buf.Len())

	data := &ImageData{Data: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadText reads text from the clipboard.
func ReadText() (string, error) {
	if err := Init(); err != nil {
		return "", err
	}
	return string(clipboard.Read(clipboard.FmtText)), nil
}

// WriteText copies s to the clipboard.
func WriteText(s string) error {
	if err := Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

// System is the process clipboard as a value, for callers that take the
// clipboard as a dependency.
type System struct{}

func (System) ReadImage() (*ImageData, error) { return ReadImage() }
func (System) WriteText(s string) error        { return WriteText(s) }

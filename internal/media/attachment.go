package media

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	perrors "github.com/zhubert/chatter/internal/errors"
)

// SaveAttachment writes PNG data to dir as <uuid>.png and returns the path,
// which becomes the message's ImageRef.
func SaveAttachment(dir string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", perrors.E(perrors.Op("media.SaveAttachment"), perrors.KindInvalid, "attachment is empty")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", perrors.E(perrors.Op("media.SaveAttachment"), perrors.KindIO, err)
	}
	path := filepath.Join(dir, uuid.New().String()+".png")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", perrors.E(perrors.Op("media.SaveAttachment"), perrors.KindIO, err)
	}
	return path, nil
}

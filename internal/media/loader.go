package media

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/sync/singleflight"

	perrors "github.com/zhubert/chatter/internal/errors"
	"github.com/zhubert/chatter/internal/logger"
)

// DefaultTimeout bounds a single remote fetch.
const DefaultTimeout = 15 * time.Second

// MaxImageBytes caps both remote responses and local files.
const MaxImageBytes = 20 << 20

// Loader resolves image references. Remote refs (http, https) are fetched
// with fasthttp, everything else is read from disk. Concurrent loads of the
// same ref share one fetch.
type Loader struct {
	client  *fasthttp.Client
	timeout time.Duration
	group   singleflight.Group
	log     *slog.Logger
}

// NewLoader creates a Loader. A zero timeout means DefaultTimeout.
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{
		client: &fasthttp.Client{
			Name:                "chatter",
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: MaxImageBytes,
		},
		timeout: timeout,
		log:     logger.WithComponent("media"),
	}
}

// IsRemote reports whether ref is fetched over HTTP.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Load fetches and decodes ref. There is no retry; a failed load is returned
// to the caller and the next call tries again.
func (l *Loader) Load(ctx context.Context, ref string) (*Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, perrors.ImageLoadFailed(ref, fmt.Errorf("empty reference"))
	}

	v, err, shared := l.group.Do(ref, func() (interface{}, error) {
		start := time.Now()
		var data []byte
		var err error
		if IsRemote(ref) {
			data, err = l.fetch(ctx, ref)
		} else {
			data, err = readFile(ref)
		}
		if err != nil {
			return nil, perrors.ImageLoadFailed(ref, err)
		}
		img, err := Decode(ref, data)
		if err != nil {
			return nil, err
		}
		l.log.Debug("image loaded", "ref", ref, "format", img.Format,
			"width", img.Width, "height", img.Height, "elapsed", time.Since(start))
		return img, nil
	})
	if err != nil {
		l.log.Warn("image load failed", "ref", ref, "error", err)
		return nil, err
	}
	if shared {
		l.log.Debug("image load coalesced", "ref", ref)
	}
	return v.(*Image), nil
}

func (l *Loader) fetch(ctx context.Context, ref string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(ref)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline := time.Now().Add(l.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := l.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, err
	}
	if code := resp.StatusCode(); code != fasthttp.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", code)
	}

	body := resp.Body()
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

// readFile accepts plain paths and file:// URLs.
func readFile(ref string) ([]byte, error) {
	path := ref
	if strings.HasPrefix(ref, "file://") {
		u, err := url.Parse(ref)
		if err != nil {
			return nil, err
		}
		path = u.Path
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxImageBytes {
		return nil, fmt.Errorf("image is %d bytes, limit is %d", info.Size(), MaxImageBytes)
	}
	return os.ReadFile(path)
}

package imagepkg

import (
	"context"
	"fmt"
	"image"
	"os"
	"strings"
	"time"

	"github.com/youruser/axismedia/internal/util"
)

// AssetURLPrefix is where static catalog assets are served.
const AssetURLPrefix = "/assets/"

// Loader resolves source references into decoded images.
type Loader struct {
	AssetsDir    string
	FetchTimeout time.Duration
	// MaxPixels bounds decoded images. Zero means DefaultMaxPixels.
	MaxPixels    int
}

// Load accepts a data URL, an http(s) URL, or a static asset path.
func (l Loader) Load(ctx context.Context, ref string) (image.Image, error) {
	b, err := l.Bytes(ctx, ref)
	if err != nil {
		return nil, err
	}
	return l.Decode(b)
}

// Decode decodes raw image bytes under the loader's pixel limit.
func (l Loader) Decode(b []byte) (image.Image, error) {
	return DecodeBytesLimit(b, l.MaxPixels)
}

// Bytes returns the raw content behind ref without decoding it.
func (l Loader) Bytes(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, "data:"):
		du, err := ParseDataURL(ref)
		if err != nil {
			return nil, err
		}
		return du.Data, nil
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		timeout := l.FetchTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		b, err := util.GetBytes(ctx, ref, timeout)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", ref, err)
		}
		return b, nil
	default:
		path, err := util.SafeJoin(l.AssetsDir, strings.TrimPrefix(ref, AssetURLPrefix))
		if err != nil {
			return nil, err
		}
		return os.ReadFile(path)
	}
}

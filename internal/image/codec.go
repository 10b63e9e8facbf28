package imagepkg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	// extra decoders for uploads the browser would accept
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	ErrDecode            = errors.New("image could not be decoded")
	ErrRenderUnavailable = errors.New("render unavailable")
	ErrInvalidDimensions = errors.New("invalid output dimensions")
	ErrNoSource          = errors.New("no source image")
	ErrInvalidDataURL    = errors.New("invalid data url")
	ErrTooLarge          = errors.New("image exceeds pixel limit")
)

// DefaultMaxPixels caps the decoded size of an image (width*height).
const DefaultMaxPixels = 50_000_000

// Quality bounds for lossy output.
const (
	ResizeQuality    = 90
	ThumbnailQuality = 80
)

// DataURL is a parsed "data:" URL.
type DataURL struct {
	MediaType string
	Data      []byte
}

// ParseDataURL parses both base64 and percent-encoded data URLs.
func ParseDataURL(s string) (DataURL, error) {
	if !strings.HasPrefix(s, "data:") {
		return DataURL{}, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(s[len("data:"):], ",")
	if !ok {
		return DataURL{}, errors.Wrap(ErrInvalidDataURL, "missing payload")
	}

	isBase64 := false
	if strings.HasSuffix(meta, ";base64") {
		isBase64 = true
		meta = strings.TrimSuffix(meta, ";base64")
	}
	mediaType, _, _ := strings.Cut(meta, ";")
	if mediaType == "" {
		mediaType = "text/plain"
	}

	var data []byte
	var err error
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
	} else {
		var unescaped string
		unescaped, err = url.PathUnescape(payload)
		data = []byte(unescaped)
	}
	if err != nil {
		return DataURL{}, errors.Wrap(ErrInvalidDataURL, err.Error())
	}
	return DataURL{MediaType: strings.ToLower(mediaType), Data: data}, nil
}

// EncodeDataURL builds a base64 data URL.
func EncodeDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeBytes decodes raw image bytes, honoring EXIF orientation, with the
// default pixel limit.
func DecodeBytes(b []byte) (image.Image, error) {
	return DecodeBytesLimit(b, DefaultMaxPixels)
}

// DecodeBytesLimit decodes b unless its header declares more than maxPixels
// pixels. The header is read before any pixel data is allocated.
func DecodeBytesLimit(b []byte, maxPixels int) (image.Image, error) {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return nil, fmt.Errorf("%w: %dx%d is over %d pixels", ErrTooLarge, cfg.Width, cfg.Height, maxPixels)
	}
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, nil
}

// DecodeDataURL decodes an image carried in a data URL.
func DecodeDataURL(s string) (image.Image, error) {
	du, err := ParseDataURL(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return DecodeBytes(du.Data)
}

// EncodeJPEG encodes img with the given quality (1-100).
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if img == nil {
		return nil, ErrRenderUnavailable
	}
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, errors.Wrapf(ErrRenderUnavailable, "jpeg encode: %v", err)
	}
	return buf.Bytes(), nil
}

// Rendered is an encoded compositing result.
type Rendered struct {
	DataURL string `json:"data_url"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Bytes   int    `json:"bytes"`
}

// Render composites req and encodes it as a JPEG data URL.
func Render(req CompositeRequest, quality int) (Rendered, error) {
	out, err := Composite(req)
	if err != nil {
		return Rendered{}, err
	}
	b, err := EncodeJPEG(out, quality)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{
		DataURL: EncodeDataURL("image/jpeg", b),
		Width:   out.Bounds().Dx(),
		Height:  out.Bounds().Dy(),
		Bytes:   len(b),
	}, nil
}

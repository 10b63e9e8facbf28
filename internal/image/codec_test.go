package imagepkg

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, solid(w, h, red)))
	return buf.Bytes()
}

// pngHeader is a PNG whose IHDR declares w x h grayscale pixels and which
// carries no pixel data.
func pngHeader(w, h uint32) []byte {
	buf := bytes.NewBufferString("\x89PNG\r\n\x1a\n")
	chunk := func(typ string, data []byte) {
		binary.Write(buf, binary.BigEndian, uint32(len(data)))
		body := append([]byte(typ), data...)
		buf.Write(body)
		binary.Write(buf, binary.BigEndian, crc32.ChecksumIEEE(body))
	}
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8] = 8
	chunk("IHDR", ihdr)
	chunk("IEND", nil)
	return buf.Bytes()
}

func TestDecodeRejectsOversizedImagesBeforeAllocating(t *testing.T) {
	huge := pngHeader(16000, 16000)
	require.Less(t, len(huge), 100)

	_, err := DecodeBytes(huge)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.NotErrorIs(t, err, ErrDecode)

	_, err = Loader{}.Load(context.Background(), EncodeDataURL("image/png", huge))
	assert.ErrorIs(t, err, ErrTooLarge)

	small := pngBytes(t, 20, 10)
	img, err := Loader{MaxPixels: 200}.Decode(small)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())

	_, err = Loader{MaxPixels: 199}.Decode(small)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = DecodeBytesLimit([]byte("not an image"), 100)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestParseDataURL(t *testing.T) {
	du, err := ParseDataURL("data:image/PNG;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "image/png", du.MediaType)
	assert.Equal(t, []byte("hello"), du.Data)

	du, err = ParseDataURL("data:,a%20b")
	require.NoError(t, err)
	assert.Equal(t, "text/plain", du.MediaType)
	assert.Equal(t, []byte("a b"), du.Data)

	_, err = ParseDataURL("/assets/x.png")
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	_, err = ParseDataURL("data:image/png;base64")
	assert.ErrorIs(t, err, ErrInvalidDataURL)

	_, err = ParseDataURL("data:image/png;base64,***")
	assert.ErrorIs(t, err, ErrInvalidDataURL)
}

func TestDecodeDataURLReportsFailures(t *testing.T) {
	_, err := DecodeDataURL("data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, ErrDecode)

	_, err = DecodeDataURL("not a data url")
	assert.ErrorIs(t, err, ErrDecode)

	img, err := DecodeDataURL(EncodeDataURL("image/png", pngBytes(t, 7, 3)))
	require.NoError(t, err)
	assert.Equal(t, 7, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}

func TestEncodeJPEG(t *testing.T) {
	b, err := EncodeJPEG(solid(16, 16, red), ThumbnailQuality)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, b[:2])

	_, err = EncodeJPEG(nil, 80)
	assert.ErrorIs(t, err, ErrRenderUnavailable)
}

func TestRenderProducesJPEGDataURL(t *testing.T) {
	out, err := Render(CompositeRequest{Source: solid(400, 200, red), Width: 150, Height: 150, Mode: ModeFill}, ThumbnailQuality)
	require.NoError(t, err)
	assert.Equal(t, 150, out.Width)
	assert.Equal(t, 150, out.Height)

	du, err := ParseDataURL(out.DataURL)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", du.MediaType)
	assert.Len(t, du.Data, out.Bytes)

	img, err := DecodeBytes(du.Data)
	require.NoError(t, err)
	assert.Equal(t, 150, img.Bounds().Dx())
}

func TestLoaderResolvesReferences(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "backdrops"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backdrops", "a.png"), pngBytes(t, 5, 4), 0o644))

	remote := pngBytes(t, 9, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/remote.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(remote)
	}))
	defer srv.Close()

	l := Loader{AssetsDir: dir}
	ctx := context.Background()

	img, err := l.Load(ctx, "/assets/backdrops/a.png")
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dx())

	img, err = l.Load(ctx, EncodeDataURL("image/png", pngBytes(t, 3, 3)))
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	img, err = l.Load(ctx, srv.URL+"/remote.png")
	require.NoError(t, err)
	assert.Equal(t, 9, img.Bounds().Dx())

	_, err = l.Load(ctx, srv.URL+"/missing.png")
	assert.Error(t, err)

	_, err = l.Load(ctx, "/assets/../../etc/passwd")
	assert.Error(t, err)
}

func TestGenerateQRPNG(t *testing.T) {
	b, err := GenerateQRPNG("http://localhost:8080/api/sessions/x/media/y/download", 10)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, minQRSize, cfg.Width)

	b, err = GenerateQRPNG("hello", 0)
	require.NoError(t, err)
	cfg, err = png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, DefaultQRSize, cfg.Width)
}

func TestPresetCatalog(t *testing.T) {
	presets := ResizePresets()
	require.Len(t, presets, 8)
	p, ok := LookupPreset("twitter-header")
	require.True(t, ok)
	assert.Equal(t, 1500, p.Width)
	assert.Equal(t, 500, p.Height)
	_, ok = LookupPreset("nope")
	assert.False(t, ok)

	presets[0].Width = 1
	again, _ := LookupPreset(presets[0].ID)
	assert.Equal(t, 1080, again.Width, "callers get a copy")
}

func TestResolveThumbnailSize(t *testing.T) {
	s, err := ResolveThumbnailSize("medium", 999, 999)
	require.NoError(t, err)
	assert.Equal(t, 300, s.Width)

	s, err = ResolveThumbnailSize(CustomThumbnailID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 200, s.Width)
	assert.Equal(t, 200, s.Height)

	s, err = ResolveThumbnailSize(CustomThumbnailID, 10, 4000)
	require.NoError(t, err)
	assert.Equal(t, MinCustomSize, s.Width)
	assert.Equal(t, MaxCustomSize, s.Height)

	_, err = ResolveThumbnailSize("huge", 0, 0)
	assert.Error(t, err)
}

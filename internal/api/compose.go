package api

import (
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/youruser/axismedia/internal/catalog"
	"github.com/youruser/axismedia/internal/export"
	"github.com/youruser/axismedia/internal/gallery"
	imagepkg "github.com/youruser/axismedia/internal/image"
	"github.com/youruser/axismedia/internal/session"
)

var (
	errEntryNotFound = errors.New("media entry not found")
	errAssetMissing  = errors.New("asset not found")
)

type upload struct {
	Filename string
	MimeType string
	Data     []byte
}

func readUpload(fh *multipart.FileHeader) (upload, error) {
	f, err := fh.Open()
	if err != nil {
		return upload{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return upload{}, fmt.Errorf("failed to read upload: %w", err)
	}
	mt := fh.Header.Get("Content-Type")
	if mt == "" || mt == "application/octet-stream" {
		mt = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return upload{Filename: fh.Filename, MimeType: strings.ToLower(mt), Data: data}, nil
}

// limitBody caps the request body at the configured upload size.
func (h *Handler) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
}

func formError(c *gin.Context, err error) {
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	}
	writeError(c, fmt.Errorf("%w: %v", errMissingPrerequisite, err))
}

func (h *Handler) putSource(c *gin.Context) {
	op, err := session.ParseOp(c.Param("op"))
	if err != nil {
		writeError(c, err)
		return
	}
	h.limitBody(c)
	fh, err := c.FormFile("file")
	if err != nil {
		formError(c, err)
		return
	}
	up, err := readUpload(fh)
	if err != nil {
		writeError(c, err)
		return
	}
	if kind, err := gallery.Classify(up.MimeType); err != nil || kind != catalog.KindImage {
		writeError(c, fmt.Errorf("%w: %s is not an image", gallery.ErrUnsupportedMediaType, up.Filename))
		return
	}
	img, err := h.loader.Decode(up.Data)
	if err != nil {
		writeError(c, err)
		return
	}

	s := current(c)
	s.SetSource(op, up.Filename, imagepkg.EncodeDataURL(up.MimeType, up.Data))
	c.JSON(http.StatusOK, gin.H{
		"op":       op,
		"filename": up.Filename,
		"width":    img.Bounds().Dx(),
		"height":   img.Bounds().Dy(),
	})
}

func (h *Handler) clearSource(c *gin.Context) {
	op, err := session.ParseOp(c.Param("op"))
	if err != nil {
		writeError(c, err)
		return
	}
	current(c).ClearSource(op)
	c.Status(http.StatusNoContent)
}

// sourceImage decodes the picked image of op.
func (h *Handler) sourceImage(s *session.Session, op session.Op) (session.Source, image.Image, error) {
	src, ok := s.Source(op)
	if !ok {
		return session.Source{}, nil, imagepkg.ErrNoSource
	}
	du, err := imagepkg.ParseDataURL(src.DataURL)
	if err != nil {
		return session.Source{}, nil, fmt.Errorf("%w: %v", imagepkg.ErrDecode, err)
	}
	img, err := h.loader.Decode(du.Data)
	if err != nil {
		return session.Source{}, nil, err
	}
	return src, img, nil
}

func applyAndRespond(c *gin.Context, slot *session.Slot, seq uint64, results []session.Result) {
	for i := range results {
		results[i].Seq = seq
	}
	applied := slot.Apply(seq, results...)
	c.JSON(http.StatusOK, gin.H{
		"seq":     seq,
		"applied": applied,
		"results": results,
	})
}

func (h *Handler) resizeHandler(c *gin.Context) {
	var req struct {
		PresetID string `json:"preset_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	preset, ok := imagepkg.LookupPreset(req.PresetID)
	if !ok {
		writeError(c, fmt.Errorf("%w: unknown preset %q", errMissingPrerequisite, req.PresetID))
		return
	}

	s := current(c)
	src, img, err := h.sourceImage(s, session.OpResize)
	if err != nil {
		writeError(c, err)
		return
	}
	slot := s.Slot(session.OpResize)
	seq := slot.Issue()
	out, err := imagepkg.Render(imagepkg.CompositeRequest{
		Source: img,
		Width:  preset.Width,
		Height: preset.Height,
		Mode:   imagepkg.ModeFit,
	}, h.opts.ResizeQuality)
	if err != nil {
		writeError(c, err)
		return
	}
	applyAndRespond(c, slot, seq, []session.Result{{
		Label:    preset.ID,
		Filename: export.ResizeFilename(s.Category.ID, preset.ID, src.Filename),
		Image:    out,
	}})
}

func (h *Handler) thumbnailsHandler(c *gin.Context) {
	var req struct {
		SizeIDs      []string `json:"size_ids"`
		CustomWidth  int      `json:"custom_width"`
		CustomHeight int      `json:"custom_height"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.SizeIDs) == 0 {
		writeError(c, fmt.Errorf("%w: select at least one size", errMissingPrerequisite))
		return
	}
	var sizes []imagepkg.ThumbnailSize
	for _, id := range req.SizeIDs {
		size, err := imagepkg.ResolveThumbnailSize(id, req.CustomWidth, req.CustomHeight)
		if err != nil {
			writeError(c, fmt.Errorf("%w: %v", errMissingPrerequisite, err))
			return
		}
		sizes = append(sizes, size)
	}

	s := current(c)
	src, img, err := h.sourceImage(s, session.OpThumbnail)
	if err != nil {
		writeError(c, err)
		return
	}
	slot := s.Slot(session.OpThumbnail)
	seq := slot.Issue()
	results := make([]session.Result, 0, len(sizes))
	for _, size := range sizes {
		out, err := imagepkg.Render(imagepkg.CompositeRequest{
			Source: img,
			Width:  size.Width,
			Height: size.Height,
			Mode:   imagepkg.ModeFill,
		}, h.opts.ThumbnailQuality)
		if err != nil {
			writeError(c, err)
			return
		}
		results = append(results, session.Result{
			Label:    size.ID,
			Filename: export.ThumbnailFilename(s.Category.ID, size.Width, size.Height, src.Filename),
			Image:    out,
		})
	}
	applyAndRespond(c, slot, seq, results)
}

func (h *Handler) wallpaperHandler(c *gin.Context) {
	var req struct {
		BackgroundID string `json:"background_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := current(c)
	src, img, err := h.sourceImage(s, session.OpWallpaper)
	if err != nil {
		writeError(c, err)
		return
	}

	cr := imagepkg.CompositeRequest{Source: img, Mode: imagepkg.ModeWallpaper}
	if req.BackgroundID != "" {
		entry, ok := s.Gallery.Get(req.BackgroundID)
		if !ok {
			writeError(c, errEntryNotFound)
			return
		}
		if entry.Kind != catalog.KindImage {
			writeError(c, fmt.Errorf("%w: background must be an image", errMissingPrerequisite))
			return
		}
		bg, err := h.loader.Load(c.Request.Context(), entry.SourceURL)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist):
			writeError(c, fmt.Errorf("%w: background %s: %v", errAssetMissing, entry.ID, err))
			return
		case errors.Is(err, imagepkg.ErrDecode), errors.Is(err, imagepkg.ErrTooLarge):
			writeError(c, err)
			return
		default:
			writeError(c, fmt.Errorf("%w: background %s: %v", imagepkg.ErrDecode, entry.ID, err))
			return
		}
		cr.Background = bg
	}

	// requests rejected above never take a sequence number
	slot := s.Slot(session.OpWallpaper)
	seq := slot.Issue()
	out, err := imagepkg.Render(cr, h.opts.ResizeQuality)
	if err != nil {
		writeError(c, err)
		return
	}
	applyAndRespond(c, slot, seq, []session.Result{{
		Label:    string(session.OpWallpaper),
		Filename: export.WallpaperFilename(s.Category.ID, src.Filename),
		Image:    out,
	}})
}

func (h *Handler) resultsHandler(c *gin.Context) {
	op, err := session.ParseOp(c.Param("op"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": current(c).Slot(op).Latest()})
}

// downloadResult serves one applied result as a file attachment.
func (h *Handler) downloadResult(c *gin.Context) {
	op, err := session.ParseOp(c.Param("op"))
	if err != nil {
		writeError(c, err)
		return
	}
	idx, err := strconv.Atoi(c.DefaultQuery("index", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a number"})
		return
	}
	results := current(c).Slot(op).Latest()
	if idx < 0 || idx >= len(results) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such result"})
		return
	}
	res := results[idx]
	du, err := imagepkg.ParseDataURL(res.Image.DataURL)
	if err != nil {
		writeError(c, err)
		return
	}
	attach(c, res.Filename, du.MediaType, du.Data)
}

func attach(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

package api

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/youruser/axismedia/internal/catalog"
	"github.com/youruser/axismedia/internal/export"
	"github.com/youruser/axismedia/internal/gallery"
	imagepkg "github.com/youruser/axismedia/internal/image"
)

// gallery card previews
const previewSize = 300

func (h *Handler) listMedia(c *gin.Context) {
	s := current(c)
	all := s.Gallery.ListByCategory(s.Category.ID)
	view := s.Filters.Visible(all)
	c.JSON(http.StatusOK, gin.H{
		"entries":         view.Entries,
		"needs_selection": view.NeedsSelection,
		"total":           len(all),
		"filters":         filterState(s),
	})
}

type rejected struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// uploadMedia adds every file of the form to the gallery. Files that are
// not image, video or audio are reported and skipped.
func (h *Handler) uploadMedia(c *gin.Context) {
	s := current(c)
	h.limitBody(c)
	form, err := c.MultipartForm()
	if err != nil {
		formError(c, err)
		return
	}
	mediaType := strings.TrimSpace(c.PostForm("media_type"))
	if mediaType == "" {
		writeError(c, fmt.Errorf("%w: media_type is required", errMissingPrerequisite))
		return
	}
	if !s.Filters.Known(mediaType) {
		writeError(c, fmt.Errorf("%w: unknown media_type %q", errMissingPrerequisite, mediaType))
		return
	}
	files := form.File["file"]
	if len(files) == 0 {
		writeError(c, fmt.Errorf("%w: no files uploaded", errMissingPrerequisite))
		return
	}
	title := strings.TrimSpace(c.PostForm("title"))
	uploadedBy := strings.TrimSpace(c.PostForm("uploaded_by"))

	var created []gallery.MediaEntry
	var failed []rejected
	var firstErr error
	for _, fh := range files {
		entry, err := h.addUpload(s.Gallery, fh, title, mediaType, uploadedBy)
		if err != nil {
			failed = append(failed, rejected{Filename: fh.Filename, Error: err.Error()})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		created = append(created, entry)
	}

	if len(created) == 0 {
		writeError(c, firstErr)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"created":  created,
		"rejected": failed,
		"filters":  filterState(s),
	})
}

func (h *Handler) addUpload(store *gallery.Store, fh *multipart.FileHeader, title, mediaType, uploadedBy string) (gallery.MediaEntry, error) {
	up, err := readUpload(fh)
	if err != nil {
		return gallery.MediaEntry{}, err
	}
	kind, err := gallery.Classify(up.MimeType)
	if err != nil {
		return gallery.MediaEntry{}, fmt.Errorf("%s is not a valid image, video or audio file: %w", fh.Filename, err)
	}
	if title == "" {
		title = export.BaseName(fh.Filename)
	}

	var thumb string
	if kind == catalog.KindImage {
		img, err := h.loader.Decode(up.Data)
		if err != nil {
			return gallery.MediaEntry{}, err
		}
		out, err := imagepkg.Render(imagepkg.CompositeRequest{
			Source: img,
			Width:  previewSize,
			Height: previewSize,
			Mode:   imagepkg.ModeFill,
		}, h.opts.ThumbnailQuality)
		if err != nil {
			return gallery.MediaEntry{}, err
		}
		thumb = out.DataURL
	}

	return store.Add(gallery.NewEntry{
		Title:      title,
		MimeType:   up.MimeType,
		SourceURL:  imagepkg.EncodeDataURL(up.MimeType, up.Data),
		MediaType:  mediaType,
		UploadedBy: uploadedBy,
		Thumbnail:  thumb,
	})
}

func (h *Handler) deleteMedia(c *gin.Context) {
	s := current(c)
	if !s.Gallery.Remove(c.Param("mid")) {
		log.Printf("delete of unknown media %s in session %s", c.Param("mid"), s.ID)
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) downloadMedia(c *gin.Context) {
	s := current(c)
	entry, ok := s.Gallery.Get(c.Param("mid"))
	if !ok {
		writeError(c, errEntryNotFound)
		return
	}
	data, err := h.loader.Bytes(c.Request.Context(), entry.SourceURL)
	if err != nil {
		if errors.Is(err, imagepkg.ErrInvalidDataURL) {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	contentType := entry.MimeType
	if du, err := imagepkg.ParseDataURL(entry.SourceURL); err == nil {
		contentType = du.MediaType
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	attach(c, export.MediaFilename(entry), contentType, data)
}

// mediaQR encodes the entry's download link for sharing to a phone.
func (h *Handler) mediaQR(c *gin.Context) {
	s := current(c)
	entry, ok := s.Gallery.Get(c.Param("mid"))
	if !ok {
		writeError(c, errEntryNotFound)
		return
	}
	size := imagepkg.DefaultQRSize
	if v, err := strconv.Atoi(c.Query("size")); err == nil {
		size = v
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	link := fmt.Sprintf("%s://%s/api/sessions/%s/media/%s/download", scheme, c.Request.Host, s.ID, entry.ID)
	b, err := imagepkg.GenerateQRPNG(link, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

func (h *Handler) toggleFilter(c *gin.Context) {
	var req struct {
		Tag string `json:"tag"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s := current(c)
	if err := s.Filters.Toggle(req.Tag); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, filterState(s))
}

func (h *Handler) toggleAllFilters(c *gin.Context) {
	s := current(c)
	s.Filters.ToggleAll()
	c.JSON(http.StatusOK, filterState(s))
}

func (h *Handler) manifest(c *gin.Context) {
	s := current(c)
	c.String(http.StatusOK, export.Manifest(s.Category.ID, s.Gallery.ListByCategory(s.Category.ID)))
}

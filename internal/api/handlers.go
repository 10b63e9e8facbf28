package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/youruser/axismedia/internal/catalog"
	"github.com/youruser/axismedia/internal/filter"
	"github.com/youruser/axismedia/internal/gallery"
	imagepkg "github.com/youruser/axismedia/internal/image"
	"github.com/youruser/axismedia/internal/session"
)

const sessionKey = "session"

// Options tune the handlers. Zero values fall back to package defaults.
type Options struct {
	ResizeQuality    int
	ThumbnailQuality int
	MaxUploadBytes   int64
}

// Handler serves the session API.
type Handler struct {
	sessions *session.Manager
	loader   imagepkg.Loader
	opts     Options
}

func NewHandler(sessions *session.Manager, loader imagepkg.Loader, opts Options) *Handler {
	if opts.ResizeQuality == 0 {
		opts.ResizeQuality = imagepkg.ResizeQuality
	}
	if opts.ThumbnailQuality == 0 {
		opts.ThumbnailQuality = imagepkg.ThumbnailQuality
	}
	if opts.MaxUploadBytes == 0 {
		opts.MaxUploadBytes = 50 << 20
	}
	return &Handler{sessions: sessions, loader: loader, opts: opts}
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func categoriesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories()})
}

func presetsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"resize":     imagepkg.ResizePresets(),
		"thumbnails": imagepkg.ThumbnailSizes(),
		"custom_range": gin.H{
			"min": imagepkg.MinCustomSize,
			"max": imagepkg.MaxCustomSize,
		},
		"wallpaper": gin.H{
			"width":  imagepkg.WallpaperWidth,
			"height": imagepkg.WallpaperHeight,
		},
	})
}

func (h *Handler) openSession(c *gin.Context) {
	var req struct {
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}
	s, err := h.sessions.Open(req.Category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sessionBody(s))
}

func (h *Handler) closeSession(c *gin.Context) {
	h.sessions.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, sessionBody(current(c)))
}

// loadSession resolves :id for every nested route.
func (h *Handler) loadSession(c *gin.Context) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		writeError(c, err)
		c.Abort()
		return
	}
	c.Set(sessionKey, s)
	c.Next()
}

func current(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

func sessionBody(s *session.Session) gin.H {
	return gin.H{
		"session": s,
		"filters": filterState(s),
	}
}

func filterState(s *session.Session) gin.H {
	return gin.H{
		"universe":   s.Filters.Universe(),
		"active":     s.Filters.Active(),
		"all_active": s.Filters.AllActive(),
		"counts":     s.Filters.Counts(s.Gallery),
	}
}

var errMissingPrerequisite = errors.New("missing prerequisite")

// writeError maps domain errors onto status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := gin.H{"error": err.Error()}
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, errEntryNotFound), errors.Is(err, errAssetMissing):
		status = http.StatusNotFound
	case errors.Is(err, imagepkg.ErrTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, gallery.ErrUnsupportedMediaType):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, imagepkg.ErrDecode), errors.Is(err, imagepkg.ErrInvalidDataURL):
		status = http.StatusUnprocessableEntity
		body["retry"] = "select the file again"
	case errors.Is(err, session.ErrUnknownCategory),
		errors.Is(err, session.ErrUnknownOp),
		errors.Is(err, filter.ErrUnknownTag),
		errors.Is(err, imagepkg.ErrNoSource),
		errors.Is(err, imagepkg.ErrInvalidDimensions),
		errors.Is(err, errMissingPrerequisite):
		status = http.StatusBadRequest
	case errors.Is(err, imagepkg.ErrRenderUnavailable):
		log.Println("render unavailable:", err)
	default:
		log.Println("request failed:", err)
	}
	c.JSON(status, body)
}

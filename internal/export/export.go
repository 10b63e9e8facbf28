package export

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/youruser/axismedia/internal/catalog"
	"github.com/youruser/axismedia/internal/gallery"
)

// BaseName strips directories and everything from the first dot on.
func BaseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	base, _, _ := strings.Cut(name, ".")
	return base
}

// Filename builds "{category}-{operation}-{base}.{ext}".
func Filename(category, operation, original, ext string) string {
	parts := []string{}
	for _, p := range []string{category, operation, BaseName(original)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "-") + "." + ext
}

func ResizeFilename(category, presetID, original string) string {
	return Filename(category, presetID, original, "jpg")
}

func ThumbnailFilename(category string, width, height int, original string) string {
	return Filename(category, fmt.Sprintf("thumbnail-%dx%d", width, height), original, "jpg")
}

func WallpaperFilename(category, original string) string {
	return Filename(category, "wallpaper", original, "jpg")
}

// Ext is the download extension for a media kind. Non-image media keep a
// placeholder extension whatever the real container is.
func Ext(kind catalog.Kind) string {
	switch kind {
	case catalog.KindVideo:
		return "mp4"
	case catalog.KindAudio:
		return "mp3"
	}
	return "jpg"
}

// MediaFilename names the re-download of a gallery entry.
func MediaFilename(e gallery.MediaEntry) string {
	title := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '.':
			return '_'
		case ' ':
			return '-'
		}
		return r
	}, e.Title)
	return Filename(e.Category, e.MediaType, title, Ext(e.Kind))
}

// Manifest renders a gallery as text: a header line, then one line per
// entry in gallery order.
func Manifest(category string, entries []gallery.MediaEntry) string {
	lines := []string{"# " + category}
	for _, e := range entries {
		src := e.SourceURL
		if strings.HasPrefix(src, "data:") {
			src = "(uploaded)"
		}
		lines = append(lines, strings.Join([]string{e.MediaType, string(e.Kind), e.Title, src}, "\t"))
	}
	lines = append(lines, strconv.Itoa(len(entries))+" entries")
	return strings.Join(lines, "\n") + "\n"
}

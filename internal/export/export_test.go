package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/youruser/axismedia/internal/catalog"
	"github.com/youruser/axismedia/internal/gallery"
)

func TestBaseName(t *testing.T) {
	assert.Equal(t, "photo", BaseName("photo.jpg"))
	assert.Equal(t, "my", BaseName("my.photo.final.png"))
	assert.Equal(t, "shot", BaseName("C:\\Users\\me\\shot.jpeg"))
	assert.Equal(t, "shot", BaseName("/tmp/shot.jpeg"))
	assert.Equal(t, "README", BaseName("README"))
	assert.Equal(t, "", BaseName(""))
}

func TestOperationFilenames(t *testing.T) {
	assert.Equal(t, "snow-social-square-jump.jpg", ResizeFilename("snow", "social-square", "jump.png"))
	assert.Equal(t, "snow-thumbnail-640x360-jump.jpg", ThumbnailFilename("snow", 640, 360, "jump.webp"))
	assert.Equal(t, "golf-wallpaper-green.jpg", WallpaperFilename("golf", "green.heic"))
	assert.Equal(t, "golf-wallpaper.jpg", WallpaperFilename("golf", ""))
}

func TestMediaFilenameUsesPlaceholderExtensions(t *testing.T) {
	e := gallery.MediaEntry{Category: "snow", MediaType: "b-roll", Title: "Powder Run", Kind: catalog.KindVideo}
	assert.Equal(t, "snow-b-roll-Powder-Run.mp4", MediaFilename(e))

	e.Kind = catalog.KindAudio
	assert.True(t, strings.HasSuffix(MediaFilename(e), ".mp3"))

	e.Kind = catalog.KindImage
	e.Title = "a/b.c"
	assert.Equal(t, "snow-b-roll-a_b_c.jpg", MediaFilename(e))
}

func TestManifest(t *testing.T) {
	out := Manifest("snow", []gallery.MediaEntry{
		{Title: "Peak", MediaType: "studio-backdrops", Kind: catalog.KindImage, SourceURL: "/assets/peak.png"},
		{Title: "Mine", MediaType: "photos", Kind: catalog.KindImage, SourceURL: "data:image/png;base64,AAAA"},
	})
	assert.Equal(t, "# snow\n"+
		"studio-backdrops\timage\tPeak\t/assets/peak.png\n"+
		"photos\timage\tMine\t(uploaded)\n"+
		"2 entries\n", out)
}

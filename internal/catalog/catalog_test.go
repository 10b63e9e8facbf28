package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `category,media_type,kind,title,path
snow,photos,image,Ridge,/assets/snow/ridge.jpg
snow,drone,video,,/assets/snow/flyover.mp4

golf,audio,audio,Swing,/assets/golf/swing.mp3
`

func TestParseAssets(t *testing.T) {
	assets, err := parseAssets(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, Asset{Category: "snow", MediaType: "photos", Kind: KindImage, Title: "Ridge", Path: "/assets/snow/ridge.jpg"}, assets[0])
	assert.Equal(t, "flyover", assets[1].Title, "title falls back to file name")
	assert.Equal(t, KindAudio, assets[2].Kind)
}

func TestParseAssetsRejectsBadRows(t *testing.T) {
	_, err := parseAssets(strings.NewReader("category,media_type,kind,path\nsnow,photos,hologram,/x.png\n"))
	assert.ErrorContains(t, err, "unknown kind")

	_, err = parseAssets(strings.NewReader("category,kind,path\nsnow,image,/x.png\n"))
	assert.ErrorContains(t, err, "media_type")

	_, err = parseAssets(strings.NewReader("category,media_type,path\nsnow,,/x.png\n"))
	assert.Error(t, err)

	_, err = parseAssets(strings.NewReader(""))
	assert.Error(t, err)
}

func TestCatalogFallsBackToDefaults(t *testing.T) {
	c, err := New(filepath.Join(t.TempDir(), "missing.csv"))
	require.NoError(t, err)
	assert.Len(t, c.Assets("snow"), 5)
	assert.False(t, c.LoadedAt().IsZero())

	c, err = New("")
	require.NoError(t, err)
	assert.NotEmpty(t, c.Assets("football"))
}

func TestCatalogTagsAppendExtras(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	c, err := New(path)
	require.NoError(t, err)

	tags := c.Tags("snow")
	assert.Equal(t, MediaTypes, tags[:len(MediaTypes)])
	assert.Equal(t, "drone", tags[len(tags)-1])
	assert.Equal(t, MediaTypes, c.Tags("golf"))
}

func TestCategories(t *testing.T) {
	cats := Categories()
	assert.NotEmpty(t, cats)
	c, ok := Lookup("hockey")
	require.True(t, ok)
	assert.Equal(t, "Hockey", c.Name)
	_, ok = Lookup("curling")
	assert.False(t, ok)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	c, err := New(path)
	require.NoError(t, err)
	require.Len(t, c.Assets("golf"), 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, c.Watch(ctx))

	updated := sampleCSV + "golf,photos,image,Green,/assets/golf/green.jpg\n"
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	assert.Eventually(t, func() bool {
		return len(c.Assets("golf")) == 2
	}, 5*time.Second, 50*time.Millisecond)
}

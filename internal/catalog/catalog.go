package catalog

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 500 * time.Millisecond

// Catalog holds the static asset list. It is read-only for callers; only
// Reload replaces its contents.
type Catalog struct {
	path string

	mu       sync.RWMutex
	assets   []Asset
	loadedAt time.Time
}

// New loads the catalog from path. An empty path, or a file that does not
// exist, yields the built-in defaults.
func New(path string) (*Catalog, error) {
	c := &Catalog{path: path}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// FromAssets builds a catalog around a fixed asset list.
func FromAssets(assets []Asset) *Catalog {
	return &Catalog{assets: append([]Asset(nil), assets...), loadedAt: time.Now()}
}

// Reload re-reads the CSV file.
func (c *Catalog) Reload() error {
	assets := DefaultAssets()
	if c.path != "" {
		loaded, err := LoadAssetsCSV(c.path)
		switch {
		case err == nil:
			assets = loaded
		case os.IsNotExist(err):
			log.Printf("catalog %s not found, using built-in defaults", c.path)
		default:
			return err
		}
	}
	c.mu.Lock()
	c.assets = assets
	c.loadedAt = time.Now()
	c.mu.Unlock()
	return nil
}

// LoadedAt is when the current asset list was read.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Assets returns the catalog entries for one category, in file order.
func (c *Catalog) Assets(category string) []Asset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Asset
	for _, a := range c.assets {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// Tags returns the mediaType universe for a category: the standard tags
// followed by any extra tags the catalog uses for it.
func (c *Catalog) Tags(category string) []string {
	tags := append([]string(nil), MediaTypes...)
	seen := map[string]bool{}
	for _, t := range tags {
		seen[t] = true
	}
	for _, a := range c.Assets(category) {
		if !seen[a.MediaType] {
			seen[a.MediaType] = true
			tags = append(tags, a.MediaType)
		}
	}
	return tags
}

// Watch reloads the catalog whenever its file changes, until ctx is done.
func (c *Catalog) Watch(ctx context.Context) error {
	if c.path == "" {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	// editors replace files, so watch the directory
	dir := filepath.Dir(c.path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	go c.processEvents(ctx, w)
	return nil
}

func (c *Catalog) processEvents(ctx context.Context, w *fsnotify.Watcher) {
	defer w.Close()
	target := filepath.Clean(c.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(reloadDebounce)
			fire = timer.C
		case <-fire:
			fire = nil
			if err := c.Reload(); err != nil {
				log.Printf("catalog reload failed: %v", err)
				continue
			}
			log.Printf("catalog reloaded from %s", c.path)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Printf("catalog watcher error: %v", err)
		}
	}
}

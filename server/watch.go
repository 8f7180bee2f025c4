package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/SvenDH/go-card-render/card"
	"github.com/SvenDH/go-card-render/render"
)

// Catalog ties the card loader, the renderer and the repository together:
// every card file that enters the catalog is parsed, rendered and stored,
// and connected clients hear about it through the hub.
type Catalog struct {
	repo     *Repository
	renderer *render.Renderer
	hub      *Hub

	// slug per source path, so deleting a file can remove its card.
	mutex sync.Mutex
	slugs map[string]string
}

func NewCatalog(repo *Repository, hub *Hub) *Catalog {
	return &Catalog{
		repo:     repo,
		renderer: render.New(),
		hub:      hub,
		slugs:    make(map[string]string),
	}
}

func isCardFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadDir loads every card file under dir. A broken file is logged and
// skipped; it never aborts the scan.
func (c *Catalog) LoadDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isCardFile(path) {
			return nil
		}
		if _, err := c.LoadFile(path); err != nil {
			log.Printf("skipping %s: %v", path, err)
		}
		return nil
	})
}

// LoadFile parses, renders and stores one card file. Cards whose variant has
// no layout are stored without a document so the index still lists them.
func (c *Catalog) LoadFile(path string) (*CardRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	row, err := c.Store(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.mutex.Lock()
	c.slugs[path] = row.Slug
	c.mutex.Unlock()
	return row, nil
}

// Store parses, renders and stores one raw card record.
func (c *Catalog) Store(source []byte) (*CardRow, error) {
	parsed, err := card.LoadCard(source)
	if err != nil {
		return nil, err
	}
	row := &CardRow{
		Slug:   render.SanitizeName(parsed.Base().Name),
		Name:   parsed.Base().Name,
		Kind:   string(parsed.Kind()),
		Source: string(source),
	}
	doc, err := c.renderer.Render(parsed)
	if err == nil {
		row.Html = doc
	} else {
		var unsupported *render.UnsupportedLayoutError
		if !errors.As(err, &unsupported) {
			return nil, err
		}
	}
	if err := c.repo.UpsertCard(row); err != nil {
		return nil, err
	}
	if c.hub != nil {
		c.hub.NotifyCardUpdated(row.Slug, row.Name)
	}
	return row, nil
}

// RemoveFile drops the card previously loaded from path, if any.
func (c *Catalog) RemoveFile(path string) {
	c.mutex.Lock()
	slug, ok := c.slugs[path]
	delete(c.slugs, path)
	c.mutex.Unlock()
	if !ok {
		return
	}
	if err := c.repo.DeleteCardBySlug(slug); err != nil {
		log.Printf("removing %s: %v", slug, err)
		return
	}
	if c.hub != nil {
		c.hub.NotifyCardRemoved(slug)
	}
}

// collectDirs returns root and every directory below it. fsnotify watches
// are not recursive, so each level needs its own watch.
func collectDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

func watchTree(watcher *fsnotify.Watcher, root string) error {
	dirs, err := collectDirs(root)
	if err != nil {
		return err
	}
	for _, d := range dirs {
		if err := watcher.Add(d); err != nil {
			return err
		}
	}
	return nil
}

// Watch follows dir with fsnotify and keeps the catalog in sync until ctx is
// done. Edits re-load the file; deletes drop the card. The whole tree is
// watched, including directories created while watching.
func (c *Catalog) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watchTree(watcher, dir); err != nil {
		return err
	}
	log.Printf("watching %s for card changes", dir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						log.Printf("watching %s: %v", event.Name, err)
					}
					if err := c.LoadDir(event.Name); err != nil {
						log.Printf("loading %s: %v", event.Name, err)
					}
					continue
				}
			}
			if !isCardFile(event.Name) {
				continue
			}
			switch {
			case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
				if _, err := c.LoadFile(event.Name); err != nil {
					log.Printf("reloading %s: %v", event.Name, err)
				}
			case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
				c.RemoveFile(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}

package main

import (
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/mogaika/dff_browser/batch"
	"github.com/mogaika/dff_browser/vfs"
)

// Watch re-extracts dff files created or changed under root until interrupted
func Watch(root string, cfg batch.Config) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrapf(err, "Can't create watcher")
	}
	defer w.Close()

	if err := watchRecursive(w, root); err != nil {
		return err
	}
	log.Printf("[dffextract] [watch] Watching '%s'", root)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	for {
		select {
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if e.Op&fsnotify.Create != 0 {
				if st, err := os.Stat(e.Name); err == nil && st.IsDir() {
					if err := watchRecursive(w, e.Name); err != nil {
						log.Printf("[dffextract] [watch] %v", err)
					}
					continue
				}
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 || !vfs.IsDff(e.Name) {
				continue
			}
			rel, err := filepath.Rel(root, e.Name)
			if err != nil {
				log.Printf("[dffextract] [watch] %v", err)
				continue
			}
			r := batch.ProcessFile(cfg, filepath.ToSlash(rel))
			if r.Success {
				log.Printf("[dffextract] [watch] %s: %d splits %d triangles", r.Name, r.Splits, r.Triangles)
			} else {
				log.Printf("[dffextract] [watch] %s: %s", r.Name, r.Error)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("[dffextract] [watch] error: %v", err)
		case <-interrupt:
			return nil
		}
	}
}

func watchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if err := w.Add(p); err != nil {
				return errors.Wrapf(err, "Can't watch '%s'", p)
			}
		}
		return nil
	})
}

package main

import (
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/crystal-mush/mushemote/pkg/config"
	"github.com/crystal-mush/mushemote/pkg/world"
)

// watchConf reloads the socials table whenever confPath or one of its social
// files is written. It returns a stop function.
func watchConf(w *world.World, confPath string, socialFiles []string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	tracked := map[string]bool{filepath.Clean(confPath): true}
	dirs := map[string]bool{filepath.Dir(confPath): true}
	for _, sf := range socialFiles {
		tracked[filepath.Clean(sf)] = true
		dirs[filepath.Dir(sf)] = true
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if !tracked[filepath.Clean(event.Name)] {
					continue
				}
				log.Printf("Config changed on disk: %s", event.Name)
				reload(w, confPath)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v", err)
			}
		}
	}()

	// Watch directories rather than files so editors that replace the file
	// on save are still seen.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, err
		}
		log.Printf("Watching %s for config changes", dir)
	}
	return func() { watcher.Close() }, nil
}

// reload re-reads the config and swaps in its socials. A broken file keeps
// the previous table.
func reload(w *world.World, confPath string) {
	c, err := config.LoadConf(confPath)
	if err != nil {
		log.Printf("WARNING: keeping previous socials: %v", err)
		return
	}
	w.SetSocials(c.Socials)
}

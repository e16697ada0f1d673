package deadzone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// tuningDebounce is the settle delay after a file change before reloading,
// so editors that write in multiple steps trigger a single reload.
const tuningDebounce = 100 * time.Millisecond

// WatchTuning reloads the radii from a TOML file whenever it changes, until
// the context is cancelled. The file holds the Params fields:
//
//	left_radius = 0.15
//	right_radius = 0.2
//
// An existing file is loaded immediately; a missing one is not an error, the
// watch picks it up once created. Malformed or out-of-range content is logged
// and skipped, leaving the previous radii in effect.
func (d *Deadzone) WatchTuning(ctx context.Context, path string, log zerolog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create tuning watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save and
	// a watch on the old inode would go stale.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch tuning dir: %w", err)
	}

	if err := d.loadTuning(path); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", path).Msg("initial tuning load failed")
	}

	go d.watchLoop(ctx, watcher, path, log)
	return nil
}

func (d *Deadzone) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, path string, log zerolog.Logger) {
	defer watcher.Close()

	var mu sync.Mutex
	var debounce *time.Timer
	defer func() {
		mu.Lock()
		if debounce != nil {
			debounce.Stop()
		}
		mu.Unlock()
	}()

	reload := func() {
		if err := d.loadTuning(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("tuning reload failed")
			return
		}
		p := d.Params()
		log.Info().
			Float64("left_radius", p.LeftRadius).
			Float64("right_radius", p.RightRadius).
			Msg("deadzone tuning reloaded")
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			mu.Lock()
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(tuningDebounce, reload)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("tuning watcher error")
		}
	}
}

func (d *Deadzone) loadTuning(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	p := d.Params()
	if err := toml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse tuning file: %w", err)
	}
	return d.SetParams(p)
}

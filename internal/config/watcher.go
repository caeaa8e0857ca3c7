package config

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads path whenever it is written and delivers the new config on
// the returned channel. The directory is watched so editors that replace
// the file are still seen. The channel closes when ctx ends.
func Watch(ctx context.Context, path string, log *zap.Logger) (<-chan *Config, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	out := make(chan *Config, 1)
	go func() {
		defer close(out)
		defer fsw.Close()

		target := filepath.Clean(path)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				cfg, err := LoadFrom(path)
				if err != nil {
					log.Warn("config reload failed", zap.String("path", path), zap.Error(err))
					continue
				}
				select {
				case out <- cfg:
				case <-ctx.Done():
					return
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				log.Debug("config watcher error", zap.Error(err))
			}
		}
	}()
	return out, nil
}

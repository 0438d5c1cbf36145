package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDelay = 200 * time.Millisecond

// Watch reloads path into the server store whenever it changes, until
// ctx is cancelled. The parent directory is watched so editors that
// replace the file by rename are seen. A reload that fails to parse or
// validate keeps the previous content.
func (s *Server) Watch(ctx context.Context, path string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	s.logger.Info("Watching data file", zap.String("path", abs))

	var timer *time.Timer
	reload := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			s.Reload(abs)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("File watcher error", zap.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}

// Reload reads path into the store once, recording the outcome.
func (s *Server) Reload(path string) error {
	if err := s.store.LoadFile(path); err != nil {
		s.metrics.Reloads.WithLabelValues("error").Inc()
		s.logger.Error("Reload failed; keeping previous data", zap.String("path", path), zap.Error(err))
		return err
	}
	s.metrics.Reloads.WithLabelValues("ok").Inc()
	s.metrics.observe(s.store)
	terms, edges := s.store.Counts()
	s.logger.Info("Data reloaded", zap.Int("terms", terms), zap.Int("edges", edges))
	return nil
}

package dataset

import (
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for writes to settle before
// reloading.
const DefaultDebounce = 200 * time.Millisecond

// Watch reloads the dataset at path whenever it changes and passes every
// successfully decoded dataset to onChange. Decode failures are logged and
// skipped so a half-written file never replaces a good dataset.
//
// The parent directory is watched rather than the file itself so that
// editors which save by rename keep being tracked. Watch blocks until ctx is
// cancelled and returns nil in that case.
func Watch(ctx context.Context, path string, logger *log.Logger, onChange func(*Dataset)) error {
	if logger == nil {
		logger = log.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
				continue
			}
			logger.Debug("dataset changed", "path", path, "op", ev.Op.String())
			timer.Reset(DefaultDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "path", path, "err", err)
		case <-timer.C:
			ds, err := ReadFile(abs)
			if err != nil {
				logger.Warn("reload failed, keeping previous dataset", "path", path, "err", err)
				continue
			}
			onChange(ds)
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Write) || op.Has(fsnotify.Create) || op.Has(fsnotify.Rename)
}

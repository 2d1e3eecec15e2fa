package triage

import (
	"path/filepath"
	"sync"

	notify "github.com/fsnotify/fsnotify"

	log "github.com/ForensicRS/frnsc-triage/logger"
)

// OutputWatcher observes the directory holding a running collection's
// output archive and invokes onEvent whenever the archive file changes,
// so a caller can report progress during a long collection.
//
// Adapted from the teacher's util.FileWatch: that type watches an
// arbitrary file list and re-runs one job on any event, forever. This
// collapses it to the one archive path triage.Collect actually needs,
// and adds an explicit Stop instead of relying on OS signal delivery.
type OutputWatcher struct {
	watcher *notify.Watcher
	stop    chan struct{}
	wg      sync.WaitGroup
}

// WatchOutputDir starts watching outFile's parent directory. onEvent is
// called (from a background goroutine) once per filesystem event naming
// outFile; it must not block.
func WatchOutputDir(outFile string, onEvent func(notify.Event)) (*OutputWatcher, error) {
	log.Tracef(">>>>> WatchOutputDir, out_file=%v", outFile)
	defer log.Trace("<<<<< WatchOutputDir")

	watcher, err := notify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(outFile)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	ow := &OutputWatcher{watcher: watcher, stop: make(chan struct{})}
	ow.wg.Add(1)
	go ow.run(outFile, onEvent)
	return ow, nil
}

func (ow *OutputWatcher) run(outFile string, onEvent func(notify.Event)) {
	defer ow.wg.Done()
	for {
		select {
		case <-ow.stop:
			return
		case ev, ok := <-ow.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) == filepath.Clean(outFile) {
				onEvent(ev)
			}
		case err, ok := <-ow.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("triage: watcher error: %v", err)
		}
	}
}

// Stop halts the watcher goroutine and releases the underlying
// fsnotify watcher.
func (ow *OutputWatcher) Stop() {
	close(ow.stop)
	ow.watcher.Close()
	ow.wg.Wait()
}

package notebooks

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reports notebooks created under a root directory, including those
// in directories created after the watch started.
type Watcher struct {
	root    string
	exts    []string
	watcher *fsnotify.Watcher
	logger  *logrus.Entry

	added chan string
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// NewWatcher starts watching root and every non-hidden directory below it.
func NewWatcher(root string, exts []string, logger *logrus.Entry) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:    root,
		exts:    exts,
		watcher: fw,
		logger:  logger,
		added:   make(chan string, 32),
		done:    make(chan struct{}),
	}

	if err := w.addTree(root, false); err != nil {
		fw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Added delivers the item path of every new notebook. It is closed by Close.
func (w *Watcher) Added() <-chan string {
	return w.added
}

// Close stops the watcher and waits for its goroutine.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.added)
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				// Renamed away or already deleted.
				continue
			}
			if info.IsDir() {
				if err := w.addTree(event.Name, true); err != nil {
					w.logger.WithError(err).WithField("dir", event.Name).Warn("could not watch directory")
				}
				continue
			}
			w.report(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("notebook watcher error")
		}
	}
}

// addTree watches dir and its subdirectories. With report set, notebooks
// already present are reported, since they may have been written before the
// watch was in place.
func (w *Watcher) addTree(dir string, report bool) error {
	conf := &fastwalk.Config{Follow: false}
	return fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if path == dir {
			return w.watcher.Add(path)
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		if report {
			w.report(path)
		}
		return nil
	})
}

func (w *Watcher) report(path string) {
	if !IsNotebook(path, w.exts) {
		return
	}
	rel, err := Rel(w.root, path)
	if err != nil {
		return
	}
	select {
	case w.added <- rel:
	case <-w.done:
	}
}

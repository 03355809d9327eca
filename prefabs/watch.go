package prefabs

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// Change is one asset that was written on disk.
type Change struct {
	Asset Asset
	Name  string
	Path  string
}

// Watcher reports actor and script changes under the prefab directories.
// Writes are batched until the directory has been quiet for the debounce
// window, so an editor saving in several steps yields one Change per file.
// Within a batch the actor comes before scripts.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce time.Duration

	Changes chan Change
	Errors  chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(debounce time.Duration, dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	if debounce <= 0 {
		debounce = defaultDebounce
	}
	w := &Watcher{
		fs:       fs,
		debounce: debounce,
		Changes:  make(chan Change, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher and closes both channels. Safe to call twice.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]Change)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			asset, name := Classify(ev.Name)
			if asset == AssetNone {
				continue
			}
			pending[ev.Name] = Change{Asset: asset, Name: name, Path: ev.Name}
			timer.Reset(w.debounce)

		case <-timer.C:
			if !w.flush(pending) {
				return
			}
			clear(pending)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}

		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) flush(pending map[string]Change) bool {
	batch := make([]Change, 0, len(pending))
	for _, c := range pending {
		batch = append(batch, c)
	}
	slices.SortFunc(batch, func(a, b Change) int {
		if a.Asset != b.Asset {
			return cmp.Compare(a.Asset, b.Asset)
		}
		return cmp.Compare(a.Path, b.Path)
	})

	for _, c := range batch {
		select {
		case w.Changes <- c:
		case <-w.closeCh:
			return false
		}
	}
	return true
}

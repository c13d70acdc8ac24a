package watcher

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long a file must stay quiet after its last
// write before it is considered complete. Downloads and copies emit
// many write events; transcribing a half-written file wastes a run.
const defaultDebounce = 2 * time.Second

// audioExtensions lists the file types picked up from a watched
// directory.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
	".opus": true,
	".aac":  true,
}

// Handler processes one settled audio file. Errors are the handler's
// to report; the watcher keeps going either way.
type Handler func(ctx context.Context, audioPath string)

// Watcher transcribes audio files dropped into a directory. Files
// already present when watching starts are processed too, so a
// half-filled drop folder is not silently skipped.
type Watcher struct {
	dir      string
	handler  Handler
	debounce time.Duration
	watcher  *fsnotify.Watcher

	mu        sync.Mutex
	pending   map[string]*time.Timer
	processed map[string]bool

	wg sync.WaitGroup
}

func New(dir string, handler Handler) *Watcher {
	return &Watcher{
		dir:       dir,
		handler:   handler,
		debounce:  defaultDebounce,
		pending:   make(map[string]*time.Timer),
		processed: make(map[string]bool),
	}
}

// Start begins watching. It returns once the fsnotify watch is
// registered; processing happens on background goroutines until the
// context is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	if err := fsw.Add(w.dir); err != nil {
		fsw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = fsw

	if err := w.scanExisting(ctx); err != nil {
		fsw.Close()
		return err
	}

	w.wg.Add(1)
	go w.watchLoop(ctx)

	log.Printf("watcher: watching %s for audio files", w.dir)
	return nil
}

func (w *Watcher) Stop() {
	if w.watcher != nil {
		w.watcher.Close()
	}

	w.mu.Lock()
	for _, timer := range w.pending {
		timer.Stop()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// scanExisting queues audio files that were already in the directory.
func (w *Watcher) scanExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("scan watch directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, entry.Name())
		if !isAudioFile(path) {
			continue
		}
		w.schedule(ctx, path)
	}
	return nil
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watcher: error: %v", err)

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if !isAudioFile(event.Name) {
		return
	}
	w.schedule(ctx, event.Name)
}

// schedule arms (or re-arms) the debounce timer for a file. The file
// is handed off once it stops changing.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.processed[path] {
		return
	}
	if timer, exists := w.pending[path]; exists {
		timer.Stop()
	}

	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.process(ctx, path)
	})
}

func (w *Watcher) process(ctx context.Context, path string) {
	w.mu.Lock()
	delete(w.pending, path)
	if w.processed[path] {
		w.mu.Unlock()
		return
	}
	w.processed[path] = true
	w.mu.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}
	if ctx.Err() != nil {
		return
	}

	log.Printf("watcher: processing %s", path)
	w.handler(ctx, path)
}

func isAudioFile(path string) bool {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return false
	}
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

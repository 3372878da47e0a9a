// FILE: lixenwraith/looks/watch.go
package looks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultMaxWatchers bounds the number of subscriber channels.
const DefaultMaxWatchers = 100

// Watch notifications that are not property keys.
const (
	EventFileDeleted        = "file_deleted"
	EventPermissionsChanged = "permissions_changed"
	EventReloadTimeout      = "reload_timeout"
	EventReloadErrorPrefix  = "reload_error:"
)

// ErrNoFileLoaded is returned by Watch when no properties file was loaded.
var ErrNoFileLoaded = errors.New("no properties file loaded")

// WatchOptions configures file watching behavior.
type WatchOptions struct {
	// PollInterval for file stat checks (minimum MinPollInterval)
	PollInterval time.Duration

	// Debounce duration to coalesce rapid writes
	Debounce time.Duration

	// MaxWatchers limits concurrent subscriber channels
	MaxWatchers int

	// ReloadTimeout bounds a single reload
	ReloadTimeout time.Duration

	// VerifyPermissions refuses to reload after group/world permission changes
	VerifyPermissions bool
}

// DefaultWatchOptions returns the standard watch options.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		PollInterval:      DefaultPollInterval,
		Debounce:          DefaultDebounce,
		MaxWatchers:       DefaultMaxWatchers,
		ReloadTimeout:     DefaultReloadTimeout,
		VerifyPermissions: true,
	}
}

// watcher polls one properties file and fans changed keys out to subscribers.
type watcher struct {
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	opts             WatchOptions
	filePath         string
	lastModTime      time.Time
	lastSize         int64
	lastMode         os.FileMode
	watching         atomic.Bool
	reloadInProgress atomic.Bool
	subscribers      map[int64]chan string
	nextID           atomic.Int64
	debounceTimer    *time.Timer
}

// Watch subscribes to changes of the loaded properties file.
// The first subscription starts polling; later ones share the poller.
// The returned channel receives the keys whose current value changed on
// reload, or one of the Event* notifications, and is closed when ctx is
// done or StopWatching is called.
func (p *Properties) Watch(ctx context.Context, opts WatchOptions) (<-chan string, error) {
	if opts.PollInterval < MinPollInterval {
		opts.PollInterval = MinPollInterval
	}
	if opts.MaxWatchers <= 0 {
		opts.MaxWatchers = DefaultMaxWatchers
	}
	if opts.ReloadTimeout <= 0 {
		opts.ReloadTimeout = DefaultReloadTimeout
	}

	p.mu.Lock()
	filePath := p.filePath
	if filePath == "" {
		p.mu.Unlock()
		return nil, ErrNoFileLoaded
	}

	if p.watcher != nil && p.watcher.filePath != filePath {
		p.watcher.stop()
		p.watcher = nil
	}
	if p.watcher == nil {
		loopCtx, cancel := context.WithCancel(context.Background())
		w := &watcher{
			ctx:         loopCtx,
			cancel:      cancel,
			opts:        opts,
			filePath:    filePath,
			subscribers: make(map[int64]chan string),
		}
		if info, err := os.Stat(filePath); err == nil {
			w.lastModTime = info.ModTime()
			w.lastSize = info.Size()
			w.lastMode = info.Mode()
		}
		w.watching.Store(true)
		p.watcher = w
		go w.watchLoop(p)
	}
	w := p.watcher
	p.mu.Unlock()

	return w.subscribe(ctx), nil
}

// StopWatching stops polling and closes every subscriber channel.
func (p *Properties) StopWatching() {
	p.mu.Lock()
	w := p.watcher
	p.watcher = nil
	p.mu.Unlock()

	if w != nil {
		w.stop()
	}
}

// IsWatching reports whether the properties file is being polled.
func (p *Properties) IsWatching() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.watcher != nil && p.watcher.watching.Load()
}

// WatcherCount returns the number of open subscriber channels.
func (p *Properties) WatcherCount() int {
	p.mu.RLock()
	w := p.watcher
	p.mu.RUnlock()

	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.subscribers)
}

func (w *watcher) watchLoop(p *Properties) {
	defer w.watching.Store(false)

	ticker := time.NewTicker(w.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.checkAndReload(p)
		}
	}
}

// checkAndReload schedules a debounced reload when the file changed.
func (w *watcher) checkAndReload(p *Properties) {
	info, err := os.Stat(w.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			w.notify(EventFileDeleted)
		}
		return
	}

	if w.opts.VerifyPermissions && w.lastMode != 0 && info.Mode() != w.lastMode {
		if info.Mode()&0077 != w.lastMode&0077 {
			w.lastMode = info.Mode()
			w.notify(EventPermissionsChanged)
			return
		}
	}

	if info.ModTime().Equal(w.lastModTime) && info.Size() == w.lastSize {
		return
	}
	w.lastModTime = info.ModTime()
	w.lastSize = info.Size()
	w.lastMode = info.Mode()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.opts.Debounce, func() {
		w.performReload(p)
	})
	w.mu.Unlock()
}

// performReload reloads the file and notifies the keys whose value changed.
func (w *watcher) performReload(p *Properties) {
	if !w.reloadInProgress.CompareAndSwap(false, true) {
		return
	}
	defer w.reloadInProgress.Store(false)

	ctx, cancel := context.WithTimeout(w.ctx, w.opts.ReloadTimeout)
	defer cancel()

	before := p.snapshot()

	done := make(chan error, 1)
	go func() {
		done <- p.LoadFile(w.filePath)
	}()

	select {
	case err := <-done:
		if err != nil {
			w.notify(fmt.Sprintf("%s%v", EventReloadErrorPrefix, err))
			return
		}
		after := p.snapshot()
		for _, key := range sortedKeys(after) {
			if old, existed := before[key]; !existed || !reflect.DeepEqual(old, after[key]) {
				w.notify(key)
			}
		}
		for _, key := range sortedKeys(before) {
			if _, exists := after[key]; !exists {
				w.notify(key)
			}
		}

	case <-ctx.Done():
		w.notify(EventReloadTimeout)
	}
}

// subscribe adds a subscriber closed when ctx or the watcher ends.
func (w *watcher) subscribe(ctx context.Context) <-chan string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.subscribers) >= w.opts.MaxWatchers {
		ch := make(chan string)
		close(ch)
		return ch
	}

	ch := make(chan string, 16)
	id := w.nextID.Add(1)
	w.subscribers[id] = ch

	go func() {
		select {
		case <-ctx.Done():
		case <-w.ctx.Done():
		}
		w.mu.Lock()
		if _, ok := w.subscribers[id]; ok {
			delete(w.subscribers, id)
			close(ch)
		}
		w.mu.Unlock()
	}()

	return ch
}

// notify sends a notification to every subscriber without blocking.
func (w *watcher) notify(event string) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, ch := range w.subscribers {
		select {
		case ch <- event:
		default:
			// Full subscriber, drop
		}
	}
}

// stop terminates polling and waits briefly for the loop to exit.
func (w *watcher) stop() {
	w.cancel()

	w.mu.Lock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
		w.debounceTimer = nil
	}
	w.mu.Unlock()

	deadline := time.Now().Add(ShutdownTimeout)
	for w.watching.Load() && time.Now().Before(deadline) {
		time.Sleep(SpinWaitInterval)
	}
}

package vault

import (
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/marcus/refile/internal/target"
)

// Event reports that a markdown document changed on disk.
type Event struct {
	Path string // absolute path of the changed file
}

const debounceDelay = 100 * time.Millisecond

// Watch emits debounced change events for markdown files in the given
// directories. The returned stop function shuts the watcher down and closes
// the channel.
func Watch(dirs ...string) (<-chan Event, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, nil, err
		}
	}

	events := make(chan Event, 32)
	done := make(chan struct{})

	go func() {
		defer close(events)

		// Debounce state lives on this goroutine only; timer expiry is a
		// select case, never a callback, so every send on events happens
		// here and cannot race the close.
		var timer *time.Timer
		var timerC <-chan time.Time
		var pending string

		for {
			select {
			case <-done:
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !target.IsMarkdown(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}

				pending = event.Name

				// Editors fire bursts of events per save; coalesce them.
				if timer == nil {
					timer = time.NewTimer(debounceDelay)
				} else {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
					timer.Reset(debounceDelay)
				}
				timerC = timer.C

			case <-timerC:
				timerC = nil
				select {
				case events <- Event{Path: pending}:
				default:
					// Channel full, drop event
				}

			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Keep watching; a transient error isn't fatal.
			}
		}
	}()

	stop := func() {
		close(done)
		watcher.Close()
	}
	return events, stop, nil
}

package vault

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatch_CoalescesWriteBurst(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("# Notes\n"), 0644); err != nil {
		t.Fatal(err)
	}

	events, stop, err := Watch(dir)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	// Several saves in quick succession should collapse into one event.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("# Notes\nedited\n"), 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case ev, ok := <-events:
		if !ok {
			t.Fatal("events closed before delivering")
		}
		if ev.Path != path {
			t.Errorf("event path = %q, want %q", ev.Path, path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event after write burst")
	}
}

func TestWatch_IgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()

	events, stop, err := Watch(dir)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	if err := os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case ev := <-events:
		t.Errorf("unexpected event for %q", ev.Path)
	case <-time.After(3 * debounceDelay):
	}
}

func TestWatch_StopDuringBurstClosesCleanly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")

	events, stop, err := Watch(dir)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// Stop while saves are still landing; the channel must close without
	// stranding a pending debounce send.
	for i := 0; i < 10; i++ {
		if err := os.WriteFile(path, []byte("edit\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("events channel never closed after stop")
		}
	}
}

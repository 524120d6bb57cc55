package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	// Use InitWithDir to avoid reading real user state
	err := InitWithDir(filepath.Join(tmpDir, ".config", "refile"))
	if err != nil {
		t.Fatalf("InitWithDir() failed: %v", err)
	}

	if current == nil {
		t.Error("current state should be initialized")
	}
	if !current.ShowBar {
		t.Error("default ShowBar should be true")
	}
	if !current.CopyMode {
		t.Error("default CopyMode should be true")
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestLoad_NonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	path = filepath.Join(tmpDir, "nonexistent", "state.json")

	err := Load()
	if err != nil {
		t.Fatalf("Load() for non-existent file should return nil, got %v", err)
	}

	if current == nil {
		t.Error("current should be initialized with defaults")
	}
	if !current.CopyMode {
		t.Error("default CopyMode should be true")
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestLoad_ExistingFile(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	stateFile := filepath.Join(tmpDir, "state.json")
	path = stateFile

	testState := State{
		ShowBar:       false,
		CopyMode:      false,
		BarX:          12,
		BarY:          3,
		LockedTarget:  "projects/work.md",
		TargetHeading: "Backlog",
	}
	data, _ := json.Marshal(testState)
	if err := os.WriteFile(stateFile, data, 0644); err != nil {
		t.Fatalf("failed to write test state file: %v", err)
	}

	err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if current.ShowBar {
		t.Error("ShowBar should be false")
	}
	if current.BarX != 12 || current.BarY != 3 {
		t.Errorf("bar pos = (%d, %d), want (12, 3)", current.BarX, current.BarY)
	}
	if current.LockedTarget != "projects/work.md" {
		t.Errorf("LockedTarget = %q, want projects/work.md", current.LockedTarget)
	}
	if current.TargetHeading != "Backlog" {
		t.Errorf("TargetHeading = %q, want Backlog", current.TargetHeading)
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestLoad_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	stateFile := filepath.Join(tmpDir, "state.json")
	path = stateFile

	if err := os.WriteFile(stateFile, []byte("invalid json"), 0644); err != nil {
		t.Fatalf("failed to write invalid JSON: %v", err)
	}

	err := Load()
	if err == nil {
		t.Error("Load() should return error for invalid JSON")
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestSave_CreateDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	stateFile := filepath.Join(tmpDir, "deep", "nested", "config", "refile", "state.json")
	path = stateFile

	current = &State{ShowBar: true}

	err := Save()
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if _, err := os.Stat(stateFile); err != nil {
		t.Fatalf("state file not created: %v", err)
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestSave_NilCurrent(t *testing.T) {
	originalPath := path
	originalCurrent := current

	current = nil
	path = "/tmp/nonexistent/state.json"

	// Should not error when current is nil
	err := Save()
	if err != nil {
		t.Fatalf("Save() with nil current should not error, got %v", err)
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestGetCopyMode_Default(t *testing.T) {
	originalCurrent := current
	defer func() { current = originalCurrent }()

	current = nil
	if !GetCopyMode() {
		t.Error("GetCopyMode() with nil current should default to true")
	}
}

func TestSetCopyMode(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current
	defer func() {
		path = originalPath
		current = originalCurrent
	}()

	stateFile := filepath.Join(tmpDir, "state.json")
	path = stateFile
	current = &State{CopyMode: true}

	err := SetCopyMode(false)
	if err != nil {
		t.Fatalf("SetCopyMode() failed: %v", err)
	}

	if current.CopyMode {
		t.Error("current.CopyMode should be false")
	}

	// Verify saved to disk
	data, _ := os.ReadFile(stateFile)
	var loaded State
	_ = json.Unmarshal(data, &loaded)
	if loaded.CopyMode {
		t.Error("saved CopyMode should be false")
	}
}

func TestSetBarPos(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current
	defer func() {
		path = originalPath
		current = originalCurrent
	}()

	stateFile := filepath.Join(tmpDir, "state.json")
	path = stateFile
	current = &State{}

	if err := SetBarPos(20, 5); err != nil {
		t.Fatalf("SetBarPos() failed: %v", err)
	}

	x, y := GetBarPos()
	if x != 20 || y != 5 {
		t.Errorf("GetBarPos() = (%d, %d), want (20, 5)", x, y)
	}

	// Verify saved to disk
	data, _ := os.ReadFile(stateFile)
	var loaded State
	_ = json.Unmarshal(data, &loaded)
	if loaded.BarX != 20 || loaded.BarY != 5 {
		t.Errorf("persisted bar pos = (%d, %d), want (20, 5)", loaded.BarX, loaded.BarY)
	}
}

func TestSetLockedTarget_InitializesNilState(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current
	defer func() {
		path = originalPath
		current = originalCurrent
	}()

	path = filepath.Join(tmpDir, "state.json")
	current = nil

	err := SetLockedTarget("daily/today.md")
	if err != nil {
		t.Fatalf("SetLockedTarget() failed: %v", err)
	}

	if current == nil {
		t.Fatal("SetLockedTarget() should initialize current state")
	}
	if current.LockedTarget != "daily/today.md" {
		t.Errorf("LockedTarget = %q, want daily/today.md", current.LockedTarget)
	}
}

func TestSetLockedTarget_EmptyUnlocks(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current
	defer func() {
		path = originalPath
		current = originalCurrent
	}()

	path = filepath.Join(tmpDir, "state.json")
	current = &State{LockedTarget: "daily/today.md"}

	if err := SetLockedTarget(""); err != nil {
		t.Fatalf("SetLockedTarget() failed: %v", err)
	}
	if got := GetLockedTarget(); got != "" {
		t.Errorf("GetLockedTarget() = %q, want empty after unlock", got)
	}
}

func TestSetTargetHeading(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current
	defer func() {
		path = originalPath
		current = originalCurrent
	}()

	stateFile := filepath.Join(tmpDir, "state.json")
	path = stateFile
	current = &State{}

	if err := SetTargetHeading("Reading List"); err != nil {
		t.Fatalf("SetTargetHeading() failed: %v", err)
	}
	if got := GetTargetHeading(); got != "Reading List" {
		t.Errorf("GetTargetHeading() = %q, want Reading List", got)
	}

	// Verify saved to disk
	data, _ := os.ReadFile(stateFile)
	var loaded State
	_ = json.Unmarshal(data, &loaded)
	if loaded.TargetHeading != "Reading List" {
		t.Errorf("persisted TargetHeading = %q, want Reading List", loaded.TargetHeading)
	}
}

func TestConcurrentAccess(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	stateFile := filepath.Join(tmpDir, "state.json")
	path = stateFile

	current = &State{CopyMode: true}

	// Run concurrent reads and writes
	var wg sync.WaitGroup
	errors := make(chan error, 10)

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := SetCopyMode(n%2 == 0); err != nil {
				errors <- err
			}
		}(i)

		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = GetCopyMode()
		}()
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		if err != nil {
			t.Errorf("concurrent access error: %v", err)
		}
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

func TestRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	originalPath := path
	originalCurrent := current

	stateFile := filepath.Join(tmpDir, "state.json")
	path = stateFile

	// Set and save
	current = &State{
		ShowBar:       true,
		BarX:          7,
		BarY:          2,
		CopyMode:      false,
		LockedTarget:  "inbox.md",
		TargetHeading: "Inbox",
	}
	if err := Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// Load into fresh state
	current = nil
	if err := Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if current.BarX != 7 || current.BarY != 2 {
		t.Errorf("round-trip bar pos = (%d, %d), want (7, 2)", current.BarX, current.BarY)
	}
	if current.CopyMode {
		t.Error("round-trip CopyMode should be false")
	}
	if current.LockedTarget != "inbox.md" {
		t.Errorf("round-trip LockedTarget = %q, want inbox.md", current.LockedTarget)
	}

	// Cleanup
	path = originalPath
	current = originalCurrent
}

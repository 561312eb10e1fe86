package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"memobook/internal/config"
)

func TestInitializeDisabled(t *testing.T) {
	t.Cleanup(CloseAll)

	dir := t.TempDir()
	err := Initialize(dir, config.LoggingConfig{DebugMode: false})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// No logs directory should appear, and logging must be a no-op.
	Boot("should go nowhere")
	if _, err := os.Stat(filepath.Join(dir, "logs")); !os.IsNotExist(err) {
		t.Error("logs directory created despite debug mode off")
	}
}

func TestInitializeWritesCategoryFile(t *testing.T) {
	t.Cleanup(CloseAll)

	dir := t.TempDir()
	err := Initialize(dir, config.LoggingConfig{DebugMode: true, Level: "debug"})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	Store("snapshot saved with %d contacts", 3)
	CloseAll()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("reading logs dir: %v", err)
	}

	var found bool
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_store.log") {
			found = true
			data, err := os.ReadFile(filepath.Join(dir, "logs", e.Name()))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), "snapshot saved with 3 contacts") {
				t.Errorf("store log missing message: %s", data)
			}
		}
	}
	if !found {
		t.Error("no store category log file written")
	}
}

func TestCategoryToggle(t *testing.T) {
	t.Cleanup(CloseAll)

	dir := t.TempDir()
	err := Initialize(dir, config.LoggingConfig{
		DebugMode:  true,
		Categories: map[string]bool{"goodies": false},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if IsCategoryEnabled(CategoryGoodies) {
		t.Error("goodies category should be disabled")
	}
	if !IsCategoryEnabled(CategoryBook) {
		t.Error("book category should default to enabled")
	}

	// A disabled category logs nothing and creates no file.
	Goodies("nope")
	CloseAll()
	entries, _ := os.ReadDir(filepath.Join(dir, "logs"))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_goodies.log") {
			t.Error("disabled category produced a log file")
		}
	}
}

package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathFallsBackToWorkingDir(t *testing.T) {
	tmpDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("get wd failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}

	got, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolve default log path failed: %v", err)
	}
	if filepath.Base(got) != defaultLogFilename {
		t.Fatalf("unexpected log filename: %s", filepath.Base(got))
	}
	if filepath.Base(filepath.Dir(got)) != defaultLogDirName {
		t.Fatalf("unexpected log dir: %s", filepath.Dir(got))
	}
	if _, err := os.Stat(filepath.Dir(got)); err != nil {
		t.Fatalf("expected log dir to be created: %v", err)
	}
}

func TestReleaseModeWritesJSONToFile(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("release", Options{
		Dir:      tmpDir,
		Filename: "storefront.log",
	})
	log.Info("order_created")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "storefront.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	if !strings.Contains(string(content), "order_created") {
		t.Fatalf("log file missing event, got=%s", string(content))
	}
}

func TestDebugModeSkipsFileOutput(t *testing.T) {
	tmpDir := t.TempDir()
	log := New("debug", Options{
		Dir:      tmpDir,
		Filename: "storefront.log",
	})
	log.Info("cart_resolved")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tmpDir, "storefront.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create a log file")
	}
}

func TestAccessorsFallBackWithoutInit(t *testing.T) {
	if Z() == nil {
		t.Fatal("Z returned nil before Init")
	}
	if S() == nil {
		t.Fatal("S returned nil before Init")
	}
}

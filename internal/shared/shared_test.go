package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("writes to the given writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewLogger(buf)

		logger.Error("logger test message")

		if !bytes.Contains(buf.Bytes(), []byte("logger test message")) {
			t.Errorf("expected message in output, got %q", buf.String())
		}
	})

	t.Run("nil writer defaults", func(t *testing.T) {
		if NewLogger(nil) == nil {
			t.Error("expected a logger for nil writer")
		}
	})

	t.Run("WithLogger attaches key-value pairs", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := WithLogger(NewLogger(buf), "component", "catalog")

		logger.Error("tagged message")

		if !bytes.Contains(buf.Bytes(), []byte("component")) {
			t.Errorf("expected attached key in output, got %q", buf.String())
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "logs", "cinetrack.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}

	logger.Error("file logger test message")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file should exist: %v", err)
	}
	if !bytes.Contains(content, []byte("file logger test message")) {
		t.Errorf("expected message in log file, got %q", content)
	}
}

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()

	if first == "" {
		t.Fatal("expected a non-empty ID")
	}
	if len(first) != 36 {
		t.Errorf("expected a 36-character UUID, got %d characters", len(first))
	}
	if first == second {
		t.Error("expected consecutive IDs to differ")
	}
}

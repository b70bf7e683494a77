package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "cinetrack.db" {
			t.Errorf("expected database path cinetrack.db, got %s", config.Database.Path)
		}

		if config.API.BaseURL != "https://api.themoviedb.org/3" {
			t.Errorf("expected API base URL https://api.themoviedb.org/3, got %s", config.API.BaseURL)
		}

		if config.API.ImageBaseURL != "http://image.tmdb.org/t/p" {
			t.Errorf("expected image base URL http://image.tmdb.org/t/p, got %s", config.API.ImageBaseURL)
		}

		if config.API.Language != "ko-KR" {
			t.Errorf("expected language ko-KR, got %s", config.API.Language)
		}

		if config.API.Key != "" {
			t.Errorf("expected empty default API key, got %s", config.API.Key)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
key = "test_api_key"
read_access_token = "test_v4_token"
base_url = "http://localhost:9090/3"
image_base_url = "http://localhost:9090/t/p"
language = "en-US"

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.Key != "test_api_key" {
			t.Errorf("expected API key test_api_key, got %s", config.API.Key)
		}

		if config.API.ReadAccessToken != "test_v4_token" {
			t.Errorf("expected read access token test_v4_token, got %s", config.API.ReadAccessToken)
		}

		if config.API.Language != "en-US" {
			t.Errorf("expected language en-US, got %s", config.API.Language)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Database.MaxOpenConns != 20 {
			t.Errorf("expected max open conns 20, got %d", config.Database.MaxOpenConns)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("loading a missing config file should fail")
		}
	})

	t.Run("LoadConfig malformed file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := os.WriteFile(configPath, []byte("[api\nkey ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("loading a malformed config file should fail")
		}
	})
}

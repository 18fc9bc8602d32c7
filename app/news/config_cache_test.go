package news

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSourceFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://example.com/feed.xml"
type: "rss"

settings:
  enabled: true
  max_items: 25
  timeout: 15
  extract_body: true
`
	writeSourceFile(t, tempDir, "business-wire", content)

	cache := NewConfigCache(tempDir)
	if err := cache.Run(); err != nil {
		t.Fatal(err)
	}

	config, err := cache.GetConfig("business-wire")
	if err != nil {
		t.Fatal(err)
	}

	if config.Name != "business-wire" {
		t.Errorf("Expected name from filename, got %q", config.Name)
	}
	if config.URL != "https://example.com/feed.xml" {
		t.Errorf("Unexpected URL: %q", config.URL)
	}
	if config.Type != SourceTypeRSS {
		t.Errorf("Expected rss type, got %q", config.Type)
	}
	if !config.Settings.Enabled {
		t.Error("Expected source to be enabled")
	}
	if config.Settings.MaxItems != 25 {
		t.Errorf("Expected max items 25, got %d", config.Settings.MaxItems)
	}
	if config.Settings.Timeout != 15 {
		t.Errorf("Expected timeout 15, got %d", config.Settings.Timeout)
	}
	if !config.Settings.ExtractBody {
		t.Error("Expected extract_body to be set")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	tempDir := t.TempDir()

	content := `
url: "https://example.com/feed.xml"

settings:
  enabled: true
`
	writeSourceFile(t, tempDir, "minimal", content)

	cache := NewConfigCache(tempDir)
	if err := cache.Run(); err != nil {
		t.Fatal(err)
	}

	config, err := cache.GetConfig("minimal")
	if err != nil {
		t.Fatal(err)
	}

	if config.Type != SourceTypeRSS {
		t.Errorf("Expected default type rss, got %q", config.Type)
	}
	if config.Settings.MaxItems != 50 {
		t.Errorf("Expected default max items 50, got %d", config.Settings.MaxItems)
	}
	if config.Settings.Timeout != 10 {
		t.Errorf("Expected default timeout 10, got %d", config.Settings.Timeout)
	}
}

func TestLoadConfigMissingURL(t *testing.T) {
	tempDir := t.TempDir()

	writeSourceFile(t, tempDir, "broken", "settings:\n  enabled: true\n")

	cache := NewConfigCache(tempDir)
	if err := cache.Run(); err == nil {
		t.Error("Expected error for config without URL")
	}
}

func TestLoadConfigInvalidType(t *testing.T) {
	tempDir := t.TempDir()

	writeSourceFile(t, tempDir, "broken", "url: \"https://example.com\"\ntype: \"soap\"\n")

	cache := NewConfigCache(tempDir)
	if err := cache.Run(); err == nil {
		t.Error("Expected error for unknown source type")
	}
}

func TestGetEnabledConfigs(t *testing.T) {
	tempDir := t.TempDir()

	writeSourceFile(t, tempDir, "on", "url: \"https://example.com/a\"\nsettings:\n  enabled: true\n")
	writeSourceFile(t, tempDir, "off", "url: \"https://example.com/b\"\nsettings:\n  enabled: false\n")

	cache := NewConfigCache(tempDir)
	if err := cache.Run(); err != nil {
		t.Fatal(err)
	}

	if count := cache.GetConfigCount(); count != 2 {
		t.Errorf("Expected 2 loaded configs, got %d", count)
	}

	enabled := cache.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Fatalf("Expected 1 enabled config, got %d", len(enabled))
	}
	if _, ok := enabled["on"]; !ok {
		t.Error("Expected 'on' source to be enabled")
	}
}

func TestRunMissingDirectory(t *testing.T) {
	cache := NewConfigCache("/nonexistent/sources")

	if err := cache.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got %v", err)
	}
	if count := cache.GetConfigCount(); count != 0 {
		t.Errorf("Expected no configs, got %d", count)
	}
}

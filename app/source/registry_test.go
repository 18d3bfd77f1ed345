package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hwg121/eProject-sub001/app/content"
)

func writeConfig(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRegistryLoadsDefaults(t *testing.T) {
	registry := NewRegistry(filepath.Join(t.TempDir(), "missing"), "https://api.example.com/v1/")
	if err := registry.Run(); err != nil {
		t.Fatal(err)
	}

	if registry.GetConfigCount() != len(content.Types) {
		t.Errorf("Expected %d configs, got %d", len(content.Types), registry.GetConfigCount())
	}

	config, err := registry.GetConfig(content.TypeArticle)
	if err != nil {
		t.Fatal(err)
	}
	if config.Endpoint != "https://api.example.com/v1/articles" {
		t.Errorf("Expected default endpoint, got '%s'", config.Endpoint)
	}
	if config.Format != FormatJSON {
		t.Errorf("Expected json format, got '%s'", config.Format)
	}
	if !config.Settings.Enabled || config.Settings.RefreshInterval != DefaultRefreshInterval || config.Settings.Timeout != DefaultTimeout {
		t.Errorf("Unexpected default settings: %+v", config.Settings)
	}

	decls := registry.Declarations()
	for _, ct := range content.Types {
		if decls[ct] != content.DefaultDeclaration(ct) {
			t.Errorf("Expected default declaration for %s, got %+v", ct, decls[ct])
		}
	}
}

func TestRegistryLoadsOverrides(t *testing.T) {
	tempDir := t.TempDir()

	writeConfig(t, tempDir, "tools.yml", `
endpoint: "/catalog/tools"
fallback_policy: "strict"
slug_field: "handle"

settings:
  enabled: false
  refresh_interval: 120
`)
	writeConfig(t, tempDir, "video.yml", `
endpoint: "https://videos.example.com/feed.xml"
format: "FEED"
settings:
  enabled: true
  timeout: 5
`)

	registry := NewRegistry(tempDir, "https://api.example.com")
	if err := registry.Run(); err != nil {
		t.Fatal(err)
	}

	tool, err := registry.GetConfig(content.TypeTool)
	if err != nil {
		t.Fatal(err)
	}
	if tool.Endpoint != "https://api.example.com/catalog/tools" {
		t.Errorf("Expected relative endpoint joined to base URL, got '%s'", tool.Endpoint)
	}
	if tool.FallbackPolicy != "strict" || tool.SlugField != "handle" || tool.TitleField != "name" {
		t.Errorf("Unexpected tool config: %+v", tool)
	}
	if tool.Settings.Enabled || tool.Settings.RefreshInterval != 120 || tool.Settings.Timeout != DefaultTimeout {
		t.Errorf("Unexpected tool settings: %+v", tool.Settings)
	}

	video, err := registry.GetConfig(content.TypeVideo)
	if err != nil {
		t.Fatal(err)
	}
	if video.Format != FormatFeed || video.Endpoint != "https://videos.example.com/feed.xml" {
		t.Errorf("Unexpected video config: %+v", video)
	}
	if video.TimeoutDuration().Seconds() != 5 {
		t.Errorf("Expected 5s timeout, got %v", video.TimeoutDuration())
	}

	enabled := registry.GetEnabledConfigs()
	if _, ok := enabled[content.TypeTool]; ok {
		t.Error("Expected disabled tool config to be excluded")
	}
	if len(enabled) != len(content.Types)-1 {
		t.Errorf("Expected %d enabled configs, got %d", len(content.Types)-1, len(enabled))
	}

	decl := registry.Declarations()[content.TypeTool]
	if decl.Policy != content.PolicyStrict || decl.SlugField != "handle" {
		t.Errorf("Unexpected tool declaration: %+v", decl)
	}
}

func TestRegistryValidation(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		body     string
		expected string
	}{
		{"unknown type", "plants.yml", "endpoint: /plants\n", "unknown content type"},
		{"bad policy", "article.yml", "fallback_policy: sometimes\n", "invalid fallback policy"},
		{"bad format", "article.yml", "format: csv\n", "invalid format"},
		{"negative interval", "pot.yml", "settings:\n  refresh_interval: -5\n", "refresh interval must be non-negative"},
		{"empty slug field", "tag.yml", "slug_field: \"\"\n", "slug field is required"},
		{"bad yaml", "tag.yml", "settings: [\n", "failed to parse YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			writeConfig(t, tempDir, tt.file, tt.body)

			err := NewRegistry(tempDir, "https://api.example.com").Run()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("Expected error containing '%s', got '%s'", tt.expected, err.Error())
			}
		})
	}
}

func TestRegistryRequiresAbsoluteEndpoint(t *testing.T) {
	err := NewRegistry("", "").Run()
	if err == nil || !strings.Contains(err.Error(), "endpoint") {
		t.Errorf("Expected endpoint error without a base URL, got %v", err)
	}
}

func TestRegistryLoadConfigReloads(t *testing.T) {
	tempDir := t.TempDir()
	registry := NewRegistry(tempDir, "https://api.example.com")
	if err := registry.Run(); err != nil {
		t.Fatal(err)
	}

	writeConfig(t, tempDir, "pots.yml", "fallback_policy: strict\n")

	config, err := registry.LoadConfig(content.TypePot)
	if err != nil {
		t.Fatal(err)
	}
	if config.FallbackPolicy != "strict" {
		t.Errorf("Expected reloaded policy 'strict', got '%s'", config.FallbackPolicy)
	}

	cached, _ := registry.GetConfig(content.TypePot)
	if cached != config {
		t.Error("Expected reloaded config to replace the cached one")
	}
}

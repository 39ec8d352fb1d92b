package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "instance.yaml")

	yamlContent := `---
title: My links
timezone: UTC
enabled_plugins:
  - qrcode
  - markdown
default_private_links: false
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	inst, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if inst.Title != "My links" {
		t.Errorf("Title = %q, want %q", inst.Title, "My links")
	}
	if inst.Timezone != "UTC" {
		t.Errorf("Timezone = %q, want UTC", inst.Timezone)
	}
	if len(inst.EnabledPlugins) != 2 {
		t.Errorf("EnabledPlugins = %v", inst.EnabledPlugins)
	}
	if inst.DefaultPrivateLinks {
		t.Error("DefaultPrivateLinks should be false")
	}
}

func TestLoaderLoadPartialKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "instance.yaml")
	t.Setenv("TEST_INSTANCE_TITLE", "From env")

	if err := os.WriteFile(yamlPath, []byte("title: ${TEST_INSTANCE_TITLE}\n"), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	inst, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if inst.Title != "From env" {
		t.Errorf("Title = %q, want %q", inst.Title, "From env")
	}
	if inst.Timezone != DefaultTimezone || !inst.DefaultPrivateLinks || inst.EnabledPlugins == nil {
		t.Errorf("defaults lost: %+v", inst)
	}
}

func TestLoaderLoadWithoutFile(t *testing.T) {
	inst, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if inst.Title != Defaults().Title {
		t.Errorf("Title = %q", inst.Title)
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	_, err := NewLoader("/nonexistent/path/instance.yaml").Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "instance.yaml")
	if err := os.WriteFile(yamlPath, []byte("enabled_plugins: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	if _, err := NewLoader(yamlPath).Load(); err == nil {
		t.Error("Load() with invalid yaml should return error")
	}
}

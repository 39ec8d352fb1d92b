package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestLooseBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		set      bool
		def      bool
		expected bool
	}{
		{name: "unset uses default", set: false, def: true, expected: true},
		{name: "false", value: "false", set: true, def: true, expected: false},
		{name: "off", value: "OFF", set: true, def: true, expected: false},
		{name: "zero", value: "0", set: true, def: true, expected: false},
		{name: "anything else is true", value: "nope", set: true, def: false, expected: true},
		{name: "empty string is true", value: "", set: true, def: false, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_LOOSE_BOOL"
			if tt.set {
				t.Setenv(key, tt.value)
			} else {
				t.Setenv(key, "")
				if err := os.Unsetenv(key); err != nil {
					t.Fatalf("failed to unset env var: %v", err)
				}
			}

			if result := looseBool(key, tt.def); result != tt.expected {
				t.Errorf("looseBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", key: "TEST_BOOL", value: "true", def: false, expected: true},
		{name: "false value", key: "TEST_BOOL_FALSE", value: "false", def: true, expected: false},
		{name: "invalid value uses default", key: "TEST_BOOL_INVALID", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", key: "TEST_BOOL_MISSING", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	result := splitAndTrim(` "10.0.0.0/8", 192.168.1.1 ,, `)
	if len(result) != 2 || result[0] != "10.0.0.0/8" || result[1] != "192.168.1.1" {
		t.Errorf("splitAndTrim() = %v", result)
	}
	if splitAndTrim("") != nil {
		t.Error("splitAndTrim(\"\") should be nil")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LINKBRIDGE_LINKDING_URI", "")
	t.Setenv("LINKBRIDGE_REDIS_ADDR", "")
	t.Setenv("LINKBRIDGE_LOG_LEVEL", "error")

	cfg := Load()

	if cfg.UseLinkding() {
		t.Error("stub dispatcher expected without LINKBRIDGE_LINKDING_URI")
	}
	if cfg.UseRedis() {
		t.Error("tag cache expected disabled without LINKBRIDGE_REDIS_ADDR")
	}
	if cfg.ListenPort != ":8000" {
		t.Errorf("ListenPort = %q", cfg.ListenPort)
	}
	if cfg.LinkdingTimeout != 5*time.Second {
		t.Errorf("LinkdingTimeout = %v", cfg.LinkdingTimeout)
	}
	if cfg.LinkdingMaxPages != 100 || cfg.LinkdingPageSize != 1000 {
		t.Errorf("pagination = %d/%d", cfg.LinkdingPageSize, cfg.LinkdingMaxPages)
	}
}

func TestLoadLinkdingRequiresToken(t *testing.T) {
	t.Setenv("LINKBRIDGE_LOG_LEVEL", "error")
	t.Setenv("LINKBRIDGE_LINKDING_URI", "https://linkding.domain.ext/")
	t.Setenv("LINKBRIDGE_LINKDING_TOKEN", "")

	defer func() {
		if r := recover(); r == nil {
			t.Error("Load() should panic without LINKBRIDGE_LINKDING_TOKEN")
		}
	}()

	Load()
}

func TestLoadLinkding(t *testing.T) {
	t.Setenv("LINKBRIDGE_LOG_LEVEL", "error")
	t.Setenv("LINKBRIDGE_LINKDING_URI", "https://linkding.domain.ext/")
	t.Setenv("LINKBRIDGE_LINKDING_TOKEN", "secret")

	cfg := Load()

	if !cfg.UseLinkding() || cfg.LinkdingToken != "secret" {
		t.Errorf("linkding config = %q/%q", cfg.LinkdingURI, cfg.LinkdingToken)
	}
	if red := cfg.Redacted(); red.LinkdingToken == "secret" {
		t.Error("Redacted() leaked the token")
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linkbridge.env")
	if err := os.WriteFile(path, []byte("TEST_LINKBRIDGE_FROM_FILE=hello\n"), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("TEST_LINKBRIDGE_FROM_FILE", "")
	if err := os.Unsetenv("TEST_LINKBRIDGE_FROM_FILE"); err != nil {
		t.Fatalf("failed to unset env var: %v", err)
	}

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("TEST_LINKBRIDGE_FROM_FILE"); got != "hello" {
		t.Errorf("TEST_LINKBRIDGE_FROM_FILE = %q, want hello", got)
	}

	if err := LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("LoadEnvFile() should fail for an explicit missing file")
	}
}

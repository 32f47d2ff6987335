package config

import (
	"os"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:    HTTPConfig{Port: 8080},
		Backend: BackendConfig{BaseURL: "http://localhost:5000"},
	}
}

func TestValidate_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_BackendBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Backend.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing backend.base_url")
	}

	cfg.Backend.BaseURL = "localhost:5000"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for base_url without scheme")
	}

	cfg.Backend.BaseURL = "https://search.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http timeout defaults: %+v", cfg.HTTP)
	}
	if cfg.Backend.TimeoutSec != 15 {
		t.Errorf("backend.timeout_sec default = %d, want 15", cfg.Backend.TimeoutSec)
	}
	if cfg.Backend.AutocompleteSize != 10 {
		t.Errorf("backend.autocomplete_size default = %d, want 10", cfg.Backend.AutocompleteSize)
	}
	if cfg.Cache.TTLSec != 60 {
		t.Errorf("cache.ttl_sec default = %d, want 60", cfg.Cache.TTLSec)
	}
	if cfg.Geolocate.TimeoutSec != 5 {
		t.Errorf("geolocate.timeout_sec default = %d, want 5", cfg.Geolocate.TimeoutSec)
	}
}

func TestCacheConfig_Enabled(t *testing.T) {
	if (CacheConfig{}).Enabled() {
		t.Error("empty cache config should be disabled")
	}
	if !(CacheConfig{Addrs: []string{"localhost:6379"}}).Enabled() {
		t.Error("cache config with addrs should be enabled")
	}
}

func TestExpandEnvVars(t *testing.T) {
	os.Setenv("GEORETRIEVE_TEST_URL", "http://backend:5000")
	defer os.Unsetenv("GEORETRIEVE_TEST_URL")

	in := []byte("base_url: ${GEORETRIEVE_TEST_URL}\nlevel: ${GEORETRIEVE_TEST_MISSING:-info}\n")
	out := string(expandEnvVars(in))

	want := "base_url: http://backend:5000\nlevel: info\n"
	if out != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", out, want)
	}
}

package config

import "testing"

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(source{env: envFrom(nil)})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr() != ":8080" || cfg.StoreEngine != "memory" || cfg.AuthMode != "dev" || cfg.PhotoStore != "local" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.MaxUploadBytes() != 10<<20 {
		t.Fatalf("expected 10MB, got %d", cfg.MaxUploadBytes())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	file, err := parseFile([]byte("PORT: 9000\nstore_engine: sqlite\nENABLE_TRACING: true\n"))
	if err != nil {
		t.Fatalf("parseFile: %v", err)
	}

	cfg, err := load(source{env: envFrom(map[string]string{"PORT": "7000"}), file: file})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7000" {
		t.Fatalf("env should win, got port %q", cfg.Port)
	}
	if cfg.StoreEngine != "sqlite" || !cfg.EnableTracing {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []map[string]string{
		{"STORE_ENGINE": "postgres"},
		{"STORE_ENGINE": "mongo"},
		{"AUTH_MODE": "jwt"},
		{"AUTH_MODE": "remote"},
		{"PHOTO_STORE": "s3"},
		{"MAX_UPLOAD_MB": "abc"},
		{"ENABLE_TRACING": "maybe"},
	}
	for _, env := range cases {
		if _, err := load(source{env: envFrom(env)}); err == nil {
			t.Fatalf("expected error for %v", env)
		}
	}
}

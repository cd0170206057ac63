package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	want := filepath.Join("/xdg", "bibpage", "config.yml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		cfg, err := LoadFile(filepath.Join(tmpDir, "nope.yml"))
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if *cfg != (Config{}) {
			t.Errorf("LoadFile() = %+v, want empty config", cfg)
		}
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "config.yml")
		data := "publications_src: /data/pubs.bib\ndb_path: /data/site.db\n"
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile() error = %v", err)
		}
		if cfg.PublicationsSrc != "/data/pubs.bib" {
			t.Errorf("PublicationsSrc = %q, want %q", cfg.PublicationsSrc, "/data/pubs.bib")
		}
		if cfg.DBPath != "/data/site.db" {
			t.Errorf("DBPath = %q, want %q", cfg.DBPath, "/data/site.db")
		}
		if cfg.JSONLPath != "" {
			t.Errorf("JSONLPath = %q, want empty", cfg.JSONLPath)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.yml")
		if err := os.WriteFile(path, []byte("publications_src: [unclosed"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Error("LoadFile() expected error for invalid YAML")
		}
	})
}

func TestLoadEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yml")
	if err := os.WriteFile(path, []byte("publications_src: /from/file.bib\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvPublicationsSrc, "/from/env.bib")
	t.Setenv(EnvJSONLPath, "/from/env.jsonl")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.PublicationsSrc != "/from/env.bib" {
		t.Errorf("PublicationsSrc = %q, want env value", cfg.PublicationsSrc)
	}
	if cfg.JSONLPath != "/from/env.jsonl" {
		t.Errorf("JSONLPath = %q, want env value", cfg.JSONLPath)
	}
}

func TestSource(t *testing.T) {
	_, err := (&Config{}).Source()
	if !errors.Is(err, ErrNoSource) {
		t.Errorf("Source() error = %v, want ErrNoSource", err)
	}

	src, err := (&Config{PublicationsSrc: "/pubs.bib"}).Source()
	if err != nil || src != "/pubs.bib" {
		t.Errorf("Source() = %q, %v", src, err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	want := Config{PublicationsSrc: "/pubs.bib", JSONLPath: "/out.jsonl"}

	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if *got != want {
		t.Errorf("LoadFile() = %+v, want %+v", *got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
		{"~/pubs.bib", filepath.Join(home, "pubs.bib")},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("BIBPAGE_TEST_VALUE", "")
	if got := GetConfigValue("BIBPAGE_TEST_VALUE", "fallback"); got != "fallback" {
		t.Errorf("GetConfigValue() = %q, want fallback", got)
	}
	t.Setenv("BIBPAGE_TEST_VALUE", "set")
	if got := GetConfigValue("BIBPAGE_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("GetConfigValue() = %q, want set", got)
	}
}

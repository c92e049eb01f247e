package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wizenheimer/localsearch"
)

func TestApplySite(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantPath   string
		wantOrigin string
	}{
		{
			name:       "root and search path",
			yaml:       "url: https://blog.example.com\nroot: /blog/\nsearch:\n  path: search.json\n",
			wantPath:   "/blog/search.json",
			wantOrigin: "https://blog.example.com",
		},
		{
			name:       "default root",
			yaml:       "search:\n  path: /search.xml\n",
			wantPath:   "/search.xml",
			wantOrigin: "",
		},
		{
			name:       "no search block keeps path",
			yaml:       "title: My Blog\n",
			wantPath:   "search.xml",
			wantOrigin: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := localsearch.DefaultConfig()
			if err := ApplySite(&cfg, []byte(tt.yaml)); err != nil {
				t.Fatalf("ApplySite() error = %v", err)
			}
			if cfg.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", cfg.Path, tt.wantPath)
			}
			if cfg.Origin != tt.wantOrigin {
				t.Errorf("Origin = %q, want %q", cfg.Origin, tt.wantOrigin)
			}
		})
	}
}

func TestApplyTheme(t *testing.T) {
	t.Run("nested block", func(t *testing.T) {
		cfg := localsearch.DefaultConfig()
		data := "search:\n  use: local_search\n  local_search:\n    preload: true\n    top_n_per_article: 3\n    unescape: true\n"
		if err := ApplyTheme(&cfg, []byte(data)); err != nil {
			t.Fatalf("ApplyTheme() error = %v", err)
		}
		if !cfg.Preload || cfg.TopNPerArticle != 3 || !cfg.Unescape {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("top-level block keeps unset keys", func(t *testing.T) {
		cfg := localsearch.DefaultConfig()
		cfg.Unescape = true
		data := "local_search:\n  enable: true\n  top_n_per_article: -1\n"
		if err := ApplyTheme(&cfg, []byte(data)); err != nil {
			t.Fatalf("ApplyTheme() error = %v", err)
		}
		if cfg.TopNPerArticle != -1 || !cfg.Unescape || cfg.Preload {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		cfg := localsearch.DefaultConfig()
		if err := ApplyTheme(&cfg, []byte("search: [unclosed")); err == nil {
			t.Error("ApplyTheme() error = nil")
		}
	})
}

func TestApplyLanguage(t *testing.T) {
	cfg := localsearch.DefaultConfig()
	data := "search:\n  local_search:\n    hits_empty: \"Rien pour : ${query}\"\n    hits_stats: \"${hits} résultats\"\n"

	if err := ApplyLanguage(&cfg, []byte(data)); err != nil {
		t.Fatalf("ApplyLanguage() error = %v", err)
	}
	if cfg.Languages.HitsEmpty != "Rien pour : ${query}" || cfg.Languages.HitsStats != "${hits} résultats" {
		t.Errorf("Languages = %+v", cfg.Languages)
	}
}

func TestApplyHexo(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "_config.yml")
	theme := filepath.Join(dir, "_config.butterfly.yml")
	if err := os.WriteFile(site, []byte("url: https://b.example\nsearch:\n  path: search.xml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(theme, []byte("search:\n  local_search:\n    preload: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := localsearch.DefaultConfig()
	if err := ApplyHexo(&cfg, HexoFiles{Site: site, Theme: theme}); err != nil {
		t.Fatalf("ApplyHexo() error = %v", err)
	}
	if cfg.Path != "/search.xml" || cfg.Origin != "https://b.example" || !cfg.Preload {
		t.Errorf("cfg = %+v", cfg)
	}

	err := ApplyHexo(&cfg, HexoFiles{Language: filepath.Join(dir, "missing.yml")})
	if err == nil {
		t.Error("ApplyHexo() error = nil for a missing file")
	}
}

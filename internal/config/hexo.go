package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wizenheimer/localsearch"
)

// HexoSite is the part of a Hexo site _config.yml that locates the search
// payload (hexo-generator-searchdb settings).
type HexoSite struct {
	URL    string `yaml:"url"`
	Root   string `yaml:"root"`
	Search struct {
		Path string `yaml:"path"`
	} `yaml:"search"`
}

// HexoLocalSearch is the theme's local search block.
type HexoLocalSearch struct {
	Preload        *bool `yaml:"preload"`
	TopNPerArticle *int  `yaml:"top_n_per_article"`
	Unescape       *bool `yaml:"unescape"`
}

// HexoTheme is the part of a theme config that configures local search. Newer
// themes nest the block under search:, older ones put it at the top level.
type HexoTheme struct {
	Search struct {
		Use         string           `yaml:"use"`
		LocalSearch *HexoLocalSearch `yaml:"local_search"`
	} `yaml:"search"`
	LocalSearch *HexoLocalSearch `yaml:"local_search"`
}

// HexoLanguage is the part of a theme language file holding the stats templates.
type HexoLanguage struct {
	Search struct {
		LocalSearch struct {
			HitsEmpty string `yaml:"hits_empty"`
			HitsStats string `yaml:"hits_stats"`
		} `yaml:"local_search"`
	} `yaml:"search"`
}

// ApplySite sets the payload path and origin from a site _config.yml.
func ApplySite(cfg *localsearch.Config, data []byte) error {
	var site HexoSite
	if err := yaml.Unmarshal(data, &site); err != nil {
		return fmt.Errorf("failed to parse site config: %w", err)
	}
	if site.Search.Path != "" {
		root := site.Root
		if root == "" {
			root = "/"
		}
		cfg.Path = strings.TrimSuffix(root, "/") + "/" + strings.TrimPrefix(site.Search.Path, "/")
	}
	if site.URL != "" {
		cfg.Origin = site.URL
	}
	return nil
}

// ApplyTheme sets preload, top_n_per_article and unescape from a theme config.
// Keys absent from the file keep their current values.
func ApplyTheme(cfg *localsearch.Config, data []byte) error {
	var theme HexoTheme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return fmt.Errorf("failed to parse theme config: %w", err)
	}
	block := theme.Search.LocalSearch
	if block == nil {
		block = theme.LocalSearch
	}
	if block == nil {
		return nil
	}
	if block.Preload != nil {
		cfg.Preload = *block.Preload
	}
	if block.TopNPerArticle != nil {
		cfg.TopNPerArticle = *block.TopNPerArticle
	}
	if block.Unescape != nil {
		cfg.Unescape = *block.Unescape
	}
	return nil
}

// ApplyLanguage sets the stats templates from a theme language file.
func ApplyLanguage(cfg *localsearch.Config, data []byte) error {
	var lang HexoLanguage
	if err := yaml.Unmarshal(data, &lang); err != nil {
		return fmt.Errorf("failed to parse language file: %w", err)
	}
	if s := lang.Search.LocalSearch.HitsEmpty; s != "" {
		cfg.Languages.HitsEmpty = s
	}
	if s := lang.Search.LocalSearch.HitsStats; s != "" {
		cfg.Languages.HitsStats = s
	}
	return nil
}

// HexoFiles names the Hexo YAML files to import; empty names are skipped.
type HexoFiles struct {
	Site     string
	Theme    string
	Language string
}

// ApplyHexo reads each named file and applies it in site, theme, language order.
func ApplyHexo(cfg *localsearch.Config, files HexoFiles) error {
	steps := []struct {
		path  string
		apply func(*localsearch.Config, []byte) error
	}{
		{files.Site, ApplySite},
		{files.Theme, ApplyTheme},
		{files.Language, ApplyLanguage},
	}
	for _, step := range steps {
		if step.path == "" {
			continue
		}
		data, err := os.ReadFile(step.path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", step.path, err)
		}
		if err := step.apply(cfg, data); err != nil {
			return fmt.Errorf("%s: %w", step.path, err)
		}
	}
	return nil
}

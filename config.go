package localsearch

import (
	"strings"
)

// Config holds the recognised local search options.
//
// It is passed explicitly to NewSession; nothing reads ambient settings.
type Config struct {
	// Path is the index payload location, a URL or a file.
	Path string `mapstructure:"path" yaml:"path" json:"path"`
	// Unescape HTML-escapes query words before matching.
	Unescape bool `mapstructure:"unescape" yaml:"unescape" json:"unescape"`
	// TopNPerArticle caps content snippets per result; negative keeps all.
	TopNPerArticle int `mapstructure:"top_n_per_article" yaml:"top_n_per_article" json:"top_n_per_article"`
	// Preload fetches the index eagerly instead of on first use.
	Preload bool `mapstructure:"preload" yaml:"preload" json:"preload"`
	// Stem reduces query words to their English stem when it is a prefix.
	Stem bool `mapstructure:"stem" yaml:"stem" json:"stem"`
	// Origin is the site origin result links are resolved against.
	Origin    string    `mapstructure:"origin" yaml:"origin" json:"origin"`
	Languages Languages `mapstructure:"languages" yaml:"languages" json:"languages"`
}

// Languages holds the localised stats templates.
//
// HitsEmpty may contain ${query}; HitsStats may contain ${hits}. Only the
// first placeholder is substituted.
type Languages struct {
	HitsEmpty string `mapstructure:"hits_empty" yaml:"hits_empty" json:"hits_empty"`
	HitsStats string `mapstructure:"hits_stats" yaml:"hits_stats" json:"hits_stats"`
}

// DefaultLanguages returns the English stats templates.
func DefaultLanguages() Languages {
	return Languages{
		HitsEmpty: "We didn't find any results for the search: ${query}",
		HitsStats: "${hits} results found",
	}
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Path:           "search.xml",
		TopNPerArticle: 1,
		Languages:      DefaultLanguages(),
	}
}

// rankOptions derives ranking options from the configuration.
func (c Config) rankOptions() RankOptions {
	return RankOptions{
		TopNPerArticle: c.TopNPerArticle,
		Unescape:       c.Unescape,
		Origin:         c.Origin,
	}
}

// PayloadFormat is the encoding of the index payload.
type PayloadFormat int

const (
	FormatXML PayloadFormat = iota
	FormatJSON
	FormatSnapshot
)

func (f PayloadFormat) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatSnapshot:
		return "snapshot"
	default:
		return "xml"
	}
}

// SnapshotExt is the file extension that selects the binary snapshot format.
const SnapshotExt = ".snap"

// DetectFormat picks the payload format from the path: anything ending in
// "json" is JSON, ".snap" is a snapshot, everything else is XML.
func DetectFormat(path string) PayloadFormat {
	switch {
	case strings.HasSuffix(path, "json"):
		return FormatJSON
	case strings.HasSuffix(path, SnapshotExt):
		return FormatSnapshot
	default:
		return FormatXML
	}
}

// replaceFirst substitutes the first occurrence of placeholder in template.
func replaceFirst(template, placeholder, value string) string {
	return strings.Replace(template, placeholder, value, 1)
}

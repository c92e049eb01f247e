package localsearch

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ═══════════════════════════════════════════════════════════════════════════════
// SEARCH SESSION: Loading the Corpus Once and Answering Queries
// ═══════════════════════════════════════════════════════════════════════════════
// A Session owns the corpus. It moves through three states and never back:
//
//	Unloaded ──Fetch──▶ Loading ──success──▶ Ready
//	                       │
//	                       └──failure──▶ (stays Loading)
//
// A failed fetch is logged and leaves the session Loading for good: there is
// no retry and no timeout. Recovering means creating a new Session.
//
// QUERIES NEVER WAIT:
// -------------------
// Query returns immediately. Before the corpus is Ready it answers with a
// Pending result; callers show a loading indicator until Loaded() closes.
// ═══════════════════════════════════════════════════════════════════════════════

// State is the lifecycle stage of a Session.
type State int

const (
	Unloaded State = iota
	Loading
	Ready
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Session is a search session over one index payload.
type Session struct {
	cfg     Config
	fetcher Fetcher
	format  PayloadFormat

	mu     sync.RWMutex // Guards everything below
	state  State
	corpus *Corpus
	err    error
	loaded chan struct{}
}

// NewSession creates an unloaded session. A nil fetcher uses DefaultFetcher.
func NewSession(cfg Config, fetcher Fetcher) *Session {
	if fetcher == nil {
		fetcher = &DefaultFetcher{}
	}
	defaults := DefaultLanguages()
	if cfg.Languages.HitsEmpty == "" {
		cfg.Languages.HitsEmpty = defaults.HitsEmpty
	}
	if cfg.Languages.HitsStats == "" {
		cfg.Languages.HitsStats = defaults.HitsStats
	}
	return &Session{
		cfg:     cfg,
		fetcher: fetcher,
		format:  DetectFormat(cfg.Path),
		loaded:  make(chan struct{}),
	}
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// State reports the current lifecycle stage.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Err returns the error that stalled the session, if any.
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Loaded is closed once the corpus is Ready. It never closes if the fetch fails.
func (s *Session) Loaded() <-chan struct{} {
	return s.loaded
}

// Corpus returns the loaded corpus, or nil before the session is Ready.
func (s *Session) Corpus() *Corpus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus
}

// Fetch loads the corpus. Only the first call does any work; later calls
// return nil immediately, whatever state the session is in.
func (s *Session) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if s.state != Unloaded {
		s.mu.Unlock()
		return nil
	}
	s.state = Loading
	s.mu.Unlock()

	start := time.Now()
	slog.Info("fetching search index",
		slog.String("path", s.cfg.Path),
		slog.String("format", s.format.String()))

	corpus, err := s.load(ctx)
	if err != nil {
		slog.Error("search index unavailable",
			slog.String("path", s.cfg.Path),
			slog.Any("error", err))
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.corpus = corpus
	s.state = Ready
	close(s.loaded)
	s.mu.Unlock()

	slog.Info("search index loaded",
		slog.Int("documents", corpus.Len()),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// FetchData starts Fetch in the background and returns at once.
func (s *Session) FetchData(ctx context.Context) {
	go func() {
		_ = s.Fetch(ctx)
	}()
}

// Wait blocks until the session is Ready or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		if err := s.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrNotReady, err)
		}
		return fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
	}
}

func (s *Session) load(ctx context.Context) (*Corpus, error) {
	if s.cfg.Path == "" {
		return nil, ErrEmptyPath
	}
	data, err := s.fetcher.Fetch(ctx, s.cfg.Path)
	if err != nil {
		return nil, err
	}

	switch s.format {
	case FormatSnapshot:
		return DecodeSnapshot(data)
	case FormatJSON:
		docs, err := ParseJSON(data)
		if err != nil {
			return nil, err
		}
		return NewCorpus(docs), nil
	default:
		docs, err := ParseXML(data)
		if err != nil {
			return nil, err
		}
		corpus := NewCorpus(docs)
		corpus.fromXML = true
		return corpus, nil
	}
}

// Results is the answer to one query.
type Results struct {
	Query   string       // Normalised search text
	Words   []string     // Query words as split
	Items   []ResultItem // Display order
	Stats   string       // Localised stats or empty-state message
	Cleared bool         // The input was empty: clear the result panel
	Pending bool         // The corpus is not loaded yet
}

// Query evaluates raw input against the corpus. It never blocks on loading
// and never panics: before Ready it returns a Pending result.
func (s *Session) Query(raw string) (res Results) {
	s.mu.RLock()
	corpus, state := s.corpus, s.state
	s.mu.RUnlock()

	if state != Ready {
		return Results{Pending: true}
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("query failed", slog.String("query", raw), slog.Any("panic", r))
			res = Results{Query: res.Query, Words: res.Words}
		}
	}()

	text, words := ParseQuery(raw, QueryOptions{XML: corpus.fromXML, Stem: s.cfg.Stem})
	res = Results{Query: text, Words: words}

	var items []ResultItem
	if text != "" {
		items = corpus.Rank(words, s.cfg.rankOptions())
	}

	switch {
	case IsClear(words):
		res.Cleared = true
	case len(items) == 0:
		res.Stats = replaceFirst(s.cfg.Languages.HitsEmpty, "${query}", text)
	default:
		SortResults(items)
		res.Items = items
		res.Stats = replaceFirst(s.cfg.Languages.HitsStats, "${hits}", strconv.Itoa(len(items)))
	}

	slog.Debug("query evaluated",
		slog.String("query", text),
		slog.Int("results", len(res.Items)))
	return res
}

// HTML renders the ordered result list, or "" when there is nothing to show.
func (r Results) HTML() string {
	if len(r.Items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(`<ol class="search-result-list">`)
	for _, item := range r.Items {
		b.WriteString(item.HTML)
	}
	b.WriteString(`</ol>`)
	return b.String()
}

// StatsHTML renders the stats line. The empty-state message embeds user input
// and is escaped; the stats template is trusted markup.
func (r Results) StatsHTML() string {
	switch {
	case r.Pending || r.Cleared || r.Stats == "":
		return ""
	case len(r.Items) == 0:
		return `<div class="search-result-stats">` + html.EscapeString(r.Stats) + `</div>`
	default:
		return `<hr><div class="search-result-stats">` + r.Stats + `</div>`
	}
}

// ResultView is the JSON form of one result.
type ResultView struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	Href          string `json:"href"`
	HitCount      int    `json:"hit_count"`
	IncludedCount int    `json:"included_count"`
	HTML          string `json:"html"`
}

// ResultsView is the JSON form of a query answer, with rendered markup.
type ResultsView struct {
	Query     string       `json:"query"`
	Words     []string     `json:"words"`
	Pending   bool         `json:"pending"`
	Cleared   bool         `json:"cleared"`
	Count     int          `json:"count"`
	Stats     string       `json:"stats"`
	StatsHTML string       `json:"stats_html"`
	HTML      string       `json:"html"`
	Results   []ResultView `json:"results"`
}

// View flattens r for JSON output.
func (r Results) View() ResultsView {
	v := ResultsView{
		Query:     r.Query,
		Words:     r.Words,
		Pending:   r.Pending,
		Cleared:   r.Cleared,
		Count:     len(r.Items),
		Stats:     r.Stats,
		StatsHTML: r.StatsHTML(),
		HTML:      r.HTML(),
		Results:   make([]ResultView, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		v.Results = append(v.Results, ResultView{
			ID:            item.ID,
			Title:         item.Document.Title,
			URL:           item.Document.URL,
			Href:          item.Href,
			HitCount:      item.HitCount,
			IncludedCount: item.IncludedCount,
			HTML:          item.HTML,
		})
	}
	return v
}

package suggest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/yanqian/vibecast/internal/domain/weather"
	apperrors "github.com/yanqian/vibecast/pkg/errors"
)

const (
	defaultDelay          = 500 * time.Millisecond
	defaultMinQueryLength = 2
)

// Searcher resolves place names into candidate locations.
type Searcher interface {
	SearchLocation(ctx context.Context, query string) ([]weather.Location, error)
}

// Config tunes the feed.
type Config struct {
	Delay          time.Duration
	MinQueryLength int
}

// View is a copy of the feed state.
type View struct {
	Text        string             `json:"text"`
	Debounced   string             `json:"debounced"`
	Suggestions []weather.Location `json:"suggestions"`
	Searching   bool               `json:"searching"`
}

// Feed turns raw keystrokes into at most one search per settled input and keeps the
// resulting candidates until they are replaced, cleared or selected.
type Feed struct {
	cfg       Config
	searcher  Searcher
	logger    *slog.Logger
	ctx       context.Context
	onChange  func()
	debouncer *Debouncer

	mu          sync.Mutex
	text        string
	debounced   string
	suggestions []weather.Location
	searching   bool
	gen         uint64
}

// NewFeed builds a feed. Searches run under ctx; onChange (optional) is invoked after every
// visible state change, outside the feed's lock.
func NewFeed(ctx context.Context, cfg Config, searcher Searcher, logger *slog.Logger, onChange func()) *Feed {
	if cfg.Delay <= 0 {
		cfg.Delay = defaultDelay
	}
	if cfg.MinQueryLength <= 0 {
		cfg.MinQueryLength = defaultMinQueryLength
	}
	if onChange == nil {
		onChange = func() {}
	}
	return &Feed{
		cfg:       cfg,
		searcher:  searcher,
		logger:    logger.With("component", "suggest.feed"),
		ctx:       ctx,
		onChange:  onChange,
		debouncer: NewDebouncer(cfg.Delay),
	}
}

// Input records the latest raw text and restarts the debounce delay.
func (f *Feed) Input(text string) {
	f.mu.Lock()
	f.text = text
	f.mu.Unlock()
	f.onChange()

	f.debouncer.Schedule(func() { f.settle(text) })
}

func (f *Feed) settle(text string) {
	f.mu.Lock()
	if text == f.debounced {
		f.mu.Unlock()
		return
	}
	f.debounced = text
	f.gen++
	gen := f.gen

	if utf8.RuneCountInString(strings.TrimSpace(text)) < f.cfg.MinQueryLength {
		f.suggestions = nil
		f.searching = false
		f.mu.Unlock()
		f.onChange()
		return
	}
	f.searching = true
	f.mu.Unlock()
	f.onChange()

	results, err := f.searcher.SearchLocation(f.ctx, text)

	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		f.logger.Debug("discarding stale search results", "query", text)
		return
	}
	f.searching = false
	if err != nil {
		f.mu.Unlock()
		f.logger.Error("location search failed", "query", text, "error", err)
		f.onChange()
		return
	}
	f.suggestions = results
	f.mu.Unlock()
	f.onChange()
}

// Select picks a candidate, clearing the text and the candidate list.
func (f *Feed) Select(index int) (weather.Location, error) {
	f.mu.Lock()
	if index < 0 || index >= len(f.suggestions) {
		f.mu.Unlock()
		return weather.Location{}, apperrors.Wrap(apperrors.CodeInvalidInput, "suggestion index out of range", nil)
	}
	chosen := f.suggestions[index]
	f.text = ""
	f.suggestions = nil
	f.searching = false
	f.gen++
	f.mu.Unlock()
	f.onChange()

	f.debouncer.Schedule(func() { f.settle("") })
	return chosen, nil
}

// View returns a copy of the current state.
func (f *Feed) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	suggestions := make([]weather.Location, len(f.suggestions))
	copy(suggestions, f.suggestions)
	return View{
		Text:        f.text,
		Debounced:   f.debounced,
		Suggestions: suggestions,
		Searching:   f.searching,
	}
}

// Close cancels any pending debounce.
func (f *Feed) Close() {
	f.debouncer.Stop()
}

/*
Package scraper builds the per-company ESPI/EBI digest: it fetches a company's listing,
filters its announcements and attaches report content to each surviving entry.
*/
package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shanehull/espiscraper/internal/biznesradar"
	"github.com/shanehull/espiscraper/internal/fetch"
	"github.com/shanehull/espiscraper/internal/types"
)

const DefaultListingTimeout = 10 * time.Second

// Summarizer condenses report text into a few bullet points.
type Summarizer interface {
	Summarize(ctx context.Context, text string) ([]string, error)
}

// Scraper processes one company symbol at a time.
type Scraper struct {
	client          *fetch.Client
	criteria        types.FilterCriteria
	listingTemplate string
	listingTimeout  time.Duration
	content         ContentSource
	summarizer      Summarizer
	pacer           *fetch.Pacer
	logger          *zap.SugaredLogger
}

type Option func(*Scraper)

// WithListingURL sets the listing address template; it must contain one %s for the symbol.
func WithListingURL(template string) Option {
	return func(s *Scraper) {
		if template != "" {
			s.listingTemplate = template
		}
	}
}

func WithListingTimeout(timeout time.Duration) Option {
	return func(s *Scraper) {
		if timeout > 0 {
			s.listingTimeout = timeout
		}
	}
}

// WithContent attaches a body to every entry. Without it entries carry title, date and link only.
func WithContent(source ContentSource) Option {
	return func(s *Scraper) {
		s.content = source
	}
}

func WithSummarizer(summarizer Summarizer) Option {
	return func(s *Scraper) {
		s.summarizer = summarizer
	}
}

// WithContentPacer sets the pause after each content request.
func WithContentPacer(pacer *fetch.Pacer) Option {
	return func(s *Scraper) {
		s.pacer = pacer
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Scraper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(client *fetch.Client, criteria types.FilterCriteria, opts ...Option) *Scraper {
	s := &Scraper{
		client:          client,
		criteria:        criteria,
		listingTemplate: biznesradar.ListingURLTemplate,
		listingTimeout:  DefaultListingTimeout,
		logger:          zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape returns the formatted digest entries for symbol. The result is never empty:
// a failed listing fetch yields one error line and a listing without qualifying
// announcements yields one sentinel line.
func (s *Scraper) Scrape(ctx context.Context, symbol string) []string {
	url := biznesradar.ListingURL(s.listingTemplate, symbol)
	s.logger.Infof("Processing company %s (%s)", symbol, url)

	doc, err := s.client.Document(ctx, url, s.listingTimeout)
	if err != nil {
		s.logger.Warnf("Failed to fetch listing for %s: %v", symbol, err)
		return []string{fmt.Sprintf("Błąd pobierania strony %s: %v", url, err)}
	}

	records := biznesradar.ExtractRecords(doc, s.criteria)
	if len(records) == 0 {
		return []string{NoAnnouncements(s.criteria)}
	}

	entries := make([]string, 0, len(records))
	for _, ann := range records {
		ann.Symbol = symbol
		entries = append(entries, s.entry(ctx, ann))
	}
	return entries
}

func (s *Scraper) entry(ctx context.Context, ann types.Announcement) string {
	if s.content == nil {
		return FormatEntry(ann, "", "", nil)
	}

	var body string
	var ok bool
	if s.content.Fetches(ann.Link) {
		if err := s.pacer.Wait(ctx); err != nil {
			s.logger.Warnf("Pacing interrupted before %s: %v", ann.Link, err)
		}
		s.logger.Infof("Fetching report: %s", ann.Title)
		body, ok = s.content.Content(ctx, ann.Link)
		s.pacer.Done()
	} else {
		body, ok = s.content.Content(ctx, ann.Link)
	}

	var summary []string
	if ok && s.summarizer != nil {
		var err error
		summary, err = s.summarizer.Summarize(ctx, body)
		if err != nil {
			s.logger.Warnf("AI summary failed for %s (%s): %v", ann.Symbol, ann.Title, err)
		}
	}

	return FormatEntry(ann, s.content.Label(), body, summary)
}

// FormatEntry renders one announcement. The body section is emitted only when label is set.
func FormatEntry(ann types.Announcement, label, body string, summary []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tytuł: %s\n", ann.Title))
	sb.WriteString(fmt.Sprintf("Data: %s\n", ann.PublishedAt.Format(biznesradar.DateLayout)))
	sb.WriteString(fmt.Sprintf("Link: %s\n", ann.Link))
	if label != "" {
		sb.WriteString(fmt.Sprintf("%s\n%s\n", label, body))
	}
	if len(summary) > 0 {
		sb.WriteString("Podsumowanie AI:\n")
		for _, point := range summary {
			sb.WriteString(fmt.Sprintf("- %s\n", point))
		}
	}
	return sb.String()
}

// NoAnnouncements is the entry used for a company with nothing passing the filters.
func NoAnnouncements(criteria types.FilterCriteria) string {
	return fmt.Sprintf("Brak komunikatów %s od %s.",
		strings.Join(criteria.Markers, "/"), criteria.Cutoff.Format("2006-01-02"))
}

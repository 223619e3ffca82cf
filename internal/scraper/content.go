package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/shanehull/espiscraper/internal/espiebi"
	"github.com/shanehull/espiscraper/internal/fetch"
	"github.com/shanehull/espiscraper/internal/types"
)

// ContentSource turns an announcement link into the body text shown under an entry.
// ok is false when text is a placeholder rather than report content.
type ContentSource interface {
	Label() string
	// Fetches reports whether Content makes a network request for link.
	Fetches(link string) bool
	Content(ctx context.Context, link string) (text string, ok bool)
}

// ReportResolver is satisfied by *espiebi.Resolver.
type ReportResolver interface {
	Resolve(ctx context.Context, link string) types.ReportContent
}

type reportSource struct {
	resolver ReportResolver
}

// NewReportSource follows each link to the disclosure archive and extracts the report body.
func NewReportSource(resolver ReportResolver) ContentSource {
	return reportSource{resolver: resolver}
}

func (reportSource) Label() string { return "Treść raportu:" }

func (reportSource) Fetches(link string) bool {
	_, ok := espiebi.NodeID(link)
	return ok
}

func (s reportSource) Content(ctx context.Context, link string) (string, bool) {
	rc := s.resolver.Resolve(ctx, link)
	return espiebi.Describe(rc), rc.Status == types.StatusOK && rc.Body != espiebi.NoContent
}

type paragraphSource struct {
	client  *fetch.Client
	timeout time.Duration
}

// NewParagraphSource fetches the link itself and joins the text of its paragraphs.
func NewParagraphSource(client *fetch.Client, timeout time.Duration) ContentSource {
	return paragraphSource{client: client, timeout: timeout}
}

func (paragraphSource) Label() string { return "Treść:" }

func (paragraphSource) Fetches(string) bool { return true }

func (s paragraphSource) Content(ctx context.Context, link string) (string, bool) {
	doc, err := s.client.Document(ctx, link, s.timeout)
	if err != nil {
		return fmt.Sprintf("[Błąd pobierania treści: %v]", err), false
	}

	var lines []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := strings.TrimSpace(p.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return espiebi.NoContent, false
	}
	return strings.Join(lines, "\n"), true
}

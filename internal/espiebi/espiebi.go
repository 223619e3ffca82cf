/*
Package espiebi resolves announcement links to the full report text published on espiebi.pap.pl.

Report pages are table layouts. The report body sits in a spanning cell somewhere below
the "Treść raportu" label, usually separated from it by blank spacer rows.
*/
package espiebi

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/shanehull/espiscraper/internal/fetch"
	"github.com/shanehull/espiscraper/internal/htmlquery"
	"github.com/shanehull/espiscraper/internal/types"
)

const (
	DefaultBaseURL = "https://espiebi.pap.pl"
	DefaultTimeout = 15 * time.Second

	ContentLabel   = "Treść raportu"
	spanAttribute  = "colspan"
	NoContent      = "[Brak treści raportu]"
	msgNoNodeID    = "[Brak numeru raportu w linku]"
	msgNoLabel     = "[Nie znaleziono etykiety treści raportu]"
	msgNoContent   = "[Nie znaleziono treści raportu]"
	msgFetchFailed = "[Błąd pobierania raportu %s: %s]"
)

var nodeIDPattern = regexp.MustCompile(`/node/(\d+)`)

// NodeID returns the numeric report identifier following a /node/ path segment in link.
func NodeID(link string) (string, bool) {
	m := nodeIDPattern.FindStringSubmatch(link)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ReportURL builds the canonical archive address for a report identifier.
func ReportURL(baseURL, nodeID string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return strings.TrimRight(baseURL, "/") + "/node/" + nodeID
}

// Describe renders a resolution outcome as the text placed in the digest.
func Describe(rc types.ReportContent) string {
	switch rc.Status {
	case types.StatusOK:
		if rc.Body == "" {
			return NoContent
		}
		return rc.Body
	case types.StatusNoNodeID:
		return msgNoNodeID
	case types.StatusLabelNotFound:
		return msgNoLabel
	case types.StatusContentCellNotFound:
		return msgNoContent
	case types.StatusFetchError:
		return fmt.Sprintf(msgFetchFailed, rc.URL, rc.Body)
	}
	return msgNoContent
}

// Resolver fetches report pages from the archive.
type Resolver struct {
	client  *fetch.Client
	baseURL string
	timeout time.Duration
	logger  *zap.SugaredLogger
}

type Option func(*Resolver)

func WithBaseURL(baseURL string) Option {
	return func(r *Resolver) {
		if baseURL != "" {
			r.baseURL = baseURL
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(r *Resolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewResolver(client *fetch.Client, opts ...Option) *Resolver {
	r := &Resolver{
		client:  client,
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps an announcement link to its report content. Failures are reported
// through the returned status and never as an error.
func (r *Resolver) Resolve(ctx context.Context, link string) types.ReportContent {
	id, ok := NodeID(link)
	if !ok {
		return types.ReportContent{Status: types.StatusNoNodeID}
	}
	reportURL := ReportURL(r.baseURL, id)

	doc, err := r.client.Document(ctx, reportURL, r.timeout)
	if err != nil {
		r.logger.Warnf("Failed to fetch report %s: %v", reportURL, err)
		return types.ReportContent{Status: types.StatusFetchError, URL: reportURL, Body: err.Error()}
	}

	rc := ExtractReportBody(root(doc))
	rc.URL = reportURL
	return rc
}

func root(doc *goquery.Document) *html.Node {
	if doc == nil || len(doc.Nodes) == 0 {
		return nil
	}
	return doc.Nodes[0]
}

// ExtractReportBody locates the content label in a parsed report page and returns the
// text of the first non-empty spanning cell in the rows that follow it.
func ExtractReportBody(doc *html.Node) types.ReportContent {
	row := findLabelRow(doc)
	if row == nil {
		return types.ReportContent{Status: types.StatusLabelNotFound}
	}

	cell := findContentCell(row)
	if cell == nil {
		return types.ReportContent{Status: types.StatusContentCellNotFound}
	}

	body := htmlquery.LineText(cell)
	if body == "" {
		body = NoContent
	}
	return types.ReportContent{Status: types.StatusOK, Body: body}
}

// findLabelRow returns the table row holding the content label. A text node carrying the
// label is tried first; failing that, the innermost cell whose text contains it.
func findLabelRow(doc *html.Node) *html.Node {
	if text := htmlquery.FindFirst(doc, htmlquery.ContainsText(ContentLabel)); text != nil {
		if row := htmlquery.Closest(text, "tr"); row != nil {
			return row
		}
	}
	if cell := htmlquery.InnermostContaining(doc, ContentLabel, "td", "th"); cell != nil {
		return htmlquery.Closest(cell, "tr")
	}
	return nil
}

func findContentCell(labelRow *html.Node) *html.Node {
	for _, row := range htmlquery.FollowingSiblings(labelRow, "tr") {
		for _, cell := range htmlquery.ChildElements(row, "td", "th") {
			if !htmlquery.HasAttr(cell, spanAttribute) {
				continue
			}
			if strings.TrimSpace(htmlquery.Text(cell)) != "" {
				return cell
			}
		}
	}
	return nil
}

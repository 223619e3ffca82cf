/*
Package biznesradar extracts ESPI/EBI announcement records from biznesradar.pl company news pages.
*/
package biznesradar

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/shanehull/espiscraper/internal/types"
)

const (
	ListingURLTemplate = "https://www.biznesradar.pl/wiadomosci/%s"

	NoTitle = "[Brak tytułu]"
	NoLink  = "[Brak linka]"
)

const (
	recordSelector = "div.record"
	footerSelector = "div.record-footer"
	authorSelector = "a.record-author"
	dateSelector   = "span.record-date"
	headerSelector = "div.record-header"
)

// ListingURL builds the news page address for symbol from a template holding one %s.
func ListingURL(template, symbol string) string {
	if template == "" {
		template = ListingURLTemplate
	}
	return fmt.Sprintf(template, url.PathEscape(symbol))
}

// ExtractRecords returns, in document order, the records of doc that carry one of the
// required source markers and were published at or after the cutoff.
// Records with missing footer, source, date or header markup are skipped.
func ExtractRecords(doc *goquery.Document, criteria types.FilterCriteria) []types.Announcement {
	var out []types.Announcement

	doc.Find(recordSelector).Each(func(_ int, record *goquery.Selection) {
		footer := record.Find(footerSelector).First()
		if footer.Length() == 0 {
			return
		}

		author := footer.Find(authorSelector).First()
		if author.Length() == 0 {
			return
		}
		source := author.Text()
		if !criteria.MatchesSource(source) {
			return
		}

		dateTag := footer.Find(dateSelector).First()
		if dateTag.Length() == 0 {
			return
		}
		published, ok := ParseDate(dateTag.Text())
		if !ok || !criteria.Admits(published) {
			return
		}

		header := record.Find(headerSelector).First()
		if header.Length() == 0 {
			return
		}

		title, link := NoTitle, NoLink
		if a := header.Find("a").First(); a.Length() > 0 {
			title = strings.TrimSpace(a.Text())
			if href, exists := a.Attr("href"); exists && strings.TrimSpace(href) != "" {
				link = strings.TrimSpace(href)
			}
		}

		out = append(out, types.Announcement{
			Title:       title,
			PublishedAt: published,
			Link:        link,
			Source:      strings.TrimSpace(source),
		})
	})

	return out
}

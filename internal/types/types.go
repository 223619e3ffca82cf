package types

import (
	"strings"
	"time"
)

// Announcement is one ESPI/EBI record taken from a company listing page.
type Announcement struct {
	Symbol      string
	Title       string
	PublishedAt time.Time
	Link        string
	Source      string
}

// FilterCriteria decides which listing records make it into the digest.
type FilterCriteria struct {
	Markers []string
	Cutoff  time.Time
}

// MatchesSource reports whether source carries at least one of the markers.
// The match is a case-sensitive substring test.
func (c FilterCriteria) MatchesSource(source string) bool {
	for _, m := range c.Markers {
		if m != "" && strings.Contains(source, m) {
			return true
		}
	}
	return false
}

// Admits reports whether a record published at t is recent enough.
func (c FilterCriteria) Admits(t time.Time) bool {
	return !t.Before(c.Cutoff)
}

type ReportStatus int

const (
	StatusOK ReportStatus = iota
	StatusNoNodeID
	StatusLabelNotFound
	StatusContentCellNotFound
	StatusFetchError
)

func (s ReportStatus) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusNoNodeID:
		return "NO_NODE_ID"
	case StatusLabelNotFound:
		return "LABEL_NOT_FOUND"
	case StatusContentCellNotFound:
		return "CONTENT_CELL_NOT_FOUND"
	case StatusFetchError:
		return "FETCH_ERROR"
	}
	return "UNKNOWN"
}

// ReportContent is the outcome of resolving one announcement link to its report text.
// Body holds the report text for StatusOK and the failure description for StatusFetchError.
type ReportContent struct {
	Status ReportStatus
	URL    string
	Body   string
}

type CompanyDigestBlock struct {
	Symbol  string
	Entries []string
}

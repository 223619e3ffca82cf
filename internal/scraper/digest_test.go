package scraper

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/shanehull/espiscraper/internal/fetch"
	"github.com/shanehull/espiscraper/internal/types"
)

type stubScraper struct {
	entries map[string][]string
	order   []string
}

func (s *stubScraper) Scrape(_ context.Context, symbol string) []string {
	s.order = append(s.order, symbol)
	return s.entries[symbol]
}

func TestBuildDigestKeepsInputOrder(t *testing.T) {
	stub := &stubScraper{entries: map[string][]string{
		"PKN": {"entry one\n", "entry two\n"},
		"CDR": {"Brak komunikatów ESPI/EBI od 2025-07-01."},
	}}

	blocks := BuildDigest(context.Background(), stub, []string{"PKN", "CDR"}, fetch.NewPacer(0), zaptest.NewLogger(t).Sugar())
	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"PKN", "CDR"}, stub.order)
	assert.Equal(t, "PKN", blocks[0].Symbol)
	assert.Equal(t, []string{"entry one\n", "entry two\n"}, blocks[0].Entries)
	assert.Equal(t, "CDR", blocks[1].Symbol)
}

type slowScraper struct {
	work   time.Duration
	starts []time.Time
	ends   []time.Time
}

func (s *slowScraper) Scrape(_ context.Context, symbol string) []string {
	s.starts = append(s.starts, time.Now())
	time.Sleep(s.work)
	s.ends = append(s.ends, time.Now())
	return []string{symbol}
}

func TestBuildDigestPausesAfterEachCompany(t *testing.T) {
	stub := &slowScraper{work: 150 * time.Millisecond}
	pause := 100 * time.Millisecond

	BuildDigest(context.Background(), stub, []string{"PKN", "CDR", "LPP"}, fetch.NewPacer(pause), zaptest.NewLogger(t).Sugar())
	require.Len(t, stub.starts, 3)
	for i := 1; i < len(stub.starts); i++ {
		assert.GreaterOrEqual(t, stub.starts[i].Sub(stub.ends[i-1]), pause-10*time.Millisecond)
	}
}

func TestRenderDigest(t *testing.T) {
	out := RenderDigest([]types.CompanyDigestBlock{
		{Symbol: "PKN", Entries: []string{"a\n", "b\n"}},
		{Symbol: "CDR", Entries: []string{"none"}},
	})
	assert.Equal(t, "\n=== PKN ===\na\n\n\nb\n\n\n\n=== CDR ===\nnone", out)
}

func TestReadSymbols(t *testing.T) {
	symbols, err := ReadSymbols(strings.NewReader("\ufeffPKN\n\n  CDR  \r\n\t\nALE\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"PKN", "CDR", "ALE"}, symbols)

	symbols, err = ReadSymbols(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestReadSymbolsFileMissing(t *testing.T) {
	_, err := ReadSymbolsFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestWriteDigest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wyniki", "wiadomosci_spolek.txt")

	require.NoError(t, WriteDigest(path, "first"))
	require.NoError(t, WriteDigest(path, "\n=== PKN ===\nzażółć"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\n=== PKN ===\nzażółć", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

package scraper

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/shanehull/espiscraper/internal/fetch"
	"github.com/shanehull/espiscraper/internal/types"
)

// CompanyScraper is satisfied by *Scraper.
type CompanyScraper interface {
	Scrape(ctx context.Context, symbol string) []string
}

// BuildDigest scrapes every symbol in order, one at a time. pacer sets the pause between
// the end of one company and the start of the next.
func BuildDigest(ctx context.Context, cs CompanyScraper, symbols []string, pacer *fetch.Pacer, logger *zap.SugaredLogger) []types.CompanyDigestBlock {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger.Infof("Found %d companies to check", len(symbols))

	blocks := make([]types.CompanyDigestBlock, 0, len(symbols))
	for _, symbol := range symbols {
		if err := pacer.Wait(ctx); err != nil {
			logger.Warnf("Pacing interrupted before %s: %v", symbol, err)
		}
		blocks = append(blocks, types.CompanyDigestBlock{
			Symbol:  symbol,
			Entries: cs.Scrape(ctx, symbol),
		})
		pacer.Done()
	}
	return blocks
}

// RenderDigest lays blocks out as the plain text digest.
func RenderDigest(blocks []types.CompanyDigestBlock) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, RenderBlock(b))
	}
	return strings.Join(parts, "\n\n")
}

func RenderBlock(b types.CompanyDigestBlock) string {
	return fmt.Sprintf("\n=== %s ===\n", b.Symbol) + strings.Join(b.Entries, "\n\n")
}

// ReadSymbols reads one ticker symbol per line, skipping blank lines.
func ReadSymbols(r io.Reader) ([]string, error) {
	var symbols []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		if line != "" {
			symbols = append(symbols, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read symbols: %w", err)
	}
	return symbols, nil
}

// ReadSymbolsFile opens path and reads its symbols.
func ReadSymbolsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open symbols file %s: %w", path, err)
	}
	defer f.Close()
	return ReadSymbols(f)
}

// WriteDigest writes content to path, creating the parent directory. The file is written
// under a temporary name first and renamed into place.
func WriteDigest(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".digest-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write digest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close digest file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set digest permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move digest into place at %s: %w", path, err)
	}
	return nil
}

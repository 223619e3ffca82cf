package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shanehull/espiscraper/internal/ai"
	"github.com/shanehull/espiscraper/internal/biznesradar"
	"github.com/shanehull/espiscraper/internal/espiebi"
	"github.com/shanehull/espiscraper/internal/fetch"
	"github.com/shanehull/espiscraper/internal/notify"
	"github.com/shanehull/espiscraper/internal/scraper"
	"github.com/shanehull/espiscraper/internal/types"
)

const (
	modeReport     = "report"
	modeParagraphs = "paragraphs"
	modeNone       = "none"
)

func parseMarkers(s string) []string {
	var markers []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			markers = append(markers, trimmed)
		}
	}
	return markers
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// newLogger returns a console logger for interactive runs, or a JSON production
// logger at warn level for -quiet (cron) runs.
func newLogger(quiet bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if quiet {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func main() {
	// .env is optional; values already in the environment win
	_ = godotenv.Load()

	var (
		inputFile      = flag.String("input", "NCFOCUSNAZWY.txt", "File with one ticker symbol per line")
		outputFile     = flag.String("output", "wyniki/wiadomosci_spolek.txt", "Digest output path")
		cutoffStr      = flag.String("cutoff", "2025-07-01", "Only announcements published on or after this date (YYYY-MM-DD)")
		markerStr      = flag.String("markers", "ESPI,EBI", "Comma-separated source markers an announcement must carry")
		mode           = flag.String("mode", modeReport, "Content per entry: report (resolve full ESPI/EBI report), paragraphs (paragraphs of the linked page) or none")
		reportPause    = flag.Duration("report-pause", 1*time.Second, "Minimum interval between report requests")
		symbolPause    = flag.Duration("symbol-pause", 1500*time.Millisecond, "Minimum interval between companies")
		listingTimeout = flag.Duration("listing-timeout", scraper.DefaultListingTimeout, "Timeout for listing page requests")
		reportTimeout  = flag.Duration("report-timeout", espiebi.DefaultTimeout, "Timeout for report page requests")
		userAgent      = flag.String("user-agent", fetch.DefaultUserAgent, "User-Agent header sent with every request")
		listingURL     = flag.String("listing-url", biznesradar.ListingURLTemplate, "Listing URL template (%s is replaced by the symbol)")
		archiveURL     = flag.String("archive-url", espiebi.DefaultBaseURL, "Report archive base URL")
		summarize      = flag.Bool("summarize", false, "Append a Gemini summary to each resolved report (needs GEMINI_API_KEY)")
		quiet          = flag.Bool("quiet", false, "Only log warnings and errors")

		geminiAPIKey = flag.String("gemini-api-key", os.Getenv("GEMINI_API_KEY"), "Gemini API key")
		geminiModel  = flag.String("gemini-model", envOr("GEMINI_MODEL", ai.DefaultModel), "Gemini model name")

		smtpServer = flag.String("smtp-server", os.Getenv("SMTP_SERVER"), "SMTP server address (e.g. smtp.gmail.com)")
		smtpPort   = flag.Int("smtp-port", envIntOr("SMTP_PORT", 587), "SMTP server port")
		smtpUser   = flag.String("smtp-user", os.Getenv("SMTP_USER"), "SMTP username (email address)")
		smtpPass   = flag.String("smtp-pass", os.Getenv("SMTP_PASS"), "SMTP password or App Password")
		toEmail    = flag.String("to-email", os.Getenv("TO_EMAIL"), "Recipient email addresses, comma-separated")
		fromEmail  = flag.String("from-email", os.Getenv("FROM_EMAIL"), "Sender email address (default: smtp-user)")
	)
	flag.Parse()

	logger, err := newLogger(*quiet)
	if err != nil {
		fmt.Printf("Fatal error setting up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cutoff, err := time.Parse("2006-01-02", *cutoffStr)
	if err != nil {
		logger.Fatalf("Invalid -cutoff %q: %v", *cutoffStr, err)
	}
	markers := parseMarkers(*markerStr)
	if len(markers) == 0 {
		logger.Fatal("At least one source marker is required")
	}
	criteria := types.FilterCriteria{Markers: markers, Cutoff: cutoff}

	emailConfig := notify.EmailConfig{
		SMTPServer: *smtpServer,
		SMTPPort:   *smtpPort,
		SMTPUser:   *smtpUser,
		SMTPPass:   *smtpPass,
		ToEmail:    *toEmail,
		FromEmail:  *fromEmail,
		Enabled:    (*smtpServer != "" && *smtpUser != "" && *smtpPass != "" && *toEmail != ""),
	}
	if emailConfig.FromEmail == "" && emailConfig.SMTPUser != "" {
		emailConfig.FromEmail = emailConfig.SMTPUser
	}

	symbols, err := scraper.ReadSymbolsFile(*inputFile)
	if err != nil {
		logger.Fatalf("Fatal error reading symbols: %v", err)
	}

	ctx := context.Background()
	client := fetch.NewClient(fetch.WithUserAgent(*userAgent), fetch.WithLogger(logger))

	opts := []scraper.Option{
		scraper.WithListingURL(*listingURL),
		scraper.WithListingTimeout(*listingTimeout),
		scraper.WithContentPacer(fetch.NewPacer(*reportPause)),
		scraper.WithLogger(logger),
	}

	switch *mode {
	case modeReport:
		resolver := espiebi.NewResolver(client,
			espiebi.WithBaseURL(*archiveURL),
			espiebi.WithTimeout(*reportTimeout),
			espiebi.WithLogger(logger))
		opts = append(opts, scraper.WithContent(scraper.NewReportSource(resolver)))
	case modeParagraphs:
		opts = append(opts, scraper.WithContent(scraper.NewParagraphSource(client, *reportTimeout)))
	case modeNone:
	default:
		logger.Fatalf("Unknown -mode %q (want %s, %s or %s)", *mode, modeReport, modeParagraphs, modeNone)
	}

	if *summarize {
		summarizer, err := ai.NewSummarizer(ctx, *geminiAPIKey, *geminiModel)
		if err != nil {
			logger.Warnf("AI summaries disabled: %v", err)
		} else {
			opts = append(opts, scraper.WithSummarizer(summarizer))
		}
	}

	cs := scraper.New(client, criteria, opts...)
	blocks := scraper.BuildDigest(ctx, cs, symbols, fetch.NewPacer(*symbolPause), logger)
	digest := scraper.RenderDigest(blocks)

	if err := scraper.WriteDigest(*outputFile, digest); err != nil {
		logger.Fatalf("Fatal error writing digest: %v", err)
	}
	logger.Infof("Saved digest for %d companies to %s", len(blocks), *outputFile)

	data := notify.NewDigestData(criteria, blocks, digest, time.Now())
	if err := notify.EmailDigest(data, emailConfig, logger); err != nil {
		logger.Warnf("Digest written but email delivery failed: %v", err)
	}
}

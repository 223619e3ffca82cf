/*
Package notify delivers the finished digest by email.
*/
package notify

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shanehull/espiscraper/internal/types"
)

// DigestData is everything the email templates need.
type DigestData struct {
	Markers   string
	Cutoff    time.Time
	Generated time.Time
	Blocks    []types.CompanyDigestBlock
	Text      string
}

// RenderedMessage is a digest ready for delivery.
type RenderedMessage struct {
	Subject   string
	Text      string
	HTML      string
	Companies int
}

// NewDigestData bundles a rendered digest with the blocks it came from.
func NewDigestData(criteria types.FilterCriteria, blocks []types.CompanyDigestBlock, text string, generated time.Time) DigestData {
	return DigestData{
		Markers:   strings.Join(criteria.Markers, "/"),
		Cutoff:    criteria.Cutoff,
		Generated: generated,
		Blocks:    blocks,
		Text:      text,
	}
}

// EmailDigest renders and sends the digest when email delivery is configured.
func EmailDigest(data DigestData, cfg EmailConfig, logger *zap.SugaredLogger) error {
	if !cfg.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger.Infof("Emailing digest (SMTP: %s:%d).", cfg.SMTPServer, cfg.SMTPPort)

	msg, err := NewHTMLEmailRenderer().Render(data)
	if err != nil {
		return fmt.Errorf("failed to render digest email: %w", err)
	}
	return NewEmailSender(cfg, logger).Send(msg)
}

package notify

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	gomail "gopkg.in/mail.v2"
)

const dialTimeout = 10 * time.Second

// EmailConfig holds SMTP settings for digest delivery. ToEmail may list
// several comma-separated recipients.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
	Enabled    bool
}

// Recipients splits ToEmail into addresses, dropping empty items.
func (c EmailConfig) Recipients() []string {
	var out []string
	for _, addr := range strings.Split(c.ToEmail, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// EmailSender delivers a rendered digest over SMTP.
type EmailSender struct {
	cfg    EmailConfig
	logger *zap.SugaredLogger
}

func NewEmailSender(cfg EmailConfig, logger *zap.SugaredLogger) *EmailSender {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &EmailSender{cfg: cfg, logger: logger}
}

// message builds the MIME message: the plain digest first, HTML as the alternative.
func (s *EmailSender) message(msg *RenderedMessage) (*gomail.Message, error) {
	to := s.cfg.Recipients()
	if len(to) == 0 {
		return nil, fmt.Errorf("no recipients configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromEmail)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return m, nil
}

// Send delivers the digest. It is a no-op when email is disabled.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	if !s.cfg.Enabled {
		return nil
	}

	m, err := s.message(msg)
	if err != nil {
		return err
	}

	dialer := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.SMTPUser, s.cfg.SMTPPass)
	dialer.Timeout = dialTimeout
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send digest %q via %s:%d: %w", msg.Subject, s.cfg.SMTPServer, s.cfg.SMTPPort, err)
	}

	s.logger.Infof("Digest for %d companies sent to %s", msg.Companies, strings.Join(s.cfg.Recipients(), ", "))
	return nil
}

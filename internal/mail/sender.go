// AngelaMos | 2026
// sender.go

package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"

	gomail "github.com/go-mail/mail"
	"golang.org/x/net/html"

	"github.com/carterperez-dev/docmailer/internal/config"
	"github.com/carterperez-dev/docmailer/internal/core"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

type Sender struct {
	cfg    config.SMTPConfig
	logger *slog.Logger
}

func NewSender(cfg config.SMTPConfig, logger *slog.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// Send delivers one message over SMTP with STARTTLS as a plaintext/HTML
// multipart alternative; a missing TextBody is derived from the HTML. The
// dial, handshake and write all share the configured send timeout; there is
// no retry.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	if !s.cfg.Configured() {
		return fmt.Errorf(
			"smtp send: credentials not configured: %w",
			core.ErrUnavailable,
		)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromAddress)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)

	textBody := msg.TextBody
	if textBody == "" {
		textBody = plainTextFallback(msg.HTMLBody)
	}

	if textBody != "" {
		m.SetBody("text/plain", textBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	} else {
		m.SetBody("text/html", msg.HTMLBody)
	}

	d := gomail.NewDialer(
		s.cfg.Host,
		s.cfg.Port,
		s.cfg.Username,
		s.cfg.Password,
	)
	d.Timeout = s.cfg.SendTimeout
	d.StartTLSPolicy = gomail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{
		ServerName: s.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}

	s.logger.Debug("sending email",
		"to", msg.To,
		"subject", msg.Subject,
		"host", s.cfg.Host,
	)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	s.logger.Info("email sent", "to", msg.To)
	return nil
}

// plainTextFallback extracts the visible text of an HTML body, one line per
// text node, skipping head/style/script content.
func plainTextFallback(htmlBody string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(htmlBody))

	var b strings.Builder
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippedTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			text := strings.TrimSpace(string(tokenizer.Text()))
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(text)
		}
	}
}

func skippedTag(name string) bool {
	switch name {
	case "head", "style", "script", "title":
		return true
	}
	return false
}

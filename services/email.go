package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"io/fs"
	"path"
	"strings"
	texttemplate "text/template"
	"unicode/utf8"

	"proply_app_go/config"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

//go:embed emails/*
var emailTemplates embed.FS

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// EmailSender delivers a prepared email
type EmailSender interface {
	Send(ctx context.Context, email *Email) error
}

// ResendSender sends through the Resend API, or only logs when test mode is on
type ResendSender struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewResendSender creates a sender bound to the app configuration
func NewResendSender(cfg *config.Config, logger *zap.Logger) *ResendSender {
	return &ResendSender{cfg: cfg, logger: logger}
}

// Send sends an email using Resend API
func (s *ResendSender) Send(ctx context.Context, email *Email) error {
	// In development mode, log the email instead of sending
	if s.cfg.EmailTestMode {
		s.logger.Info("email logged (test mode - not actually sent)",
			zap.Strings("to", email.To),
			zap.String("subject", email.Subject),
			zap.String("text", email.TextBody),
			zap.String("html", truncate(email.HTMLBody, 500)),
		)
		return nil
	}

	if s.cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.cfg.EmailFromName, s.cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	client := resend.NewClient(s.cfg.ResendAPIKey)
	sent, err := client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	s.logger.Info("email sent via Resend", zap.String("id", sent.Id), zap.Strings("to", email.To))
	return nil
}

// loadTemplate renders templateName_lang.html/.txt from the emails directory,
// falling back to templateName.html/.txt (English) when no localized file exists.
func loadTemplate(fsys fs.FS, templateName, lang string, data any) (html string, text string, err error) {
	read := func(ext string) ([]byte, string, error) {
		name := path.Join("emails", fmt.Sprintf("%s_%s%s", templateName, lang, ext))
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			// Fallback to base template
			name = path.Join("emails", templateName+ext)
			content, err = fs.ReadFile(fsys, name)
			if err != nil {
				return nil, name, fmt.Errorf("failed to read template %s: %w", name, err)
			}
		}
		return content, name, nil
	}

	content, name, err := read(".html")
	if err != nil {
		return "", "", err
	}
	htmlTmpl, err := htmltemplate.New(path.Base(name)).Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	content, name, err = read(".txt")
	if err != nil {
		return "", "", err
	}
	textTmpl, err := texttemplate.New(path.Base(name)).Parse(string(content))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return htmlBuf.String(), strings.TrimSpace(textBuf.String()), nil
}

// truncate keeps at most maxLen bytes of s without splitting a character
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

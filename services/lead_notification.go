package services

import (
	"context"
	"fmt"
	"html"

	"github.com/microcosm-cc/bluemonday"
)

// LeadNotificationData feeds the lead_notification templates
type LeadNotificationData struct {
	Source  string
	Name    string
	Email   string
	Company string
	Status  int
}

// leadTextPolicy strips every tag: lead fields are plain text
var leadTextPolicy = bluemonday.StrictPolicy()

// plainText drops any markup from a lead field and keeps its characters as
// typed. Escaping is left to the HTML template.
func plainText(s string) string {
	return html.UnescapeString(leadTextPolicy.Sanitize(s))
}

// BuildLeadNotificationEmail renders the internal "new lead" email. Markup in
// user supplied fields is dropped; the HTML body is escaped once by its template.
func BuildLeadNotificationEmail(to string, data LeadNotificationData, lang string) (*Email, error) {
	data.Name = plainText(data.Name)
	data.Email = plainText(data.Email)
	data.Company = plainText(data.Company)

	htmlBody, textBody, err := loadTemplate(emailTemplates, "lead_notification", lang, data)
	if err != nil {
		return nil, err
	}

	subject := fmt.Sprintf("New %s lead: %s", data.Source, data.Email)
	if lang == "es" {
		subject = fmt.Sprintf("Nuevo contacto (%s): %s", data.Source, data.Email)
	}

	return &Email{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	}, nil
}

// EmailLeadNotifier mails the team about new leads
type EmailLeadNotifier struct {
	sender EmailSender
	to     string
	lang   string
}

// NewEmailLeadNotifier returns nil when no recipient is configured, which
// turns notifications off.
func NewEmailLeadNotifier(sender EmailSender, to, lang string) *EmailLeadNotifier {
	if to == "" {
		return nil
	}
	return &EmailLeadNotifier{sender: sender, to: to, lang: lang}
}

// NotifyNewLead builds and sends the notification email. A nil notifier does nothing.
func (n *EmailLeadNotifier) NotifyNewLead(ctx context.Context, req SubscribeRequest, result *ListResult) error {
	if n == nil {
		return nil
	}
	source := req.Source
	if source == "" {
		source = "waitlist"
	}
	email, err := BuildLeadNotificationEmail(n.to, LeadNotificationData{
		Source:  source,
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Status:  result.Status,
	}, n.lang)
	if err != nil {
		return err
	}
	return n.sender.Send(ctx, email)
}

package services

import (
	"fmt"
	"html"
	"log"
	"strings"

	"docflow_app_go/config"
	"docflow_app_go/models"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To          []string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []Attachment
}

// Attachment is a file attached to an email
type Attachment struct {
	Filename string
	Content  []byte
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		log.Printf("✅ Email logged successfully (development mode - not actually sent)")
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	fromAddress := fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom)

	params := &resend.SendEmailRequest{
		From:    fromAddress,
		To:      email.To,
		Subject: email.Subject,
	}

	// Set body (prefer HTML if available)
	if email.HTMLBody != "" {
		params.Html = email.HTMLBody
	}
	if email.TextBody != "" {
		params.Text = email.TextBody
	}
	if params.Html == "" && params.Text == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	for _, attachment := range email.Attachments {
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Filename: attachment.Filename,
			Content:  attachment.Content,
		})
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %v", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\n📧 EMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	for _, attachment := range email.Attachments {
		log.Printf("Attachment: %s (%d bytes)", attachment.Filename, len(attachment.Content))
	}
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("\n--- HTML BODY (first 500 chars) ---\n%s...", truncate(email.HTMLBody, 500))
	log.Printf("%s\n", separator)
}

// truncate truncates a string to a maximum length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

// SendEmailAsync sends an email asynchronously using a goroutine
// This is the recommended method for sending emails in handlers to avoid blocking HTTP responses
func SendEmailAsync(cfg *config.Config, email *Email) {
	// Create a copy of the email to avoid race conditions
	emailCopy := &Email{
		To:          append([]string{}, email.To...),
		Subject:     email.Subject,
		HTMLBody:    email.HTMLBody,
		TextBody:    email.TextBody,
		Attachments: append([]Attachment{}, email.Attachments...),
	}

	go func(cfg *config.Config, email *Email) {
		if err := SendEmail(cfg, email); err != nil {
			log.Printf("Error sending async email: %v", err)
		}
	}(cfg, emailCopy)
}

// BuildDocumentEmail creates an email carrying an exported document PDF.
// The document label and number go into the subject; the PDF is
// attached under its export filename.
func BuildDocumentEmail(toEmail, docType, number string, pdf []byte) *Email {
	label := "Invoice"
	switch docType {
	case models.DocumentTypePurchaseOrder:
		label = "Purchase Order"
	case models.DocumentTypeDeliveryOrder:
		label = "Delivery Order"
	}
	if number == "" {
		number = "draft"
	}

	subject := fmt.Sprintf("%s %s", label, number)
	escaped := html.EscapeString(number)
	htmlBody := fmt.Sprintf(
		"<p>Dear customer,</p><p>Please find attached %s <strong>%s</strong>.</p><p>Thank you for your business.</p>",
		strings.ToLower(label), escaped)
	textBody := fmt.Sprintf("Please find attached %s %s.", strings.ToLower(label), number)

	return &Email{
		To:       []string{toEmail},
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
		Attachments: []Attachment{
			{Filename: ExportFileName(docType, number), Content: pdf},
		},
	}
}

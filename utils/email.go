package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/keighl/postmark"
)

// EmailService handles sending transactional emails using Postmark. When
// POSTMARK_API_TOKEN is not configured the service is a no-op, since not
// every student has an email on file anyway.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		log.Println("POSTMARK_API_TOKEN not set; email notifications disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// Enabled reports whether the service can actually send mail
func (es *EmailService) Enabled() bool {
	return es != nil && es.client != nil
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if !es.Enabled() {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation to the student
func (es *EmailService) SendOrderConfirmationEmail(toEmail, name, orderID string, tokenNumber int, totalPrice, pickupTime, paymentMode string) error {
	subject := "Order Confirmation - Campus Canteen"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your order <strong>%s</strong> has been placed successfully.<br><br>Pickup token: <strong>%d</strong><br>Pickup time: <strong>%s</strong><br>Total: <strong>₹%s</strong><br>Payment mode: <strong>%s</strong><br><br>Please show your token number at the counter.",
		name, orderID, tokenNumber, pickupTime, totalPrice, paymentMode,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// utils/email.go
package utils

import (
	"fmt"
	"os"

	"github.com/keighl/postmark"
)

// EmailService handles sending emails using Postmark
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		panic("POSTMARK_API_TOKEN is not set in environment variables")
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
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

// SendVerificationEmail sends an email verification link to the user. The
// link embeds both the raw token and the email address.
func (es *EmailService) SendVerificationEmail(name, toEmail, token, origin string) error {
	verifyURL := fmt.Sprintf("%s/user/verify-email?token=%s&email=%s", origin, token, toEmail)
	htmlContent := fmt.Sprintf(
		"<h4>Hello %s</h4><p>Please verify your email address by clicking on the following link: <a href=\"%s\">Verify Email</a></p>",
		name, verifyURL,
	)
	return es.SendEmail(toEmail, "Email confirmation", htmlContent)
}

// SendResetPasswordEmail sends a password reset link carrying the raw reset
// token. Only its hash is stored server-side.
func (es *EmailService) SendResetPasswordEmail(name, toEmail, token, origin string) error {
	resetURL := fmt.Sprintf("%s/user/reset-password?token=%s&email=%s", origin, token, toEmail)
	htmlContent := fmt.Sprintf(
		"<h4>Hello %s</h4><p>Please reset your password by clicking on the following link: <a href=\"%s\">Reset Password</a>.</p><p>This link expires in 10 minutes.</p>",
		name, resetURL,
	)
	return es.SendEmail(toEmail, "Reset Password", htmlContent)
}

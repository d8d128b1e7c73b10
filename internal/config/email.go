package config

import (
	"context"
	"fmt"
	"os"

	"github.com/resend/resend-go/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ResendConfig struct {
	APIKey      string
	From        string
	FrontendURL string
}

func NewResendConfig(logger *zap.Logger) *ResendConfig {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("FROM_EMAIL")
	frontendURL := os.Getenv("FRONTEND_URL")
	if apiKey == "" || fromEmail == "" || frontendURL == "" {
		logger.Fatal("missing email environment variables (RESEND_API_KEY, FROM_EMAIL, FRONTEND_URL)")
	}
	return &ResendConfig{
		APIKey:      apiKey,
		From:        fromEmail,
		FrontendURL: frontendURL,
	}
}

type EmailService struct {
	config *ResendConfig
	client *resend.Client
	logger *zap.Logger
}

func NewEmailService(lc fx.Lifecycle, config *ResendConfig, logger *zap.Logger) *EmailService {
	service := &EmailService{
		config: config,
		client: resend.NewClient(config.APIKey),
		logger: logger,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("email service initialized")
			return nil
		},
	})
	return service
}

func (e *EmailService) SendEmail(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    e.config.From,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := e.client.Emails.Send(params); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	e.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// SendVerificationEmail links the recipient to the frontend verification page.
// The token expires 24 hours after issue; ResendVerification hands out a fresh one.
func (e *EmailService) SendVerificationEmail(to, name, token string) error {
	verificationURL := fmt.Sprintf("%s/verify-email?token=%s", e.config.FrontendURL, token)
	subject := "NGOConnect - Email Verification"
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Welcome to NGOConnect, %s!</h2>
			<p>Thank you for registering. Please verify your email address to complete your registration:</p>
			<p><a href="%s">Verify Email Address</a></p>
			<p>If the link does not work, copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This verification link expires in 24 hours. If you did not create an account, ignore this email.</p>
		</div>`, name, verificationURL, verificationURL)

	return e.SendEmail(to, subject, html)
}

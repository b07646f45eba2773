package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"
)

type ResendEmailSender struct {
	Client  *resend.Client
	From    string
	AppName string
}

func NewResendEmailSender(apiKey string, from string, appName string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	return &ResendEmailSender{
		Client:  resend.NewClient(apiKey),
		From:    from,
		AppName: appName,
	}
}

// SendVerificationCode mails the code through the Resend API. The SDK's Send
// call is not cancellable, so the signature carries no context.
func (s *ResendEmailSender) SendVerificationCode(email string, code string) (string, error) {
	if s.Client == nil {
		return "", errors.New("email sender not configured")
	}
	name := s.AppName
	if name == "" {
		name = "Gatekeeper"
	}
	subject := fmt.Sprintf("Verify your account - %s", name)
	html := fmt.Sprintf(
		"<p>Use the code below to verify your account:</p>"+
			"<p style=\"font-size:32px;font-weight:bold;letter-spacing:8px\">%s</p>"+
			"<p>This code expires in 5 minutes. If you didn't request it, ignore this email.</p>",
		code,
	)
	text := fmt.Sprintf("Your verification code is %s. It expires in 5 minutes.", code)

	sent, err := s.Client.Emails.Send(&resend.SendEmailRequest{
		From:    s.From,
		To:      []string{email},
		Subject: subject,
		Html:    html,
		Text:    text,
	})
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}

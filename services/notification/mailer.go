package notification

import (
	"context"
	"fmt"

	"facestudio/models"
	"facestudio/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mailer hands a rendered message to an email provider.
type Mailer interface {
	Send(ctx context.Context, msg models.EmailMessage) error
}

// SendGridMailer delivers through the SendGrid v3 API.
type SendGridMailer struct {
	client   *sendgrid.Client
	fromName string
	from     string
}

func NewSendGridMailer(apiKey, fromEmail, fromName string) (*SendGridMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid api key is empty")
	}
	if fromEmail == "" {
		return nil, fmt.Errorf("sender address is empty")
	}
	return &SendGridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		fromName: fromName,
		from:     fromEmail,
	}, nil
}

func (m *SendGridMailer) Send(ctx context.Context, msg models.EmailMessage) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("email %q has no recipients", msg.Kind)
	}
	from := mail.NewEmail(m.fromName, m.from)
	text := msg.Text
	if text == "" {
		text = utils.PlainText(msg.HTML)
	}

	message := mail.NewSingleEmail(from, msg.Subject, mail.NewEmail("", msg.To[0]), text, msg.HTML)
	if len(msg.To) > 1 {
		p := message.Personalizations[0]
		for _, to := range msg.To[1:] {
			p.AddTos(mail.NewEmail("", to))
		}
	}

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer only logs. It stands in when no SendGrid key is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg models.EmailMessage) error {
	utils.GetLogger().Info("Email not sent, no provider configured",
		zap.String("kind", msg.Kind),
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}

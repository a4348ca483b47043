package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/cafeandwifi/cafe-directory/internal/config"
)

const reportSubject = "[Free-wifi-Cafes] A New Report Message!"

// SMTPDispatcher sends closure reports over a transient SMTP connection:
// dial, STARTTLS, authenticate, send one plain-text message, close.
type SMTPDispatcher struct {
	conf *config.SMTPConfig
}

func NewSMTPDispatcher(conf *config.SMTPConfig) *SMTPDispatcher {
	return &SMTPDispatcher{
		conf: conf,
	}
}

func (d *SMTPDispatcher) DispatchReport(ctx context.Context, sender, message string) error {
	msg := gomail.NewMsg()
	if err := msg.From(d.conf.Username); err != nil {
		return fmt.Errorf("msg.From -> %w", err)
	}
	if err := msg.To(d.conf.AdminMailbox); err != nil {
		return fmt.Errorf("msg.To -> %w", err)
	}

	msg.Subject(reportSubject)
	msg.SetBodyString(gomail.TypeTextPlain, fmt.Sprintf("Name: %v\n-----\nMessage:%v", sender, message))

	client, err := gomail.NewClient(d.conf.Host,
		gomail.WithPort(d.conf.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(d.conf.Username),
		gomail.WithPassword(d.conf.Password),
	)
	if err != nil {
		return fmt.Errorf("gomail.NewClient -> %w", err)
	}

	// Single attempt; the caller turns a failure into a user-facing
	// notice rather than a request failure.
	if err = client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("client.DialAndSendWithContext -> %w", err)
	}

	return nil
}

// Package mail delivers certificate notifications over SMTP.
package mail

import (
	"context"
	"fmt"
	"io"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"

	gomail "gopkg.in/gomail.v2"
)

// Sender dials a fresh SMTP connection per message using the transport
// carried by the job. Nothing transport-related is shared across sends, so
// a per-job provider override cannot leak into other jobs.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, transport domain.MailTransport, mail domain.OutboundMail) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", transport.FromAddress, transport.FromName)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/html", mail.HTMLBody)
	if len(mail.PDF) > 0 {
		msg.Attach("certificate.pdf", gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(mail.PDF)
			return err
		}))
	}

	dialer := gomail.NewDialer(transport.Host, transport.Port, transport.Username, transport.Password)
	dialer.SSL = transport.Encryption == "ssl"

	// gomail has no context support; honor cancellation before the dial.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s via %s: %w", mail.To, transport.Host, err)
	}
	return nil
}

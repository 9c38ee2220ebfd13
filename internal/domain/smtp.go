package domain

import "time"

// SmtpProvider is per-user (or global) outbound-mail configuration. The
// password is stored encrypted at rest; repositories decrypt it on read and
// it is never serialized in API or log output.
type SmtpProvider struct {
	ID          string
	UserID      string
	Name        string
	Host        string
	Port        int
	Username    string
	Password    string
	Encryption  string
	FromAddress string
	FromName    string
	IsGlobal    bool
	CreatedAt   time.Time
}

// MailTransport is the job-local transport configuration handed to the mail
// sender. It is a plain value, never process-global state, so concurrent
// jobs cannot interfere with each other's transport.
type MailTransport struct {
	Host        string
	Port        int
	Username    string
	Password    string
	Encryption  string
	FromAddress string
	FromName    string
}

// Transport builds the one-off transport for this provider's settings.
func (p SmtpProvider) Transport() MailTransport {
	return MailTransport{
		Host:        p.Host,
		Port:        p.Port,
		Username:    p.Username,
		Password:    p.Password,
		Encryption:  p.Encryption,
		FromAddress: p.FromAddress,
		FromName:    p.FromName,
	}
}

// OutboundMail is one notification email: a plain-text subject, an HTML
// body, and the generated certificate attached as certificate.pdf.
type OutboundMail struct {
	To       string
	Subject  string
	HTMLBody string
	PDF      []byte
}

package domain

import "time"

type CertificateStatus string

const (
	CertificateIssued  CertificateStatus = "issued"
	CertificateRevoked CertificateStatus = "revoked"
)

// Certificate is one issued credential. UniqueID is the opaque token used
// in public URLs; it is immutable and unique across all certificates.
type Certificate struct {
	ID                    string
	UserID                string
	CertificateTemplateID string
	UniqueID              string
	RecipientName         string
	RecipientEmail        string
	State                 string
	EventType             string
	EventTitle            string
	IssueDate             time.Time
	IssuerName            string
	OrgName               string
	Status                CertificateStatus
	RevocationReason      string
	RevokedAt             *time.Time
	FilePath              string
	Payload               map[string]any
	CreatedAt             time.Time
}

// Revocable reports whether the one-way issued -> revoked transition is
// still available.
func (c Certificate) Revocable() bool {
	return c.Status == CertificateIssued
}

// FormattedIssueDate renders the issue date the way templates expect it,
// e.g. "Jan 5, 2024".
func (c Certificate) FormattedIssueDate() string {
	return c.IssueDate.Format("Jan 2, 2006")
}

// PlaceholderValues builds the substitution mapping from the certificate's
// own fields, never from template defaults.
func (c Certificate) PlaceholderValues() map[string]string {
	return map[string]string{
		"Recipient_Name": c.RecipientName,
		"Event_Title":    c.EventTitle,
		"Org_Name":       c.OrgName,
		"state":          c.State,
		"event_type":     c.EventType,
		"issue_date":     c.FormattedIssueDate(),
		"issuer_name":    c.IssuerName,
		"unique_id":      c.UniqueID,
	}
}

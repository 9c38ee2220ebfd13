package domain

import "time"

type TemplateType string

const (
	TemplateTypeSVG  TemplateType = "svg"
	TemplateTypeHTML TemplateType = "html"
)

func (t TemplateType) Valid() bool {
	return t == TemplateTypeSVG || t == TemplateTypeHTML
}

// CertificateTemplate is a content blueprint. A template is either owned by
// a user or marked global (available to everyone). Cloned copies keep a
// back-reference to the original so they can later be reset from it.
type CertificateTemplate struct {
	ID                 string
	UserID             string
	Name               string
	Content            string
	Type               TemplateType
	IsGlobal           bool
	OriginalTemplateID string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EmailTemplate mirrors CertificateTemplate for notification subject+body.
type EmailTemplate struct {
	ID                 string
	UserID             string
	Name               string
	Subject            string
	Body               string
	IsGlobal           bool
	OriginalTemplateID string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

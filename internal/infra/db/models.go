package db

import "time"

type UserModel struct {
	ID                string    `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"not null"`
	Email             string    `gorm:"uniqueIndex;not null"`
	PasswordHash      string    `gorm:"not null"`
	OrgName           string    `gorm:"column:org_name"`
	Role              string    `gorm:"index;not null"`
	Status            string    `gorm:"not null"`
	TerminationReason string    `gorm:""`
	OIDCProvider      string    `gorm:"column:oidc_provider"`
	OIDCSubject       string    `gorm:"column:oidc_subject;index"`
	CreatedAt         time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type CertificateTemplateModel struct {
	ID                 string    `gorm:"type:uuid;primaryKey"`
	UserID             string    `gorm:"type:uuid;index;not null"`
	Name               string    `gorm:"not null"`
	Content            string    `gorm:"type:text;not null"`
	Type               string    `gorm:"not null"`
	IsGlobal           bool      `gorm:"index;not null"`
	OriginalTemplateID *string   `gorm:"type:uuid"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (CertificateTemplateModel) TableName() string { return "certificate_templates" }

type EmailTemplateModel struct {
	ID                 string    `gorm:"type:uuid;primaryKey"`
	UserID             string    `gorm:"type:uuid;index;not null"`
	Name               string    `gorm:"not null"`
	Subject            string    `gorm:"not null"`
	Body               string    `gorm:"type:text;not null"`
	IsGlobal           bool      `gorm:"index;not null"`
	OriginalTemplateID *string   `gorm:"type:uuid"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (EmailTemplateModel) TableName() string { return "email_templates" }

type SmtpProviderModel struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	UserID      string `gorm:"type:uuid;index;not null"`
	Name        string `gorm:"not null"`
	Host        string `gorm:"not null"`
	Port        int    `gorm:"not null"`
	Username    string
	// Password holds the AES-GCM sealed credential, never plaintext.
	Password    string    `gorm:"type:text"`
	Encryption  string    `gorm:"not null"`
	FromAddress string    `gorm:"not null"`
	FromName    string
	IsGlobal    bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (SmtpProviderModel) TableName() string { return "smtp_providers" }

type CertificateModel struct {
	ID                    string `gorm:"type:uuid;primaryKey"`
	UserID                string `gorm:"type:uuid;index;not null"`
	CertificateTemplateID string `gorm:"type:uuid;index;not null"`
	UniqueID              string `gorm:"uniqueIndex;not null"`
	RecipientName         string `gorm:"not null"`
	RecipientEmail        string
	State                 string
	EventType             string
	EventTitle            string
	IssueDate             time.Time `gorm:"not null"`
	IssuerName            string
	OrgName               string `gorm:"column:org_name"`
	Status                string `gorm:"index;not null"`
	RevocationReason      string
	RevokedAt             *time.Time
	FilePath              string
	PayloadJSON           []byte    `gorm:"column:payload;type:jsonb"`
	CreatedAt             time.Time `gorm:"index;not null"`
}

func (CertificateModel) TableName() string { return "certificates" }

package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
)

const issueDateLayout = "2006-01-02"

var requiredColumns = []string{"recipient_name", "state", "event_type", "event_title", "issue_date"}

// RowError pins a validation failure to a row and field. The whole batch is
// rejected; nothing is enqueued.
type RowError struct {
	Row   int
	Field string
	Msg   string
}

func (e *RowError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("row %d, %s: %s", e.Row, e.Field, e.Msg)
}

func (e *RowError) Unwrap() error { return domain.ErrValidation }

// BulkInput is a bulk-upload request: the CSV stream plus the selections
// made on the form.
type BulkInput struct {
	UserID                string
	IssuerName            string
	OrgName               string
	CertificateTemplateID string
	EmailTemplateID       string
	SmtpProviderID        string
	CSV                   io.Reader
}

// BulkIssuer parses an uploaded CSV fully before any row is processed, then
// dispatches one independent job per row. Rows are independent: no ordering,
// no cross-row transactionality, no deduplication.
type BulkIssuer struct {
	CertTemplates  CertificateTemplateRepository
	EmailTemplates EmailTemplateRepository
	SmtpProviders  SmtpProviderRepository
	Dispatcher     RowDispatcher

	// MaxRows bounds a single upload; zero means the default.
	MaxRows int
}

const defaultMaxRows = 1000

// Execute validates the selections and the whole file, then enqueues one job
// per row. It returns the number of jobs dispatched.
func (b *BulkIssuer) Execute(ctx context.Context, input BulkInput) (int, error) {
	if input.CertificateTemplateID == "" {
		return 0, &RowError{Field: "certificate_template_id", Msg: "required"}
	}
	if input.EmailTemplateID == "" {
		return 0, &RowError{Field: "email_template_id", Msg: "required"}
	}
	// Selections must be visible to the issuing user: templates owned or
	// global, SMTP providers owned only. Another user's private template or
	// provider is indistinguishable from an unknown id.
	certTmpl, err := b.CertTemplates.GetByID(ctx, input.CertificateTemplateID)
	if err != nil || (certTmpl.UserID != input.UserID && !certTmpl.IsGlobal) {
		return 0, &RowError{Field: "certificate_template_id", Msg: "unknown template"}
	}
	emailTmpl, err := b.EmailTemplates.GetByID(ctx, input.EmailTemplateID)
	if err != nil || (emailTmpl.UserID != input.UserID && !emailTmpl.IsGlobal) {
		return 0, &RowError{Field: "email_template_id", Msg: "unknown template"}
	}
	if input.SmtpProviderID != "" {
		provider, err := b.SmtpProviders.GetByID(ctx, input.SmtpProviderID)
		if err != nil || provider.UserID != input.UserID {
			return 0, &RowError{Field: "smtp_provider_id", Msg: "unknown provider"}
		}
	}

	rows, err := b.parse(input.CSV)
	if err != nil {
		return 0, err
	}

	for _, row := range rows {
		job := RowJob{
			UserID:                input.UserID,
			Row:                   row,
			IssuerName:            input.IssuerName,
			OrgName:               input.OrgName,
			CertificateTemplateID: input.CertificateTemplateID,
			EmailTemplateID:       input.EmailTemplateID,
			SmtpProviderID:        input.SmtpProviderID,
		}
		if err := b.Dispatcher.Dispatch(ctx, job); err != nil {
			return 0, fmt.Errorf("dispatch row job: %w", err)
		}
	}
	return len(rows), nil
}

// parse reads and validates the full file up front, failing fast on the
// first malformed row so a bad batch enqueues nothing.
func (b *BulkIssuer) parse(r io.Reader) ([]Row, error) {
	maxRows := b.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxRows
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &RowError{Field: "csv_file", Msg: "missing header row"}
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &RowError{Field: "csv_file", Msg: "missing required column " + col}
		}
	}
	emailIdx, hasEmail := index["recipient_email"]

	var rows []Row
	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &RowError{Row: rowNum, Field: "csv_file", Msg: "malformed row"}
		}
		get := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		row := Row{
			RecipientName: get("recipient_name"),
			State:         get("state"),
			EventType:     get("event_type"),
			EventTitle:    get("event_title"),
		}
		if hasEmail && emailIdx < len(record) {
			row.RecipientEmail = strings.TrimSpace(record[emailIdx])
		}

		if row.RecipientName == "" {
			return nil, &RowError{Row: rowNum, Field: "recipient_name", Msg: "required"}
		}
		if row.State == "" {
			return nil, &RowError{Row: rowNum, Field: "state", Msg: "required"}
		}
		if row.EventType == "" {
			return nil, &RowError{Row: rowNum, Field: "event_type", Msg: "required"}
		}
		if row.EventTitle == "" {
			return nil, &RowError{Row: rowNum, Field: "event_title", Msg: "required"}
		}
		if row.RecipientEmail != "" && !strings.Contains(row.RecipientEmail, "@") {
			return nil, &RowError{Row: rowNum, Field: "recipient_email", Msg: "invalid email address"}
		}
		issueDate, err := time.Parse(issueDateLayout, get("issue_date"))
		if err != nil {
			return nil, &RowError{Row: rowNum, Field: "issue_date", Msg: "expected YYYY-MM-DD"}
		}
		row.IssueDate = issueDate

		rows = append(rows, row)
		if len(rows) > maxRows {
			return nil, &RowError{Field: "csv_file", Msg: fmt.Sprintf("too many rows (limit %d)", maxRows)}
		}
	}
	if len(rows) == 0 {
		return nil, &RowError{Field: "csv_file", Msg: "no data rows"}
	}
	return rows, nil
}

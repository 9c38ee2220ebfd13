// Package activities hosts the worker-side execution of queued row jobs.
package activities

import (
	"context"
	"errors"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/domain"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"

	"go.temporal.io/sdk/temporal"
)

const IssueCertificateActivityName = "IssueCertificate"

type Activities struct {
	issuer *usecase.RowIssuer
}

func New(issuer *usecase.RowIssuer) *Activities {
	return &Activities{issuer: issuer}
}

// IssueCertificate runs one row job end to end. A template or provider
// deleted between enqueue and execution will not come back, so those
// failures are marked non-retryable; transient converter, storage, and SMTP
// errors are left to the retry policy.
func (a *Activities) IssueCertificate(ctx context.Context, job usecase.RowJob) (usecase.IssueResult, error) {
	result, err := a.issuer.Execute(ctx, job)
	if err != nil {
		if errors.Is(err, domain.ErrTemplateNotFound) || errors.Is(err, domain.ErrNotFound) {
			return usecase.IssueResult{}, temporal.NewNonRetryableApplicationError(
				err.Error(), "TemplateNotFound", err)
		}
		return usecase.IssueResult{}, err
	}
	return result, nil
}

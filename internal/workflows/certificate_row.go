// Package workflows defines the durable execution wrapper around row jobs.
package workflows

import (
	"time"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/activities"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// CertificateRowWorkflow processes one uploaded row. Each row is its own
// workflow execution: rows share no state, have no ordering, and one row's
// failure never touches another's. Retries replay the whole activity, which
// mints a fresh certificate on every attempt.
func CertificateRowWorkflow(ctx workflow.Context, job usecase.RowJob) (usecase.IssueResult, error) {
	opts := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, opts)

	logger := workflow.GetLogger(ctx)
	var result usecase.IssueResult
	err := workflow.ExecuteActivity(ctx, activities.IssueCertificateActivityName, job).Get(ctx, &result)
	if err != nil {
		logger.Error("certificate row failed", "recipient", job.Row.RecipientName, "error", err)
		return usecase.IssueResult{}, err
	}
	logger.Info("certificate row done", "unique_id", result.UniqueID, "email_sent", result.EmailSent)
	return result, nil
}

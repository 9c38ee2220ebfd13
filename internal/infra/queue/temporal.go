// Package queue dispatches row jobs onto the Temporal task queue.
package queue

import (
	"context"
	"fmt"

	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/usecase"
	"github.com/GDG-on-Campus-ASU/GDGoC-certs-v3/internal/workflows"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"
)

// Dispatcher starts one workflow execution per row job. Starting is
// fire-and-forget: the HTTP request returns once every row is accepted by
// the queue, not when the rows finish.
type Dispatcher struct {
	client    client.Client
	taskQueue string
}

func NewDispatcher(c client.Client, taskQueue string) *Dispatcher {
	return &Dispatcher{client: c, taskQueue: taskQueue}
}

func (d *Dispatcher) Dispatch(ctx context.Context, job usecase.RowJob) error {
	opts := client.StartWorkflowOptions{
		ID:        "certificate-row-" + uuid.NewString(),
		TaskQueue: d.taskQueue,
	}
	if _, err := d.client.ExecuteWorkflow(ctx, opts, workflows.CertificateRowWorkflow, job); err != nil {
		return fmt.Errorf("start row workflow: %w", err)
	}
	return nil
}

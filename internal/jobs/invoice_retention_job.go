package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// InvoiceRetentionSchedule purges expired invoices hourly.
const InvoiceRetentionSchedule = "0 0 * * * *"

type expiredInvoicePurger interface {
	Handle(ctx context.Context, cmd commands.PurgeExpiredInvoicesCommand) (int64, error)
}

// InvoiceRetentionJob deletes invoices past their expiry. Reads already treat them as
// gone, so the schedule only bounds storage.
type InvoiceRetentionJob struct {
	handler expiredInvoicePurger
	now     func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewInvoiceRetentionJob(handler expiredInvoicePurger, logger *slog.Logger) *InvoiceRetentionJob {
	return &InvoiceRetentionJob{
		handler: handler,
		now:     time.Now,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "invoice_retention_job"),
	}
}

func (j *InvoiceRetentionJob) Start() error {
	_, err := j.cron.AddFunc(InvoiceRetentionSchedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Invoice retention job started", "schedule", InvoiceRetentionSchedule)
	return nil
}

func (j *InvoiceRetentionJob) Run(ctx context.Context) {
	deleted, err := j.handler.Handle(ctx, commands.NewPurgeExpiredInvoicesCommand(j.now()))
	if err != nil {
		j.logger.ErrorContext(ctx, "Invoice retention job failed", "error", err)
		return
	}
	if deleted > 0 {
		j.logger.InfoContext(ctx, "Purged expired invoices", "deleted", deleted)
	}
}

func (j *InvoiceRetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Invoice retention job stopped")
}

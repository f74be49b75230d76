package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	paymentExpiryJob    *PaymentExpiryJob
	invoiceRetentionJob *InvoiceRetentionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	expirePaymentsHandler pendingPaymentExpirer,
	pendingPaymentTTL time.Duration,
	purgeInvoicesHandler expiredInvoicePurger,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		paymentExpiryJob:    NewPaymentExpiryJob(expirePaymentsHandler, pendingPaymentTTL, logger),
		invoiceRetentionJob: NewInvoiceRetentionJob(purgeInvoicesHandler, logger),
	}
}

// StartAll starts all scheduled jobs. A failed start stops the jobs already running.
func (jm *JobManager) StartAll() error {
	if err := jm.paymentExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start payment expiry job: %w", err)
	}

	if err := jm.invoiceRetentionJob.Start(); err != nil {
		jm.paymentExpiryJob.Stop()
		return fmt.Errorf("failed to start invoice retention job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running sweeps to finish.
func (jm *JobManager) StopAll() {
	jm.invoiceRetentionJob.Stop()
	jm.paymentExpiryJob.Stop()
}

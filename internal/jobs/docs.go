// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds field enabled) and each one
// wraps a single command handler.
//
// # Available Jobs
//
//  1. PaymentExpiryJob - every 15 minutes cancels orders that stayed in
//     payment_pending longer than the configured TTL (PAYMENT_PENDING_TTL, 48h by
//     default). Pending payment records expire, used points are refunded and the member
//     is notified by the command handler.
//  2. InvoiceRetentionJob - hourly deletes invoices past their expiry (30 days for
//     franchise copies, 16 days for admin copies).
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expireHandler, 48*time.Hour, purgeHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick; handlers commit per batch, so
// partial progress is kept.
package jobs

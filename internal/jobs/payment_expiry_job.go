package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentExpirySchedule runs the expiry sweep every 15 minutes.
const PaymentExpirySchedule = "0 */15 * * * *"

const paymentExpiryBatch = commands.DefaultExpiryBatch

type pendingPaymentExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpirePendingPaymentsCommand) (int, error)
}

// PaymentExpiryJob cancels orders whose checkout stayed in payment_pending longer
// than ttl.
type PaymentExpiryJob struct {
	handler pendingPaymentExpirer
	ttl     time.Duration
	now     func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewPaymentExpiryJob(handler pendingPaymentExpirer, ttl time.Duration, logger *slog.Logger) *PaymentExpiryJob {
	return &PaymentExpiryJob{
		handler: handler,
		ttl:     ttl,
		now:     time.Now,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "payment_expiry_job"),
	}
}

func (j *PaymentExpiryJob) Start() error {
	_, err := j.cron.AddFunc(PaymentExpirySchedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Payment expiry job started", "schedule", PaymentExpirySchedule, "ttl", j.ttl.String())
	return nil
}

// Run performs one sweep. Batches repeat until a sweep cancels fewer orders than the
// batch size.
func (j *PaymentExpiryJob) Run(ctx context.Context) {
	total := 0
	for {
		cmd, err := commands.NewExpirePendingPaymentsCommand(j.now(), j.ttl, paymentExpiryBatch)
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment expiry job misconfigured", "error", err)
			return
		}
		n, err := j.handler.Handle(ctx, cmd)
		total += n
		if err != nil {
			j.logger.ErrorContext(ctx, "Payment expiry job failed", "error", err, "cancelled", total)
			return
		}
		if n < paymentExpiryBatch {
			break
		}
	}
	if total > 0 {
		j.logger.InfoContext(ctx, "Expired pending payments", "cancelled", total)
	}
}

func (j *PaymentExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Payment expiry job stopped")
}

package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expirerStub struct {
	results []int
	err     error
	calls   []commands.ExpirePendingPaymentsCommand
}

func (s *expirerStub) Handle(_ context.Context, cmd commands.ExpirePendingPaymentsCommand) (int, error) {
	s.calls = append(s.calls, cmd)
	if s.err != nil {
		return 0, s.err
	}
	n := s.results[0]
	s.results = s.results[1:]
	return n, nil
}

type purgerStub struct {
	calls []time.Time
}

func (s *purgerStub) Handle(_ context.Context, cmd commands.PurgeExpiredInvoicesCommand) (int64, error) {
	s.calls = append(s.calls, cmd.Now())
	return 3, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPaymentExpiryJob_RepeatsFullBatches(t *testing.T) {
	stub := &expirerStub{results: []int{paymentExpiryBatch, paymentExpiryBatch, 7}}
	job := NewPaymentExpiryJob(stub, 48*time.Hour, discardLogger())
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	job.Run(context.Background())

	require.Len(t, stub.calls, 3)
	assert.Equal(t, now.Add(-48*time.Hour), stub.calls[0].Cutoff())
	assert.Equal(t, paymentExpiryBatch, stub.calls[0].Limit())
}

func TestPaymentExpiryJob_StopsOnError(t *testing.T) {
	stub := &expirerStub{err: errors.New("db down")}
	job := NewPaymentExpiryJob(stub, time.Hour, discardLogger())

	job.Run(context.Background())

	assert.Len(t, stub.calls, 1)
}

func TestInvoiceRetentionJob_Run(t *testing.T) {
	stub := &purgerStub{}
	job := NewInvoiceRetentionJob(stub, discardLogger())
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	job.Run(context.Background())

	require.Len(t, stub.calls, 1)
	assert.Equal(t, now, stub.calls[0])
}

func TestJobManager_StartStop(t *testing.T) {
	jm := NewJobManager(&expirerStub{}, time.Hour, &purgerStub{}, discardLogger())
	require.NoError(t, jm.StartAll())
	assert.Len(t, jm.paymentExpiryJob.cron.Entries(), 1)
	assert.Len(t, jm.invoiceRetentionJob.cron.Entries(), 1)
	jm.StopAll()
}

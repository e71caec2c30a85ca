package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/payroll"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *captureWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func TestPayslipPublisher_PublishPayslip(t *testing.T) {
	w := &captureWriter{}
	p := newPayslipPublisher(w, "")

	event := payroll.PayslipEvent{
		EmployeeID: "emp-1",
		Email:      "alice@example.com",
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-31",
		TotalHours: 7,
		PaidAmount: decimal.RequireFromString("700.50"),
		SentAt:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishPayslip(context.Background(), event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, DefaultPayslipTopic, msg.Topic)
	assert.Equal(t, []byte("emp-1"), msg.Key)

	var decoded payroll.PayslipEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "alice@example.com", decoded.Email)
	assert.True(t, event.PaidAmount.Equal(decoded.PaidAmount))
}

func TestPayslipPublisher_WriterError(t *testing.T) {
	boom := errors.New("broker unavailable")
	p := newPayslipPublisher(&captureWriter{err: boom}, "custom.topic")

	err := p.PublishPayslip(context.Background(), payroll.PayslipEvent{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "custom.topic", p.topic)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NewNoopPublisher().PublishPayslip(context.Background(), payroll.PayslipEvent{}))
}

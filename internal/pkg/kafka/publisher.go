package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/payroll"
	"github.com/segmentio/kafka-go"
)

// DefaultPayslipTopic is used when no topic is configured.
const DefaultPayslipTopic = "payroll.payslip.sent"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// NewWriter returns a writer for brokers. The caller closes it.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

type noopPayslipPublisher struct{}

// NewNoopPublisher is used when no brokers are configured.
func NewNoopPublisher() payroll.Publisher {
	return noopPayslipPublisher{}
}

func (noopPayslipPublisher) PublishPayslip(context.Context, payroll.PayslipEvent) error {
	return nil
}

type kafkaPayslipPublisher struct {
	writer messageWriter
	topic  string
}

func NewPayslipPublisher(writer *kafka.Writer, topic string) payroll.Publisher {
	return newPayslipPublisher(writer, topic)
}

func newPayslipPublisher(writer messageWriter, topic string) *kafkaPayslipPublisher {
	if topic == "" {
		topic = DefaultPayslipTopic
	}
	return &kafkaPayslipPublisher{writer: writer, topic: topic}
}

func (p *kafkaPayslipPublisher) PublishPayslip(ctx context.Context, event payroll.PayslipEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.EmployeeID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("payslip_sent")},
		},
	})
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
)

// ReportMessage is the JSON value published for each finished report.
type ReportMessage struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Sentences   []string  `json:"sentences"`
	Narrative   string    `json:"narrative"`
	OutputFile  string    `json:"output_file"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher sends finished reports to a Kafka topic.
// It implements pipeline.Publisher.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the report topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.LeastBytes{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		// One message per run; don't hold it for the default 1s batch window.
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: w, topic: topic, logger: logger}
}

// Publish writes the report as a single message keyed by run id.
func (p *Publisher) Publish(ctx context.Context, runID string, report domain.Report, outputFile string) error {
	msg, err := serializeReport(runID, report, outputFile)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish report to %s: %w", p.topic, err)
	}
	p.logger.Debug("report published", "topic", p.topic, "sentences", len(report.Sentences))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeReport marshals a report into a Kafka message.
func serializeReport(runID string, report domain.Report, outputFile string) (kafkago.Message, error) {
	data, err := json.Marshal(ReportMessage{
		RunID:       runID,
		GeneratedAt: report.GeneratedAt.UTC(),
		Sentences:   report.Sentences,
		Narrative:   report.Narrative(),
		OutputFile:  outputFile,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(runID),
		Value: data,
		Time:  report.GeneratedAt,
		Headers: []kafkago.Header{
			{Key: "generated_at", Value: []byte(report.GeneratedAt.UTC().Format(time.RFC3339))},
			{Key: "sentence_count", Value: []byte(strconv.Itoa(len(report.Sentences)))},
		},
	}, nil
}

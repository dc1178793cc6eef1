package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TannerNelson16/radio-traffic-report-udot/internal/domain"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testReport() domain.Report {
	return domain.Report{
		Sentences: []string{
			domain.DefaultIntro,
			"I-84 is Wet with Rain weather.",
			domain.DefaultOutro,
		},
		GeneratedAt: time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestSerializeReport(t *testing.T) {
	msg, err := serializeReport("run-1", testReport(), "traffic_update.mp3")
	require.NoError(t, err)

	assert.Equal(t, []byte("run-1"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "generated_at", msg.Headers[0].Key)
	assert.Equal(t, []byte("2025-01-15T12:00:00Z"), msg.Headers[0].Value)
	assert.Equal(t, "sentence_count", msg.Headers[1].Key)
	assert.Equal(t, []byte("3"), msg.Headers[1].Value)

	var got ReportMessage
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.True(t, got.GeneratedAt.Equal(testReport().GeneratedAt))
	assert.Equal(t, testReport().Sentences, got.Sentences)
	assert.Equal(t, testReport().Narrative(), got.Narrative)
	assert.Equal(t, "traffic_update.mp3", got.OutputFile)
}

func TestSerializeReport_JSONFieldNames(t *testing.T) {
	msg, err := serializeReport("run-1", testReport(), "out.mp3")
	require.NoError(t, err)

	for _, field := range []string{`"run_id"`, `"generated_at"`, `"sentences"`, `"narrative"`, `"output_file"`} {
		assert.Contains(t, string(msg.Value), field)
	}
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w, topic: "traffic-reports", logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	require.NoError(t, p.Publish(context.Background(), "run-2", testReport(), "out.mp3"))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("run-2"), w.msgs[0].Key)
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unreachable")}
	p := &Publisher{writer: w, topic: "traffic-reports", logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := p.Publish(context.Background(), "run-3", testReport(), "out.mp3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "traffic-reports")
	assert.Contains(t, err.Error(), "broker unreachable")
}

func TestNewPublisher(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, "traffic-reports", slog.Default())
	t.Cleanup(func() { _ = p.Close() })

	w, ok := p.writer.(*kafkago.Writer)
	require.True(t, ok)
	assert.Equal(t, "traffic-reports", w.Topic)
	assert.Equal(t, kafkago.RequireAll, w.RequiredAcks)
}

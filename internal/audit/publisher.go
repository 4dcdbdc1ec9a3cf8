package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/avdeev/module-certification/internal/core/domain"
	"github.com/avdeev/module-certification/internal/core/port"
)

const (
	schemaVersion  = "1.0"
	auditEventType = "cert.audit.logged"
)

// Publisher delivers audit entries to Kafka.
type Publisher struct {
	producer *Producer
	logger   *zap.Logger
	service  string
	env      string
}

// NewPublisher constructs a Kafka-backed audit publisher.
func NewPublisher(producer *Producer, service, env string, logger *zap.Logger) *Publisher {
	return &Publisher{producer: producer, service: service, env: env, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// PublishAuditLogged publishes a cert.audit.logged event.
func (p *Publisher) PublishAuditLogged(ctx context.Context, entry domain.AuditEntry) error {
	id := entry.ID
	if id == "" {
		id = uuid.NewString()
	}

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	metadata := map[string]string{
		"service":     p.service,
		"environment": p.env,
	}

	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.IsValid() {
			metadata["trace_id"] = sc.TraceID().String()
		}
	}

	payload := struct {
		Action       string         `json:"action"`
		UserID       string         `json:"user_id"`
		UserEmail    string         `json:"user_email,omitempty"`
		UserRole     string         `json:"user_role,omitempty"`
		ResourceType string         `json:"resource_type,omitempty"`
		ResourceID   string         `json:"resource_id,omitempty"`
		Details      map[string]any `json:"details,omitempty"`
		IPAddress    string         `json:"ip_address,omitempty"`
		Timestamp    time.Time      `json:"timestamp"`
	}{
		Action:       entry.Action,
		UserID:       entry.UserID,
		UserEmail:    entry.UserEmail,
		UserRole:     string(entry.UserRole),
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Details:      entry.Details,
		IPAddress:    entry.IPAddress,
		Timestamp:    ts.UTC(),
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: auditEventType,
		UserID:    entry.UserID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal audit envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(auditEventType),
		Key:   sarama.StringEncoder(entry.UserID),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ port.AuditPublisher = (*Publisher)(nil)

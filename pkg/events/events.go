package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/aeronica/complaint-portal/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn}, nil
}

func (n *NATSPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSPublisher) Close() error {
	n.conn.Close()
	return nil
}

// NoopPublisher is used when no event bus is configured. Publishing is
// best-effort throughout the system, so dropping events is acceptable.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (NoopPublisher) Close() error                                       { return nil }

// Event subjects
const (
	ComplaintCreated       = "complaint.created"
	ComplaintStatusUpdated = "complaint.status.updated"
	OTPIssued              = "otp.issued"
)

// Event payloads
type ComplaintCreatedEvent struct {
	ComplaintID   int64     `json:"complaint_id"`
	ComplaintType string    `json:"complaint_type"`
	Urgency       string    `json:"urgency"`
	HasImage      bool      `json:"has_image"`
	CreatedAt     time.Time `json:"created_at"`
}

type ComplaintStatusUpdatedEvent struct {
	ComplaintID int64     `json:"complaint_id"`
	NewStatus   string    `json:"new_status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type OTPIssuedEvent struct {
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/google/uuid"

	"github.com/leadgate/api/internal/leads"
	"github.com/leadgate/api/pkg/logging"
)

// LeadCreatedV1 is the versioned payload announced for every stored lead.
// The message body and free-text fields are deliberately excluded.
type LeadCreatedV1 struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	LeadID    string    `json:"lead_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

const leadCreatedEventType = "lead.created.v1"

type queueClient interface {
	Send(ctx context.Context, body string) error
}

// SQSQueue implements queueClient backed by AWS/LocalStack SQS.
type SQSQueue struct {
	client   *sqs.Client
	queueURL string
}

// NewSQSQueue creates a queue wrapper around the provided SQS client.
func NewSQSQueue(client *sqs.Client, queueURL string) *SQSQueue {
	if client == nil {
		panic("events: SQS client cannot be nil")
	}
	if queueURL == "" {
		panic("events: SQS queueURL cannot be empty")
	}
	return &SQSQueue{
		client:   client,
		queueURL: queueURL,
	}
}

func (q *SQSQueue) Send(ctx context.Context, body string) error {
	_, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("events: failed to send SQS message: %w", err)
	}
	return nil
}

// Publisher announces lead.created events. Publishing is fire-and-forget: a
// failed send is logged and dropped, it never affects the submission outcome.
type Publisher struct {
	queue  queueClient
	logger *logging.Logger
}

// NewPublisher creates a publisher on top of the given queue.
func NewPublisher(queue queueClient, logger *logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Publisher{
		queue:  queue,
		logger: logger,
	}
}

// LeadCreated publishes a lead.created.v1 event for the stored lead.
func (p *Publisher) LeadCreated(ctx context.Context, lead *leads.Lead) {
	if p == nil || p.queue == nil || lead == nil {
		return
	}

	evt := LeadCreatedV1{
		EventID:   uuid.NewString(),
		EventType: leadCreatedEventType,
		LeadID:    lead.ID,
		Name:      lead.Name,
		Email:     lead.Email,
		Source:    lead.Source,
		CreatedAt: lead.CreatedAt,
	}

	body, err := json.Marshal(evt)
	if err != nil {
		p.logger.Error("failed to encode lead event", "error", err, "lead_id", lead.ID)
		return
	}

	if err := p.queue.Send(ctx, string(body)); err != nil {
		p.logger.Error("failed to publish lead event", "error", err, "lead_id", lead.ID)
		return
	}
	p.logger.Debug("lead event published", "lead_id", lead.ID, "event_id", evt.EventID)
}

var _ leads.EventPublisher = (*Publisher)(nil)

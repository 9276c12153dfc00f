package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/leadgate/api/internal/leads"
)

type fakeQueue struct {
	bodies []string
	err    error
}

func (f *fakeQueue) Send(ctx context.Context, body string) error {
	if f.err != nil {
		return f.err
	}
	f.bodies = append(f.bodies, body)
	return nil
}

func TestLeadCreatedPublishesEnvelope(t *testing.T) {
	queue := &fakeQueue{}
	pub := NewPublisher(queue, nil)

	created := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	pub.LeadCreated(context.Background(), &leads.Lead{
		ID:        "lead-1",
		Name:      "Ada",
		Email:     "ada@example.com",
		Message:   "Hello",
		Source:    "web",
		CreatedAt: created,
	})

	if len(queue.bodies) != 1 {
		t.Fatalf("expected one message, got %d", len(queue.bodies))
	}

	var evt LeadCreatedV1
	if err := json.Unmarshal([]byte(queue.bodies[0]), &evt); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	if evt.EventType != "lead.created.v1" {
		t.Errorf("unexpected event type %q", evt.EventType)
	}
	if evt.LeadID != "lead-1" || evt.Email != "ada@example.com" {
		t.Errorf("unexpected event payload: %+v", evt)
	}
	if evt.EventID == "" {
		t.Error("expected generated event id")
	}
	if !evt.CreatedAt.Equal(created) {
		t.Errorf("unexpected created_at %v", evt.CreatedAt)
	}
}

func TestLeadCreatedExcludesMessageBody(t *testing.T) {
	queue := &fakeQueue{}
	pub := NewPublisher(queue, nil)

	pub.LeadCreated(context.Background(), &leads.Lead{ID: "lead-1", Name: "Ada", Email: "a@b.c", Message: "secret plans"})

	var raw map[string]any
	if err := json.Unmarshal([]byte(queue.bodies[0]), &raw); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}
	for _, v := range raw {
		if s, ok := v.(string); ok && s == "secret plans" {
			t.Error("message body must not appear in the event")
		}
	}
}

func TestLeadCreatedSendFailureAbsorbed(t *testing.T) {
	pub := NewPublisher(&fakeQueue{err: errors.New("queue unavailable")}, nil)

	// Must not panic or propagate.
	pub.LeadCreated(context.Background(), &leads.Lead{ID: "lead-1", Name: "Ada", Email: "a@b.c"})
}

func TestLeadCreatedNilLead(t *testing.T) {
	queue := &fakeQueue{}
	pub := NewPublisher(queue, nil)

	pub.LeadCreated(context.Background(), nil)
	if len(queue.bodies) != 0 {
		t.Error("nil lead must not publish")
	}
}

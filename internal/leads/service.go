package leads

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/leadgate/api/internal/observability/metrics"
	"github.com/leadgate/api/pkg/logging"
)

var leadTracer = otel.Tracer("leadgate.internal.leads")

// NotifyResult reports the outcome of a single best-effort notification
// attempt. A false Sent is never an error.
type NotifyResult struct {
	Sent bool
}

// LeadNotifier sends a best-effort notification for a stored lead. Failures
// are absorbed by the implementation and reflected only in the result.
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead *Lead) NotifyResult
}

// EventPublisher announces stored leads to downstream consumers. Publishing is
// best-effort; implementations absorb their own failures.
type EventPublisher interface {
	LeadCreated(ctx context.Context, lead *Lead)
}

// ServiceConfig carries deployment-time pipeline policy.
type ServiceConfig struct {
	RequireConsent bool
}

// Service runs the submission pipeline: validate, persist, then notify.
// Validation failures stop the pipeline before any side effect. A failed
// persist aborts with no notification attempt. Once the write has succeeded
// the outcome is committed: notification and event publishing can no longer
// fail the submission.
type Service struct {
	repo      Repository
	notifier  LeadNotifier
	publisher EventPublisher
	cfg       ServiceConfig
	metrics   *metrics.LeadMetrics
	logger    *logging.Logger
	tracer    trace.Tracer
}

// NewService creates a submission service. notifier, publisher and m may be
// nil, disabling the corresponding step.
func NewService(repo Repository, notifier LeadNotifier, publisher EventPublisher, cfg ServiceConfig, m *metrics.LeadMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("leads: repository cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		cfg:       cfg,
		metrics:   m,
		logger:    logger,
		tracer:    leadTracer,
	}
}

// SubmitResult is the outcome of an accepted submission. Mailed is nil when
// no notifier is configured for this deployment.
type SubmitResult struct {
	Lead   *Lead
	Mailed *bool
}

// Submit runs one submission through the pipeline. Errors are ErrMissingField,
// ErrInvalidEmail, or a wrapped ErrPersistence.
func (s *Service) Submit(ctx context.Context, req SubmitLeadRequest) (*SubmitResult, error) {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "lead.submit")
	defer span.End()

	lead, err := req.Normalize(NormalizeOptions{RequireConsent: s.cfg.RequireConsent})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("leadgate.outcome", "rejected"))
		s.metrics.ObserveSubmission("rejected")
		return nil, err
	}
	span.SetAttributes(attribute.String("leadgate.source", lead.Source))

	stored, err := s.repo.Create(ctx, lead)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("leadgate.outcome", "failed"))
		s.metrics.ObserveSubmission("failed")
		return nil, err
	}
	span.SetAttributes(attribute.String("leadgate.lead_id", stored.ID))

	if s.publisher != nil {
		s.publisher.LeadCreated(ctx, stored)
	}

	result := &SubmitResult{Lead: stored}
	if s.notifier != nil {
		nr := s.notifier.NotifyLead(ctx, stored)
		sent := nr.Sent
		result.Mailed = &sent
		s.metrics.ObserveNotify(sent)
	}

	span.SetAttributes(attribute.String("leadgate.outcome", "accepted"))
	s.metrics.ObserveSubmission("accepted")
	s.metrics.ObserveSubmitLatency(time.Since(start).Seconds())
	s.logger.Info("lead accepted", "id", stored.ID, "source", stored.Source, "mailed", result.Mailed != nil && *result.Mailed)

	return result, nil
}

package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/adapter/queue"
	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/ports"
)

// SubjectWorkOrderCreated is the queue subject work-order events are
// published to.
const SubjectWorkOrderCreated = "workorder.created"

// Service fans a freshly built remediation plan out to the message queue
// and, when recipients are configured, to email. Delivery failures are
// reported to the caller but must never roll back plan creation.
type Service struct {
	queue      queue.MessageQueue
	email      ports.EmailService
	recipients []string
	log        *zap.Logger
}

// NewService creates a notification service. queue may not be nil; email
// may be nil when mail delivery is disabled.
func NewService(q queue.MessageQueue, email ports.EmailService, recipients []string, log *zap.Logger) *Service {
	return &Service{
		queue:      q,
		email:      email,
		recipients: recipients,
		log:        log,
	}
}

// NotifyPlan publishes the plan event and sends the alert mail. The first
// failure is returned after all channels were attempted.
func (s *Service) NotifyPlan(ctx context.Context, plan *domain.RemediationPlan) error {
	var firstErr error

	if err := s.publishEvent(plan); err != nil {
		s.log.Error("Failed to publish work order event",
			zap.String("work_order_id", plan.WorkOrderID),
			zap.Error(err),
		)
		firstErr = err
	}

	if err := s.sendMail(ctx, plan); err != nil {
		s.log.Error("Failed to send work order email",
			zap.String("work_order_id", plan.WorkOrderID),
			zap.Error(err),
		)
		if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

type workOrderEvent struct {
	WorkOrderID string                  `json:"work_order_id"`
	Priority    string                  `json:"priority"`
	Zone        string                  `json:"zone"`
	AnomalyType domain.AnomalyType      `json:"anomaly_type"`
	Plan        *domain.RemediationPlan `json:"plan"`
	Message     string                  `json:"message"`
}

func (s *Service) publishEvent(plan *domain.RemediationPlan) error {
	event := workOrderEvent{
		WorkOrderID: plan.WorkOrderID,
		Priority:    plan.Priority.Level,
		Zone:        plan.AnomalyDetails.Zone,
		AnomalyType: plan.AnomalyDetails.Type,
		Plan:        plan,
		Message:     PlanAlertText(plan),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal work order event: %w", err)
	}

	if err := s.queue.Publish(SubjectWorkOrderCreated, data); err != nil {
		return fmt.Errorf("publish work order event: %w", err)
	}

	s.log.Info("Published work order event",
		zap.String("subject", SubjectWorkOrderCreated),
		zap.String("work_order_id", plan.WorkOrderID),
		zap.String("priority", plan.Priority.Level),
	)
	return nil
}

func (s *Service) sendMail(ctx context.Context, plan *domain.RemediationPlan) error {
	if s.email == nil || len(s.recipients) == 0 {
		return nil
	}

	var firstErr error
	for _, to := range s.recipients {
		if err := s.email.SendWorkOrderAlert(ctx, to, plan); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

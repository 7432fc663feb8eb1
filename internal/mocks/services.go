package mocks

import (
	"context"
	"fmt"

	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/ports"
)

// MockMLClient is a mock implementation of MLClient interface
type MockMLClient struct {
	ScoreAnomaliesFunc func(ctx context.Context, records []domain.OperationalRecord) ([]ports.MLRecordScore, error)
	ForecastEnergyFunc func(ctx context.Context, records []domain.OperationalRecord, hoursAhead int) ([]ports.MLForecast, error)
	StatusFunc         func(ctx context.Context) (string, error)
}

func (m *MockMLClient) ScoreAnomalies(ctx context.Context, records []domain.OperationalRecord) ([]ports.MLRecordScore, error) {
	if m.ScoreAnomaliesFunc != nil {
		return m.ScoreAnomaliesFunc(ctx, records)
	}
	return nil, domain.ErrMLUnavailable
}

func (m *MockMLClient) ForecastEnergy(ctx context.Context, records []domain.OperationalRecord, hoursAhead int) ([]ports.MLForecast, error) {
	if m.ForecastEnergyFunc != nil {
		return m.ForecastEnergyFunc(ctx, records, hoursAhead)
	}
	return nil, domain.ErrMLUnavailable
}

func (m *MockMLClient) Status(ctx context.Context) (string, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx)
	}
	return "", domain.ErrMLUnavailable
}

// MockNotifier records every plan it is handed.
type MockNotifier struct {
	Plans          []*domain.RemediationPlan
	NotifyPlanFunc func(ctx context.Context, plan *domain.RemediationPlan) error
}

func (m *MockNotifier) NotifyPlan(ctx context.Context, plan *domain.RemediationPlan) error {
	if m.NotifyPlanFunc != nil {
		return m.NotifyPlanFunc(ctx, plan)
	}
	m.Plans = append(m.Plans, plan)
	return nil
}

// MockEmailService is a mock implementation of EmailService interface
type MockEmailService struct {
	Sent                   []SentEmail
	Alerts                 []WorkOrderAlert
	SendFunc               func(ctx context.Context, to, subject, body string) error
	SendHTMLFunc           func(ctx context.Context, to, subject, htmlBody string) error
	SendWorkOrderAlertFunc func(ctx context.Context, to string, plan *domain.RemediationPlan) error
}

type SentEmail struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

type WorkOrderAlert struct {
	To   string
	Plan *domain.RemediationPlan
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *MockEmailService) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	if m.SendHTMLFunc != nil {
		return m.SendHTMLFunc(ctx, to, subject, htmlBody)
	}
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, Body: htmlBody, HTML: true})
	return nil
}

func (m *MockEmailService) SendWorkOrderAlert(ctx context.Context, to string, plan *domain.RemediationPlan) error {
	if m.SendWorkOrderAlertFunc != nil {
		return m.SendWorkOrderAlertFunc(ctx, to, plan)
	}
	m.Alerts = append(m.Alerts, WorkOrderAlert{To: to, Plan: plan})
	return nil
}

// FixedIDGenerator issues sequential ids with a fixed prefix, keeping
// work-order assertions deterministic.
type FixedIDGenerator struct {
	Prefix string
	n      int
}

func (g *FixedIDGenerator) Next() string {
	g.n++
	return fmt.Sprintf("%s-%04d", g.Prefix, g.n)
}

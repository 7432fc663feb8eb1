package ports

import (
	"context"

	"github.com/plantops/greenops/internal/domain"
)

// AnalyticsService runs the batch pipeline: validation, KPI aggregation,
// rule-based anomaly detection and report assembly. Every call receives an
// explicit AnalysisConfig snapshot; there is no hidden global state.
type AnalyticsService interface {
	FetchData(ctx context.Context, filter domain.RecordFilter) ([]domain.OperationalRecord, error)
	ComputeKPIs(ctx context.Context, filter domain.RecordFilter) (*domain.KPISummary, error)
	DetectAnomalies(ctx context.Context, filter domain.RecordFilter, cfg domain.AnalysisConfig) ([]domain.AnomalyRecord, error)
	PlanActions(ctx context.Context, filter domain.RecordFilter, cfg domain.AnalysisConfig) ([]domain.ActionRecord, error)
	GenerateReport(ctx context.Context, filter domain.RecordFilter, cfg domain.AnalysisConfig) (string, *domain.Report, error)
}

// RemedyService is the standalone remediation path: priority ranking over
// raw anomaly-like inputs and full work-order plan synthesis.
type RemedyService interface {
	RankPriorities(ctx context.Context, anomalies []domain.RawAnomaly, limit int, cfg domain.AnalysisConfig) []domain.RankedAnomaly
	BuildRemediationPlan(ctx context.Context, anomaly domain.RawAnomaly, cfg domain.AnalysisConfig) (*domain.RemediationPlan, error)
}

// ConfigStore holds the current analysis thresholds. Get returns a copy so
// one pipeline run never observes a mix of old and new values.
type ConfigStore interface {
	Get() domain.AnalysisConfig
	Replace(cfg domain.AnalysisConfig)
}

// WorkOrderIDGenerator issues work-order identifiers. Implementations must
// be safe under concurrent plan creation.
type WorkOrderIDGenerator interface {
	Next() string
}

// MLRecordScore is the per-record verdict of the external scoring service.
type MLRecordScore struct {
	Timestamp       string  `json:"timestamp"`
	ZoneID          string  `json:"zone_id"`
	IsAnomaly       bool    `json:"is_anomaly"`
	AnomalyScore    float64 `json:"anomaly_score"`
	EnergyKWh       float64 `json:"energy_kwh"`
	ProductionUnits int     `json:"production_units"`
}

// MLForecast is one hour of the external energy forecast.
type MLForecast struct {
	HourAhead          int     `json:"hour_ahead"`
	PredictedEnergyKWh float64 `json:"predicted_energy_kwh"`
}

// MLClient talks to the optional external anomaly-scoring/forecasting
// service. An unconfigured client returns domain.ErrMLUnavailable; the
// rule-based detector never depends on it.
type MLClient interface {
	ScoreAnomalies(ctx context.Context, records []domain.OperationalRecord) ([]MLRecordScore, error)
	ForecastEnergy(ctx context.Context, records []domain.OperationalRecord, hoursAhead int) ([]MLForecast, error)
	Status(ctx context.Context) (string, error)
}

// Notifier delivers formatted remediation notifications. Thin adapter: no
// algorithmic content, failures are logged and never fail plan creation.
type Notifier interface {
	NotifyPlan(ctx context.Context, plan *domain.RemediationPlan) error
}

// EmailService sends outbound mail. SendWorkOrderAlert renders the
// templated work-order alert; Send and SendHTML are the generic paths.
type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
	SendHTML(ctx context.Context, to, subject, htmlBody string) error
	SendWorkOrderAlert(ctx context.Context, to string, plan *domain.RemediationPlan) error
}

package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/observability/telemetry"
	"github.com/plantops/greenops/internal/ports"
	"github.com/plantops/greenops/internal/service/planner"
	"github.com/plantops/greenops/internal/service/report"
)

const kpiCacheTTL = 30 * time.Second

// Service orchestrates the batch pipeline over a record repository. Every
// public method is re-entrant and side-effect-free; concurrent calls over
// the same dataset need no coordination.
type Service struct {
	repo  ports.RecordRepository
	cache ports.Cache
	log   *zap.Logger
}

func NewService(repo ports.RecordRepository, cache ports.Cache, log *zap.Logger) ports.AnalyticsService {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// FetchData returns the filtered validated dataset.
func (s *Service) FetchData(ctx context.Context, filter domain.RecordFilter) ([]domain.OperationalRecord, error) {
	records, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrEmptyResult
	}
	return records, nil
}

// ComputeKPIs aggregates the filtered dataset. Results are cached briefly
// since dashboards poll this endpoint.
func (s *Service) ComputeKPIs(ctx context.Context, filter domain.RecordFilter) (*domain.KPISummary, error) {
	key := kpiCacheKey(filter)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			var summary domain.KPISummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	records, err := s.FetchData(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := ComputeKPIs(records)

	if s.cache != nil {
		if encoded, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, key, string(encoded), kpiCacheTTL); err != nil {
				s.log.Warn("Failed to cache KPI summary", zap.Error(err))
			}
		}
	}
	return &summary, nil
}

// DetectAnomalies runs the five rule evaluators over the filtered dataset.
func (s *Service) DetectAnomalies(ctx context.Context, filter domain.RecordFilter, cfg domain.AnalysisConfig) ([]domain.AnomalyRecord, error) {
	records, err := s.FetchData(ctx, filter)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	anomalies := DetectAnomalies(records, cfg)
	telemetry.DetectorLatency.Observe(time.Since(start).Seconds())
	for _, a := range anomalies {
		telemetry.AnomaliesDetected.WithLabelValues(string(a.Type)).Inc()
	}

	s.log.Info("Anomaly detection completed",
		zap.Int("records", len(records)),
		zap.Int("anomalies", len(anomalies)),
	)
	return anomalies, nil
}

// PlanActions detects anomalies and maps each to a remediation action.
func (s *Service) PlanActions(ctx context.Context, filter domain.RecordFilter, cfg domain.AnalysisConfig) ([]domain.ActionRecord, error) {
	records, err := s.FetchData(ctx, filter)
	if err != nil {
		return nil, err
	}
	anomalies := DetectAnomalies(records, cfg)
	return planner.PlanActions(anomalies, records, cfg), nil
}

// GenerateReport runs the full pipeline and assembles both report forms.
func (s *Service) GenerateReport(ctx context.Context, filter domain.RecordFilter, cfg domain.AnalysisConfig) (string, *domain.Report, error) {
	records, err := s.FetchData(ctx, filter)
	if err != nil {
		return "", nil, err
	}

	start := time.Now()
	kpis := ComputeKPIs(records)
	anomalies := DetectAnomalies(records, cfg)
	actions := planner.PlanActions(anomalies, records, cfg)
	text, structured := report.Assemble(kpis, anomalies, actions, time.Now())

	telemetry.PipelineRuns.Inc()
	s.log.Info("Pipeline run completed",
		zap.Int("records", len(records)),
		zap.Int("anomalies", len(anomalies)),
		zap.Int("actions", len(actions)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, structured, nil
}

func kpiCacheKey(filter domain.RecordFilter) string {
	return fmt.Sprintf("kpis:%s:%s:%s:%d:%d",
		filter.ZoneID, filter.Shift, filter.Status,
		filter.StartDate.Unix(), filter.EndDate.Unix())
}

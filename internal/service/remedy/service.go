package remedy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/ports"
)

// Service implements the standalone remediation path: priority ranking and
// full work-order plan synthesis. The id generator is injected so callers
// choose between counter-based and UUID-based identifiers.
type Service struct {
	idgen    ports.WorkOrderIDGenerator
	notifier ports.Notifier
	log      *zap.Logger
}

// NewService creates a remedy service. notifier may be nil when no
// delivery channel is configured.
func NewService(idgen ports.WorkOrderIDGenerator, notifier ports.Notifier, log *zap.Logger) *Service {
	return &Service{
		idgen:    idgen,
		notifier: notifier,
		log:      log,
	}
}

// RankPriorities scores and ranks anomaly-like inputs; see RankPriorities
// in priority.go for the scoring rules.
func (s *Service) RankPriorities(ctx context.Context, anomalies []domain.RawAnomaly, limit int, cfg domain.AnalysisConfig) []domain.RankedAnomaly {
	return RankPriorities(anomalies, limit, cfg)
}

// BuildRemediationPlan synthesizes a complete work-order plan from one
// anomaly description. Notification failures are logged, never returned:
// the plan exists regardless of delivery.
func (s *Service) BuildRemediationPlan(ctx context.Context, anomaly domain.RawAnomaly, cfg domain.AnalysisConfig) (*domain.RemediationPlan, error) {
	now := time.Now().UTC()

	waste := anomaly.EnergyKWh - anomaly.ExpectedKWh
	if waste < 0 {
		waste = 0
	}

	severity := anomaly.Severity
	if severity == "" {
		severity = "MEDIUM"
	}

	anomalyType := anomaly.Type
	if anomalyType == "" {
		anomalyType = "UNKNOWN"
	}
	zone := anomaly.Zone
	if zone == "" {
		zone = "Unknown Zone"
	}
	detectedAt := anomaly.Timestamp
	if detectedAt.IsZero() {
		detectedAt = now
	}

	profile, known := profileFor(anomalyType)
	impact := CalculateFinancialImpact(waste, cfg)
	info := CalculatePriorityScore(impact.CostPerDay, severity, anomalyType)

	deadlineHours := 24
	if info.Priority == "CRITICAL" {
		deadlineHours = 2
	}

	description := anomaly.Note
	if description == "" {
		description = fmt.Sprintf("%s detected in %s", humanizeType(anomalyType), zone)
	}

	steps := make([]domain.RemediationStep, len(profile.FixSteps))
	for i, action := range profile.FixSteps {
		steps[i] = domain.RemediationStep{
			Step:        i + 1,
			Action:      action,
			Status:      "PENDING",
			Responsible: profile.ResponsibleTeam,
		}
	}

	plan := &domain.RemediationPlan{
		WorkOrderID: s.idgen.Next(),
		CreatedAt:   now,
		Status:      domain.WorkOrderOpen,
		AnomalyDetails: domain.AnomalyDetails{
			Type:        anomalyType,
			Category:    profile.Category,
			Zone:        zone,
			Severity:    severity,
			DetectedAt:  detectedAt,
			Description: description,
		},
		Priority: domain.PlanPriority{
			Level:    info.Priority,
			Score:    info.Score,
			Urgency:  info.Urgency,
			Deadline: now.Add(time.Duration(deadlineHours) * time.Hour),
		},
		FinancialImpact: impact,
		RootCauseAnalysis: domain.RootCauseAnalysis{
			LikelyCauses:          profile.RootCauses,
			InvestigationRequired: !known,
		},
		RemediationSteps: steps,
		ResourceEstimates: domain.ResourceEstimates{
			EstimatedTime:   profile.TypicalFixTime,
			EstimatedCost:   profile.TypicalCost,
			ResponsibleTeam: profile.ResponsibleTeam,
			RequiredSkills:  []string{"Equipment diagnosis", "Repair/adjustment"},
		},
		ExpectedOutcome: expectedOutcome(waste, impact, profile),
	}

	s.log.Info("Remediation plan created",
		zap.String("work_order_id", plan.WorkOrderID),
		zap.String("type", string(anomalyType)),
		zap.String("priority", info.Priority),
	)

	if s.notifier != nil {
		if err := s.notifier.NotifyPlan(ctx, plan); err != nil {
			s.log.Warn("Failed to deliver remediation notification",
				zap.String("work_order_id", plan.WorkOrderID),
				zap.Error(err),
			)
		}
	}

	return plan, nil
}

// expectedOutcome projects annualized savings with the crude payback/ROI
// placeholders: a free fix pays back immediately with unbounded ROI,
// anything else is quoted optimistically.
func expectedOutcome(wasteKWh float64, impact domain.FinancialImpact, profile anomalyProfile) domain.ExpectedOutcome {
	payback := "< 1 month"
	roi := "500%+"
	if strings.Contains(profile.TypicalCost, "$0") {
		payback = "Immediate"
		roi = "∞"
	}
	return domain.ExpectedOutcome{
		EnergySavingsKWhYear: round2(wasteKWh * 24 * 365),
		CostSavingsYear:      impact.PotentialAnnualSavings,
		PaybackPeriod:        payback,
		ROIPercent:           roi,
	}
}

func humanizeType(t domain.AnomalyType) string {
	words := strings.Split(strings.ToLower(string(t)), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

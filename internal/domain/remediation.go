package domain

import "time"

// RawAnomaly is the loose input shape accepted by the standalone priority
// ranker and remediation-plan builder. ExpectedKWh is the consumption the
// caller believes is normal; waste is EnergyKWh - ExpectedKWh.
type RawAnomaly struct {
	Type        AnomalyType `json:"type"`
	Zone        string      `json:"zone,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
	EnergyKWh   float64     `json:"energy_kwh"`
	ExpectedKWh float64     `json:"expected_kwh"`
	Severity    string      `json:"severity,omitempty"`
	Note        string      `json:"note,omitempty"`
}

// FinancialImpact extrapolates one hour of energy waste to longer horizons.
type FinancialImpact struct {
	EnergyWasteKWhPerHour  float64 `json:"energy_waste_kwh_per_hour"`
	CostPerHour            float64 `json:"cost_per_hour"`
	CostPerDay             float64 `json:"cost_per_day"`
	CostPerMonth           float64 `json:"cost_per_month"`
	CostPerYear            float64 `json:"cost_per_year"`
	PotentialAnnualSavings float64 `json:"potential_annual_savings"`
}

// PriorityInfo is the computed priority classification of an anomaly.
type PriorityInfo struct {
	Score    int    `json:"score"`
	Priority string `json:"priority"`
	Urgency  string `json:"urgency"`
}

// RankedAnomaly is one entry of the ranker output.
type RankedAnomaly struct {
	Anomaly       RawAnomaly `json:"anomaly"`
	PriorityScore int        `json:"priority_score"`
	PriorityLevel string     `json:"priority_level"`
	AnnualSavings float64    `json:"annual_savings"`
	Urgency       string     `json:"urgency"`
}

// WorkOrderStatus tracks a remediation work order. Transitions past OPEN
// are managed by external systems.
type WorkOrderStatus string

const (
	WorkOrderOpen   WorkOrderStatus = "OPEN"
	WorkOrderClosed WorkOrderStatus = "CLOSED"
)

// RemediationStep is one fix step inside a remediation plan.
type RemediationStep struct {
	Step        int    `json:"step"`
	Action      string `json:"action"`
	Status      string `json:"status"`
	Responsible string `json:"responsible"`
}

// AnomalyDetails describes the anomaly a plan remediates.
type AnomalyDetails struct {
	Type        AnomalyType `json:"type"`
	Category    string      `json:"category"`
	Zone        string      `json:"zone"`
	Severity    string      `json:"severity"`
	DetectedAt  time.Time   `json:"detected_at"`
	Description string      `json:"description"`
}

// PlanPriority carries the priority block of a remediation plan.
type PlanPriority struct {
	Level    string    `json:"level"`
	Score    int       `json:"score"`
	Urgency  string    `json:"urgency"`
	Deadline time.Time `json:"deadline"`
}

// RootCauseAnalysis lists candidate causes for the anomaly.
type RootCauseAnalysis struct {
	LikelyCauses          []string `json:"likely_causes"`
	InvestigationRequired bool     `json:"investigation_required"`
}

// ResourceEstimates summarizes effort and cost to execute the plan.
type ResourceEstimates struct {
	EstimatedTime   string   `json:"estimated_time"`
	EstimatedCost   string   `json:"estimated_cost"`
	ResponsibleTeam string   `json:"responsible_team"`
	RequiredSkills  []string `json:"required_skills"`
}

// ExpectedOutcome projects the benefit of completing the plan. Payback and
// ROI are illustrative placeholders, not computed financial models.
type ExpectedOutcome struct {
	EnergySavingsKWhYear float64 `json:"energy_savings_kwh_year"`
	CostSavingsYear      float64 `json:"cost_savings_year"`
	PaybackPeriod        string  `json:"payback_period"`
	ROIPercent           string  `json:"roi_percent"`
}

// RemediationPlan is the full work-order object built from one anomaly
// description by the standalone remediation path.
type RemediationPlan struct {
	WorkOrderID       string            `json:"work_order_id"`
	CreatedAt         time.Time         `json:"created_at"`
	Status            WorkOrderStatus   `json:"status"`
	AnomalyDetails    AnomalyDetails    `json:"anomaly_details"`
	Priority          PlanPriority      `json:"priority"`
	FinancialImpact   FinancialImpact   `json:"financial_impact"`
	RootCauseAnalysis RootCauseAnalysis `json:"root_cause_analysis"`
	RemediationSteps  []RemediationStep `json:"remediation_steps"`
	ResourceEstimates ResourceEstimates `json:"resource_estimates"`
	ExpectedOutcome   ExpectedOutcome   `json:"expected_outcome"`
}

package domain

// ActionPriority is the fixed per-anomaly-type urgency of a planned action.
type ActionPriority string

const (
	PriorityHigh   ActionPriority = "HIGH"
	PriorityMedium ActionPriority = "MEDIUM"
	PriorityLow    ActionPriority = "LOW"
)

// ActionRecord is one recommended remediation tied 1:1 to an AnomalyRecord.
// Savings are either per-hour (record-scoped anomalies) or per-period
// (plant-scoped anomalies); the unused set stays nil.
type ActionRecord struct {
	ID       string         `json:"id"`
	Priority ActionPriority `json:"priority"`
	Title    string         `json:"title"`
	Zone     string         `json:"zone"`

	SavingsKWhPerHour        *float64 `json:"expected_savings_kwh_per_hour,omitempty"`
	SavingsCO2KgPerHour      *float64 `json:"expected_savings_co2_kg_per_hour,omitempty"`
	SavingsCurrencyPerHour   *float64 `json:"expected_savings_currency_per_hour,omitempty"`
	SavingsKWhPerPeriod      *float64 `json:"expected_savings_kwh_per_period,omitempty"`
	SavingsCO2KgPerPeriod    *float64 `json:"expected_savings_co2_kg_per_period,omitempty"`
	SavingsCurrencyPerPeriod *float64 `json:"expected_savings_currency_per_period,omitempty"`

	Implementation string        `json:"implementation"`
	RelatedAnomaly AnomalyRecord `json:"related_anomaly"`
}

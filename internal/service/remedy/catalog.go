package remedy

import "github.com/plantops/greenops/internal/domain"

// anomalyProfile is the fixed remediation knowledge for one anomaly type:
// likely causes, fix steps, owning team and a severity weighting applied
// to the priority score.
type anomalyProfile struct {
	Category           string
	TypicalFixTime     string
	TypicalCost        string
	SeverityMultiplier float64
	RootCauses         []string
	FixSteps           []string
	ResponsibleTeam    string
}

// anomalyCatalog maps the known anomaly types to their remediation
// profiles. Unrecognized types use genericProfile and are marked as
// requiring investigation.
var anomalyCatalog = map[domain.AnomalyType]anomalyProfile{
	"PAINT_OVEN_IDLE": {
		Category:           "Equipment Misuse",
		TypicalFixTime:     "15 minutes",
		TypicalCost:        "$0 (timer adjustment)",
		SeverityMultiplier: 1.5,
		RootCauses: []string{
			"Timer malfunction",
			"Manual override not disabled",
			"Scheduling gap miscommunication",
		},
		FixSteps: []string{
			"Inspect paint oven timer settings",
			"Verify auto-shutdown during production gaps",
			"Test timer with production schedule",
			"Document timer configuration in maintenance log",
		},
		ResponsibleTeam: "Maintenance Team",
	},
	"COMPRESSED_AIR_LEAK": {
		Category:           "Equipment Failure",
		TypicalFixTime:     "30-45 minutes",
		TypicalCost:        "$50-150 (seal/valve replacement)",
		SeverityMultiplier: 1.2,
		RootCauses: []string{
			"Worn seal or gasket",
			"Loose connection",
			"Valve malfunction",
			"Pipe crack or damage",
		},
		FixSteps: []string{
			"Locate leak using ultrasonic detector",
			"Isolate affected zone/equipment",
			"Replace damaged seals or valves",
			"Pressure test after repair",
			"Monitor for 24 hours post-fix",
		},
		ResponsibleTeam: "Maintenance Team",
	},
	"HVAC_INEFFICIENCY": {
		Category:           "Climate Control",
		TypicalFixTime:     "20 minutes",
		TypicalCost:        "$0 (setting adjustment)",
		SeverityMultiplier: 0.8,
		RootCauses: []string{
			"Incorrect temperature setpoint",
			"Zone overcooling/overheating",
			"Sensor calibration drift",
			"Insulation gaps",
		},
		FixSteps: []string{
			"Review and adjust temperature setpoints",
			"Verify zone sensors are calibrated",
			"Check for air leaks or insulation gaps",
			"Optimize HVAC schedule with production hours",
		},
		ResponsibleTeam: "Facilities Team",
	},
	"STANDBY_POWER_EXCESSIVE": {
		Category:           "Energy Waste",
		TypicalFixTime:     "10 minutes",
		TypicalCost:        "$0 (shutdown procedure)",
		SeverityMultiplier: 1.0,
		RootCauses: []string{
			"Equipment left running during breaks",
			"No automated shutdown",
			"Operator oversight",
			"Missing shutdown procedure",
		},
		FixSteps: []string{
			"Identify equipment running in standby",
			"Create/update shutdown checklist",
			"Train operators on shutdown procedures",
			"Implement automated shutdown timers",
		},
		ResponsibleTeam: "Operations Team",
	},
	"PRODUCTION_EFFICIENCY_DROP": {
		Category:           "Process Optimization",
		TypicalFixTime:     "Variable (investigation required)",
		TypicalCost:        "Variable",
		SeverityMultiplier: 1.3,
		RootCauses: []string{
			"Machine calibration drift",
			"Material quality issues",
			"Operator training gap",
			"Maintenance backlog",
		},
		FixSteps: []string{
			"Analyze production data for patterns",
			"Inspect machine settings and calibration",
			"Review material batch quality",
			"Schedule preventive maintenance",
			"Provide operator training if needed",
		},
		ResponsibleTeam: "Production & Maintenance Teams",
	},
}

var genericProfile = anomalyProfile{
	Category:           "Unknown",
	TypicalFixTime:     "To be determined",
	TypicalCost:        "To be estimated",
	SeverityMultiplier: 1.0,
	RootCauses:         []string{"Investigation required"},
	FixSteps: []string{
		"Analyze anomaly",
		"Determine root cause",
		"Implement fix",
	},
	ResponsibleTeam: "Maintenance Team",
}

// profileFor returns the catalog profile for a type, with the generic
// fallback for anything unrecognized.
func profileFor(t domain.AnomalyType) (anomalyProfile, bool) {
	p, ok := anomalyCatalog[t]
	if !ok {
		return genericProfile, false
	}
	return p, true
}

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/plantops/greenops/internal/domain"
)

const divider = "═══════════════════════════════════════════"

// Assemble merges KPIs, anomalies and actions into a console-friendly
// narrative and the equivalent structured report. Purely presentational:
// nothing is filtered or reordered, and an empty anomaly list prints an
// explicit "None" line instead of dropping the section.
func Assemble(kpis domain.KPISummary, anomalies []domain.AnomalyRecord, actions []domain.ActionRecord, now time.Time) (string, *domain.Report) {
	var b strings.Builder

	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(divider)
	line("  AUTOMOTIVE PLANT SUSTAINABILITY REPORT")
	line("  Date: %s", now.UTC().Format("2006-01-02"))
	line(divider)
	line("")
	line("PRODUCTION METRICS:")
	line("   • Vehicles Produced: %d", kpis.TotalVehicles)
	line("   • Energy Consumed: %.2f kWh", kpis.TotalEnergyKWh)
	line("   • Energy per Vehicle: %s kWh", formatOptional(kpis.EnergyPerVehicle))
	line("   • CO2 Emitted: %.2f kg", kpis.TotalCO2Kg)
	line("   • CO2 per Vehicle: %s kg", formatOptional(kpis.CO2PerVehicle))
	line("")
	line("ENERGY CONSUMPTION BY ZONE:")
	for _, z := range kpis.ZoneEnergy {
		line("   • %s: %.2f kWh (%.2f%%)", z.ZoneID, z.EnergyKWh, z.SharePercent)
	}
	line("")
	line("ANOMALIES DETECTED:")
	if len(anomalies) == 0 {
		line("   None")
	} else {
		for i, a := range anomalies {
			zone := a.Zone
			if zone == "" {
				zone = "N/A"
			}
			line("%d. %s - %s - %s", i+1, a.Type, zone, a.Note)
		}
	}
	line("")
	line("RECOMMENDED ACTIONS:")
	for _, act := range actions {
		line(" - [%s] %s (Zone: %s)", act.Priority, act.Title, act.Zone)
		if act.SavingsKWhPerHour != nil {
			line("    Estimated savings: %.2f kWh / hr, CO2 %.2f kg / hr, Cost %.2f / hr",
				*act.SavingsKWhPerHour, *act.SavingsCO2KgPerHour, *act.SavingsCurrencyPerHour)
		}
		if act.SavingsKWhPerPeriod != nil {
			line("    Estimated savings: %.2f kWh, CO2 %.2f kg, Cost %.2f over the period",
				*act.SavingsKWhPerPeriod, *act.SavingsCO2KgPerPeriod, *act.SavingsCurrencyPerPeriod)
		}
	}
	line("")
	line("SDG9 ALIGNMENT: Industry innovation + sustainable infrastructure")

	structured := &domain.Report{
		KPIs:        kpis,
		Anomalies:   anomalies,
		Actions:     actions,
		GeneratedAt: now.UTC(),
	}
	return b.String(), structured
}

func formatOptional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

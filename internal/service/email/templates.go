package email

// workOrderAlertTemplate notifies the maintenance team about a new
// remediation work order.
const workOrderAlertTemplate = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2e7d32; color: white; padding: 20px; text-align: center; }
        .priority { font-size: 18px; font-weight: bold; }
        .content { padding: 20px; background-color: #f9f9f9; }
        .impact { background-color: #fff3e0; padding: 15px; margin: 15px 0; border-left: 4px solid #ff9800; }
        .steps { background-color: #e8f5e9; padding: 15px; margin: 15px 0; }
        .footer { text-align: center; padding: 20px; font-size: 12px; color: #777; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>GreenOps Work Order</h1>
            <p class="priority">{{.Priority}} PRIORITY - {{.WorkOrderID}}</p>
        </div>
        <div class="content">
            <p><strong>Anomaly:</strong> {{.AnomalyType}}</p>
            <p><strong>Zone:</strong> {{.Zone}}</p>
            <p>{{.Description}}</p>
            <div class="impact">
                <p><strong>Current waste:</strong> ${{.CostPerDay}}/day (${{.CostPerYear}}/year)</p>
                <p><strong>Potential savings:</strong> ${{.SavingsYear}}/year</p>
            </div>
            <div class="steps">
                <p><strong>Remediation steps:</strong></p>
                <ol>
                {{range .Steps}}
                    <li>{{.Action}} <em>({{.Responsible}})</em></li>
                {{end}}
                </ol>
            </div>
            <p><strong>Responsible team:</strong> {{.Team}}</p>
            <p><strong>Estimated effort:</strong> {{.EstimatedTime}}</p>
            <p><strong>Deadline:</strong> {{.Urgency}}</p>
        </div>
        <div class="footer">
            <p>GreenOps Plant Sustainability Platform</p>
        </div>
    </div>
</body>
</html>
`

// dailyReportTemplate wraps the plain-text sustainability report.
const dailyReportTemplate = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #1565c0; color: white; padding: 20px; text-align: center; }
        .kpis { display: block; padding: 15px; background-color: #e3f2fd; margin: 15px 0; }
        .report { background-color: #f5f5f5; padding: 15px; font-family: monospace; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; font-size: 12px; color: #777; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Daily Sustainability Report</h1>
            <p>{{.GeneratedAt}}</p>
        </div>
        <div class="kpis">
            <p><strong>Total energy:</strong> {{.TotalEnergyKWh}} kWh</p>
            <p><strong>Vehicles produced:</strong> {{.TotalVehicles}}</p>
            <p><strong>Anomalies:</strong> {{.AnomalyCount}} | <strong>Actions:</strong> {{.ActionCount}}</p>
        </div>
        <div class="report">{{.ReportText}}</div>
        <div class="footer">
            <p>GreenOps Plant Sustainability Platform</p>
        </div>
    </div>
</body>
</html>
`

// anomalyDigestTemplate summarizes detector findings in a table.
const anomalyDigestTemplate = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #c62828; color: white; padding: 20px; text-align: center; }
        table { width: 100%; border-collapse: collapse; margin: 15px 0; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; font-size: 13px; }
        th { background-color: #ffebee; }
        .footer { text-align: center; padding: 20px; font-size: 12px; color: #777; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Anomaly Digest</h1>
            <p>{{.Count}} finding(s)</p>
        </div>
        <table>
            <tr><th>Type</th><th>Zone</th><th>Timestamp</th><th>Detail</th></tr>
            {{range .Anomalies}}
            <tr><td>{{.Type}}</td><td>{{.Zone}}</td><td>{{.Timestamp}}</td><td>{{.Note}}</td></tr>
            {{end}}
        </table>
        <div class="footer">
            <p>GreenOps Plant Sustainability Platform</p>
        </div>
    </div>
</body>
</html>
`

package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
)

// Provider defines the interface for email providers
type Provider interface {
	Send(ctx context.Context, to, subject, body string, isHTML bool) error
}

// Config holds email service configuration
type Config struct {
	// Provider type: "sendgrid" or "smtp"
	Provider string

	// From email address
	FromEmail string
	FromName  string

	// SendGrid configuration
	SendGridAPIKey string

	// SMTP configuration (for Mailhog or other SMTP servers)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool

	// Base URL for links in emails
	BaseURL string
}

// DefaultConfig returns a default configuration for development (Mailhog)
func DefaultConfig() *Config {
	return &Config{
		Provider:   "smtp",
		FromEmail:  "noreply@greenops.local",
		FromName:   "GreenOps",
		SMTPHost:   "localhost",
		SMTPPort:   1025, // Mailhog default port
		SMTPUseTLS: false,
		BaseURL:    "http://localhost:3000",
	}
}

// Service implements the EmailService interface
type Service struct {
	config    *Config
	provider  Provider
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewService creates a new email service
func NewService(config *Config, log *zap.Logger) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}

	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
		log:       log,
	}

	switch config.Provider {
	case "sendgrid":
		if config.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SendGrid API key is required")
		}
		s.provider = NewSendGridProvider(config.SendGridAPIKey, config.FromEmail, config.FromName)
	case "smtp":
		s.provider = NewSMTPProvider(
			config.SMTPHost,
			config.SMTPPort,
			config.SMTPUsername,
			config.SMTPPassword,
			config.FromEmail,
			config.FromName,
			config.SMTPUseTLS,
		)
	default:
		return nil, fmt.Errorf("unknown email provider: %s", config.Provider)
	}

	s.loadTemplates()

	return s, nil
}

// loadTemplates loads all email templates
func (s *Service) loadTemplates() {
	s.templates["workorder_alert"] = template.Must(template.New("workorder_alert").Parse(workOrderAlertTemplate))
	s.templates["daily_report"] = template.Must(template.New("daily_report").Parse(dailyReportTemplate))
	s.templates["anomaly_digest"] = template.Must(template.New("anomaly_digest").Parse(anomalyDigestTemplate))
}

// Send sends a generic email
func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	s.log.Info("Sending email",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	if err := s.provider.Send(ctx, to, subject, body, false); err != nil {
		s.log.Error("Failed to send email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendHTML sends an HTML email
func (s *Service) SendHTML(ctx context.Context, to, subject, htmlBody string) error {
	s.log.Info("Sending HTML email",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	if err := s.provider.Send(ctx, to, subject, htmlBody, true); err != nil {
		s.log.Error("Failed to send HTML email",
			zap.String("to", to),
			zap.Error(err),
		)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}

	return nil
}

// SendTemplate sends an email using a template
func (s *Service) SendTemplate(ctx context.Context, to, templateName string, data map[string]interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template not found: %s", templateName)
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	data["BaseURL"] = s.config.BaseURL

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject, ok := data["Subject"].(string)
	if !ok {
		subject = "Notification from GreenOps"
	}

	return s.SendHTML(ctx, to, subject, buf.String())
}

// SendWorkOrderAlert sends a remediation work-order alert
func (s *Service) SendWorkOrderAlert(ctx context.Context, to string, plan *domain.RemediationPlan) error {
	data := map[string]interface{}{
		"Subject":       fmt.Sprintf("[%s] Work Order %s", plan.Priority.Level, plan.WorkOrderID),
		"WorkOrderID":   plan.WorkOrderID,
		"Priority":      plan.Priority.Level,
		"Urgency":       plan.Priority.Urgency,
		"Zone":          plan.AnomalyDetails.Zone,
		"AnomalyType":   strings.ReplaceAll(string(plan.AnomalyDetails.Type), "_", " "),
		"Description":   plan.AnomalyDetails.Description,
		"CostPerDay":    fmt.Sprintf("%.2f", plan.FinancialImpact.CostPerDay),
		"CostPerYear":   fmt.Sprintf("%.0f", plan.FinancialImpact.CostPerYear),
		"SavingsYear":   fmt.Sprintf("%.0f", plan.ExpectedOutcome.CostSavingsYear),
		"Steps":         plan.RemediationSteps,
		"Team":          plan.ResourceEstimates.ResponsibleTeam,
		"EstimatedTime": plan.ResourceEstimates.EstimatedTime,
	}

	return s.SendTemplate(ctx, to, "workorder_alert", data)
}

// SendDailyReport sends the assembled sustainability report
func (s *Service) SendDailyReport(ctx context.Context, to, reportText string, report *domain.Report) error {
	data := map[string]interface{}{
		"Subject":        "Daily Sustainability Report",
		"GeneratedAt":    report.GeneratedAt.Format("2006-01-02 15:04"),
		"TotalEnergyKWh": fmt.Sprintf("%.2f", report.KPIs.TotalEnergyKWh),
		"TotalVehicles":  report.KPIs.TotalVehicles,
		"AnomalyCount":   len(report.Anomalies),
		"ActionCount":    len(report.Actions),
		"ReportText":     reportText,
	}

	return s.SendTemplate(ctx, to, "daily_report", data)
}

// SendAnomalyDigest sends a digest of detected anomalies
func (s *Service) SendAnomalyDigest(ctx context.Context, to string, anomalies []domain.AnomalyRecord) error {
	type digestRow struct {
		Type      string
		Zone      string
		Timestamp string
		Note      string
	}

	rows := make([]digestRow, 0, len(anomalies))
	for _, a := range anomalies {
		rows = append(rows, digestRow{
			Type:      string(a.Type),
			Zone:      a.Zone,
			Timestamp: a.Timestamp.Format("2006-01-02 15:04"),
			Note:      a.Note,
		})
	}

	data := map[string]interface{}{
		"Subject":   fmt.Sprintf("Anomaly Digest: %d finding(s)", len(anomalies)),
		"Count":     len(anomalies),
		"Anomalies": rows,
	}

	return s.SendTemplate(ctx, to, "anomaly_digest", data)
}

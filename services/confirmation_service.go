package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/TravelTales/travel-claims-backend/config"
	"github.com/TravelTales/travel-claims-backend/logger"
	"github.com/TravelTales/travel-claims-backend/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"
)

type ConfirmationMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// ConfirmationService sends a confirmation email to the submitter after a
// claim has been persisted.
type ConfirmationService struct {
	config  *config.EmailConfig
	client  *resend.Client
	metrics *ConfirmationMetrics
}

func NewConfirmationService(cfg *config.EmailConfig) *ConfirmationService {
	return NewConfirmationServiceWithRegistry(cfg, prometheus.DefaultRegisterer)
}

func NewConfirmationServiceWithRegistry(cfg *config.EmailConfig, reg prometheus.Registerer) *ConfirmationService {
	logger.GetLogger().Infow("Initializing confirmation email service",
		"from", cfg.FromAddress)
	client := resend.NewClient(cfg.ResendAPIKey)
	metrics := &ConfirmationMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "travelclaims_email_send_duration_seconds",
			Help:    "Time taken to send confirmation emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travelclaims_email_errors_total",
			Help: "Total number of confirmation email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "travelclaims_emails_sent_total",
			Help: "Total number of confirmation emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	return &ConfirmationService{
		config:  cfg,
		client:  client,
		metrics: metrics,
	}
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<h2>Thanks for your submission, {{.Name}}!</h2>
<p>We received your travel claim for {{.DateOfTravel}} and will review it shortly.</p>
<p>Reference: {{.Reference}}</p>
`))

type confirmationData struct {
	Name         string
	DateOfTravel string
	Reference    string
}

// SendConfirmation sends the confirmation email for a persisted submission.
func (s *ConfirmationService) SendConfirmation(ctx context.Context, sub *types.Submission) error {
	startTime := time.Now()
	log := logger.GetLogger()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	var body bytes.Buffer
	err := confirmationTemplate.Execute(&body, confirmationData{
		Name:         sub.Name,
		DateOfTravel: sub.DateOfTravel,
		Reference:    sub.ID.Hex(),
	})
	if err != nil {
		s.metrics.errorCount.Inc()
		return fmt.Errorf("failed to render confirmation email: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{sub.Email},
		Subject: "We received your travel claim",
		Html:    body.String(),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		s.metrics.errorCount.Inc()
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Confirmation email sent",
		"submission_id", sub.ID.Hex(),
		"email", logger.MaskEmail(sub.Email),
	)
	return nil
}

package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/cmlabs-hris/rfid-attendance-go/internal/config"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/dayoff"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/domain/workhour"
	"github.com/cmlabs-hris/rfid-attendance-go/internal/pkg/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendPayslip(ctx context.Context, to, name string, summary workhour.Summary) error
	SendDayOffApproved(ctx context.Context, to, name string, d dayoff.DayOff) error
}

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	backoff   time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		backoff:   time.Second,
	}, nil
}

type payslipDay struct {
	Date      string
	StartTime string
	EndTime   string
	Hours     float64
	DayOff    bool
}

type payslipEmailData struct {
	Name            string
	StartDate       string
	EndDate         string
	Days            []payslipDay
	TotalHours      float64
	ExpectedHours   float64
	PunishmentHours float64
	PaidAmount      string
}

// SendPayslip mails the work-hour summary and the amount paid.
func (s *emailServiceImpl) SendPayslip(ctx context.Context, to, name string, summary workhour.Summary) error {
	data := payslipEmailData{
		Name:            name,
		StartDate:       dateOrDash(summary.StartDate),
		EndDate:         dateOrDash(summary.EndDate),
		TotalHours:      summary.TotalHours,
		ExpectedHours:   summary.ExpectedHours,
		PunishmentHours: summary.PunishmentHours,
		PaidAmount:      summary.PaidAmount.StringFixed(2),
	}
	for _, wd := range summary.WorkDays {
		data.Days = append(data.Days, payslipDay{
			Date:      utils.FormatDate(wd.Date),
			StartTime: wd.StartTime.Format("15:04"),
			EndTime:   wd.EndTime.Format("15:04"),
			Hours:     wd.Hours,
			DayOff:    !wd.Counted(),
		})
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "payslip.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Salary statement %s to %s", data.StartDate, data.EndDate)
	return s.sendHTML(ctx, to, subject, body.String())
}

type dayOffEmailData struct {
	Name      string
	StartDate string
	EndDate   string
	Type      string
	Reason    string
}

// SendDayOffApproved tells the employee their day off was approved.
func (s *emailServiceImpl) SendDayOffApproved(ctx context.Context, to, name string, d dayoff.DayOff) error {
	data := dayOffEmailData{
		Name:      name,
		StartDate: utils.FormatDate(d.StartDate),
		EndDate:   utils.FormatDate(d.EndDate),
		Type:      string(d.Type),
		Reason:    d.Reason,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "day_off_approved.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(ctx, to, "Day off approved", body.String())
}

func dateOrDash(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return utils.FormatDate(*t)
}

func (s *emailServiceImpl) sendHTML(ctx context.Context, to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1x, 2x, 4x
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return fmt.Errorf("email to %s cancelled: %w", to, ctx.Err())
			case <-time.After(s.backoff << (attempt - 1)):
			}
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}

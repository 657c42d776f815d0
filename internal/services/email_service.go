package services

import (
	"context"
	"fmt"

	"cardiomed/internal/config"
	"cardiomed/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ReminderMailer delivers reminder emails
type ReminderMailer interface {
	SendBPCheckReminder(ctx context.Context, user *models.User, reminder models.BPCheckReminder) error
	SendMedicationReminder(ctx context.Context, user *models.User, reminder models.MedicationReminder) error
}

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	appURL    string
}

func NewEmailService(cfg config.SendGridConfig) *EmailService {
	return &EmailService{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		appURL:    cfg.AppURL,
	}
}

// SendBPCheckReminder reminds a user to take a blood pressure reading
func (s *EmailService) SendBPCheckReminder(ctx context.Context, user *models.User, reminder models.BPCheckReminder) error {
	when := formatInUserZone(reminder.ReminderDatetime, user)
	subject := "Time to check your blood pressure"
	plainContent := fmt.Sprintf("Hello %s, your blood pressure check is scheduled for %s. Log your reading at %s.",
		displayName(user), when, s.appURL)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>Your blood pressure check is scheduled for <strong>%s</strong>.</p><p><a href=\"%s\">Log your reading</a></p>",
		displayName(user), when, s.appURL)

	return s.send(ctx, user, subject, plainContent, htmlContent)
}

// SendMedicationReminder reminds a user to take a scheduled dose
func (s *EmailService) SendMedicationReminder(ctx context.Context, user *models.User, reminder models.MedicationReminder) error {
	when := formatInUserZone(reminder.ScheduleDatetime, user)
	dosage := reminder.ScheduleDosage
	if dosage == "" {
		dosage = reminder.Dosage
	}
	subject := fmt.Sprintf("Reminder: %s at %s", reminder.Name, when)
	plainContent := fmt.Sprintf("Hello %s, it is almost time to take %s (%s) at %s.",
		displayName(user), reminder.Name, dosage, when)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>It is almost time to take <strong>%s</strong> (%s) at %s.</p>",
		displayName(user), reminder.Name, dosage, when)

	return s.send(ctx, user, subject, plainContent, htmlContent)
}

func (s *EmailService) send(ctx context.Context, user *models.User, subject, plainContent, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(displayName(user), user.Email)
	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", user.Email, response.StatusCode)
	}
	return nil
}

func displayName(user *models.User) string {
	if user.FullName != "" {
		return user.FullName
	}
	return user.Username
}

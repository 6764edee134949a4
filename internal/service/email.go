package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendReservationConfirmation(ctx context.Context, email, fullName, carLabel, reservationCode string, startDate, endDate time.Time, totalPriceCents int64) error {
	subject := "Car Rental - Reservation Confirmed"
	plain := fmt.Sprintf(
		"Hello %s,\n\nYour reservation for %s is confirmed.\n\nReservation Code: %s\nStart Date: %s\nEnd Date: %s\nTotal Price: $%.2f\n\nBest regards,\nThe Car Rental Team",
		fullName, carLabel, reservationCode,
		startDate.Format(time.RFC3339), endDate.Format(time.RFC3339),
		float64(totalPriceCents)/100)
	html := fmt.Sprintf(
		"<h2>Reservation Confirmed</h2><p>Hello %s,</p><p><b>%s</b> reservation is created.</p><ul><li>Reservation Code: <b>%s</b></li><li>Start Date: %s</li><li>End Date: %s</li><li>Total Price: $%.2f</li></ul>",
		fullName, carLabel, reservationCode,
		startDate.Format(time.RFC3339), endDate.Format(time.RFC3339),
		float64(totalPriceCents)/100)

	return s.send(email, fullName, subject, plain, html)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, fullName, carLabel string, endDate time.Time) error {
	subject := "Car Rental - Return Reminder"
	plain := fmt.Sprintf(
		"Hello %s,\n\nYour rental of %s ends on %s. Please return the car on time.\n\nBest regards,\nThe Car Rental Team",
		fullName, carLabel, endDate.Format("2006-01-02"))
	html := fmt.Sprintf(
		"<p>Hello %s,</p><p>Your rental of <b>%s</b> ends on %s. Please return the car on time.</p>",
		fullName, carLabel, endDate.Format("2006-01-02"))

	return s.send(email, fullName, subject, plain, html)
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

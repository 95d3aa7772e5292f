package service

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendRentalRequestNotification(ctx context.Context, librarianEmail, patronName, itemName string) error {
	body := fmt.Sprintf("Hello,\n\n%s has requested to rent %s.\n\nPlease review the request in the staff dashboard.\n\nBest regards,\nThe Ski Rentals Team", patronName, itemName)
	return s.send(librarianEmail, fmt.Sprintf("New rental request: %s", itemName), body)
}

func (s *emailService) SendRentalApprovalNotification(ctx context.Context, patronEmail, itemName string, dueDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nYour rental request for %s has been approved.\n\nThe equipment is due back on %s.\n\nBest regards,\nThe Ski Rentals Team", itemName, dueDate.Format("January 2, 2006"))
	return s.send(patronEmail, fmt.Sprintf("Rental approved: %s", itemName), body)
}

func (s *emailService) SendRentalDenialNotification(ctx context.Context, patronEmail, itemName, reason string) error {
	body := fmt.Sprintf("Hello,\n\nYour rental request for %s has been denied.", itemName)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe Ski Rentals Team"
	return s.send(patronEmail, fmt.Sprintf("Rental denied: %s", itemName), body)
}

func (s *emailService) SendReturnConfirmation(ctx context.Context, patronEmail, itemName string) error {
	body := fmt.Sprintf("Hello,\n\nYour return of %s has been recorded. Thanks for renting with us.\n\nBest regards,\nThe Ski Rentals Team", itemName)
	return s.send(patronEmail, fmt.Sprintf("Return confirmed: %s", itemName), body)
}

func (s *emailService) SendOverdueNotice(ctx context.Context, patronEmail, itemName string, dueDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nYour rental of %s was due back on %s and is now overdue.\n\nPlease return the equipment as soon as possible.\n\nBest regards,\nThe Ski Rentals Team", itemName, dueDate.Format("January 2, 2006"))
	return s.send(patronEmail, fmt.Sprintf("Overdue rental: %s", itemName), body)
}

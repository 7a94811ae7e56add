package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"unirent-backend/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
	shopName string
}

func NewEmailService(host string, port int, username, password, from, shopName string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		shopName: shopName,
	}
}

func (s *emailService) send(m *gomail.Message) error {
	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendBookingReceived(ctx context.Context, to, customerName, refCode string, vehicle string, start, end time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Booking request received - %s", refCode))

	body := fmt.Sprintf("Hello %s,\n\nWe have received your booking request for %s from %s to %s.\n\nYour reference code is: %s\n\nWe will contact you shortly to confirm the reservation.\n\nBest regards,\n%s",
		customerName, vehicle,
		start.Format("2 Jan 2006"), end.Format("2 Jan 2006"),
		refCode, s.shopName)
	m.SetBody("text/plain", body)

	return s.send(m)
}

func (s *emailService) SendBookingConfirmed(ctx context.Context, to, customerName, refCode string, vehicle string, start, end time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Booking confirmed - %s", refCode))

	body := fmt.Sprintf("Hello %s,\n\nYour booking %s has been confirmed.\n\nVehicle: %s\nFrom: %s\nTo: %s\n\nWe look forward to seeing you.\n\nBest regards,\n%s",
		customerName, refCode, vehicle,
		start.Format("2 Jan 2006"), end.Format("2 Jan 2006"),
		s.shopName)
	m.SetBody("text/plain", body)

	return s.send(m)
}

func (s *emailService) SendBookingRejected(ctx context.Context, to, customerName, refCode string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Booking request %s", refCode))

	body := fmt.Sprintf("Hello %s,\n\nUnfortunately we are unable to accommodate your booking request %s.\n\nPlease check our website for other available dates or vehicles.\n\nBest regards,\n%s",
		customerName, refCode, s.shopName)
	m.SetBody("text/plain", body)

	return s.send(m)
}

func (s *emailService) SendOverdueRentalReport(ctx context.Context, to string, rentals []domain.Rental) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("[%s] %d overdue rental(s)", s.shopName, len(rentals)))

	var b strings.Builder
	b.WriteString("The following rentals are past their planned end date:\n\n")
	for _, rt := range rentals {
		fmt.Fprintf(&b, "- rental #%d, vehicle #%d, client #%d, planned end %s\n",
			rt.ID, rt.VehicleID, rt.ClientID, rt.PlannedEndDate.Format("2 Jan 2006 15:04"))
	}
	m.SetBody("text/plain", b.String())

	return s.send(m)
}

func (s *emailService) SendPendingBookingDigest(ctx context.Context, to string, requests []domain.BookingRequest) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("[%s] %d pending booking request(s)", s.shopName, len(requests)))

	var b strings.Builder
	b.WriteString("The following booking requests are awaiting a decision:\n\n")
	for _, req := range requests {
		fmt.Fprintf(&b, "- %s: %s (%s), vehicle #%d, %s to %s\n",
			req.ReferenceCode, req.CustomerName, req.CustomerEmail, req.VehicleID,
			req.StartDate.Format("2 Jan 2006"), req.EndDate.Format("2 Jan 2006"))
	}
	m.SetBody("text/plain", b.String())

	return s.send(m)
}

package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type DigestItem struct {
	FullName    string
	ProjectName string
	Score       float64
	Reason      string
}

type IEmailService interface {
	SendWelcome(toEmail, fullName string) error
	SendRecommendationDigest(toEmail string, items []DigestItem) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendWelcome(toEmail, fullName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to GitScout")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>Your GitScout account is ready. Add a project profile and the
			matcher will start surfacing repositories worth a look.</p>
		</div>
	`, fullName)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send welcome to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}

func (s *emailService) SendRecommendationDigest(toEmail string, items []DigestItem) error {
	if len(items) == 0 {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("GitScout: %d new recommendation(s)", len(items)))

	var rows strings.Builder
	for _, item := range items {
		rows.WriteString(fmt.Sprintf(`
			<li style="margin-bottom: 10px;">
				<a href="https://github.com/%s"><strong>%s</strong></a>
				(%.0f%%) for <em>%s</em><br/>
				<span style="color: #666;">%s</span>
			</li>
		`, item.FullName, item.FullName, item.Score*100, item.ProjectName, item.Reason))
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>New Recommendations</h2>
			<ul style="list-style: none; padding: 0;">%s</ul>
		</div>
	`, rows.String())

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send digest to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}

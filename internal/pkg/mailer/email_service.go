package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"knagent-be/internal/entity"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendLeaveConfirmation(toEmail string, req *entity.LeaveRequest) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

var leaveTemplate = template.Must(template.New("leave").Parse(`
<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
	<h2>Leave request received</h2>
	<p>Your request is <strong>{{.Status}}</strong>.</p>
	<table>
		<tr><td>From</td><td>{{.StartDate}}</td></tr>
		<tr><td>To</td><td>{{.EndDate}}</td></tr>
		<tr><td>Reason</td><td>{{.Reason}}</td></tr>
	</table>
	<p>HR will review it shortly.</p>
</div>`))

func RenderLeaveConfirmation(req *entity.LeaveRequest) (string, error) {
	var buf bytes.Buffer
	if err := leaveTemplate.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *emailService) SendLeaveConfirmation(toEmail string, req *entity.LeaveRequest) error {
	body, err := RenderLeaveConfirmation(req)
	if err != nil {
		return fmt.Errorf("render leave confirmation: %w", err)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Leave request %s -> %s", req.StartDate, req.EndDate))
	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}

// nopEmailService is used when SMTP is not configured.
type nopEmailService struct{}

func NewNopEmailService() IEmailService { return nopEmailService{} }

func (nopEmailService) SendLeaveConfirmation(string, *entity.LeaveRequest) error { return nil }

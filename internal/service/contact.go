package service

import (
	"bytes"
	"context"
	"html/template"
	"net/mail"
	"strings"

	"menucup/internal/logging"
	mailer "menucup/internal/mail"
	"menucup/internal/model"
)

var leadEmail = template.Must(template.New("lead").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>New MenuCup Lead</title></head>
<body style="background-color:#f8fafc;padding:40px 10px;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Helvetica,Arial,sans-serif;">
<div style="max-width:600px;margin:0 auto;background-color:#ffffff;border-radius:16px;overflow:hidden;border:1px solid #e2e8f0;">
  <div style="background-color:#4f46e5;padding:30px;text-align:center;">
    <h1 style="color:#ffffff;margin:0;font-size:24px;font-weight:800;">New Demo Request</h1>
    <p style="color:#c7d2fe;margin-top:8px;font-size:14px;">A new venue is ready to pour growth.</p>
  </div>
  <div style="padding:40px 30px;">
    <p style="text-transform:uppercase;font-size:11px;font-weight:800;letter-spacing:0.1em;color:#64748b;">Venue Details</p>
    <table style="width:100%;border-collapse:collapse;background-color:#f1f5f9;border-radius:12px;">
      <tr><td style="padding:8px 20px;color:#475569;width:40%;"><strong>Restaurant:</strong></td><td style="padding:8px 0;color:#1e293b;">{{.CompanyName}}</td></tr>
      <tr><td style="padding:8px 20px;color:#475569;"><strong>Contact Name:</strong></td><td style="padding:8px 0;color:#1e293b;">{{.FullName}}</td></tr>
      <tr><td style="padding:8px 20px;color:#475569;"><strong>Email:</strong></td><td style="padding:8px 0;"><a href="mailto:{{.Email}}" style="color:#4f46e5;">{{.Email}}</a></td></tr>
    </table>
    <div style="text-align:center;margin-top:40px;">
      <a href="mailto:{{.Email}}" style="background-color:#4f46e5;color:#ffffff;padding:14px 28px;border-radius:8px;text-decoration:none;font-weight:700;">Reply to Lead</a>
    </div>
  </div>
  <div style="background-color:#f8fafc;padding:20px;text-align:center;border-top:1px solid #e2e8f0;">
    <p style="margin:0;font-size:12px;color:#94a3b8;">Sent automatically by MenuCup CRM</p>
  </div>
</div>
</body>
</html>`))

// ContactService forwards landing page leads by email.
type ContactService interface {
	// SubmitLead validates the lead and emails it to the sales inbox with reply-to set to the lead.
	SubmitLead(ctx context.Context, lead model.Lead) error
}

type contactService struct {
	sender mailer.Sender
	from   string
	to     string
	log    *logging.Logger
}

func NewContactService(sender mailer.Sender, from, to string, log *logging.Logger) ContactService {
	if log == nil {
		log = logging.Discard()
	}
	return &contactService{sender: sender, from: from, to: to, log: log.With("contact_service")}
}

func (s *contactService) SubmitLead(ctx context.Context, lead model.Lead) error {
	lead.FullName = strings.TrimSpace(lead.FullName)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.CompanyName = strings.TrimSpace(lead.CompanyName)
	if lead.FullName == "" || lead.Email == "" || lead.CompanyName == "" {
		return invalid("fullName, email and companyName are required")
	}
	addr, err := mail.ParseAddress(lead.Email)
	if err != nil {
		return invalid("email %q is not a valid address", lead.Email)
	}
	lead.Email = addr.Address

	var body bytes.Buffer
	if err := leadEmail.Execute(&body, lead); err != nil {
		return err
	}

	id, err := s.sender.Send(ctx, mailer.Message{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: lead.Email,
		Subject: "🚀 New Lead: " + lead.CompanyName,
		HTML:    body.String(),
	})
	if err != nil {
		s.log.Error("lead email failed", err, logging.Fields{"company": lead.CompanyName})
		return err
	}
	s.log.Info("lead email sent", logging.Fields{"message_id": id, "company": lead.CompanyName})
	return nil
}

package mailer

import (
	"fmt"

	"github.com/examhub/examhub/config"
	"github.com/examhub/examhub/internal/model"
	"gopkg.in/gomail.v2"
)

// Mailer sends account lifecycle emails over SMTP.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send renders the named template for the user and delivers it. The
// activation and reset links are built from the configured frontend base URL
// and the codes currently on the user.
func (m *Mailer) Send(emailType string, user *model.User) error {
	data := templateData{
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if user.ActivationCode != nil {
		data.ActivationLink = fmt.Sprintf("%s/auth/activate?activation_code=%s", m.cfg.Mail.BaseURL, *user.ActivationCode)
	}
	if user.ResetPassword != nil {
		data.ResetLink = fmt.Sprintf("%s/auth/reset/%s", m.cfg.Mail.BaseURL, *user.ResetPassword)
	}

	subject, body, err := renderTemplate(emailType, data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.Mail.FromEmail)
	msg.SetHeader("To", user.Email)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(
		m.cfg.Mail.SMTPHost,
		m.cfg.Mail.SMTPPort,
		m.cfg.Mail.SMTPUser,
		m.cfg.Mail.SMTPPassword,
	)

	return dialer.DialAndSend(msg)
}

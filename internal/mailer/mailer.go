package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"smartrent_backend/internal/config"
	"smartrent_backend/internal/logger"
)

// Mailer sends transactional mail. When SMTP is disabled or not
// configured every send becomes a logged no-op so local environments
// work without a mail server.
type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
}

func New(cfg *config.Config) *Mailer {
	m := &Mailer{from: cfg.SMTP.From}
	if cfg.SMTP.Disabled || cfg.SMTP.Host == "" || cfg.SMTP.User == "" {
		logger.Warn("mailer disabled or unconfigured, emails will be skipped")
		return m
	}
	m.dialer = gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)
	m.enabled = true
	return m
}

// Enabled reports whether emails will actually be sent.
func (m *Mailer) Enabled() bool {
	return m.enabled
}

func (m *Mailer) send(msg *gomail.Message) error {
	if !m.enabled {
		logger.Debug("email skipped", "to", msg.GetHeader("To"))
		return nil
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// SendResetCode mails the 6-digit password reset code.
func (m *Mailer) SendResetCode(to, nombre, code string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "SmartRent+ · Código de recuperación")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Hola %s,</p>
		 <p>Tu código de recuperación es: <b>%s</b></p>
		 <p>Expira en 15 minutos. Si no solicitaste este código, ignora este correo.</p>`,
		nombre, code,
	))
	return m.send(msg)
}

// SendInvoice mails a subscription receipt with the PDF attached.
func (m *Mailer) SendInvoice(to, nombre, plan, pdfPath string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "SmartRent+ · Boleta de suscripción")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Hola %s,</p>
		 <p>Adjuntamos la boleta de tu suscripción <b>%s</b>. ¡Gracias por preferirnos!</p>`,
		nombre, plan,
	))
	msg.Attach(pdfPath)
	return m.send(msg)
}

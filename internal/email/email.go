// Package email provides email sending functionality
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/Marga-Ghale/creativa-crm/internal/logger"
	"github.com/rs/zerolog"
)

// Config holds email configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

// Configured reports whether every credential needed to send is present.
func (c *Config) Configured() bool {
	return c != nil && c.Host != "" && c.User != "" && c.Password != ""
}

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// Sender delivers a fully built message. The SMTP transport implements it;
// tests substitute a recorder.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// Service renders templates and hands messages to a Sender.
type Service struct {
	config    *Config
	sender    Sender
	templates map[string]*template.Template
	log       zerolog.Logger
}

// NewService creates an email service that sends over SMTP.
func NewService(config *Config) *Service {
	return NewServiceWithSender(config, &SMTPSender{config: config})
}

// NewServiceWithSender creates an email service with a custom transport.
func NewServiceWithSender(config *Config, sender Sender) *Service {
	s := &Service{
		config:    config,
		sender:    sender,
		templates: make(map[string]*template.Template),
		log:       logger.With("email"),
	}
	s.loadTemplates()
	return s
}

// Configured reports whether the transport has credentials.
func (s *Service) Configured() bool {
	return s.config.Configured()
}

func (s *Service) loadTemplates() {
	s.templates["project_delivered"] = template.Must(template.New("project_delivered").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #eee; border-radius: 10px;">
    <h2 style="color: #333;">Hola {{.ClientName}},</h2>
    <p>Nos complace informarte que el proyecto <strong>"{{.ProjectName}}"</strong> ha sido finalizado exitosamente.</p>

    <h3 style="color: #007bff;">🔗 Tus enlaces de descarga:</h3>
    <ul>
        {{range .Links}}<li><strong>{{.Label}}:</strong> <a href="{{.URL}}">{{.URL}}</a></li>
        {{else}}<li>No hay links adjuntos.</li>
        {{end}}
    </ul>

    <hr style="border: 0; border-top: 1px solid #eee; margin: 20px 0;">

    <p style="color: #666; font-size: 14px;">
        Si tienes alguna pregunta o necesitas ajustes, no dudes en responder a este correo.
        <br><br>
        Saludos cordiales,<br>
        <strong>El Equipo de Visual Creativa</strong>
    </p>
</div>
`))
}

// Render executes a named template.
func (s *Service) Render(templateName string, data interface{}) (string, error) {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("template execution error: %w", err)
	}
	return body.String(), nil
}

// SendWithTemplate sends an email using a template
func (s *Service) SendWithTemplate(ctx context.Context, to []string, subject, templateName string, data interface{}) error {
	body, err := s.Render(templateName, data)
	if err != nil {
		return err
	}

	if err := s.sender.Send(ctx, &Email{To: to, Subject: subject, HTMLBody: body}); err != nil {
		return err
	}
	s.log.Info().Strs("to", to).Str("template", templateName).Msg("email sent")
	return nil
}

// ============================================
// Convenience Methods
// ============================================

type DeliveryLink struct {
	Label string
	URL   string
}

// ProjectDeliveredData holds data for the delivery email
type ProjectDeliveredData struct {
	ClientName  string
	ProjectName string
	Links       []DeliveryLink
}

// SendProjectDelivered sends the final delivery email listing every link.
func (s *Service) SendProjectDelivered(ctx context.Context, to string, data ProjectDeliveredData) error {
	return s.SendWithTemplate(ctx,
		[]string{to},
		fmt.Sprintf("✅ Entrega Final: %s", data.ProjectName),
		"project_delivered",
		data,
	)
}

// ============================================
// SMTP transport
// ============================================

// SMTPSender sends mail with net/smtp, over implicit TLS when UseTLS is set.
type SMTPSender struct {
	config *Config
}

func NewSMTPSender(config *Config) *SMTPSender {
	return &SMTPSender{config: config}
}

// message renders the RFC 5322 headers and body for email.
func (t *SMTPSender) message(email *Email) []byte {
	var msg bytes.Buffer

	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", t.config.FromName, t.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", email.Subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody != "" {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.HTMLBody)
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.Body)
	}
	return msg.Bytes()
}

func (t *SMTPSender) Send(ctx context.Context, email *Email) error {
	msg := t.message(email)
	recipients := email.To

	auth := smtp.PlainAuth("", t.config.User, t.config.Password, t.config.Host)
	addr := fmt.Sprintf("%s:%d", t.config.Host, t.config.Port)

	if !t.config.UseTLS {
		return smtp.SendMail(addr, auth, t.config.From, recipients, msg)
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{},
		Config:    &tls.Config{ServerName: t.config.Host},
	}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("TLS dial error: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, t.config.Host)
	if err != nil {
		return fmt.Errorf("SMTP client error: %w", err)
	}
	defer client.Close()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("auth error: %w", err)
	}
	if err = client.Mail(t.config.From); err != nil {
		return fmt.Errorf("mail error: %w", err)
	}
	for _, rcpt := range recipients {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("rcpt error: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("data error: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("close error: %w", err)
	}

	return client.Quit()
}

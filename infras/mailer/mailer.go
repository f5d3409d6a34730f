package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/shared/constant"
	"html/template"
	"net"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	TemplateBookingConfirmation = "booking_confirmation.html"
	TemplateBookingCancellation = "booking_cancellation.html"

	boundary = "----=_HOTELIER_MAIL_BOUNDARY"
)

var (
	//go:embed templates/*.html
	templateFS embed.FS

	templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

	ErrMissingRecipient = errors.New("mail recipient is required")
)

type Message struct {
	To       string
	Subject  string
	Template string
	Data     any
}

// Mailer reports sent=false without error when SMTP is not configured; the message is only logged.
type Mailer interface {
	Send(ctx context.Context, msg Message) (sent bool, err error)
}

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type mailerImpl struct {
	config *config.Config
	otel   otel.Otel
	send   sendFunc
}

func New(config *config.Config, otel otel.Otel) Mailer {
	return &mailerImpl{
		config: config,
		otel:   otel,
		send:   smtp.SendMail,
	}
}

func (m *mailerImpl) configured() bool {
	smtpCfg := m.config.External.SMTP

	return smtpCfg.Host != "" && smtpCfg.Port != "" && smtpCfg.Username != "" && smtpCfg.Password != ""
}

func (m *mailerImpl) Send(ctx context.Context, msg Message) (sent bool, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailScopeName, constant.OtelMailScopeName+".Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	to := sanitizeHeader(msg.To)
	if to == "" {
		return false, ErrMissingRecipient
	}

	scope.SetAttribute("mail.template", msg.Template)

	htmlBody, err := Render(msg.Template, msg.Data)
	if err != nil {
		return false, err
	}

	if !m.configured() {
		log.Info().Str("to", to).Str("subject", msg.Subject).Msg("smtp not configured, mail logged only")

		return false, nil
	}

	smtpCfg := m.config.External.SMTP

	from := smtpCfg.From
	if from == "" {
		from = smtpCfg.Username
	}

	raw := buildMIME(sanitizeHeader(from), to, sanitizeHeader(msg.Subject), htmlBody)
	auth := smtp.PlainAuth("", smtpCfg.Username, smtpCfg.Password, smtpCfg.Host)

	if err = m.send(net.JoinHostPort(smtpCfg.Host, smtpCfg.Port), auth, smtpCfg.Username, []string{to}, raw); err != nil {
		log.Error().Err(err).Str("to", to).Msg("failed to send mail")

		return false, fmt.Errorf("failed to send mail: %w", err)
	}

	log.Info().Str("to", to).Str("subject", msg.Subject).Msg("mail sent")

	return true, nil
}

func Render(name string, data any) (string, error) {
	var buf bytes.Buffer

	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render mail template %s: %w", name, err)
	}

	return buf.String(), nil
}

func buildMIME(from, to, subject, htmlBody string) []byte {
	var sb strings.Builder

	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	sb.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&sb, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary)

	fmt.Fprintf(&sb, "--%s\r\n", boundary)
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")
	fmt.Fprintf(&sb, "--%s--\r\n", boundary)

	return []byte(sb.String())
}

func sanitizeHeader(value string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(value))
}

package mailer

import (
	"hotelier/config"
	"hotelier/infras/otel"
	"net/smtp"
)

func NewWithSender(config *config.Config, otel otel.Otel, send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error) Mailer {
	return &mailerImpl{config: config, otel: otel, send: send}
}

package email

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"
)

// SMTPConfig holds configuration for an SMTP relay using STARTTLS and PLAIN auth.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpMailer struct {
	config      SMTPConfig
	fromAddress string
	fromName    string
	logger      *slog.Logger
	sendMail    sendMailFunc
	now         func() time.Time
}

func newSMTPMailer(config SMTPConfig, fromAddress, fromName string, logger *slog.Logger) *smtpMailer {
	if fromAddress == "" {
		fromAddress = config.Username
	}
	return &smtpMailer{
		config:      config,
		fromAddress: fromAddress,
		fromName:    fromName,
		logger:      logger,
		sendMail:    smtp.SendMail,
		now:         time.Now,
	}
}

func (m *smtpMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := m.buildMessage(to, subject, html, text)
	if err != nil {
		return fmt.Errorf("build smtp message: %w", err)
	}
	var auth smtp.Auth
	if m.config.Username != "" {
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	}
	addr := net.JoinHostPort(m.config.Host, strconv.Itoa(m.config.Port))
	if err := m.sendMail(addr, auth, m.fromAddress, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	m.logger.InfoContext(ctx, "email sent via SMTP", "to", to, "subject", subject)
	return nil
}

// buildMessage renders a multipart/alternative message with text and HTML parts.
func (m *smtpMailer) buildMessage(to, subject, html, text string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, part := range []struct{ contentType, content string }{
		{"text/plain; charset=UTF-8", text},
		{"text/html; charset=UTF-8", html},
	} {
		if part.content == "" {
			continue
		}
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(part.content)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", formatFrom(m.fromName, m.fromAddress))
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", mw.Boundary())
	msg.Write(body.Bytes())
	return msg.Bytes(), nil
}

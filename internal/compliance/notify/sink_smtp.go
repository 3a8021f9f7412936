package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSink delivers notifications as plain-text mail.
type SMTPSink struct {
	addr     string
	auth     smtp.Auth
	from     string
	sendMail sendMailFunc
	now      func() time.Time
}

// NewSMTPSink uses PLAIN auth when username is set.
func NewSMTPSink(addr, username, password, from string) (*SMTPSink, error) {
	if addr == "" {
		return nil, errors.New("smtp address is required")
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("parse smtp address: %w", err)
	}
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSink{addr: addr, auth: auth, from: from, sendMail: smtp.SendMail, now: time.Now}, nil
}

func (s *SMTPSink) Send(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.ContainsAny(recipient, "\r\n") || strings.ContainsAny(subject, "\r\n") {
		return errors.New("smtp header values must not contain line breaks")
	}
	if err := s.sendMail(s.addr, s.auth, s.from, []string{recipient}, s.message(recipient, subject, body)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (s *SMTPSink) message(recipient, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + s.from + "\r\n")
	b.WriteString("To: " + recipient + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("Date: " + s.now().UTC().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/gdugdh24/matrimony-backend/internal/config"
	"go.uber.org/zap"
)

const otpSubject = "Your Verification Code"

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends email codes over SMTP. There is no SMS gateway, so SMS
// codes are handed to the log.
type SMTPNotifier struct {
	cfg      config.SMTPConfig
	logger   *zap.Logger
	sendMail sendMailFunc
}

func NewSMTPNotifier(cfg config.SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, logger: logger, sendMail: smtp.SendMail}
}

func (n *SMTPNotifier) SendEmailOTP(ctx context.Context, email, otp string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	if err := n.sendMail(addr, auth, n.cfg.From, []string{email}, buildOTPMessage(n.cfg.From, email, otp)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	n.logger.Info("email otp sent", zap.String("to", email))
	return nil
}

func (n *SMTPNotifier) SendSMSOTP(ctx context.Context, phone, otp string) error {
	n.logger.Warn("no sms gateway configured, otp not delivered", zap.String("to", phone))
	return nil
}

func buildOTPMessage(from, to, otp string) []byte {
	var b strings.Builder
	b.WriteString("From: Matrimony App <" + from + ">\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + otpSubject + "\r\n")
	b.WriteString("Date: " + time.Now().Format(time.RFC1123Z) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("<html><body><h1>Your OTP is: " + otp + "</h1><p>It expires in a few minutes.</p></body></html>\r\n")
	return []byte(b.String())
}

// LogNotifier is used when SMTP is not configured. Codes go to the log so a
// developer can complete sign-up locally.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendEmailOTP(_ context.Context, email, otp string) error {
	n.logger.Info("email otp (not sent)", zap.String("to", email), zap.String("otp", otp))
	return nil
}

func (n *LogNotifier) SendSMSOTP(_ context.Context, phone, otp string) error {
	n.logger.Info("sms otp (not sent)", zap.String("to", phone), zap.String("otp", otp))
	return nil
}

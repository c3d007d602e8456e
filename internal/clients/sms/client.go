package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sparkbridge/hrms-backend/internal/logger"
	"github.com/sparkbridge/hrms-backend/internal/utils"
)

// Client delivers one-time passcodes over SMS through the gateway's REST
// API (Twilio-compatible form POST).
type Client interface {
	SendSMS(ctx context.Context, to, body string) error
}

type Config struct {
	AccountSID string
	AuthToken  string
	BaseURL    string
	From       string
	Timeout    time.Duration
}

func ConfigFromEnv(log *logger.Logger) Config {
	timeoutSec := utils.GetEnvAsInt("SMS_TIMEOUT_SECONDS", 30, log)
	return Config{
		AccountSID: strings.TrimSpace(os.Getenv("SMS_ACCOUNT_SID")),
		AuthToken:  strings.TrimSpace(os.Getenv("SMS_AUTH_TOKEN")),
		BaseURL:    strings.TrimSpace(os.Getenv("SMS_BASE_URL")),
		From:       strings.TrimSpace(os.Getenv("SMS_FROM_NUMBER")),
		Timeout:    time.Duration(timeoutSec) * time.Second,
	}
}

// NewFromEnv builds a gateway client, or a log-only client when the gateway
// is not configured so local environments can still complete OTP flows.
func NewFromEnv(log *logger.Logger) Client {
	cfg := ConfigFromEnv(log)
	if cfg.AccountSID == "" || cfg.AuthToken == "" {
		log.Warn("SMS gateway not configured, using log-only sender")
		return &logSender{log: log.With("service", "LogSMS")}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.twilio.com"
	}
	return &client{
		log:  log.With("service", "SMSClient"),
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type client struct {
	log  *logger.Logger
	cfg  Config
	http *http.Client
}

func (c *client) SendSMS(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.AccountSID)
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.cfg.From)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn("SMS gateway rejected message", "status", resp.StatusCode, "body", string(payload))
		return fmt.Errorf("sms gateway status %d", resp.StatusCode)
	}
	return nil
}

type logSender struct {
	log *logger.Logger
}

func (l *logSender) SendSMS(ctx context.Context, to, body string) error {
	l.log.Info("SMS (log-only)", "mobile", to, "body", body)
	return nil
}

package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidPhone indicates the number cannot be turned into an international mobile number.
var ErrInvalidPhone = errors.New("invalid mobile number")

// Sender delivers text messages.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// Options configures HTTPSender.
type Options struct {
	Username string
	APIKey   string
	Sender   string
	Timeout  time.Duration
}

// HTTPSender implements Sender against the gateway JSON API.
type HTTPSender struct {
	endpoint   *url.URL
	opts       Options
	httpClient *http.Client
	logger     *slog.Logger
}

// request mirrors the gateway JSON payload.
type request struct {
	UserName   string `json:"userName"`
	APIKey     string `json:"apiKey"`
	Numbers    string `json:"numbers"`
	UserSender string `json:"userSender"`
	Msg        string `json:"msg"`
	Encoding   string `json:"msgEncoding"`
	By         string `json:"By"`
}

type response struct {
	Code    json.RawMessage `json:"code"`
	Message string          `json:"message"`
}

// NewHTTPSender creates a gateway client bounded by opts.Timeout.
func NewHTTPSender(endpoint string, opts Options, logger *slog.Logger) (*HTTPSender, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse sms url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("sms url must be absolute")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &HTTPSender{
		endpoint:   parsed,
		opts:       opts,
		logger:     logger,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}, nil
}

// Send posts message to phone and checks the gateway result code.
func (s *HTTPSender) Send(ctx context.Context, phone, message string) error {
	number, err := NormalizePhone(phone)
	if err != nil {
		return err
	}

	body, err := json.Marshal(request{
		UserName:   s.opts.Username,
		APIKey:     s.opts.APIKey,
		Numbers:    number,
		UserSender: s.opts.Sender,
		Msg:        message,
		Encoding:   "UTF8",
		By:         "API",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Error("sms request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(raw)))
		return fmt.Errorf("sms gateway error: %s", resp.Status)
	}

	var data response
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decode sms response: %w", err)
	}
	code := strings.Trim(string(data.Code), `"`)
	if code != "1" && code != "M0000" {
		return fmt.Errorf("sms gateway rejected message: code %s %s", code, data.Message)
	}
	s.logger.Info("sms sent", slog.String("to", mask(number)))
	return nil
}

// NormalizePhone converts local mobile numbers to the 966 international form.
func NormalizePhone(phone string) (string, error) {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	clean := digits.String()

	switch {
	case len(clean) == 10 && strings.HasPrefix(clean, "05"):
		return "966" + clean[1:], nil
	case len(clean) == 9 && strings.HasPrefix(clean, "5"):
		return "966" + clean, nil
	case len(clean) == 12:
		return clean, nil
	default:
		return "", ErrInvalidPhone
	}
}

func mask(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "****" + number[len(number)-4:]
}

// LogSender writes messages to the log instead of a gateway.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, phone, message string) error {
	number, err := NormalizePhone(phone)
	if err != nil {
		return err
	}
	s.logger.Info("sms gateway disabled, message logged", slog.String("to", mask(number)), slog.Int("length", len(message)))
	return nil
}

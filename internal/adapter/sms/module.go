package sms

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/procurement/internal/config"
)

// Module exposes the SMS sender to fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	if p.Config.SMS.APIKey == "" {
		return NewLogSender(p.Logger), nil
	}
	return NewHTTPSender(p.Config.SMS.URL, Options{
		Username: p.Config.SMS.Username,
		APIKey:   p.Config.SMS.APIKey,
		Sender:   p.Config.SMS.Sender,
		Timeout:  p.Config.SMS.Timeout,
	}, p.Logger)
}

package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/utils"
	"github.com/go-resty/resty/v2"
)

const (
	messagesPath = "/api/v1/messages"

	templateWelcome       = "welcome"
	templatePasswordReset = "password_reset"

	mailerRetryCount   = 2
	mailerRetryWait    = 100 * time.Millisecond
	mailerRetryMaxWait = 500 * time.Millisecond
)

// mailMessage is the body accepted by the relay.
type mailMessage struct {
	From     string            `json:"from,omitempty"`
	To       string            `json:"to"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

type mailRelaySender struct {
	client   *utils.HTTPClient
	from     string
	resetURL string

	logger *logger.Logger
}

// NewMailRelaySender returns a sender posting to the relay at
// adapterCfg.MailerAddress. Transport errors and 5xx answers are retried
// a couple of times before giving up.
func NewMailRelaySender(adapterCfg config.Adapter, resetURL string, logger *logger.Logger) (*mailRelaySender, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.MailerAddress)
	if err != nil {
		return nil, err
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.MailerTimeout)
	client.
		SetRetryCount(mailerRetryCount).
		SetRetryWaitTime(mailerRetryWait).
		SetRetryMaxWaitTime(mailerRetryMaxWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= 500
		})

	return &mailRelaySender{
		client:   client,
		from:     adapterCfg.MailerFrom,
		resetURL: resetURL,
		logger:   logger,
	}, nil
}

func (s *mailRelaySender) SendWelcome(ctx context.Context, email, name, playerID string) error {
	return s.send(ctx, mailMessage{
		From:     s.from,
		To:       email,
		Template: templateWelcome,
		Data: map[string]string{
			"name":      name,
			"player_id": playerID,
		},
	})
}

func (s *mailRelaySender) SendPasswordReset(ctx context.Context, email, token string) error {
	return s.send(ctx, mailMessage{
		From:     s.from,
		To:       email,
		Template: templatePasswordReset,
		Data: map[string]string{
			"reset_link": resetLink(s.resetURL, token),
		},
	})
}

func (s *mailRelaySender) send(ctx context.Context, msg mailMessage) error {
	if msg.To == "" {
		return ErrEmptyRecipient
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(messagesPath)
	if err != nil {
		return fmt.Errorf("%s request: %w", msg.Template, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	s.logger.Debug().
		Str("template", msg.Template).
		Int("attempts", resp.Request.Attempt).
		Msg("notification accepted by mail relay")
	return nil
}

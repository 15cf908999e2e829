// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds the outbound notification senders. The relay
// sender posts messages to an HTTP mail relay; the log sender only
// records that a message would have been sent.
package adapter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/gsc-identity/internal/config"
	"github.com/MKhiriev/gsc-identity/internal/logger"
	"github.com/MKhiriev/gsc-identity/internal/service"
)

// NewNotificationSender picks the relay sender when a mailer address is
// configured and the log sender otherwise.
func NewNotificationSender(adapterCfg config.Adapter, appCfg config.App, logger *logger.Logger) (service.NotificationSender, error) {
	if strings.TrimSpace(adapterCfg.MailerAddress) == "" {
		logger.Warn().Msg("no mailer address configured, notifications are only logged")
		return NewLogSender(logger), nil
	}

	sender, err := NewMailRelaySender(adapterCfg, appCfg.ResetURL, logger)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter mailer address: %w", err)
	}
	return sender, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidAddress
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// resetLink appends the token to base as the "token" query parameter.
// An unparsable or empty base yields the bare token.
func resetLink(base, token string) string {
	if strings.TrimSpace(base) == "" {
		return token
	}
	u, err := url.Parse(base)
	if err != nil {
		return token
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String()
}

package telegram

import (
	"context"
	"errors"
	"time"

	"totem-quiz-bot/internal/pkg/logger"
)

// Poller feeds updates from getUpdates long-polling into the handler, one at a time.
type Poller struct {
	client  *Client
	handler *UpdateHandler
	timeout time.Duration
	backoff time.Duration
	log     *logger.Logger
}

func NewPoller(client *Client, handler *UpdateHandler, timeout time.Duration, log *logger.Logger) *Poller {
	return &Poller{
		client:  client,
		handler: handler,
		timeout: timeout,
		backoff: 2 * time.Second,
		log:     log.With("component", "Poller"),
	}
}

// Run polls until ctx is cancelled. Any webhook is removed first, Telegram
// refuses getUpdates while one is set.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.client.DeleteWebhook(ctx); err != nil {
		p.log.Warn("delete webhook failed", "error", err)
	}
	p.log.Info("polling started", "timeout", p.timeout.String())

	var offset int64
	for {
		updates, err := p.client.GetUpdates(ctx, offset, int(p.timeout/time.Second))
		if ctx.Err() != nil {
			p.log.Info("polling stopped")
			return nil
		}
		if err != nil {
			p.log.Warn("get updates failed", "error", err)
			if !sleep(ctx, p.backoff) {
				return nil
			}
			continue
		}
		for _, upd := range updates {
			p.handler.Handle(ctx, upd)
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

var errWebhookURLMissing = errors.New("webhook url not configured")

// RegisterWebhook points Telegram at url and drops any pending long-poll state.
func RegisterWebhook(ctx context.Context, client *Client, url, secret string) error {
	if url == "" {
		return errWebhookURLMissing
	}
	return client.SetWebhook(ctx, url, secret)
}

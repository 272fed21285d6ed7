package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"totem-quiz-bot/internal/pkg/logger"
)

const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// WebhookHandler accepts updates pushed by Telegram.
type WebhookHandler struct {
	handler *UpdateHandler
	secret  string
	log     *logger.Logger
}

func NewWebhookHandler(handler *UpdateHandler, secret string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{handler: handler, secret: secret, log: log.With("component", "WebhookHandler")}
}

func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h.secret != "" && r.Header.Get(secretHeader) != h.secret {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var upd Update
	if err := json.Unmarshal(body, &upd); err != nil {
		h.log.Warn("bad webhook payload", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// handled inline; a dropped connection must not cancel it
	h.handler.Handle(context.WithoutCancel(r.Context()), upd)
	w.WriteHeader(http.StatusOK)
}

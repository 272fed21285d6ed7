package http

import "net/http"

// NewRouter mounts the websocket endpoint, a health probe and, when set, the
// Telegram webhook.
func NewRouter(ws *WSHandler, webhookPath string, webhook http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", ws.ServeWS)
	if webhook != nil && webhookPath != "" {
		mux.Handle(webhookPath, webhook)
	}
	return mux
}

package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"totem-quiz-bot/internal/app"
	"totem-quiz-bot/internal/domain"
	"totem-quiz-bot/internal/infra/memory"
	"totem-quiz-bot/internal/pkg/logger"
	"totem-quiz-bot/internal/render"
)

type apiCall struct {
	Method  string
	Payload map[string]interface{}
}

// fakeAPI records Bot API calls and replies like Telegram would.
type fakeAPI struct {
	mu        sync.Mutex
	calls     []apiCall
	updates   [][]Update
	onDrained func()
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	api := &fakeAPI{}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, NewClient(srv.URL, "test-token")
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	payload := map[string]interface{}{}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(10 << 20); err == nil {
			for k, v := range r.MultipartForm.Value {
				payload[k] = v[0]
			}
			if files := r.MultipartForm.File["photo"]; len(files) > 0 {
				payload["photo"] = files[0].Filename
			}
		}
	} else {
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{Method: method, Payload: payload})
	var result interface{} = true
	switch method {
	case "sendMessage", "sendPhoto":
		result = map[string]interface{}{"message_id": 100}
	case "getUpdates":
		batch := []Update{}
		if len(f.updates) > 0 {
			batch, f.updates = f.updates[0], f.updates[1:]
		} else if f.onDrained != nil {
			f.onDrained()
		}
		result = batch
	}
	f.mu.Unlock()

	_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": result})
}

func (f *fakeAPI) byMethod(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeAPI) last(method string) apiCall {
	calls := f.byMethod(method)
	if len(calls) == 0 {
		return apiCall{}
	}
	return calls[len(calls)-1]
}

func (f *fakeAPI) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func text(c apiCall) string {
	s, _ := c.Payload["text"].(string)
	return s
}

type testBot struct {
	api      *fakeAPI
	handler  *UpdateHandler
	feedback *memory.FeedbackStore
}

func newTestBot(t *testing.T) *testBot {
	t.Helper()
	api, client := newFakeAPI(t)
	catalog := foxOwlCatalog(t)
	log := logger.NewNop()

	renderer, err := render.NewRenderer(catalog, "", log)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	engine := app.NewQuizEngineWithClock(memory.NewStateStore(), catalog, func() time.Time {
		return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	})
	flow := app.NewQuizFlow(engine, renderer, nil, domain.Contact{Email: "zoo@example.org", Phone: "+7 000"})
	fb := memory.NewFeedbackStore()
	handler := NewUpdateHandler(client, flow, app.NewFeedbackService(fb), log)
	return &testBot{api: api, handler: handler, feedback: fb}
}

func foxOwlCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	opt := func(text, outcome string, points int) domain.OptionDefinition {
		return domain.OptionDefinition{Text: text, Weights: domain.Weights{{Outcome: outcome, Points: points}}}
	}
	cat, err := domain.NewCatalog(domain.CatalogData{
		Questions: []domain.QuestionDefinition{
			{ID: 1, Prompt: "Morning or evening?", Options: []domain.OptionDefinition{opt("Morning", "fox", 2), opt("Evening", "owl", 2)}},
			{ID: 2, Prompt: "Forest or field?", Options: []domain.OptionDefinition{opt("Field", "owl", 2), opt("Forest", "owl", 3)}},
			{ID: 3, Prompt: "Quiet <or> loud?", Options: []domain.OptionDefinition{opt("Quiet", "owl", 1), opt("Loud", "fox", 1)}},
		},
		Outcomes: []domain.OutcomeDefinition{
			{Key: "fox", DisplayName: "Fox", Emoji: "🦊", Description: "Clever and quick."},
			{Key: "owl", DisplayName: "Owl", Emoji: "🦉", Description: "Wise and patient.", ExtraFacts: "Owls turn their heads far."},
		},
		Guardianship: "Write to {email} or call {phone}.",
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func commandUpdate(userID int64, cmd string) Update {
	return Update{UpdateID: 1, Message: &Message{
		MessageID: 10,
		From:      &User{ID: userID, FirstName: "Alice", LastName: "Smith"},
		Chat:      Chat{ID: userID},
		Text:      cmd,
		Entities:  []MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func textUpdate(userID int64, text string) Update {
	return Update{UpdateID: 2, Message: &Message{
		MessageID: 11,
		From:      &User{ID: userID, FirstName: "Alice"},
		Chat:      Chat{ID: userID},
		Text:      text,
	}}
}

func callbackUpdate(userID int64, data string) Update {
	return Update{UpdateID: 3, CallbackQuery: &CallbackQuery{
		ID:      "cb-" + data,
		From:    User{ID: userID, FirstName: "Alice", LastName: "Smith"},
		Message: &Message{MessageID: 50, Chat: Chat{ID: userID}},
		Data:    data,
	}}
}
